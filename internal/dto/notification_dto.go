package dto

type NotificationResponse struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	ReferenceID string `json:"reference_id"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	Priority    string `json:"priority"`
	Read        bool   `json:"read"`
	CreatedAt   string `json:"created_at"`
}

type NotificationListResponse struct {
	Data   []NotificationResponse `json:"data"`
	Unread int                    `json:"unread"`
}

// GenerateResult summarizes one generation pass.
type GenerateResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Pruned  int `json:"pruned"`
}
