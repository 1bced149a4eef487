package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=4"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"`
	User         UserResponse `json:"user"`
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Password string `json:"password" validate:"required,min=4"`
	Name     string `json:"name"     validate:"required,min=2,max=100"`
	Type     string `json:"type"     validate:"required,oneof=admin salesman"`
}

type UpdateUserRequest struct {
	Password string `json:"password" validate:"omitempty,min=4"`
	Name     string `json:"name"     validate:"omitempty,min=2,max=100"`
	Type     string `json:"type"     validate:"omitempty,oneof=admin salesman"`
}

type UserResponse struct {
	Username  string `json:"username"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	CreatedAt string `json:"created_at,omitempty"`
}
