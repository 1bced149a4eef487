package dto

import "github.com/shopspring/decimal"

type RecordMovementRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Type      string `json:"type"       validate:"required,oneof='Stock In' 'Stock Out' Adjustment Transfer Damaged Expired"`
	// Quantity is the magnitude to move, except for Adjustment where it is
	// the absolute target quantity.
	Quantity  int    `json:"quantity"  validate:"min=0"`
	Reason    string `json:"reason"    validate:"required,min=2,max=200"`
	Reference string `json:"reference" validate:"omitempty,max=50"`
	Date      string `json:"date"      validate:"omitempty,datetime=2006-01-02"`
}

// MovementFilter is bound from the query string of GET /v1/inventory/movements.
type MovementFilter struct {
	ProductID string `form:"product_id"`
	Type      string `form:"type"`
	SinceDays int    `form:"since_days" validate:"min=0"`
	Limit     int    `form:"limit,default=200" validate:"min=1,max=2000"`
}

type MovementResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	ProductName      string          `json:"product_name"`
	MovementType     string          `json:"movement_type"`
	Quantity         int             `json:"quantity"`
	Unit             string          `json:"unit,omitempty"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	TotalValue       decimal.Decimal `json:"total_value"`
	PreviousQuantity int             `json:"previous_quantity"`
	NewQuantity      int             `json:"new_quantity"`
	ReferenceType    string          `json:"reference_type"`
	ReferenceNumber  string          `json:"reference_number,omitempty"`
	Reason           string          `json:"reason,omitempty"`
	CreatedBy        string          `json:"created_by"`
	CreatedAt        string          `json:"created_at"`
}
