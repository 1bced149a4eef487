package dto

import "github.com/shopspring/decimal"

type RecordPaymentRequest struct {
	CustomerID    string          `json:"customer_id"    validate:"required"`
	Amount        decimal.Decimal `json:"amount"         validate:"required,gt=0"`
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=Cash 'Credit Card' 'Bank Transfer' Mobile"`
	Notes         string          `json:"notes"          validate:"omitempty,max=500"`
	// PaymentDate is YYYY-MM-DD; empty = today.
	PaymentDate string `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
}

type PaymentResponse struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customer_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes,omitempty"`
	PaymentDate   string          `json:"payment_date"`
	RecordedBy    string          `json:"recorded_by"`
	CreatedAt     string          `json:"created_at"`
	// OutstandingAfter is the customer's derived balance after this payment.
	OutstandingAfter decimal.Decimal `json:"outstanding_after"`
}
