package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment records money received from a customer against their account.
// Immutable append-only ledger entry.
type Payment struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customer_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes,omitempty"`
	// PaymentDate is an ISO date (2006-01-02).
	PaymentDate    string    `json:"payment_date"`
	RecordedBy     string    `json:"recorded_by"`
	RecordedByName string    `json:"recorded_by_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func (p Payment) RecordID() string { return p.ID }
