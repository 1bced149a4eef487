package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how a sale was paid for. Credit (Account) sales feed the
// customer debt ledger.
type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "Cash"
	PaymentCreditCard PaymentMethod = "Credit Card"
	PaymentOnAccount  PaymentMethod = "Credit (Account)"
)

// ValidPaymentMethod reports whether m is an accepted payment method.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentCash, PaymentCreditCard, PaymentOnAccount:
		return true
	}
	return false
}

// SaleItem is one cart line inside a sale.
type SaleItem struct {
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	Unit            Unit            `json:"unit"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	TotalPrice      decimal.Decimal `json:"total_price"`
}

// Sale is an immutable ledger entry: once written it is never edited or
// deleted. CustomerID is empty for walk-in cash sales.
type Sale struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	CustomerID    string          `json:"customer_id,omitempty"`
	CustomerName  string          `json:"customer_name"`
	Items         []SaleItem      `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (s Sale) RecordID() string { return s.ID }
