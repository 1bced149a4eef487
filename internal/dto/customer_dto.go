package dto

import "github.com/shopspring/decimal"

type CreateCustomerRequest struct {
	FirstName string `json:"first_name" validate:"required,min=2,max=50"`
	LastName  string `json:"last_name"  validate:"omitempty,max=50"`
	Company   string `json:"company"    validate:"omitempty,max=100"`
	Phone     string `json:"phone"      validate:"omitempty,min=7,max=20"`
	Email     string `json:"email"      validate:"omitempty,email"`
	Address   string `json:"address"    validate:"omitempty,max=200"`
	Notes     string `json:"notes"      validate:"omitempty,max=500"`
}

type UpdateCustomerRequest struct {
	FirstName string  `json:"first_name" validate:"omitempty,min=2,max=50"`
	LastName  *string `json:"last_name"  validate:"omitempty"`
	Company   *string `json:"company"    validate:"omitempty"`
	Phone     *string `json:"phone"      validate:"omitempty"`
	Email     *string `json:"email"      validate:"omitempty,email"`
	Address   *string `json:"address"    validate:"omitempty"`
	Notes     *string `json:"notes"      validate:"omitempty"`
}

type CustomerResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	Address   string `json:"address,omitempty"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"created_at"`
}

// BalanceResponse carries a derived customer balance. Outstanding is negative
// when the customer has overpaid.
type BalanceResponse struct {
	CustomerID    string          `json:"customer_id"`
	TotalDebt     decimal.Decimal `json:"total_debt"`
	TotalPayments decimal.Decimal `json:"total_payments"`
	Outstanding   decimal.Decimal `json:"outstanding"`
}
