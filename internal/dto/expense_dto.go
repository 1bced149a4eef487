package dto

import "github.com/shopspring/decimal"

type CreateExpenseRequest struct {
	Category string          `json:"category" validate:"required,oneof=Rent Utilities Salaries Supplies Marketing Maintenance Transport Other"`
	Amount   decimal.Decimal `json:"amount"   validate:"required,gt=0"`
	Date     string          `json:"date"     validate:"required,datetime=2006-01-02"`
	Details  string          `json:"details"  validate:"required,min=2,max=500"`
}

type UpdateExpenseRequest struct {
	Category string           `json:"category" validate:"omitempty,oneof=Rent Utilities Salaries Supplies Marketing Maintenance Transport Other"`
	Amount   *decimal.Decimal `json:"amount"   validate:"omitempty"`
	Date     string           `json:"date"     validate:"omitempty,datetime=2006-01-02"`
	Details  string           `json:"details"  validate:"omitempty,min=2,max=500"`
}

type ExpenseResponse struct {
	ID        string          `json:"id"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Date      string          `json:"date"`
	Details   string          `json:"details"`
	AddedBy   string          `json:"added_by"`
	CreatedAt string          `json:"created_at"`
}
