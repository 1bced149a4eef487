package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategories is the closed set of accepted expense categories.
var ExpenseCategories = []string{
	"Rent", "Utilities", "Salaries", "Supplies",
	"Marketing", "Maintenance", "Transport", "Other",
}

// ValidExpenseCategory reports whether c is an accepted category.
func ValidExpenseCategory(c string) bool {
	for _, cat := range ExpenseCategories {
		if c == cat {
			return true
		}
	}
	return false
}

// Expense is a recorded business expense.
type Expense struct {
	ID       string          `json:"id"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	// Date is an ISO date (2006-01-02).
	Date      string    `json:"date"`
	Details   string    `json:"details"`
	AddedBy   string    `json:"added_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (e Expense) RecordID() string { return e.ID }
