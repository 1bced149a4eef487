package repository

import (
	"github.com/Masai2005/zero-app/internal/model"
	"github.com/Masai2005/zero-app/internal/storage"
)

// ExpenseRepository defines the data access contract for expenses.
type ExpenseRepository interface {
	All() ([]model.Expense, error)
	FindByID(id string) (*model.Expense, error)
	Create(e *model.Expense) error
	Update(e *model.Expense) error
	Delete(id string) error
}

type expenseRepo struct {
	col *storage.ListCollection[model.Expense]
}

// NewExpenseRepository returns an ExpenseRepository backed by expenses.json.
func NewExpenseRepository(s *storage.Store) ExpenseRepository {
	return &expenseRepo{col: storage.NewListCollection[model.Expense](s, storage.ExpensesFile)}
}

func (r *expenseRepo) All() ([]model.Expense, error) { return r.col.Load() }

func (r *expenseRepo) FindByID(id string) (*model.Expense, error) {
	expenses, err := r.col.Load()
	if err != nil {
		return nil, err
	}
	for i := range expenses {
		if expenses[i].ID == id {
			return &expenses[i], nil
		}
	}
	return nil, &storage.Error{Kind: storage.KindValidation, Op: "find", File: r.col.Name(),
		Msg: "expense not found: " + id}
}

func (r *expenseRepo) Create(e *model.Expense) error { return r.col.Append(*e) }

func (r *expenseRepo) Update(e *model.Expense) error {
	expenses, err := r.col.Load()
	if err != nil {
		return err
	}
	for i := range expenses {
		if expenses[i].ID == e.ID {
			expenses[i] = *e
			return r.col.Save(expenses)
		}
	}
	return &storage.Error{Kind: storage.KindValidation, Op: "update", File: r.col.Name(),
		Msg: "expense not found: " + e.ID}
}

func (r *expenseRepo) Delete(id string) error {
	expenses, err := r.col.Load()
	if err != nil {
		return err
	}
	for i := range expenses {
		if expenses[i].ID == id {
			return r.col.Save(append(expenses[:i], expenses[i+1:]...))
		}
	}
	return &storage.Error{Kind: storage.KindValidation, Op: "delete", File: r.col.Name(),
		Msg: "expense not found: " + id}
}
