package service

import (
	"time"

	"github.com/Masai2005/zero-app/internal/dto"
	"github.com/Masai2005/zero-app/internal/model"
	"github.com/Masai2005/zero-app/internal/repository"
	"github.com/Masai2005/zero-app/internal/storage"
)

// ExpenseService defines the business logic contract for expenses.
type ExpenseService interface {
	Create(actor string, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error)
	List() ([]dto.ExpenseResponse, error)
	Update(id string, req dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error)
	Delete(id string) error
}

type expenseService struct {
	repo repository.ExpenseRepository
	ids  *storage.IDGenerator
}

func NewExpenseService(repo repository.ExpenseRepository, ids *storage.IDGenerator) ExpenseService {
	return &expenseService{repo: repo, ids: ids}
}

func (s *expenseService) Create(actor string, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	e := &model.Expense{
		ID:        s.ids.NewID(),
		Category:  req.Category,
		Amount:    req.Amount,
		Date:      req.Date,
		Details:   req.Details,
		AddedBy:   actor,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(e); err != nil {
		return nil, err
	}
	return expenseToResponse(e), nil
}

func (s *expenseService) List() ([]dto.ExpenseResponse, error) {
	expenses, err := s.repo.All()
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ExpenseResponse, len(expenses))
	for i := range expenses {
		resp[i] = *expenseToResponse(&expenses[i])
	}
	return resp, nil
}

func (s *expenseService) Update(id string, req dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	e, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if req.Category != "" {
		e.Category = req.Category
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, &storage.Error{Kind: storage.KindValidation, Op: "update_expense",
				File: storage.ExpensesFile, Msg: "amount must be greater than zero"}
		}
		e.Amount = *req.Amount
	}
	if req.Date != "" {
		e.Date = req.Date
	}
	if req.Details != "" {
		e.Details = req.Details
	}
	if err := s.repo.Update(e); err != nil {
		return nil, err
	}
	return expenseToResponse(e), nil
}

func (s *expenseService) Delete(id string) error {
	return s.repo.Delete(id)
}

func expenseToResponse(e *model.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:        e.ID,
		Category:  e.Category,
		Amount:    e.Amount,
		Date:      e.Date,
		Details:   e.Details,
		AddedBy:   e.AddedBy,
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
}
