package service

import (
	"time"

	"github.com/Masai2005/zero-app/internal/dto"
	"github.com/Masai2005/zero-app/internal/ledger"
	"github.com/Masai2005/zero-app/internal/model"
	"github.com/Masai2005/zero-app/internal/repository"
	"github.com/Masai2005/zero-app/internal/storage"
)

// CustomerService defines the business logic contract for customers.
type CustomerService interface {
	Create(req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	GetByID(id string) (*dto.CustomerResponse, error)
	List() ([]dto.CustomerResponse, error)
	Update(id string, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	Delete(id string) error
	Balance(id string) (*dto.BalanceResponse, error)
	AllBalances() (map[string]dto.BalanceResponse, error)
	PaymentHistory(id string) ([]dto.PaymentResponse, error)
}

type customerService struct {
	repo   repository.CustomerRepository
	sales  repository.SaleRepository
	ledger *ledger.Engine
	ids    *storage.IDGenerator
}

func NewCustomerService(
	repo repository.CustomerRepository,
	sales repository.SaleRepository,
	eng *ledger.Engine,
	ids *storage.IDGenerator,
) CustomerService {
	return &customerService{repo: repo, sales: sales, ledger: eng, ids: ids}
}

func (s *customerService) Create(req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	c := &model.Customer{
		ID:        s.ids.NewID(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Company:   req.Company,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
		Notes:     req.Notes,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(c); err != nil {
		return nil, err
	}
	return customerToResponse(c), nil
}

func (s *customerService) GetByID(id string) (*dto.CustomerResponse, error) {
	c, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return customerToResponse(c), nil
}

func (s *customerService) List() ([]dto.CustomerResponse, error) {
	customers, err := s.repo.All()
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CustomerResponse, len(customers))
	for i := range customers {
		resp[i] = *customerToResponse(&customers[i])
	}
	return resp, nil
}

func (s *customerService) Update(id string, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if req.FirstName != "" {
		c.FirstName = req.FirstName
	}
	if req.LastName != nil {
		c.LastName = *req.LastName
	}
	if req.Company != nil {
		c.Company = *req.Company
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
	}
	if err := s.repo.Update(c); err != nil {
		return nil, err
	}
	return customerToResponse(c), nil
}

// Delete refuses to remove a customer who appears on any sale. Sales are an
// immutable ledger; deleting the customer would orphan those records.
func (s *customerService) Delete(id string) error {
	sales, err := s.sales.All()
	if err != nil {
		return err
	}
	for _, sale := range sales {
		if sale.CustomerID == id {
			return &storage.Error{Kind: storage.KindValidation, Op: "delete_customer",
				File: storage.CustomersFile,
				Msg:  "customer has recorded sales and cannot be deleted"}
		}
	}
	return s.repo.Delete(id)
}

func (s *customerService) Balance(id string) (*dto.BalanceResponse, error) {
	if _, err := s.repo.FindByID(id); err != nil {
		return nil, err
	}
	b, err := s.ledger.CustomerBalance(id)
	if err != nil {
		return nil, err
	}
	return &dto.BalanceResponse{
		CustomerID:    id,
		TotalDebt:     b.TotalDebt,
		TotalPayments: b.TotalPayments,
		Outstanding:   b.Outstanding,
	}, nil
}

func (s *customerService) AllBalances() (map[string]dto.BalanceResponse, error) {
	balances, err := s.ledger.AllCustomerBalances()
	if err != nil {
		return nil, err
	}
	resp := make(map[string]dto.BalanceResponse, len(balances))
	for id, b := range balances {
		resp[id] = dto.BalanceResponse{
			CustomerID:    id,
			TotalDebt:     b.TotalDebt,
			TotalPayments: b.TotalPayments,
			Outstanding:   b.Outstanding,
		}
	}
	return resp, nil
}

func (s *customerService) PaymentHistory(id string) ([]dto.PaymentResponse, error) {
	if _, err := s.repo.FindByID(id); err != nil {
		return nil, err
	}
	payments, err := s.ledger.CustomerPaymentHistory(id)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PaymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = dto.PaymentResponse{
			ID:            p.ID,
			CustomerID:    p.CustomerID,
			Amount:        p.Amount,
			PaymentMethod: p.PaymentMethod,
			Notes:         p.Notes,
			PaymentDate:   p.PaymentDate,
			RecordedBy:    p.RecordedBy,
			CreatedAt:     p.CreatedAt.Format(time.RFC3339),
		}
	}
	return resp, nil
}

func customerToResponse(c *model.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Company:   c.Company,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}
