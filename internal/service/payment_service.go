package service

import (
	"time"

	"github.com/Masai2005/zero-app/internal/dto"
	"github.com/Masai2005/zero-app/internal/ledger"
	"github.com/Masai2005/zero-app/internal/model"
	"github.com/Masai2005/zero-app/internal/repository"
	"github.com/Masai2005/zero-app/internal/storage"
)

// PaymentService records customer payments against their derived balance.
type PaymentService interface {
	Record(actor string, req dto.RecordPaymentRequest) (*dto.PaymentResponse, error)
}

type paymentService struct {
	payments  repository.PaymentRepository
	customers repository.CustomerRepository
	ledger    *ledger.Engine
	ids       *storage.IDGenerator
}

func NewPaymentService(
	payments repository.PaymentRepository,
	customers repository.CustomerRepository,
	eng *ledger.Engine,
	ids *storage.IDGenerator,
) PaymentService {
	return &paymentService{payments: payments, customers: customers, ledger: eng, ids: ids}
}

// Record appends a payment. Overpayment is allowed; the derived balance just
// goes negative.
func (s *paymentService) Record(actor string, req dto.RecordPaymentRequest) (*dto.PaymentResponse, error) {
	if _, err := s.customers.FindByID(req.CustomerID); err != nil {
		return nil, err
	}
	now := time.Now()
	date := req.PaymentDate
	if date == "" {
		date = now.Format("2006-01-02")
	}
	p := &model.Payment{
		ID:            s.ids.NewID(),
		CustomerID:    req.CustomerID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		PaymentDate:   date,
		RecordedBy:    actor,
		CreatedAt:     now,
	}
	if err := s.payments.Append(p); err != nil {
		return nil, err
	}

	balance, err := s.ledger.CustomerBalance(req.CustomerID)
	if err != nil {
		return nil, err
	}
	return &dto.PaymentResponse{
		ID:               p.ID,
		CustomerID:       p.CustomerID,
		Amount:           p.Amount,
		PaymentMethod:    p.PaymentMethod,
		Notes:            p.Notes,
		PaymentDate:      p.PaymentDate,
		RecordedBy:       p.RecordedBy,
		CreatedAt:        p.CreatedAt.Format(time.RFC3339),
		OutstandingAfter: balance.Outstanding,
	}, nil
}
