package repository

import (
	"github.com/Masai2005/zero-app/internal/model"
	"github.com/Masai2005/zero-app/internal/storage"
)

// Sales, payments, and movements are ledger collections: append-only,
// immutable once written. Their repositories deliberately expose no Update
// or Delete.

// SaleRepository defines the data access contract for the sales ledger.
type SaleRepository interface {
	All() ([]model.Sale, error)
	FindByID(id string) (*model.Sale, error)
	Append(s *model.Sale) error
}

type saleRepo struct {
	col *storage.ListCollection[model.Sale]
}

// NewSaleRepository returns a SaleRepository backed by sales.json.
func NewSaleRepository(s *storage.Store) SaleRepository {
	return &saleRepo{col: storage.NewListCollection[model.Sale](s, storage.SalesFile)}
}

func (r *saleRepo) All() ([]model.Sale, error) { return r.col.Load() }

func (r *saleRepo) FindByID(id string) (*model.Sale, error) {
	sales, err := r.col.Load()
	if err != nil {
		return nil, err
	}
	for i := range sales {
		if sales[i].ID == id {
			return &sales[i], nil
		}
	}
	return nil, &storage.Error{Kind: storage.KindValidation, Op: "find", File: r.col.Name(),
		Msg: "sale not found: " + id}
}

func (r *saleRepo) Append(s *model.Sale) error { return r.col.Append(*s) }

// PaymentRepository defines the data access contract for the payments ledger.
type PaymentRepository interface {
	All() ([]model.Payment, error)
	Append(p *model.Payment) error
}

type paymentRepo struct {
	col *storage.ListCollection[model.Payment]
}

// NewPaymentRepository returns a PaymentRepository backed by payments.json.
func NewPaymentRepository(s *storage.Store) PaymentRepository {
	return &paymentRepo{col: storage.NewListCollection[model.Payment](s, storage.PaymentsFile)}
}

func (r *paymentRepo) All() ([]model.Payment, error) { return r.col.Load() }
func (r *paymentRepo) Append(p *model.Payment) error { return r.col.Append(*p) }

// MovementRepository defines the data access contract for the stock
// movement ledger.
type MovementRepository interface {
	All() ([]model.Movement, error)
	Append(m *model.Movement) error
	AppendAll(ms []model.Movement) error
}

type movementRepo struct {
	col *storage.ListCollection[model.Movement]
}

// NewMovementRepository returns a MovementRepository backed by movements.json.
func NewMovementRepository(s *storage.Store) MovementRepository {
	return &movementRepo{col: storage.NewListCollection[model.Movement](s, storage.MovementsFile)}
}

func (r *movementRepo) All() ([]model.Movement, error)       { return r.col.Load() }
func (r *movementRepo) Append(m *model.Movement) error       { return r.col.Append(*m) }
func (r *movementRepo) AppendAll(ms []model.Movement) error  { return r.col.AppendAll(ms) }
