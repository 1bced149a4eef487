package repository

import (
	"github.com/Masai2005/zero-app/internal/model"
	"github.com/Masai2005/zero-app/internal/storage"
)

// CustomerRepository defines the data access contract for customers.
type CustomerRepository interface {
	All() ([]model.Customer, error)
	FindByID(id string) (*model.Customer, error)
	Create(c *model.Customer) error
	Update(c *model.Customer) error
	Delete(id string) error
}

type customerRepo struct {
	col *storage.ListCollection[model.Customer]
}

// NewCustomerRepository returns a CustomerRepository backed by customers.json.
func NewCustomerRepository(s *storage.Store) CustomerRepository {
	return &customerRepo{col: storage.NewListCollection[model.Customer](s, storage.CustomersFile)}
}

func (r *customerRepo) All() ([]model.Customer, error) {
	return r.col.Load()
}

func (r *customerRepo) FindByID(id string) (*model.Customer, error) {
	customers, err := r.col.Load()
	if err != nil {
		return nil, err
	}
	for i := range customers {
		if customers[i].ID == id {
			return &customers[i], nil
		}
	}
	return nil, &storage.Error{Kind: storage.KindValidation, Op: "find", File: r.col.Name(),
		Msg: "customer not found: " + id}
}

func (r *customerRepo) Create(c *model.Customer) error {
	return r.col.Append(*c)
}

func (r *customerRepo) Update(c *model.Customer) error {
	customers, err := r.col.Load()
	if err != nil {
		return err
	}
	for i := range customers {
		if customers[i].ID == c.ID {
			customers[i] = *c
			return r.col.Save(customers)
		}
	}
	return &storage.Error{Kind: storage.KindValidation, Op: "update", File: r.col.Name(),
		Msg: "customer not found: " + c.ID}
}

func (r *customerRepo) Delete(id string) error {
	customers, err := r.col.Load()
	if err != nil {
		return err
	}
	for i := range customers {
		if customers[i].ID == id {
			return r.col.Save(append(customers[:i], customers[i+1:]...))
		}
	}
	return &storage.Error{Kind: storage.KindValidation, Op: "delete", File: r.col.Name(),
		Msg: "customer not found: " + id}
}
