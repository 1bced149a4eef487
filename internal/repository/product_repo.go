// Package repository provides typed data access over the JSON collection
// store. Services depend on these interfaces, not the concrete JSON-backed
// implementations, enabling clean unit testing via in-memory stubs.
package repository

import (
	"time"

	"github.com/Masai2005/zero-app/internal/model"
	"github.com/Masai2005/zero-app/internal/storage"
)

// ProductRepository defines the data access contract for products.
type ProductRepository interface {
	All() ([]model.Product, error)
	FindByID(id string) (*model.Product, error)
	FindByBarcode(barcode string) (*model.Product, error)
	Create(p *model.Product) error
	Update(p *model.Product) error
	Delete(id string) error
	// ReplaceAll persists a full snapshot of the collection. The sale
	// completion protocol deducts stock in memory across many products and
	// persists them in one write.
	ReplaceAll(products []model.Product) error
}

type productRepo struct {
	col *storage.ListCollection[model.Product]
}

// NewProductRepository returns a ProductRepository backed by products.json.
func NewProductRepository(s *storage.Store) ProductRepository {
	return &productRepo{col: storage.NewListCollection[model.Product](s, storage.ProductsFile)}
}

func (r *productRepo) All() ([]model.Product, error) {
	return r.col.Load()
}

func (r *productRepo) FindByID(id string) (*model.Product, error) {
	products, err := r.col.Load()
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, &storage.Error{Kind: storage.KindValidation, Op: "find", File: r.col.Name(),
		Msg: "product not found: " + id}
}

func (r *productRepo) FindByBarcode(barcode string) (*model.Product, error) {
	products, err := r.col.Load()
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].Barcode == barcode {
			return &products[i], nil
		}
	}
	return nil, &storage.Error{Kind: storage.KindValidation, Op: "find", File: r.col.Name(),
		Msg: "no product with barcode " + barcode}
}

func (r *productRepo) Create(p *model.Product) error {
	return r.col.Append(*p)
}

func (r *productRepo) Update(p *model.Product) error {
	products, err := r.col.Load()
	if err != nil {
		return err
	}
	for i := range products {
		if products[i].ID == p.ID {
			p.UpdatedAt = time.Now()
			products[i] = *p
			return r.col.Save(products)
		}
	}
	return &storage.Error{Kind: storage.KindValidation, Op: "update", File: r.col.Name(),
		Msg: "product not found: " + p.ID}
}

func (r *productRepo) Delete(id string) error {
	products, err := r.col.Load()
	if err != nil {
		return err
	}
	for i := range products {
		if products[i].ID == id {
			return r.col.Save(append(products[:i], products[i+1:]...))
		}
	}
	return &storage.Error{Kind: storage.KindValidation, Op: "delete", File: r.col.Name(),
		Msg: "product not found: " + id}
}

func (r *productRepo) ReplaceAll(products []model.Product) error {
	return r.col.Save(products)
}
