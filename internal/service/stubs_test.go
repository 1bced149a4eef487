package service

import (
	"github.com/shopspring/decimal"

	"github.com/Masai2005/zero-app/internal/model"
	"github.com/Masai2005/zero-app/internal/storage"
)

// In-memory repository stubs shared by the service tests.

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type memProducts struct{ products []model.Product }

func (m *memProducts) All() ([]model.Product, error) {
	out := make([]model.Product, len(m.products))
	copy(out, m.products)
	return out, nil
}

func (m *memProducts) FindByID(id string) (*model.Product, error) {
	for i := range m.products {
		if m.products[i].ID == id {
			p := m.products[i]
			return &p, nil
		}
	}
	return nil, &storage.Error{Kind: storage.KindValidation, Msg: "product not found: " + id}
}

func (m *memProducts) FindByBarcode(barcode string) (*model.Product, error) {
	for i := range m.products {
		if m.products[i].Barcode == barcode {
			p := m.products[i]
			return &p, nil
		}
	}
	return nil, &storage.Error{Kind: storage.KindValidation, Msg: "no product with barcode " + barcode}
}

func (m *memProducts) Create(p *model.Product) error {
	m.products = append(m.products, *p)
	return nil
}

func (m *memProducts) Update(p *model.Product) error {
	for i := range m.products {
		if m.products[i].ID == p.ID {
			m.products[i] = *p
			return nil
		}
	}
	return &storage.Error{Kind: storage.KindValidation, Msg: "product not found: " + p.ID}
}

func (m *memProducts) Delete(id string) error {
	for i := range m.products {
		if m.products[i].ID == id {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return nil
		}
	}
	return &storage.Error{Kind: storage.KindValidation, Msg: "product not found: " + id}
}

func (m *memProducts) ReplaceAll(products []model.Product) error {
	m.products = products
	return nil
}

type memSales struct{ sales []model.Sale }

func (m *memSales) All() ([]model.Sale, error) { return m.sales, nil }

func (m *memSales) FindByID(id string) (*model.Sale, error) {
	for i := range m.sales {
		if m.sales[i].ID == id {
			s := m.sales[i]
			return &s, nil
		}
	}
	return nil, &storage.Error{Kind: storage.KindValidation, Msg: "sale not found: " + id}
}

func (m *memSales) Append(s *model.Sale) error {
	m.sales = append(m.sales, *s)
	return nil
}

type memPayments struct{ payments []model.Payment }

func (m *memPayments) All() ([]model.Payment, error) { return m.payments, nil }
func (m *memPayments) Append(p *model.Payment) error {
	m.payments = append(m.payments, *p)
	return nil
}

type memMovements struct{ movements []model.Movement }

func (m *memMovements) All() ([]model.Movement, error) { return m.movements, nil }
func (m *memMovements) Append(mv *model.Movement) error {
	m.movements = append(m.movements, *mv)
	return nil
}
func (m *memMovements) AppendAll(mvs []model.Movement) error {
	m.movements = append(m.movements, mvs...)
	return nil
}

type memCustomers struct{ customers []model.Customer }

func (m *memCustomers) All() ([]model.Customer, error) { return m.customers, nil }

func (m *memCustomers) FindByID(id string) (*model.Customer, error) {
	for i := range m.customers {
		if m.customers[i].ID == id {
			c := m.customers[i]
			return &c, nil
		}
	}
	return nil, &storage.Error{Kind: storage.KindValidation, Msg: "customer not found: " + id}
}

func (m *memCustomers) Create(c *model.Customer) error {
	m.customers = append(m.customers, *c)
	return nil
}

func (m *memCustomers) Update(c *model.Customer) error {
	for i := range m.customers {
		if m.customers[i].ID == c.ID {
			m.customers[i] = *c
			return nil
		}
	}
	return &storage.Error{Kind: storage.KindValidation, Msg: "customer not found: " + c.ID}
}

func (m *memCustomers) Delete(id string) error {
	for i := range m.customers {
		if m.customers[i].ID == id {
			m.customers = append(m.customers[:i], m.customers[i+1:]...)
			return nil
		}
	}
	return &storage.Error{Kind: storage.KindValidation, Msg: "customer not found: " + id}
}

type memNotifications struct{ notifications []model.Notification }

func (m *memNotifications) All() ([]model.Notification, error) { return m.notifications, nil }
func (m *memNotifications) ReplaceAll(ns []model.Notification) error {
	m.notifications = ns
	return nil
}
