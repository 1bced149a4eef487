package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Masai2005/zero-app/internal/model"
	"github.com/Masai2005/zero-app/internal/storage"
)

// ── in-memory stubs ──────────────────────────────────────────────

type stubSales struct{ sales []model.Sale }

func (s *stubSales) All() ([]model.Sale, error) { return s.sales, nil }
func (s *stubSales) FindByID(id string) (*model.Sale, error) {
	for i := range s.sales {
		if s.sales[i].ID == id {
			return &s.sales[i], nil
		}
	}
	return nil, &storage.Error{Kind: storage.KindValidation, Msg: "sale not found: " + id}
}
func (s *stubSales) Append(sale *model.Sale) error {
	s.sales = append(s.sales, *sale)
	return nil
}

type stubPayments struct{ payments []model.Payment }

func (s *stubPayments) All() ([]model.Payment, error) { return s.payments, nil }
func (s *stubPayments) Append(p *model.Payment) error {
	s.payments = append(s.payments, *p)
	return nil
}

type stubMovements struct{ movements []model.Movement }

func (s *stubMovements) All() ([]model.Movement, error) { return s.movements, nil }
func (s *stubMovements) Append(m *model.Movement) error {
	s.movements = append(s.movements, *m)
	return nil
}
func (s *stubMovements) AppendAll(ms []model.Movement) error {
	s.movements = append(s.movements, ms...)
	return nil
}

type stubCustomers struct{ customers []model.Customer }

func (s *stubCustomers) All() ([]model.Customer, error) { return s.customers, nil }
func (s *stubCustomers) FindByID(id string) (*model.Customer, error) {
	for i := range s.customers {
		if s.customers[i].ID == id {
			return &s.customers[i], nil
		}
	}
	return nil, &storage.Error{Kind: storage.KindValidation, Msg: "customer not found: " + id}
}
func (s *stubCustomers) Create(c *model.Customer) error { return nil }
func (s *stubCustomers) Update(c *model.Customer) error { return nil }
func (s *stubCustomers) Delete(id string) error         { return nil }

type stubProducts struct{ products []model.Product }

func (s *stubProducts) All() ([]model.Product, error) { return s.products, nil }
func (s *stubProducts) FindByID(id string) (*model.Product, error) {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i], nil
		}
	}
	return nil, &storage.Error{Kind: storage.KindValidation, Msg: "product not found: " + id}
}
func (s *stubProducts) FindByBarcode(b string) (*model.Product, error) { return nil, nil }
func (s *stubProducts) Create(p *model.Product) error                  { return nil }
func (s *stubProducts) Update(p *model.Product) error                  { return nil }
func (s *stubProducts) Delete(id string) error                         { return nil }
func (s *stubProducts) ReplaceAll(ps []model.Product) error            { return nil }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func creditSale(customerID, total string) model.Sale {
	return model.Sale{
		ID:            "id_s" + customerID + total,
		CustomerID:    customerID,
		Total:         dec(total),
		PaymentMethod: model.PaymentOnAccount,
	}
}

func newTestEngine(sales []model.Sale, payments []model.Payment, movements []model.Movement,
	customers []model.Customer, products []model.Product) *Engine {
	return NewEngine(
		&stubSales{sales: sales},
		&stubPayments{payments: payments},
		&stubMovements{movements: movements},
		&stubCustomers{customers: customers},
		&stubProducts{products: products},
	)
}

// ── balances ─────────────────────────────────────────────────────

func TestCustomerBalance(t *testing.T) {
	sales := []model.Sale{
		creditSale("c1", "150"),
		// Cash sale must not count toward debt even with a customer attached.
		{ID: "id_s2", CustomerID: "c1", Total: dec("999"), PaymentMethod: model.PaymentCash},
		creditSale("c2", "40"),
	}
	payments := []model.Payment{
		{ID: "id_p1", CustomerID: "c1", Amount: dec("50")},
	}
	e := newTestEngine(sales, payments, nil, nil, nil)

	b, err := e.CustomerBalance("c1")
	require.NoError(t, err)
	assert.True(t, b.TotalDebt.Equal(dec("150")), "got %s", b.TotalDebt)
	assert.True(t, b.TotalPayments.Equal(dec("50")))
	assert.True(t, b.Outstanding.Equal(dec("100")))
}

func TestCustomerBalanceOverpayment(t *testing.T) {
	e := newTestEngine(
		[]model.Sale{creditSale("c1", "30")},
		[]model.Payment{{ID: "id_p1", CustomerID: "c1", Amount: dec("50")}},
		nil, nil, nil,
	)
	b, err := e.CustomerBalance("c1")
	require.NoError(t, err)
	assert.True(t, b.Outstanding.Equal(dec("-20")), "overpayment is a negative balance, not an error")
}

func TestCustomerBalanceUnknownCustomerIsZero(t *testing.T) {
	e := newTestEngine(nil, nil, nil, nil, nil)
	b, err := e.CustomerBalance("nobody")
	require.NoError(t, err)
	assert.True(t, b.Outstanding.IsZero())
}

func TestAllCustomerBalancesMatchesPerCustomer(t *testing.T) {
	customers := []model.Customer{{ID: "c1"}, {ID: "c2"}, {ID: "c3"}}
	sales := []model.Sale{
		creditSale("c1", "100"),
		creditSale("c1", "25.50"),
		creditSale("c2", "7"),
	}
	payments := []model.Payment{
		{ID: "id_p1", CustomerID: "c1", Amount: dec("30")},
		{ID: "id_p2", CustomerID: "c3", Amount: dec("5")},
	}
	e := newTestEngine(sales, payments, nil, customers, nil)

	all, err := e.AllCustomerBalances()
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, c := range customers {
		single, err := e.CustomerBalance(c.ID)
		require.NoError(t, err)
		assert.True(t, all[c.ID].Outstanding.Equal(single.Outstanding),
			"batch and single balance diverge for %s", c.ID)
	}
	assert.True(t, all["c1"].Outstanding.Equal(dec("95.50")))
	assert.True(t, all["c3"].Outstanding.Equal(dec("-5")))
}

// ── histories ────────────────────────────────────────────────────

func TestProductMovementHistoryOrderAndWindow(t *testing.T) {
	now := time.Now()
	movements := []model.Movement{
		{ID: "id_m1", ProductID: "p1", CreatedAt: now.AddDate(0, 0, -40)},
		{ID: "id_m2", ProductID: "p1", CreatedAt: now.AddDate(0, 0, -5)},
		{ID: "id_m3", ProductID: "p2", CreatedAt: now.AddDate(0, 0, -1)},
		{ID: "id_m4", ProductID: "p1", CreatedAt: now.AddDate(0, 0, -1)},
	}
	e := newTestEngine(nil, nil, movements, nil, nil)

	all, err := e.ProductMovementHistory("p1", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "id_m4", all[0].ID, "newest first")
	assert.Equal(t, "id_m1", all[2].ID)

	windowed, err := e.ProductMovementHistory("p1", 30)
	require.NoError(t, err)
	require.Len(t, windowed, 2, "40-day-old entry falls outside a 30-day window")
	assert.Equal(t, "id_m4", windowed[0].ID)
}

func TestCustomerPaymentHistory(t *testing.T) {
	now := time.Now()
	payments := []model.Payment{
		{ID: "id_p1", CustomerID: "c1", CreatedAt: now.AddDate(0, 0, -3)},
		{ID: "id_p2", CustomerID: "c2", CreatedAt: now.AddDate(0, 0, -2)},
		{ID: "id_p3", CustomerID: "c1", CreatedAt: now.AddDate(0, 0, -1)},
	}
	e := newTestEngine(nil, payments, nil, nil, nil)

	history, err := e.CustomerPaymentHistory("c1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "id_p3", history[0].ID)
}

// ── stock verification ───────────────────────────────────────────

func TestVerifyProductStockConsistent(t *testing.T) {
	products := []model.Product{{ID: "p1", Quantity: 12}}
	movements := []model.Movement{
		{ID: "id_m1", ProductID: "p1", NewQuantity: 20, CreatedAt: time.Now().Add(-time.Hour)},
		{ID: "id_m2", ProductID: "p1", NewQuantity: 12, CreatedAt: time.Now()},
	}
	e := newTestEngine(nil, nil, movements, nil, products)

	check, err := e.VerifyProductStock("p1")
	require.NoError(t, err)
	assert.True(t, check.Consistent)
	assert.Equal(t, 12, check.LedgerQuantity)
	assert.Equal(t, 2, check.Movements)
}

func TestVerifyProductStockDivergent(t *testing.T) {
	products := []model.Product{{ID: "p1", Quantity: 9}}
	movements := []model.Movement{
		{ID: "id_m1", ProductID: "p1", NewQuantity: 12, CreatedAt: time.Now()},
	}
	e := newTestEngine(nil, nil, movements, nil, products)

	check, err := e.VerifyProductStock("p1")
	require.NoError(t, err)
	assert.False(t, check.Consistent)
	assert.Equal(t, 9, check.CachedQuantity)
	assert.Equal(t, 12, check.LedgerQuantity)

	// Detection never repairs: the cached value stays as it was.
	p, err := e.products.FindByID("p1")
	require.NoError(t, err)
	assert.Equal(t, 9, p.Quantity)
}

func TestVerifyProductStockNoMovements(t *testing.T) {
	products := []model.Product{{ID: "p1", Quantity: 5}}
	e := newTestEngine(nil, nil, nil, nil, products)

	check, err := e.VerifyProductStock("p1")
	require.NoError(t, err)
	assert.True(t, check.Consistent, "initial stock with no history is consistent by definition")
	assert.Equal(t, 5, check.LedgerQuantity)
}

func TestVerifyProductStockUnknownProduct(t *testing.T) {
	e := newTestEngine(nil, nil, nil, nil, nil)
	_, err := e.VerifyProductStock("ghost")
	require.Error(t, err)
	assert.True(t, storage.IsKind(err, storage.KindValidation))
}
