package txn

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Masai2005/zero-app/internal/model"
	"github.com/Masai2005/zero-app/internal/storage"
)

// ── in-memory stubs with failure injection ───────────────────────

type stubProducts struct {
	products   []model.Product
	failUpdate error
	failSave   error
	saves      int
}

func (s *stubProducts) All() ([]model.Product, error) {
	out := make([]model.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *stubProducts) FindByID(id string) (*model.Product, error) {
	for i := range s.products {
		if s.products[i].ID == id {
			p := s.products[i]
			return &p, nil
		}
	}
	return nil, &storage.Error{Kind: storage.KindValidation, Msg: "product not found: " + id}
}

func (s *stubProducts) FindByBarcode(b string) (*model.Product, error) { return nil, nil }
func (s *stubProducts) Create(p *model.Product) error                  { return nil }
func (s *stubProducts) Delete(id string) error                         { return nil }

func (s *stubProducts) Update(p *model.Product) error {
	if s.failUpdate != nil {
		return s.failUpdate
	}
	for i := range s.products {
		if s.products[i].ID == p.ID {
			s.products[i] = *p
			return nil
		}
	}
	return &storage.Error{Kind: storage.KindValidation, Msg: "product not found: " + p.ID}
}

func (s *stubProducts) ReplaceAll(ps []model.Product) error {
	if s.failSave != nil {
		return s.failSave
	}
	s.products = ps
	s.saves++
	return nil
}

func (s *stubProducts) quantity(t *testing.T, id string) int {
	t.Helper()
	for _, p := range s.products {
		if p.ID == id {
			return p.Quantity
		}
	}
	t.Fatalf("no product %s", id)
	return 0
}

type stubSales struct {
	sales      []model.Sale
	failAppend error
}

func (s *stubSales) All() ([]model.Sale, error)              { return s.sales, nil }
func (s *stubSales) FindByID(id string) (*model.Sale, error) { return nil, nil }
func (s *stubSales) Append(sale *model.Sale) error {
	if s.failAppend != nil {
		return s.failAppend
	}
	s.sales = append(s.sales, *sale)
	return nil
}

type stubMovements struct {
	movements  []model.Movement
	failAppend error
}

func (s *stubMovements) All() ([]model.Movement, error) { return s.movements, nil }
func (s *stubMovements) Append(m *model.Movement) error {
	if s.failAppend != nil {
		return s.failAppend
	}
	s.movements = append(s.movements, *m)
	return nil
}
func (s *stubMovements) AppendAll(ms []model.Movement) error {
	if s.failAppend != nil {
		return s.failAppend
	}
	s.movements = append(s.movements, ms...)
	return nil
}

type captureReporter struct{ events []ConsistencyEvent }

func (r *captureReporter) ReportConsistency(ev ConsistencyEvent) {
	r.events = append(r.events, ev)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	products  *stubProducts
	sales     *stubSales
	movements *stubMovements
	reporter  *captureReporter
	coord     *Coordinator
}

func newFixture() *fixture {
	f := &fixture{
		products: &stubProducts{products: []model.Product{
			{ID: "p1", Name: "Rice 5kg", Quantity: 20, Unit: model.UnitEach,
				BuyingPrice: dec("8000"), SellingPrice: dec("10500")},
			{ID: "p2", Name: "Cooking Oil", Quantity: 3, Unit: model.UnitLiter,
				BuyingPrice: dec("5000"), SellingPrice: dec("6500")},
		}},
		sales:     &stubSales{},
		movements: &stubMovements{},
		reporter:  &captureReporter{},
	}
	f.coord = NewCoordinator(f.products, f.sales, f.movements,
		storage.NewIDGenerator(), zerolog.Nop(), f.reporter)
	return f
}

func testSale() *model.Sale {
	return &model.Sale{
		CustomerName:  "Walk-in Customer",
		PaymentMethod: model.PaymentCash,
		Items: []model.SaleItem{
			{ProductID: "p1", ProductName: "Rice 5kg", Quantity: 2,
				UnitPrice: dec("10500"), TotalPrice: dec("21000")},
			{ProductID: "p2", ProductName: "Cooking Oil", Quantity: 1,
				UnitPrice: dec("6500"), TotalPrice: dec("6500")},
		},
		Subtotal: dec("27500"),
		Total:    dec("27500"),
	}
}

// ── CompleteSale ─────────────────────────────────────────────────

func TestCompleteSaleHappyPath(t *testing.T) {
	f := newFixture()

	sale, err := f.coord.CompleteSale(testSale())
	require.NoError(t, err)
	assert.NotEmpty(t, sale.ID)
	assert.NotEmpty(t, sale.InvoiceNumber)
	assert.False(t, sale.CreatedAt.IsZero())

	require.Len(t, f.sales.sales, 1)
	assert.Equal(t, 18, f.products.quantity(t, "p1"))
	assert.Equal(t, 2, f.products.quantity(t, "p2"))

	require.Len(t, f.movements.movements, 2)
	m := f.movements.movements[0]
	assert.Equal(t, model.MovementOut, m.MovementType)
	assert.Equal(t, 20, m.PreviousQuantity)
	assert.Equal(t, 18, m.NewQuantity)
	assert.Equal(t, "sale", m.ReferenceType)
	assert.Equal(t, sale.ID, m.ReferenceID)
	assert.Equal(t, sale.InvoiceNumber, m.ReferenceNumber)
	assert.Empty(t, f.reporter.events)
}

func TestCompleteSaleInsufficientStockWritesNothing(t *testing.T) {
	f := newFixture()
	sale := testSale()
	sale.Items[1].Quantity = 4 // only 3 in stock

	_, err := f.coord.CompleteSale(sale)
	require.Error(t, err)
	assert.True(t, storage.IsKind(err, storage.KindValidation))
	assert.Contains(t, err.Error(), "insufficient stock for Cooking Oil")

	assert.Empty(t, f.sales.sales)
	assert.Empty(t, f.movements.movements)
	assert.Equal(t, 20, f.products.quantity(t, "p1"), "no partial deduction may survive a reservation failure")
	assert.Equal(t, 3, f.products.quantity(t, "p2"))
}

func TestCompleteSaleUnknownProduct(t *testing.T) {
	f := newFixture()
	sale := testSale()
	sale.Items[0].ProductID = "ghost"

	_, err := f.coord.CompleteSale(sale)
	require.Error(t, err)
	assert.True(t, storage.IsKind(err, storage.KindValidation))
	assert.Empty(t, f.sales.sales)
}

func TestCompleteSaleValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*model.Sale)
	}{
		{"no items", func(s *model.Sale) { s.Items = nil }},
		{"bad payment method", func(s *model.Sale) { s.PaymentMethod = "IOU" }},
		{"zero total", func(s *model.Sale) { s.Total = decimal.Zero }},
		{"zero quantity", func(s *model.Sale) { s.Items[0].Quantity = 0 }},
		{"zero unit price", func(s *model.Sale) { s.Items[0].UnitPrice = decimal.Zero }},
		{"discount over 100", func(s *model.Sale) { s.Items[0].DiscountPercent = dec("101") }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			sale := testSale()
			tc.mutate(sale)
			_, err := f.coord.CompleteSale(sale)
			require.Error(t, err)
			assert.True(t, storage.IsKind(err, storage.KindValidation))
			assert.Empty(t, f.sales.sales)
			assert.Equal(t, 20, f.products.quantity(t, "p1"))
		})
	}
}

func TestCompleteSaleAppendFailureAbortsEverything(t *testing.T) {
	f := newFixture()
	f.sales.failAppend = errors.New("disk full")

	_, err := f.coord.CompleteSale(testSale())
	require.Error(t, err)
	assert.Equal(t, 20, f.products.quantity(t, "p1"), "stock must not change when the sale was never recorded")
	assert.Empty(t, f.movements.movements)
	assert.Empty(t, f.reporter.events)
}

func TestCompleteSaleStockPersistFailureReportsConsistency(t *testing.T) {
	f := newFixture()
	f.products.failSave = errors.New("disk full")

	sale, err := f.coord.CompleteSale(testSale())
	require.NoError(t, err, "the sale stands even when the stock write fails")
	require.Len(t, f.sales.sales, 1)

	require.Len(t, f.reporter.events, 1)
	ev := f.reporter.events[0]
	assert.Equal(t, "complete_sale", ev.Op)
	assert.Equal(t, sale.ID, ev.SaleID)
	assert.Contains(t, ev.Detail, "stock deduction failed")

	// Cached quantities keep their prior values; movements still say what
	// should have happened.
	assert.Equal(t, 20, f.products.quantity(t, "p1"))
	require.Len(t, f.movements.movements, 2)
}

func TestCompleteSaleMovementFailureIsSoft(t *testing.T) {
	f := newFixture()
	f.movements.failAppend = errors.New("disk full")

	_, err := f.coord.CompleteSale(testSale())
	require.NoError(t, err, "movement history is diagnostic; its failure must not fail the sale")
	require.Len(t, f.sales.sales, 1)
	assert.Equal(t, 18, f.products.quantity(t, "p1"))
	assert.Empty(t, f.reporter.events)
}

func TestCompleteSaleKeepsCallerIdentifiers(t *testing.T) {
	f := newFixture()
	sale := testSale()
	sale.ID = "id_fixed"
	sale.InvoiceNumber = "INV-FIXED"

	got, err := f.coord.CompleteSale(sale)
	require.NoError(t, err)
	assert.Equal(t, "id_fixed", got.ID)
	assert.Equal(t, "INV-FIXED", got.InvoiceNumber)
}

// ── RecordMovement ───────────────────────────────────────────────

func TestRecordMovementStockIn(t *testing.T) {
	f := newFixture()

	m, err := f.coord.RecordMovement(MovementRequest{
		ProductID: "p1", Type: model.MovementStockIn, Quantity: 5,
		Reason: "Restock", ActorID: "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, m.Quantity)
	assert.Equal(t, 20, m.PreviousQuantity)
	assert.Equal(t, 25, m.NewQuantity)
	assert.Equal(t, "adjustment", m.ReferenceType)
	assert.True(t, m.TotalValue.Equal(dec("40000")), "total value prices at buying price")
	assert.Equal(t, 25, f.products.quantity(t, "p1"))
	require.Len(t, f.movements.movements, 1)
}

func TestRecordMovementStockOutInsufficient(t *testing.T) {
	f := newFixture()

	_, err := f.coord.RecordMovement(MovementRequest{
		ProductID: "p2", Type: model.MovementStockOut, Quantity: 4,
		Reason: "Shrinkage", ActorID: "admin",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not enough stock available")
	assert.Empty(t, f.movements.movements)
	assert.Equal(t, 3, f.products.quantity(t, "p2"))
}

func TestRecordMovementAdjustmentStoresDelta(t *testing.T) {
	f := newFixture()

	// Stock count says 15 where the system says 20: the request carries the
	// target, the stored quantity is the signed delta.
	m, err := f.coord.RecordMovement(MovementRequest{
		ProductID: "p1", Type: model.MovementAdjustment, Quantity: 15,
		Reason: "Physical count", ActorID: "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, -5, m.Quantity)
	assert.Equal(t, 20, m.PreviousQuantity)
	assert.Equal(t, 15, m.NewQuantity)
	assert.True(t, m.TotalValue.Equal(dec("40000")), "value uses the delta magnitude")
	assert.Equal(t, 15, f.products.quantity(t, "p1"))
}

func TestRecordMovementAdjustmentToZero(t *testing.T) {
	f := newFixture()

	m, err := f.coord.RecordMovement(MovementRequest{
		ProductID: "p2", Type: model.MovementAdjustment, Quantity: 0,
		Reason: "Write-off", ActorID: "admin",
	})
	require.NoError(t, err, "adjustment may target zero")
	assert.Equal(t, -3, m.Quantity)
	assert.Equal(t, 0, f.products.quantity(t, "p2"))
}

func TestRecordMovementValidation(t *testing.T) {
	f := newFixture()

	_, err := f.coord.RecordMovement(MovementRequest{
		ProductID: "p1", Type: "in", Quantity: 5, Reason: "x",
	})
	require.Error(t, err, "system-generated types are not manual entries")

	_, err = f.coord.RecordMovement(MovementRequest{
		ProductID: "p1", Type: model.MovementStockIn, Quantity: 5,
	})
	require.Error(t, err, "reason is required")

	_, err = f.coord.RecordMovement(MovementRequest{
		ProductID: "p1", Type: model.MovementStockIn, Quantity: 0, Reason: "x",
	})
	require.Error(t, err, "zero quantity only valid for adjustments")

	assert.Empty(t, f.movements.movements)
}

func TestRecordMovementProductUpdateFailureCompensates(t *testing.T) {
	f := newFixture()
	f.products.failUpdate = errors.New("disk full")

	_, err := f.coord.RecordMovement(MovementRequest{
		ProductID: "p1", Type: model.MovementStockIn, Quantity: 5,
		Reason: "Restock", ActorID: "admin",
	})
	require.Error(t, err)
	// Movement-first write order: the ledger keeps the attempt, the cached
	// quantity stays untouched.
	require.Len(t, f.movements.movements, 1)
	assert.Equal(t, 20, f.products.quantity(t, "p1"))
}

func TestRecordMovementReferenceOverride(t *testing.T) {
	f := newFixture()

	m, err := f.coord.RecordMovement(MovementRequest{
		ProductID: "p1", Type: model.MovementTransfer, Quantity: 2,
		Reason: "To warehouse B", Reference: "TRF-0042", ActorID: "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, "TRF-0042", m.ReferenceNumber)
	assert.Equal(t, 18, m.NewQuantity)
}
