package service

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Masai2005/zero-app/internal/dto"
	"github.com/Masai2005/zero-app/internal/model"
	"github.com/Masai2005/zero-app/internal/storage"
	"github.com/Masai2005/zero-app/internal/txn"
)

type saleFixture struct {
	products  *memProducts
	sales     *memSales
	movements *memMovements
	customers *memCustomers
	svc       SaleService
}

func newSaleFixture() *saleFixture {
	f := &saleFixture{
		products: &memProducts{products: []model.Product{
			{ID: "p1", Name: "Rice 5kg", Quantity: 20, Unit: model.UnitEach,
				BuyingPrice: dec("8000"), SellingPrice: dec("10000")},
			{ID: "p2", Name: "Cooking Oil", Quantity: 10, Unit: model.UnitLiter,
				BuyingPrice: dec("5000"), SellingPrice: dec("6500")},
		}},
		sales:     &memSales{},
		movements: &memMovements{},
		customers: &memCustomers{customers: []model.Customer{
			{ID: "c1", FirstName: "Amina", LastName: "Hassan"},
		}},
	}
	ids := storage.NewIDGenerator()
	coord := txn.NewCoordinator(f.products, f.sales, f.movements, ids, zerolog.Nop(), nil)
	f.svc = NewSaleService(coord, f.sales, f.products, f.customers)
	return f
}

func TestCompleteCashSalePricing(t *testing.T) {
	f := newSaleFixture()

	resp, err := f.svc.Complete("admin", dto.CompleteSaleRequest{
		PaymentMethod: "Cash",
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 2, DiscountPercent: dec("10")},
			{ProductID: "p2", Quantity: 1},
		},
	})
	require.NoError(t, err)

	// Line 1: 2 × 10000 = 20000 gross, 10% = 2000 off → 18000.
	// Line 2: 1 × 6500, no discount.
	assert.True(t, resp.Subtotal.Equal(dec("26500")), "got %s", resp.Subtotal)
	assert.True(t, resp.Discount.Equal(dec("2000")))
	assert.True(t, resp.Total.Equal(dec("24500")))
	assert.Equal(t, WalkInCustomer, resp.CustomerName)
	assert.Equal(t, "admin", resp.CreatedBy)

	require.Len(t, resp.Items, 2)
	assert.True(t, resp.Items[0].DiscountAmount.Equal(dec("2000")))
	assert.True(t, resp.Items[0].TotalPrice.Equal(dec("18000")))

	// Prices come from the catalog, not the request.
	assert.True(t, resp.Items[1].UnitPrice.Equal(dec("6500")))

	require.Len(t, f.sales.sales, 1)
	assert.Equal(t, 18, f.products.products[0].Quantity)
	assert.Equal(t, 9, f.products.products[1].Quantity)
}

func TestCompleteSaleRoundsFractionalDiscount(t *testing.T) {
	f := newSaleFixture()

	resp, err := f.svc.Complete("admin", dto.CompleteSaleRequest{
		PaymentMethod: "Cash",
		Items: []dto.SaleItemRequest{
			// 6500 × 3.33% = 216.45, exact at two decimal places.
			{ProductID: "p2", Quantity: 1, DiscountPercent: dec("3.33")},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Items[0].DiscountAmount.Equal(dec("216.45")),
		"got %s", resp.Items[0].DiscountAmount)
	assert.True(t, resp.Total.Equal(dec("6283.55")))
}

func TestCompleteSaleLevelDiscount(t *testing.T) {
	f := newSaleFixture()

	resp, err := f.svc.Complete("admin", dto.CompleteSaleRequest{
		PaymentMethod: "Cash",
		Discount:      dec("500"),
		Items: []dto.SaleItemRequest{
			{ProductID: "p2", Quantity: 2},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(dec("12500")))
	assert.True(t, resp.Discount.Equal(dec("500")))
}

func TestCompleteSaleDiscountExceedingSubtotal(t *testing.T) {
	f := newSaleFixture()

	_, err := f.svc.Complete("admin", dto.CompleteSaleRequest{
		PaymentMethod: "Cash",
		Discount:      dec("999999"),
		Items:         []dto.SaleItemRequest{{ProductID: "p2", Quantity: 1}},
	})
	require.Error(t, err)
	assert.True(t, storage.IsKind(err, storage.KindValidation))
	assert.Empty(t, f.sales.sales)
}

func TestCompleteCreditSaleRequiresCustomer(t *testing.T) {
	f := newSaleFixture()

	_, err := f.svc.Complete("admin", dto.CompleteSaleRequest{
		PaymentMethod: "Credit (Account)",
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credit sales require a customer account")

	resp, err := f.svc.Complete("admin", dto.CompleteSaleRequest{
		PaymentMethod: "Credit (Account)",
		CustomerID:    "c1",
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Amina Hassan", resp.CustomerName)
}

func TestCompleteSaleUnknownCustomer(t *testing.T) {
	f := newSaleFixture()

	_, err := f.svc.Complete("admin", dto.CompleteSaleRequest{
		PaymentMethod: "Cash",
		CustomerID:    "ghost",
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
	})
	require.Error(t, err)
	assert.True(t, storage.IsKind(err, storage.KindValidation))
}

func TestListSalesFilterAndOrder(t *testing.T) {
	f := newSaleFixture()
	now := time.Now()
	day := func(offset int) time.Time { return now.AddDate(0, 0, offset) }
	f.sales.sales = []model.Sale{
		{ID: "id_s1", CustomerID: "c1", Total: dec("10"), CreatedAt: day(-10)},
		{ID: "id_s2", Total: dec("20"), CreatedAt: day(-5)},
		{ID: "id_s3", CustomerID: "c1", Total: dec("30"), CreatedAt: day(-1)},
	}

	all, err := f.svc.List(dto.SaleFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)
	assert.Equal(t, "id_s3", all.Data[0].ID, "newest first")

	byCustomer, err := f.svc.List(dto.SaleFilter{CustomerID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, 2, byCustomer.Total)

	windowed, err := f.svc.List(dto.SaleFilter{
		From: day(-6).Format("2006-01-02"),
		To:   day(-2).Format("2006-01-02"),
	})
	require.NoError(t, err)
	require.Equal(t, 1, windowed.Total)
	assert.Equal(t, "id_s2", windowed.Data[0].ID)

	limited, err := f.svc.List(dto.SaleFilter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, limited.Total, "total counts matches before the page cut")
	assert.Len(t, limited.Data, 2)
}

func TestGetSaleByID(t *testing.T) {
	f := newSaleFixture()
	f.sales.sales = []model.Sale{{ID: "id_s1", Total: decimal.NewFromInt(10)}}

	resp, err := f.svc.GetByID("id_s1")
	require.NoError(t, err)
	assert.Equal(t, "id_s1", resp.ID)

	_, err = f.svc.GetByID("missing")
	require.Error(t, err)
}
