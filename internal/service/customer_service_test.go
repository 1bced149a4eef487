package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Masai2005/zero-app/internal/dto"
	"github.com/Masai2005/zero-app/internal/ledger"
	"github.com/Masai2005/zero-app/internal/model"
	"github.com/Masai2005/zero-app/internal/storage"
)

type customerFixture struct {
	customers *memCustomers
	sales     *memSales
	payments  *memPayments
	svc       CustomerService
}

func newCustomerFixture() *customerFixture {
	f := &customerFixture{
		customers: &memCustomers{customers: []model.Customer{
			{ID: "c1", FirstName: "Amina", LastName: "Hassan"},
			{ID: "c2", FirstName: "Juma"},
		}},
		sales:    &memSales{},
		payments: &memPayments{},
	}
	eng := ledger.NewEngine(f.sales, f.payments, &memMovements{}, f.customers, &memProducts{})
	f.svc = NewCustomerService(f.customers, f.sales, eng, storage.NewIDGenerator())
	return f
}

func TestCustomerCreateAndGet(t *testing.T) {
	f := newCustomerFixture()

	created, err := f.svc.Create(dto.CreateCustomerRequest{
		FirstName: "Neema", LastName: "Mushi", Phone: "+255700000001",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := f.svc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Neema", got.FirstName)
	assert.Equal(t, "+255700000001", got.Phone)
}

func TestCustomerUpdatePartial(t *testing.T) {
	f := newCustomerFixture()
	phone := "+255700000099"

	got, err := f.svc.Update("c1", dto.UpdateCustomerRequest{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "+255700000099", got.Phone)
	assert.Equal(t, "Amina", got.FirstName, "unset fields keep their values")
}

func TestCustomerDeleteGuard(t *testing.T) {
	f := newCustomerFixture()
	f.sales.sales = []model.Sale{{ID: "id_s1", CustomerID: "c1", Total: dec("100")}}

	err := f.svc.Delete("c1")
	require.Error(t, err)
	assert.True(t, storage.IsKind(err, storage.KindValidation))
	assert.Contains(t, err.Error(), "recorded sales")
	assert.Len(t, f.customers.customers, 2, "the guard must leave the customer in place")

	// A customer with no sales can go.
	require.NoError(t, f.svc.Delete("c2"))
	assert.Len(t, f.customers.customers, 1)
}

func TestCustomerBalanceEndpointValidatesCustomer(t *testing.T) {
	f := newCustomerFixture()
	f.sales.sales = []model.Sale{
		{ID: "id_s1", CustomerID: "c1", Total: dec("150"), PaymentMethod: model.PaymentOnAccount},
	}
	f.payments.payments = []model.Payment{
		{ID: "id_p1", CustomerID: "c1", Amount: dec("50")},
	}

	b, err := f.svc.Balance("c1")
	require.NoError(t, err)
	assert.True(t, b.Outstanding.Equal(dec("100")))

	_, err = f.svc.Balance("ghost")
	require.Error(t, err)
}

func TestCustomerAllBalances(t *testing.T) {
	f := newCustomerFixture()
	f.sales.sales = []model.Sale{
		{ID: "id_s1", CustomerID: "c1", Total: dec("40"), PaymentMethod: model.PaymentOnAccount},
	}

	all, err := f.svc.AllBalances()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.True(t, all["c1"].Outstanding.Equal(dec("40")))
	assert.True(t, all["c2"].Outstanding.IsZero())
}
