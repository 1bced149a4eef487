package repository

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Masai2005/zero-app/internal/model"
	"github.com/Masai2005/zero-app/internal/storage"
)

func newStore(t *testing.T) *storage.Store {
	t.Helper()
	s, err := storage.New(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	return s
}

func TestProductRepositoryCRUD(t *testing.T) {
	s := newStore(t)
	repo := NewProductRepository(s)

	p := &model.Product{
		ID: "id_1", Name: "Rice 5kg", Barcode: "RICE5",
		BuyingPrice:  decimal.RequireFromString("8000"),
		SellingPrice: decimal.RequireFromString("10500.50"),
		Quantity:     20, MinQuantity: 5, Unit: model.UnitEach,
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(p))

	got, err := repo.FindByID("id_1")
	require.NoError(t, err)
	assert.Equal(t, "Rice 5kg", got.Name)
	assert.True(t, got.SellingPrice.Equal(decimal.RequireFromString("10500.50")))

	byBarcode, err := repo.FindByBarcode("RICE5")
	require.NoError(t, err)
	assert.Equal(t, "id_1", byBarcode.ID)

	got.Quantity = 15
	require.NoError(t, repo.Update(got))
	reread, err := repo.FindByID("id_1")
	require.NoError(t, err)
	assert.Equal(t, 15, reread.Quantity)

	err = repo.Update(&model.Product{ID: "ghost"})
	require.Error(t, err)
	assert.True(t, storage.IsKind(err, storage.KindValidation))

	require.NoError(t, repo.Delete("id_1"))
	_, err = repo.FindByID("id_1")
	require.Error(t, err)
}

func TestProductFileStoresDecimalsAsNumbers(t *testing.T) {
	s := newStore(t)
	repo := NewProductRepository(s)
	require.NoError(t, repo.Create(&model.Product{
		ID: "id_1", Name: "Rice", SellingPrice: decimal.RequireFromString("10500.50"),
	}))

	raw, err := os.ReadFile(filepath.Join(s.Dir(), storage.ProductsFile))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), `"selling_price": 10500.5`),
		"prices must serialize as JSON numbers, got:\n%s", raw)
	assert.False(t, strings.Contains(string(raw), `"10500.5"`))
}

func TestUserRepository(t *testing.T) {
	s := newStore(t)
	repo := NewUserRepository(s)

	require.NoError(t, repo.Upsert("admin", model.User{
		PasswordHash: "x", Type: model.UserTypeAdmin, Name: "Administrator",
	}))

	u, err := repo.FindByUsername("admin")
	require.NoError(t, err)
	assert.Equal(t, model.UserTypeAdmin, u.Type)

	_, err = repo.FindByUsername("ghost")
	require.Error(t, err)
	assert.True(t, storage.IsKind(err, storage.KindValidation))

	require.NoError(t, repo.Delete("admin"))
	err = repo.Delete("admin")
	require.Error(t, err)
}

func TestSaleRepositoryAppendOnly(t *testing.T) {
	s := newStore(t)
	repo := NewSaleRepository(s)

	require.NoError(t, repo.Append(&model.Sale{ID: "id_s1", Total: decimal.NewFromInt(100)}))
	require.NoError(t, repo.Append(&model.Sale{ID: "id_s2", Total: decimal.NewFromInt(200)}))

	all, err := repo.All()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "id_s1", all[0].ID, "append preserves insertion order")

	got, err := repo.FindByID("id_s2")
	require.NoError(t, err)
	assert.True(t, got.Total.Equal(decimal.NewFromInt(200)))
}
