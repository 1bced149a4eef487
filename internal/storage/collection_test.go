package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

func (r testRecord) RecordID() string { return r.ID }

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	s, err := New(t.TempDir(), zerolog.Nop(), opts...)
	require.NoError(t, err)
	return s
}

func TestListCollectionRoundTrip(t *testing.T) {
	s := newTestStore(t)
	col := NewListCollection[testRecord](s, ProductsFile)

	in := []testRecord{
		{ID: "id_1", Name: "Rice 5kg", Amount: decimal.RequireFromString("10550.50")},
		{ID: "id_2", Name: "Cooking Oil", Amount: decimal.RequireFromString("0.10")},
	}
	require.NoError(t, col.Save(in))

	out, err := col.Load()
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Rice 5kg", out[0].Name)
	// Exact currency round-trip: 0.10 stays 0.10, never 0.1000000001.
	assert.True(t, out[1].Amount.Equal(decimal.RequireFromString("0.10")))
	assert.Equal(t, "10550.5", out[0].Amount.String())
}

func TestListCollectionLoadIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	col := NewListCollection[testRecord](s, ProductsFile)
	require.NoError(t, col.Save([]testRecord{{ID: "id_1", Name: "A"}}))

	first, err := col.Load()
	require.NoError(t, err)
	second, err := col.Load()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestListCollectionAbsentFileReturnsDefault(t *testing.T) {
	s := newTestStore(t)
	col := NewListCollection[testRecord](s, SalesFile)

	out, err := col.Load()
	require.NoError(t, err, "a missing file is the first-run path, not an error")
	assert.Empty(t, out)
}

func TestListCollectionCorruptFileReturnsDefaultAndError(t *testing.T) {
	var events []CorruptionEvent
	s := newTestStore(t, WithCorruptionObserver(func(ev CorruptionEvent) {
		events = append(events, ev)
	}))
	col := NewListCollection[testRecord](s, ProductsFile)

	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), ProductsFile), []byte("{not json"), 0644))

	out, err := col.Load()
	assert.Empty(t, out)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindCorruption))
	require.Len(t, events, 1)
	assert.Equal(t, ProductsFile, events[0].File)
	assert.WithinDuration(t, time.Now(), events[0].Time, 5*time.Second)
}

func TestListCollectionSchemaViolationIsCorruption(t *testing.T) {
	s := newTestStore(t)
	col := NewListCollection[testRecord](s, ProductsFile)

	// Valid JSON, wrong shape: dict where a list belongs.
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), ProductsFile), []byte(`{"id": "x"}`), 0644))

	out, err := col.Load()
	assert.Empty(t, out)
	assert.True(t, IsKind(err, KindCorruption))
}

func TestListCollectionSaveRejectsMissingID(t *testing.T) {
	s := newTestStore(t)
	col := NewListCollection[testRecord](s, ProductsFile)
	require.NoError(t, col.Save([]testRecord{{ID: "id_1", Name: "keep"}}))

	err := col.Save([]testRecord{{ID: "", Name: "broken"}})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindValidation))

	// The failed save must not have touched the file.
	out, err := col.Load()
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "keep", out[0].Name)
}

func TestListCollectionSaveEmpty(t *testing.T) {
	s := newTestStore(t)
	col := NewListCollection[testRecord](s, ProductsFile)

	require.NoError(t, col.Save(nil))
	out, err := col.Load()
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)

	raw, err := os.ReadFile(filepath.Join(s.Dir(), ProductsFile))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw[:2]))
}

func TestListCollectionAppend(t *testing.T) {
	s := newTestStore(t)
	col := NewListCollection[testRecord](s, SalesFile)

	require.NoError(t, col.Append(testRecord{ID: "id_1"}))
	require.NoError(t, col.Append(testRecord{ID: "id_2"}))
	require.NoError(t, col.AppendAll([]testRecord{{ID: "id_3"}, {ID: "id_4"}}))

	out, err := col.Load()
	require.NoError(t, err)
	require.Len(t, out, 4)
	assert.Equal(t, "id_4", out[3].ID)
}

func TestMapCollectionRoundTrip(t *testing.T) {
	s := newTestStore(t)
	col := NewMapCollection[map[string]any](s, UsersFile)

	in := map[string]map[string]any{
		"admin": {"type": "admin", "name": "Administrator"},
	}
	require.NoError(t, col.Save(in))
	out, err := col.Load()
	require.NoError(t, err)
	require.Contains(t, out, "admin")
	assert.Equal(t, "admin", out["admin"]["type"])
}

func TestMapCollectionCorruptReturnsDefault(t *testing.T) {
	s := newTestStore(t)
	col := NewMapCollection[map[string]any](s, UsersFile)

	// List where a dict belongs.
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), UsersFile), []byte(`[]`), 0644))

	out, err := col.Load()
	assert.Empty(t, out)
	assert.NotNil(t, out)
	assert.True(t, IsKind(err, KindCorruption))
}

func TestInitDataFiles(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.InitDataFiles())

	for name := range schemas {
		_, err := os.Stat(filepath.Join(s.Dir(), name))
		assert.NoError(t, err, "expected %s to be initialized", name)
	}

	// Settings got seeded defaults, not an empty dict.
	settings, err := NewMapCollection[any](s, SettingsFile).Load()
	require.NoError(t, err)
	assert.Equal(t, "light", settings["theme"])

	// Re-running must not clobber existing files.
	col := NewListCollection[testRecord](s, ProductsFile)
	require.NoError(t, col.Save([]testRecord{{ID: "id_1"}}))
	require.NoError(t, s.InitDataFiles())
	out, err := col.Load()
	require.NoError(t, err)
	assert.Len(t, out, 1)
}
