package localstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "hearthwood/internal/domain/cart"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoad_EmptyOnFreshDatabase(t *testing.T) {
	s := openTestStore(t)
	assert.Empty(t, s.Load())
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := openTestStore(t)

	in := []cartdom.CartItem{
		{ID: "oak", Name: "Oak bundle", Price: 12.5, Image: "u", Quantity: 2},
		{ID: "birch", Name: "Birch", Price: 8, Quantity: 1},
	}
	s.Save(in)

	got := s.Load()
	require.Len(t, got, 2)
	assert.Equal(t, in[0], got[0])
	assert.Equal(t, in[1], got[1])
}

func TestSave_OverwritesPreviousValue(t *testing.T) {
	s := openTestStore(t)

	s.Save([]cartdom.CartItem{{ID: "oak", Quantity: 1}})
	s.Save([]cartdom.CartItem{{ID: "birch", Quantity: 3}})

	got := s.Load()
	require.Len(t, got, 1)
	assert.Equal(t, "birch", got[0].ID)
	assert.Equal(t, 3, got[0].Quantity)
}

func TestLoad_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	s1, err := Open(path)
	require.NoError(t, err)
	s1.Save([]cartdom.CartItem{{ID: "oak", Quantity: 2}})
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	got := s2.Load()
	require.Len(t, got, 1)
	assert.Equal(t, "oak", got[0].ID)
}

func TestLoad_CorruptValueReadsAsEmpty(t *testing.T) {
	s := openTestStore(t)

	_, err := s.db.Exec(`INSERT INTO cart_cache (key, value) VALUES (?, ?)`, cacheKey, "{not json")
	require.NoError(t, err)

	assert.Empty(t, s.Load())
}

func TestSave_AfterCloseIsSwallowed(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Close())

	// must not panic or surface the failure
	s.Save([]cartdom.CartItem{{ID: "oak", Quantity: 1}})
}

func TestSave_SanitizesBeforePersisting(t *testing.T) {
	s := openTestStore(t)

	s.Save([]cartdom.CartItem{
		{ID: "", Quantity: 5},          // id-less line dropped
		{ID: "oak", Quantity: 0},       // quantity clamps to 1
		{ID: "oak", Quantity: 2},       // duplicate collapses
	})

	got := s.Load()
	require.Len(t, got, 1)
	assert.Equal(t, "oak", got[0].ID)
	assert.Equal(t, 3, got[0].Quantity)
}
