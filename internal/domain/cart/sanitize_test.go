package cart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize_MapInput(t *testing.T) {
	got := Sanitize(map[string]any{
		"id":       " oak-bundle ",
		"name":     "Oak bundle",
		"price":    float64(12.5),
		"image":    "https://cdn.example.com/oak.jpg",
		"quantity": float64(3),
	})

	assert.Equal(t, "oak-bundle", got.ID)
	assert.Equal(t, "Oak bundle", got.Name)
	assert.Equal(t, 12.5, got.Price)
	assert.Equal(t, 3, got.Quantity)
}

func TestSanitize_MissingAndMistypedFields(t *testing.T) {
	cases := map[string]any{
		"empty map":    map[string]any{},
		"nil":          nil,
		"wrong types":  map[string]any{"id": 42, "price": "abc", "quantity": "xyz"},
		"nan price":    map[string]any{"id": "p1", "price": math.NaN()},
		"inf price":    map[string]any{"id": "p1", "price": math.Inf(1)},
		"neg quantity": map[string]any{"id": "p1", "quantity": float64(-4)},
	}

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			got := Sanitize(in)

			assert.False(t, math.IsNaN(got.Price) || math.IsInf(got.Price, 0))
			assert.GreaterOrEqual(t, got.Price, 0.0)
			assert.GreaterOrEqual(t, got.Quantity, 1)
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	in := CartItem{ID: " p1 ", Name: "Birch", Price: math.Inf(-1), Quantity: 0}

	once := SanitizeItem(in)
	twice := SanitizeItem(once)

	require.Equal(t, once, twice)
}

func TestSanitize_StringNumbers(t *testing.T) {
	got := Sanitize(map[string]any{"id": "p1", "price": "9.99", "quantity": "2"})

	assert.Equal(t, 9.99, got.Price)
	assert.Equal(t, 2, got.Quantity)
}

func TestSanitizeAll_DropsIDLessLines(t *testing.T) {
	got := SanitizeAll([]CartItem{
		{ID: "", Quantity: 2},
		{ID: "p1", Quantity: 1},
		{ID: "   ", Quantity: 5},
	})

	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)
}

func TestSanitizeAll_CollapsesDuplicateIDs(t *testing.T) {
	got := SanitizeAll([]CartItem{
		{ID: "p1", Name: "Oak", Quantity: 2},
		{ID: "p2", Quantity: 1},
		{ID: "p1", Quantity: 3},
	})

	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ID)
	assert.Equal(t, 5, got[0].Quantity)
	assert.Equal(t, "Oak", got[0].Name)
	assert.Equal(t, "p2", got[1].ID)
}
