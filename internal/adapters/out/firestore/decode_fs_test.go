package firestore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCartItems_WellFormed(t *testing.T) {
	got := decodeCartItems([]any{
		map[string]any{"id": "oak", "name": "Oak bundle", "price": float64(12.5), "image": "u", "quantity": float64(2)},
		map[string]any{"id": "birch", "name": "Birch", "price": int64(8), "quantity": int64(1)},
	})

	require.Len(t, got, 2)
	assert.Equal(t, "oak", got[0].ID)
	assert.Equal(t, 12.5, got[0].Price)
	assert.Equal(t, 2, got[0].Quantity)
	assert.Equal(t, "birch", got[1].ID)
	assert.Equal(t, 1, got[1].Quantity)
}

func TestDecodeCartItems_ToleratesGarbage(t *testing.T) {
	cases := map[string]any{
		"nil":             nil,
		"not an array":    map[string]any{"id": "x"},
		"string":          "items",
		"mixed elements":  []any{"junk", float64(4), map[string]any{"id": "p1", "quantity": float64(1)}},
		"idless elements": []any{map[string]any{"quantity": float64(3)}},
	}

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			got := decodeCartItems(in)
			for _, it := range got {
				assert.NotEmpty(t, it.ID)
				assert.GreaterOrEqual(t, it.Quantity, 1)
			}
		})
	}
}

func TestDocFromSnapshot_FullDocument(t *testing.T) {
	now := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	doc := docFromSnapshot(map[string]any{
		"items":     []any{map[string]any{"id": "p1", "quantity": float64(2)}},
		"email":     " ed@example.com ",
		"name":      "Ed",
		"updatedAt": now,
	})

	require.Len(t, doc.Items, 1)
	assert.Equal(t, "ed@example.com", doc.Email)
	assert.Equal(t, "Ed", doc.Name)
	assert.Equal(t, now, doc.UpdatedAt)
}

func TestDocFromSnapshot_EmptyOrMissingFields(t *testing.T) {
	doc := docFromSnapshot(nil)
	require.NotNil(t, doc)
	assert.Empty(t, doc.Items)

	doc = docFromSnapshot(map[string]any{"unrelatedField": "written by admin tooling"})
	assert.Empty(t, doc.Items)
	assert.Empty(t, doc.Email)
}

func TestProductFromData_Tolerant(t *testing.T) {
	p := productFromData("oak", map[string]any{
		"name":  " Oak bundle ",
		"price": float64(-3), // bad historical data clamps to 0
	})

	assert.Equal(t, "oak", p.ID)
	assert.Equal(t, "Oak bundle", p.Name)
	assert.Equal(t, 0.0, p.Price)
}
