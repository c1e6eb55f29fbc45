// internal/domain/cart/sanitize.go
package cart

import (
	"math"
	"strconv"
	"strings"
)

// Sanitize coerces an arbitrary item-shaped value into a well-formed CartItem.
//
// This is the single boundary-crossing conversion point: everything read from
// the local cache, a remote snapshot, or caller input goes through here before
// it is held in memory or persisted. The contract is total — every input
// produces a defined output, nothing is rejected.
//
// Supported inputs:
//   - CartItem / *CartItem (normalized in place semantics)
//   - map[string]any (decoded document data, any field may be missing or mistyped)
//
// 過去ドキュメントの schema 揺れ（qty が float64 / int64 / 文字列など）を
// ここで吸収する。DataTo で型不一致 500 を出さないための自前パース。
func Sanitize(v any) CartItem {
	switch x := v.(type) {
	case CartItem:
		return SanitizeItem(x)
	case *CartItem:
		if x == nil {
			return SanitizeItem(CartItem{})
		}
		return SanitizeItem(*x)
	case map[string]any:
		return SanitizeItem(CartItem{
			ID:       asString(x["id"]),
			Name:     asString(x["name"]),
			Price:    asFloat(x["price"]),
			Image:    asString(x["image"]),
			Quantity: asInt(x["quantity"], 1),
		})
	default:
		return SanitizeItem(CartItem{})
	}
}

// SanitizeItem normalizes a typed CartItem. Idempotent:
// SanitizeItem(SanitizeItem(x)) == SanitizeItem(x).
func SanitizeItem(it CartItem) CartItem {
	it.ID = strings.TrimSpace(it.ID)
	it.Name = strings.TrimSpace(it.Name)
	it.Image = strings.TrimSpace(it.Image)

	if math.IsNaN(it.Price) || math.IsInf(it.Price, 0) || it.Price < 0 {
		it.Price = 0
	}
	if it.Quantity < 1 {
		it.Quantity = 1
	}
	return it
}

// SanitizeAll sanitizes a slice, preserving order and dropping lines whose id
// sanitizes to empty (an id-less line can never be merged or removed again).
// Duplicate ids collapse onto the first occurrence, summing quantities.
func SanitizeAll(items []CartItem) []CartItem {
	out := make([]CartItem, 0, len(items))
	seen := map[string]int{}

	for _, raw := range items {
		it := SanitizeItem(raw)
		if it.ID == "" {
			continue
		}
		if idx, ok := seen[it.ID]; ok {
			out[idx].Quantity += it.Quantity
			continue
		}
		seen[it.ID] = len(out)
		out = append(out, it)
	}
	return out
}

// ----------------------------
// Coercion helpers
// ----------------------------

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return ""
	}
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func asInt(v any, def int) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return def
		}
		return int(n)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return def
		}
		return i
	default:
		return def
	}
}
