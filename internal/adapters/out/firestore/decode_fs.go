// internal/adapters/out/firestore/decode_fs.go
package firestore

import (
	"time"

	cartdom "hearthwood/internal/domain/cart"
)

// Tolerant decoding helpers shared by the _fs adapters.
//
// ✅ IMPORTANT:
// schema が途中で変わった古いドキュメントに対して DataTo(&struct{...}) を使うと
// 型不一致でエラーになり得る。snap.Data() を取り、自前パースで吸収する。

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func asTime(v any) (time.Time, bool) {
	if t, ok := v.(time.Time); ok {
		return t, true
	}
	return time.Time{}, false
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}

// decodeCartItems parses the persisted items array. Every element goes
// through the cart sanitizer, so a malformed line can never reach memory.
// Non-array shapes (legacy docs, partial writes) read as empty.
func decodeCartItems(v any) []cartdom.CartItem {
	arr, ok := v.([]any)
	if !ok || len(arr) == 0 {
		return []cartdom.CartItem{}
	}

	out := make([]cartdom.CartItem, 0, len(arr))
	for _, el := range arr {
		m, ok := el.(map[string]any)
		if !ok {
			continue
		}
		it := cartdom.Sanitize(m)
		if it.ID == "" {
			continue
		}
		out = append(out, it)
	}
	return out
}
