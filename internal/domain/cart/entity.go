// internal/domain/cart/entity.go
package cart

import "strings"

// CartItem represents "one line item" in a cart.
// ID is the stable product identifier and the merge key; Name/Price/Image are a
// snapshot taken at add time (not re-fetched from the catalog).
type CartItem struct {
	ID       string  `json:"id" firestore:"id"`
	Name     string  `json:"name" firestore:"name"`
	Price    float64 `json:"price" firestore:"price"`
	Image    string  `json:"image" firestore:"image"`
	Quantity int     `json:"quantity" firestore:"quantity"`
}

// Cart is the in-memory cart state.
//   - Items keeps insertion order (order matters only for display)
//   - at most one CartItem per product id
//
// NOTE:
// - Cart は永続化の形を知らない（LocalCache / RemoteStore 側の責務）
// - 空になるのは明示的な Clear のみ。データ欠落で暗黙に空にしない。
type Cart struct {
	Items []CartItem
}

// NewCart creates a cart seeded with items (nil is treated as empty).
// Input items pass through Sanitize so the cart never holds a malformed line.
func NewCart(items []CartItem) *Cart {
	return &Cart{Items: SanitizeAll(items)}
}

// Add increases quantity for item.ID, or appends a new line.
// qty < 1 is coerced to 1 (the caller asked to add *something*).
func (c *Cart) Add(item CartItem, qty int) {
	if c == nil {
		return
	}
	if qty < 1 {
		qty = 1
	}

	it := SanitizeItem(item)
	if it.ID == "" {
		return
	}

	idx := findItemIndex(c.Items, it.ID)
	if idx >= 0 {
		c.Items[idx].Quantity += qty
		return
	}

	it.Quantity = qty
	c.Items = append(c.Items, it)
}

// SetQty replaces the quantity for id.
// qty <= 0 removes the line; setting qty on an absent id is a no-op.
func (c *Cart) SetQty(id string, qty int) {
	if c == nil {
		return
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}

	idx := findItemIndex(c.Items, id)
	if idx < 0 {
		return
	}
	if qty <= 0 {
		c.Items = removeIndex(c.Items, idx)
		return
	}
	c.Items[idx].Quantity = qty
}

// Remove deletes the line with id if present.
func (c *Cart) Remove(id string) {
	c.SetQty(id, 0)
}

// Clear resets the cart to empty.
func (c *Cart) Clear() {
	if c == nil {
		return
	}
	c.Items = []CartItem{}
}

// Replace swaps the whole line-up (used when a remote push or a
// reconciliation result becomes the authoritative state).
func (c *Cart) Replace(items []CartItem) {
	if c == nil {
		return
	}
	c.Items = SanitizeAll(items)
}

// Total returns Σ price × quantity over all lines.
func (c *Cart) Total() float64 {
	if c == nil {
		return 0
	}
	var sum float64
	for _, it := range c.Items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}

// Count returns Σ quantity over all lines.
func (c *Cart) Count() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// Has reports whether a line with id exists.
func (c *Cart) Has(id string) bool {
	_, ok := c.Item(id)
	return ok
}

// Item returns the line with id, if present. Pure lookup, no side effects.
func (c *Cart) Item(id string) (CartItem, bool) {
	if c == nil {
		return CartItem{}, false
	}
	idx := findItemIndex(c.Items, strings.TrimSpace(id))
	if idx < 0 {
		return CartItem{}, false
	}
	return c.Items[idx], true
}

// Snapshot returns a copy of the current lines, safe to hand to callers.
func (c *Cart) Snapshot() []CartItem {
	if c == nil || len(c.Items) == 0 {
		return []CartItem{}
	}
	out := make([]CartItem, len(c.Items))
	copy(out, c.Items)
	return out
}

// ----------------------------
// Helpers
// ----------------------------

func findItemIndex(items []CartItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func removeIndex(items []CartItem, idx int) []CartItem {
	if idx < 0 || idx >= len(items) {
		return items
	}
	// preserve order
	return append(items[:idx], items[idx+1:]...)
}
