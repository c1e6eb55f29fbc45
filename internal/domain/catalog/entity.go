// internal/domain/catalog/entity.go
package catalog

import (
	"errors"

	cartdom "hearthwood/internal/domain/cart"
)

var ErrNotFound = errors.New("catalog: product not found")

// Product is a read-only catalog entry.
// The catalog is maintained elsewhere (admin tooling writes it); this side
// only reads, so there is no mutation surface here.
type Product struct {
	ID          string  `json:"id" firestore:"id"`
	Name        string  `json:"name" firestore:"name"`
	Price       float64 `json:"price" firestore:"price"`
	Image       string  `json:"image" firestore:"image"`
	Description string  `json:"description" firestore:"description"`
}

// CartLine converts the product into a cart line snapshot (price/name/image
// frozen at add time).
func (p Product) CartLine() cartdom.CartItem {
	return cartdom.SanitizeItem(cartdom.CartItem{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Image:    p.Image,
		Quantity: 1,
	})
}
