// internal/domain/order/repository_port.go
package order

import "context"

// Repository is a persistence port for Order.
//
// Storage recommendation (Firestore):
// - collection: orders
// - docId: order id (uuid)
// - fields: userId, email, name, items([]snapshot), total, createdAt
type Repository interface {
	// Create inserts a new order. Fails if the id already exists.
	Create(ctx context.Context, o *Order) error

	// GetByID returns the order, or (nil, nil) if absent.
	GetByID(ctx context.Context, id string) (*Order, error)

	// ListByUserID returns the user's orders, newest first.
	// Returns an empty slice when the user has none.
	ListByUserID(ctx context.Context, userID string) ([]*Order, error)
}
