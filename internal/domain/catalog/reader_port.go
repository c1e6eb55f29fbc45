// internal/domain/catalog/reader_port.go
package catalog

import "context"

// Reader is the read-only catalog port.
//
// Not-found handling policy:
// - GetByID returns (Product{}, ErrNotFound) when the product does not exist.
type Reader interface {
	GetByID(ctx context.Context, id string) (Product, error)

	// List returns up to limit products (limit <= 0 means a server default).
	List(ctx context.Context, limit int) ([]Product, error)
}
