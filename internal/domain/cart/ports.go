// internal/domain/cart/ports.go
package cart

import (
	"context"
	"time"
)

// Contact is the denormalized user info written alongside the cart document.
// Read by order/admin tooling downstream; never consulted by the merge.
type Contact struct {
	Email string
	Name  string
}

// Document is the persisted remote cart document.
// UpdatedAt is assigned by the store itself, not by the client clock.
type Document struct {
	Items     []CartItem
	UpdatedAt time.Time
	Email     string
	Name      string
}

// LocalCache is a durable, synchronous, single-device store for the
// last-known cart. It has no network dependency and must work fully offline.
//
// Contract:
//   - Load never fails: missing or corrupt data reads as empty
//   - Save is best-effort: failures (quota, io) are swallowed, never returned
type LocalCache interface {
	Load() []CartItem
	Save(items []CartItem)
}

// RemoteStore is the shared, identity-keyed cart document store.
//
// Not-found handling policy:
//   - Read returns (nil, nil) when no document exists for the identity
//     (absence is a normal state, not an error)
//
// Write must merge at the field level: only the fields this subsystem owns
// (items, contact denormalization, updatedAt) are touched; other collaborators
// write the same document.
type RemoteStore interface {
	Read(ctx context.Context, identity string) (*Document, error)
	Write(ctx context.Context, identity string, items []CartItem, contact Contact) error

	// Subscribe registers a push listener for the identity's document.
	// onChange receives the latest full item array on every change, including
	// echoes of this client's own writes. The returned cancel func stops the
	// listener and must be called on logout and on teardown.
	Subscribe(ctx context.Context, identity string, onChange func(items []CartItem)) (cancel func(), err error)
}
