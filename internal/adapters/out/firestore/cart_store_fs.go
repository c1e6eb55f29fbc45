// internal/adapters/out/firestore/cart_store_fs.go
package firestore

import (
	"context"
	"errors"
	"log"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	cartdom "hearthwood/internal/domain/cart"
)

// CartStoreFS implements cart.RemoteStore using Firestore.
//
// Collection design:
// - collection: carts
// - docId: identity (auth uid)  ✅ docId is the source of truth
// - fields owned by this subsystem: items([]line), email, name, updatedAt
//
// The same document is written by admin tooling (other fields), so every
// write here merges at the field level instead of overwriting the doc.
type CartStoreFS struct {
	Client *firestore.Client
}

func NewCartStoreFS(client *firestore.Client) *CartStoreFS {
	return &CartStoreFS{Client: client}
}

func (s *CartStoreFS) col() *firestore.CollectionRef {
	return s.Client.Collection("carts")
}

// cartLineDoc is the persisted shape of one line.
// NOTE: domain struct を直接 firestore DTO にしない（後方互換のため）
type cartLineDoc struct {
	ID       string  `firestore:"id"`
	Name     string  `firestore:"name"`
	Price    float64 `firestore:"price"`
	Image    string  `firestore:"image"`
	Quantity int     `firestore:"quantity"`
}

// Read returns (nil, nil) if no document exists for the identity.
func (s *CartStoreFS) Read(ctx context.Context, identity string) (*cartdom.Document, error) {
	if s == nil || s.Client == nil {
		return nil, errors.New("cart_store_fs: firestore client is nil")
	}

	id := strings.TrimSpace(identity)
	if id == "" {
		return nil, errors.New("cart_store_fs: identity is empty")
	}

	snap, err := s.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	return docFromSnapshot(snap.Data()), nil
}

// Write upserts the fields this subsystem owns, leaving the rest of the
// document untouched. updatedAt is assigned by the store, not by our clock.
func (s *CartStoreFS) Write(ctx context.Context, identity string, items []cartdom.CartItem, contact cartdom.Contact) error {
	if s == nil || s.Client == nil {
		return errors.New("cart_store_fs: firestore client is nil")
	}

	id := strings.TrimSpace(identity)
	if id == "" {
		return errors.New("cart_store_fs: identity is empty")
	}

	lines := make([]cartLineDoc, 0, len(items))
	for _, raw := range cartdom.SanitizeAll(items) {
		lines = append(lines, cartLineDoc{
			ID:       raw.ID,
			Name:     raw.Name,
			Price:    raw.Price,
			Image:    raw.Image,
			Quantity: raw.Quantity,
		})
	}

	_, err := s.col().Doc(id).Set(ctx, map[string]any{
		"items":     lines,
		"email":     strings.TrimSpace(contact.Email),
		"name":      strings.TrimSpace(contact.Name),
		"updatedAt": firestore.ServerTimestamp,
	}, firestore.Merge(
		firestore.FieldPath{"items"},
		firestore.FieldPath{"email"},
		firestore.FieldPath{"name"},
		firestore.FieldPath{"updatedAt"},
	))
	return err
}

// Subscribe starts a snapshot listener on the identity's document and feeds
// every change (including echoes of our own writes) to onChange as a full
// item array. A missing document delivers an empty array; the caller's
// suppression rules decide what to do with it.
func (s *CartStoreFS) Subscribe(ctx context.Context, identity string, onChange func(items []cartdom.CartItem)) (func(), error) {
	if s == nil || s.Client == nil {
		return nil, errors.New("cart_store_fs: firestore client is nil")
	}

	id := strings.TrimSpace(identity)
	if id == "" {
		return nil, errors.New("cart_store_fs: identity is empty")
	}
	if onChange == nil {
		return nil, errors.New("cart_store_fs: onChange is nil")
	}

	subCtx, cancel := context.WithCancel(ctx)
	it := s.col().Doc(id).Snapshots(subCtx)

	go func() {
		defer it.Stop()
		for {
			snap, err := it.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled || errors.Is(err, context.Canceled) {
					return
				}
				log.Printf("[cart_store_fs] listener stopped: %v", err)
				return
			}
			if !snap.Exists() {
				onChange([]cartdom.CartItem{})
				continue
			}
			onChange(decodeCartItems(snap.Data()["items"]))
		}
	}()

	return cancel, nil
}

// docFromSnapshot parses raw document data with backward compatibility
// (missing fields, mistyped lines).
func docFromSnapshot(raw map[string]any) *cartdom.Document {
	doc := &cartdom.Document{Items: []cartdom.CartItem{}}
	if raw == nil {
		return doc
	}

	doc.Items = decodeCartItems(raw["items"])
	doc.Email = strings.TrimSpace(asString(raw["email"]))
	doc.Name = strings.TrimSpace(asString(raw["name"]))
	if t, ok := asTime(raw["updatedAt"]); ok {
		doc.UpdatedAt = t
	}
	return doc
}
