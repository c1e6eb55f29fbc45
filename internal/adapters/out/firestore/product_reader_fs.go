// internal/adapters/out/firestore/product_reader_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	catalogdom "hearthwood/internal/domain/catalog"
)

const defaultListLimit = 50

// ProductReaderFS is the read-only Firestore implementation of the catalog.
// The products collection is written by admin tooling; this side never writes.
type ProductReaderFS struct {
	Client *firestore.Client
}

func NewProductReaderFS(client *firestore.Client) *ProductReaderFS {
	return &ProductReaderFS{Client: client}
}

func (r *ProductReaderFS) col() *firestore.CollectionRef {
	return r.Client.Collection("products")
}

func (r *ProductReaderFS) GetByID(ctx context.Context, id string) (catalogdom.Product, error) {
	if r == nil || r.Client == nil {
		return catalogdom.Product{}, errors.New("product_reader_fs: firestore client is nil")
	}

	pid := strings.TrimSpace(id)
	if pid == "" {
		return catalogdom.Product{}, catalogdom.ErrNotFound
	}

	snap, err := r.col().Doc(pid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return catalogdom.Product{}, catalogdom.ErrNotFound
		}
		return catalogdom.Product{}, err
	}

	return productFromData(pid, snap.Data()), nil
}

func (r *ProductReaderFS) List(ctx context.Context, limit int) ([]catalogdom.Product, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("product_reader_fs: firestore client is nil")
	}
	if limit <= 0 {
		limit = defaultListLimit
	}

	it := r.col().OrderBy("name", firestore.Asc).Limit(limit).Documents(ctx)
	defer it.Stop()

	out := []catalogdom.Product{}
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, productFromData(snap.Ref.ID, snap.Data()))
	}
	return out, nil
}

// productFromData decodes tolerantly; docId is the source of truth for ID.
func productFromData(id string, raw map[string]any) catalogdom.Product {
	p := catalogdom.Product{ID: id}
	if raw == nil {
		return p
	}
	p.Name = strings.TrimSpace(asString(raw["name"]))
	p.Price = asFloat(raw["price"])
	p.Image = strings.TrimSpace(asString(raw["image"]))
	p.Description = strings.TrimSpace(asString(raw["description"]))
	if p.Price < 0 {
		p.Price = 0
	}
	return p
}
