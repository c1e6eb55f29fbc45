// internal/adapters/out/firestore/order_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	orderdom "hearthwood/internal/domain/order"
)

// OrderRepositoryFS implements order.Repository using Firestore.
//
// Collection design:
// - collection: orders
// - docId: order id (uuid)
type OrderRepositoryFS struct {
	Client *firestore.Client
}

func NewOrderRepositoryFS(client *firestore.Client) *OrderRepositoryFS {
	return &OrderRepositoryFS{Client: client}
}

func (r *OrderRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("orders")
}

type orderDoc struct {
	UserID    string         `firestore:"userId"`
	Email     string         `firestore:"email"`
	Name      string         `firestore:"name"`
	Items     []orderLineDoc `firestore:"items"`
	Total     float64        `firestore:"total"`
	CreatedAt time.Time      `firestore:"createdAt"`
}

type orderLineDoc struct {
	ProductID string  `firestore:"productId"`
	Name      string  `firestore:"name"`
	Price     float64 `firestore:"price"`
	Image     string  `firestore:"image"`
	Quantity  int     `firestore:"quantity"`
}

func (r *OrderRepositoryFS) Create(ctx context.Context, o *orderdom.Order) error {
	if r == nil || r.Client == nil {
		return errors.New("order_repository_fs: firestore client is nil")
	}
	if o == nil {
		return errors.New("order_repository_fs: order is nil")
	}

	id := strings.TrimSpace(o.ID)
	if id == "" {
		return errors.New("order_repository_fs: order id is empty")
	}

	_, err := r.col().Doc(id).Create(ctx, orderDocFromDomain(o))
	return err
}

// GetByID returns (nil, nil) if not found (nil policy).
func (r *OrderRepositoryFS) GetByID(ctx context.Context, id string) (*orderdom.Order, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("order_repository_fs: firestore client is nil")
	}

	oid := strings.TrimSpace(id)
	if oid == "" {
		return nil, errors.New("order_repository_fs: id is empty")
	}

	snap, err := r.col().Doc(oid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	var doc orderDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, err
	}

	o := doc.toDomain()
	o.ID = oid
	return o, nil
}

func (r *OrderRepositoryFS) ListByUserID(ctx context.Context, userID string) ([]*orderdom.Order, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("order_repository_fs: firestore client is nil")
	}

	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, errors.New("order_repository_fs: userID is empty")
	}

	it := r.col().
		Where("userId", "==", uid).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer it.Stop()

	out := []*orderdom.Order{}
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var doc orderDoc
		if err := snap.DataTo(&doc); err != nil {
			// tolerate a malformed historical doc, keep listing
			continue
		}
		o := doc.toDomain()
		o.ID = snap.Ref.ID
		out = append(out, o)
	}
	return out, nil
}

func orderDocFromDomain(o *orderdom.Order) orderDoc {
	lines := make([]orderLineDoc, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, orderLineDoc{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Image:     it.Image,
			Quantity:  it.Quantity,
		})
	}
	return orderDoc{
		UserID:    o.UserID,
		Email:     o.Email,
		Name:      o.Name,
		Items:     lines,
		Total:     o.Total,
		CreatedAt: o.CreatedAt,
	}
}

func (d orderDoc) toDomain() *orderdom.Order {
	items := make([]orderdom.ItemSnapshot, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, orderdom.ItemSnapshot{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Image:     it.Image,
			Quantity:  it.Quantity,
		})
	}
	return &orderdom.Order{
		UserID:    d.UserID,
		Email:     d.Email,
		Name:      d.Name,
		Items:     items,
		Total:     d.Total,
		CreatedAt: d.CreatedAt,
	}
}
