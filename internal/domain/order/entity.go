// internal/domain/order/entity.go
package order

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidID        = errors.New("order: invalid id")
	ErrInvalidUserID    = errors.New("order: invalid userId")
	ErrInvalidItems     = errors.New("order: invalid items")
	ErrInvalidCreatedAt = errors.New("order: invalid createdAt")
)

// ItemSnapshot is one frozen cart line stored inside Order.Items.
// Copied from the cart at checkout time; never re-priced afterwards.
type ItemSnapshot struct {
	ProductID string  `json:"productId" firestore:"productId"`
	Name      string  `json:"name" firestore:"name"`
	Price     float64 `json:"price" firestore:"price"`
	Image     string  `json:"image" firestore:"image"`
	Quantity  int     `json:"quantity" firestore:"quantity"`
}

// Order is the finalized purchase document created from a settled cart.
type Order struct {
	ID     string
	UserID string

	// Denormalized contact, mirrored from the cart document.
	Email string
	Name  string

	Items     []ItemSnapshot
	Total     float64
	CreatedAt time.Time
}

// NewOrder builds a validated order from checkout input.
func NewOrder(id, userID, email, name string, items []ItemSnapshot, now time.Time) (*Order, error) {
	o := &Order{
		ID:        strings.TrimSpace(id),
		UserID:    strings.TrimSpace(userID),
		Email:     strings.TrimSpace(email),
		Name:      strings.TrimSpace(name),
		Items:     items,
		CreatedAt: now,
	}

	for _, it := range o.Items {
		o.Total += it.Price * float64(it.Quantity)
	}

	if err := o.validate(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Order) validate() error {
	if o == nil || o.ID == "" {
		return ErrInvalidID
	}
	if o.UserID == "" {
		return ErrInvalidUserID
	}
	if len(o.Items) == 0 {
		return ErrInvalidItems
	}
	for _, it := range o.Items {
		if strings.TrimSpace(it.ProductID) == "" || it.Quantity <= 0 || it.Price < 0 {
			return ErrInvalidItems
		}
	}
	if o.CreatedAt.IsZero() {
		return ErrInvalidCreatedAt
	}
	return nil
}
