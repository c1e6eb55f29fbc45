// internal/application/usecase/checkout_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	orderdom "hearthwood/internal/domain/order"
)

var (
	ErrCheckoutAnonymous = errors.New("checkout_usecase: identity required")
	ErrCheckoutEmptyCart = errors.New("checkout_usecase: cart is empty")
)

// Clock provides current time (for testability).
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// OrderMailer sends the confirmation mail after an order is created.
type OrderMailer interface {
	SendOrderConfirmation(ctx context.Context, o *orderdom.Order) error
}

// CheckoutUsecase turns a settled cart into an order document, clears the
// cart, and sends the confirmation mail. Downstream consumer of the cart:
// it only reads the finalized line-up, it never edits lines itself.
type CheckoutUsecase struct {
	carts  *CartService
	orders orderdom.Repository
	mailer OrderMailer // optional; nil skips mail
	clock  Clock
	newID  func() string
}

func NewCheckoutUsecase(carts *CartService, orders orderdom.Repository, mailer OrderMailer) *CheckoutUsecase {
	return &CheckoutUsecase{
		carts:  carts,
		orders: orders,
		mailer: mailer,
		clock:  systemClock{},
		newID:  uuid.NewString,
	}
}

// NewCheckoutUsecaseWithClock is useful for tests.
func NewCheckoutUsecaseWithClock(carts *CartService, orders orderdom.Repository, mailer OrderMailer, clock Clock, newID func() string) *CheckoutUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	if newID == nil {
		newID = uuid.NewString
	}
	return &CheckoutUsecase{carts: carts, orders: orders, mailer: mailer, clock: clock, newID: newID}
}

// PlaceOrder creates an order from the current cart.
//
// Flow:
//  1. snapshot identity + lines (anonymous or empty cart is rejected)
//  2. persist the order document
//  3. clear the cart — the one legitimate empty write to both stores
//  4. best-effort confirmation mail (failure is logged, order stands)
func (uc *CheckoutUsecase) PlaceOrder(ctx context.Context) (*orderdom.Order, error) {
	ident, ok := uc.carts.Identity()
	if !ok {
		return nil, ErrCheckoutAnonymous
	}

	items := uc.carts.Items()
	if len(items) == 0 {
		return nil, ErrCheckoutEmptyCart
	}

	snaps := make([]orderdom.ItemSnapshot, 0, len(items))
	for _, it := range items {
		snaps = append(snaps, orderdom.ItemSnapshot{
			ProductID: it.ID,
			Name:      it.Name,
			Price:     it.Price,
			Image:     it.Image,
			Quantity:  it.Quantity,
		})
	}

	o, err := orderdom.NewOrder(uc.newID(), ident.UID, ident.Email, ident.Name, snaps, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := uc.orders.Create(ctx, o); err != nil {
		return nil, err
	}

	uc.carts.Clear()

	if uc.mailer != nil {
		if err := uc.mailer.SendOrderConfirmation(ctx, o); err != nil {
			log.Printf("[checkout] WARN: confirmation mail failed (order %s stands): %v", o.ID, err)
		}
	}

	log.Printf("[checkout] order created: id=%s user=%s lines=%d total=%.2f",
		o.ID, o.UserID, len(o.Items), o.Total)

	return o, nil
}
