package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "hearthwood/internal/domain/cart"
	orderdom "hearthwood/internal/domain/order"
)

type fakeOrderRepo struct {
	mu        sync.Mutex
	created   []*orderdom.Order
	createErr error
}

func (f *fakeOrderRepo) Create(ctx context.Context, o *orderdom.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, o)
	return nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id string) (*orderdom.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.created {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderRepo) ListByUserID(ctx context.Context, userID string) ([]*orderdom.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*orderdom.Order{}
	for _, o := range f.created {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeMailer struct {
	mu      sync.Mutex
	sent    []*orderdom.Order
	sendErr error
}

func (f *fakeMailer) SendOrderConfirmation(ctx context.Context, o *orderdom.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, o)
	return nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func checkoutFixture(t *testing.T) (*CartService, *fakeRemote, *fakeOrderRepo, *fakeMailer, *CheckoutUsecase) {
	t.Helper()
	remote := &fakeRemote{}
	carts := newService(t, &fakeLocal{}, remote)
	repo := &fakeOrderRepo{}
	mailer := &fakeMailer{}
	uc := NewCheckoutUsecaseWithClock(carts, repo, mailer,
		fixedClock{t: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)},
		func() string { return "order-1" })
	return carts, remote, repo, mailer, uc
}

func TestPlaceOrder_CreatesOrderAndClearsCart(t *testing.T) {
	carts, remote, repo, mailer, uc := checkoutFixture(t)
	carts.SetIdentity(context.Background(), Identity{UID: "u1", Email: "u1@example.com", Name: "Uli"})
	carts.AddItem(cartdom.CartItem{ID: "oak", Name: "Oak bundle", Price: 12.5}, 2)
	carts.AddItem(cartdom.CartItem{ID: "birch", Name: "Birch bundle", Price: 8}, 1)
	carts.writes.Wait()

	o, err := uc.PlaceOrder(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "order-1", o.ID)
	assert.Equal(t, "u1", o.UserID)
	assert.Equal(t, "u1@example.com", o.Email)
	require.Len(t, o.Items, 2)
	assert.Equal(t, 33.0, o.Total)

	require.Len(t, repo.created, 1)
	require.Len(t, mailer.sent, 1)

	// checkout consumes the cart: the legitimate empty write to both stores
	carts.writes.Wait()
	assert.Empty(t, carts.Items())
	writes := remote.writeLog()
	require.NotEmpty(t, writes)
	assert.Empty(t, writes[len(writes)-1])
}

func TestPlaceOrder_AnonymousRejected(t *testing.T) {
	carts, _, repo, _, uc := checkoutFixture(t)
	carts.AddItem(cartdom.CartItem{ID: "oak", Price: 10}, 1)

	_, err := uc.PlaceOrder(context.Background())

	assert.ErrorIs(t, err, ErrCheckoutAnonymous)
	assert.Empty(t, repo.created)
}

func TestPlaceOrder_EmptyCartRejected(t *testing.T) {
	carts, _, repo, _, uc := checkoutFixture(t)
	carts.SetIdentity(context.Background(), Identity{UID: "u1"})

	_, err := uc.PlaceOrder(context.Background())

	assert.ErrorIs(t, err, ErrCheckoutEmptyCart)
	assert.Empty(t, repo.created)
}

func TestPlaceOrder_RepoFailureKeepsCart(t *testing.T) {
	carts, _, repo, mailer, uc := checkoutFixture(t)
	carts.SetIdentity(context.Background(), Identity{UID: "u1"})
	carts.AddItem(cartdom.CartItem{ID: "oak", Price: 10}, 1)
	repo.createErr = errors.New("unavailable")

	_, err := uc.PlaceOrder(context.Background())

	require.Error(t, err)
	assert.True(t, carts.Has("oak"))
	assert.Empty(t, mailer.sent)
}

func TestPlaceOrder_MailFailureDoesNotFailOrder(t *testing.T) {
	carts, _, repo, mailer, uc := checkoutFixture(t)
	carts.SetIdentity(context.Background(), Identity{UID: "u1"})
	carts.AddItem(cartdom.CartItem{ID: "oak", Price: 10}, 1)
	mailer.sendErr = errors.New("smtp down")

	o, err := uc.PlaceOrder(context.Background())

	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Equal(t, o.ID, repo.created[0].ID)
}
