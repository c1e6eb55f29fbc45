// internal/application/usecase/cart_service.go
package usecase

import (
	"context"
	"log"
	"strings"
	"sync"

	cartdom "hearthwood/internal/domain/cart"
)

// Identity is the opaque "this session belongs to user X" token plus the
// denormalized contact fields mirrored into the cart document.
// Supplied by the auth collaborator; this service only reacts to it.
type Identity struct {
	UID   string
	Email string
	Name  string
}

// CartService keeps one session's cart consistent across three places:
// the in-memory state, the offline local cache, and the shared remote
// document (plus its push subscription).
//
// Lifecycle:
//  1. construction hydrates from the local cache (cold start, synchronous)
//  2. SetIdentity runs the one-time reconciliation (read remote → merge →
//     write back) and starts the push subscription
//  3. every mutation updates memory first, then writes through to the local
//     cache and (when identified) to the remote store
//  4. ClearIdentity / Close cancel the subscription
//
// All public methods are total: mutations and reads never return an error.
// Remote failures degrade to local-only behavior and are only logged.
//
// ロック方針:
// - cart / identity / guard フラグは全て mu の下でのみ触る
// - リスナー通知と remote 書き込みはロック外（スナップショット渡し）
type CartService struct {
	mu   sync.Mutex
	cart *cartdom.Cart

	local  cartdom.LocalCache
	remote cartdom.RemoteStore

	identity  *Identity
	cancelSub func()

	// mounted guards the first local write after hydration: the state at that
	// instant was just loaded *from* the cache, writing it back is redundant.
	mounted bool

	// clearArmed marks the next empty remote snapshot as this client's own
	// clear() echo. Any other empty snapshot is a transient listener artifact
	// and must not wipe the cart.
	clearArmed bool

	listeners []func(items []cartdom.CartItem)

	ctx    context.Context
	cancel context.CancelFunc
	writes sync.WaitGroup
}

// NewCartService builds the session cart and hydrates it from the local cache.
func NewCartService(local cartdom.LocalCache, remote cartdom.RemoteStore) *CartService {
	ctx, cancel := context.WithCancel(context.Background())
	s := &CartService{
		cart:   cartdom.NewCart(local.Load()),
		local:  local,
		remote: remote,
		ctx:    ctx,
		cancel: cancel,
	}

	// Hydration drives the same persistence pipeline as any change, and the
	// mounted guard swallows exactly this write (the data came from the cache
	// a moment ago).
	s.mu.Lock()
	s.persistLocalLocked()
	s.mu.Unlock()

	return s
}

// OnChange registers a cart-changed listener. Listeners receive a snapshot
// copy of the full line-up after every in-memory change (mutation, remote
// push, reconciliation). They run outside the service lock but must not
// block for long.
func (s *CartService) OnChange(fn func(items []cartdom.CartItem)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// ----------------------------
// Read accessors
// ----------------------------

func (s *CartService) Items() []cartdom.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Snapshot()
}

func (s *CartService) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

func (s *CartService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Count()
}

func (s *CartService) Has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Has(id)
}

func (s *CartService) Item(id string) (cartdom.CartItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Item(id)
}

// Identity returns the current identity, if any.
func (s *CartService) Identity() (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}

// ----------------------------
// Mutations
// ----------------------------

// AddItem increments the quantity for item.ID, or appends a new line.
func (s *CartService) AddItem(item cartdom.CartItem, qty int) {
	s.mutate(func(c *cartdom.Cart) { c.Add(item, qty) })
}

// RemoveItem deletes the line with id; no-op when absent.
func (s *CartService) RemoveItem(id string) {
	s.mutate(func(c *cartdom.Cart) { c.Remove(id) })
}

// SetQuantity replaces the quantity for id; qty <= 0 removes the line.
func (s *CartService) SetQuantity(id string, qty int) {
	s.mutate(func(c *cartdom.Cart) { c.SetQty(id, qty) })
}

// Clear resets the cart to empty and persists the empty state to both stores.
// This is the one legitimate empty write: the echo it produces on the
// subscription is exempted from empty-snapshot suppression.
func (s *CartService) Clear() {
	s.mu.Lock()
	s.cart.Clear()
	if s.identity != nil {
		s.clearArmed = true
	}
	s.persistLocalLocked()
	snap := s.cart.Snapshot()
	uid, contact := s.identityLocked()
	s.mu.Unlock()

	s.notify(snap)
	if uid != "" {
		s.writeRemoteAsync(uid, snap, contact)
	}
}

func (s *CartService) mutate(apply func(*cartdom.Cart)) {
	s.mu.Lock()
	apply(s.cart)
	s.persistLocalLocked()
	snap := s.cart.Snapshot()
	uid, contact := s.identityLocked()
	s.mu.Unlock()

	s.notify(snap)
	if uid != "" {
		s.writeRemoteAsync(uid, snap, contact)
	}
}

// ----------------------------
// Identity transitions
// ----------------------------

// SetIdentity handles anonymous → identified (login): a one-time
// reconciliation of the local line-up with the remote document, a write-back
// of the merged result, then the push subscription.
//
// On any remote failure the session falls back to local-only behavior for
// this attempt; nothing is surfaced to the caller and no state is lost.
func (s *CartService) SetIdentity(ctx context.Context, ident Identity) {
	uid := strings.TrimSpace(ident.UID)
	if uid == "" {
		return
	}
	ident.UID = uid

	s.mu.Lock()
	if s.identity != nil && s.identity.UID == uid {
		// same principal; refresh contact only
		s.identity.Email = strings.TrimSpace(ident.Email)
		s.identity.Name = strings.TrimSpace(ident.Name)
		s.mu.Unlock()
		return
	}
	// identity switch without logout: treat as logout + login
	if s.cancelSub != nil {
		s.cancelSub()
		s.cancelSub = nil
	}
	s.identity = &ident
	localItems := s.cart.Snapshot()
	s.mu.Unlock()

	doc, err := s.remote.Read(ctx, uid)
	if err != nil {
		log.Printf("[cart] WARN: remote read failed, staying local-only: %v", err)
		return
	}

	var remoteItems []cartdom.CartItem
	if doc != nil {
		remoteItems = doc.Items
	}
	merged := cartdom.Merge(remoteItems, localItems)

	s.mu.Lock()
	if s.identity == nil || s.identity.UID != uid {
		// identity changed while we were reading; drop this attempt
		s.mu.Unlock()
		return
	}
	s.cart.Replace(merged)
	s.persistLocalLocked()
	snap := s.cart.Snapshot()
	contact := cartdom.Contact{Email: s.identity.Email, Name: s.identity.Name}
	s.mu.Unlock()

	// Write the merged result back so other devices see the union.
	if err := s.remote.Write(ctx, uid, snap, contact); err != nil {
		log.Printf("[cart] WARN: reconciliation write-back failed (local state kept): %v", err)
	}

	cancel, err := s.remote.Subscribe(s.ctx, uid, s.applyRemotePush)
	if err != nil {
		log.Printf("[cart] WARN: subscribe failed, staying local-only: %v", err)
	} else {
		s.mu.Lock()
		if s.identity != nil && s.identity.UID == uid {
			s.cancelSub = cancel
		} else {
			cancel()
		}
		s.mu.Unlock()
	}

	s.notify(snap)
}

// ClearIdentity handles identified → anonymous (logout). The subscription is
// cancelled; the remote document is left as-is so it reconciles again on the
// next login.
func (s *CartService) ClearIdentity() {
	s.mu.Lock()
	if s.cancelSub != nil {
		s.cancelSub()
		s.cancelSub = nil
	}
	s.identity = nil
	s.clearArmed = false
	s.mu.Unlock()
}

// Close cancels the subscription and any in-flight write-throughs.
func (s *CartService) Close() {
	s.ClearIdentity()
	s.cancel()
	s.writes.Wait()
}

// ----------------------------
// Remote push handling
// ----------------------------

// applyRemotePush is the subscription callback: the remote array overwrites
// the in-memory state, except that an empty snapshot is ignored unless it is
// the echo of this client's own Clear(). Firestore-style listeners can emit a
// transient empty read during document creation races; applying it blindly
// would delete the cart out from under the user.
func (s *CartService) applyRemotePush(items []cartdom.CartItem) {
	s.mu.Lock()
	if len(items) == 0 {
		if !s.clearArmed {
			s.mu.Unlock()
			log.Printf("[cart] suppressed empty remote snapshot (no local clear pending)")
			return
		}
		s.clearArmed = false
	}
	s.cart.Replace(items)
	s.persistLocalLocked()
	snap := s.cart.Snapshot()
	s.mu.Unlock()

	s.notify(snap)
}

// ----------------------------
// Persistence plumbing
// ----------------------------

// persistLocalLocked writes through to the local cache. Caller holds mu.
// The very first call after process start is skipped (see mounted).
func (s *CartService) persistLocalLocked() {
	if !s.mounted {
		s.mounted = true
		return
	}
	s.local.Save(s.cart.Snapshot())
}

// identityLocked returns the uid/contact pair for write-through, or "" when
// anonymous. Caller holds mu.
func (s *CartService) identityLocked() (string, cartdom.Contact) {
	if s.identity == nil {
		return "", cartdom.Contact{}
	}
	return s.identity.UID, cartdom.Contact{Email: s.identity.Email, Name: s.identity.Name}
}

// writeRemoteAsync fires the remote write-through without blocking the
// mutation path. Each write carries the full item array, so late or reordered
// arrivals re-assert a self-consistent state rather than corrupting a partial
// one. Failures keep local state authoritative; no automatic retry here.
func (s *CartService) writeRemoteAsync(uid string, items []cartdom.CartItem, contact cartdom.Contact) {
	s.writes.Add(1)
	go func() {
		defer s.writes.Done()
		if err := s.remote.Write(s.ctx, uid, items, contact); err != nil {
			log.Printf("[cart] WARN: remote write-through failed (local state kept): %v", err)
		}
	}()
}

func (s *CartService) notify(snap []cartdom.CartItem) {
	s.mu.Lock()
	ls := make([]func([]cartdom.CartItem), len(s.listeners))
	copy(ls, s.listeners)
	s.mu.Unlock()

	for _, fn := range ls {
		fn(snap)
	}
}
