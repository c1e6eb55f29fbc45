// internal/platform/di/container.go
package di

import (
	"context"
	"log"
	"strings"

	fsadapter "hearthwood/internal/adapters/out/firestore"
	"hearthwood/internal/adapters/out/localstore"
	"hearthwood/internal/adapters/out/mail"
	"hearthwood/internal/application/usecase"
	catalogdom "hearthwood/internal/domain/catalog"
	orderdom "hearthwood/internal/domain/order"
	appcfg "hearthwood/internal/infra/config"
	"hearthwood/internal/infra/firebaseauth"
	firestoreinfra "hearthwood/internal/infra/firestore"
)

// Container is the session composition root.
// - owns external clients (Firestore / FirebaseAuth / SQLite) and Close order
// - owns the wired usecases
//
// Init policy:
// - the local cache and the cart service always come up (offline-first:
//   a session with no connectivity is still a fully functional local cart)
// - Firestore / FirebaseAuth / mail are best-effort (warn + degrade)
type Container struct {
	Config *appcfg.Config

	Firestore    *firestoreinfra.ClientWrapper
	FirebaseAuth *firebaseauth.Client
	LocalCache   *localstore.Store

	Orders  orderdom.Repository
	Catalog catalogdom.Reader

	Carts      *usecase.CartService
	Storefront *usecase.StorefrontUsecase
	Checkout   *usecase.CheckoutUsecase
}

// New wires the whole session.
func New(ctx context.Context) (*Container, error) {
	cfg := appcfg.Load()
	c := &Container{Config: cfg}

	// Local cache: best-effort. A nil *Store is a valid no-op cache, so a
	// broken disk degrades to memory-only instead of failing the boot.
	local, err := localstore.Open(cfg.LocalCachePath)
	if err != nil {
		log.Printf("[di] WARN: local cart cache unavailable (%v); running memory-only", err)
		local = nil
	}
	c.LocalCache = local

	// Firestore: best-effort. Without it the session is local-only; the cart
	// store adapter reports the missing client per call and the service
	// falls back exactly as it does for a network fault.
	credFile := strings.TrimSpace(cfg.FirestoreCredentialsFile)
	if credFile == "" {
		credFile = strings.TrimSpace(cfg.GCPCreds)
	}
	fw, err := firestoreinfra.NewClient(ctx, cfg.FirestoreProjectID, credFile)
	if err != nil {
		log.Printf("[di] WARN: firestore unavailable (%v); running local-only", err)
	} else {
		c.Firestore = fw
	}

	remote := &fsadapter.CartStoreFS{}
	if c.Firestore != nil {
		remote.Client = c.Firestore.Client

		c.Orders = fsadapter.NewOrderRepositoryFS(c.Firestore.Client)
		c.Catalog = fsadapter.NewProductReaderFS(c.Firestore.Client)
	}

	// FirebaseAuth: best-effort (anonymous sessions are fine without it).
	auth, err := firebaseauth.NewClient(ctx, cfg.FirebaseProjectID, credFile)
	if err != nil {
		log.Printf("[di] WARN: firebase auth unavailable (%v); sessions stay anonymous", err)
	} else {
		c.FirebaseAuth = auth
	}

	c.Carts = usecase.NewCartService(c.LocalCache, remote)

	if c.Catalog != nil {
		c.Storefront = usecase.NewStorefrontUsecase(c.Catalog, c.Carts)
	}
	if c.Orders != nil {
		c.Checkout = usecase.NewCheckoutUsecase(c.Carts, c.Orders, mail.NewOrderMailerWithSendGrid())
	}

	return c, nil
}

// Close tears the session down: subscription first, then clients.
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.Carts != nil {
		c.Carts.Close()
	}
	if c.Firestore != nil {
		if err := c.Firestore.Close(); err != nil {
			log.Printf("[di] WARN: firestore close: %v", err)
		}
	}
	if c.LocalCache != nil {
		if err := c.LocalCache.Close(); err != nil {
			log.Printf("[di] WARN: local cache close: %v", err)
		}
	}
}
