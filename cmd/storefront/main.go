// cmd/storefront/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"hearthwood/internal/application/usecase"
	cartdom "hearthwood/internal/domain/cart"
	"hearthwood/internal/platform/di"
)

func main() {
	ctx := context.Background()

	log.Printf("[boot] hearthwood storefront session starting")

	c, err := di.New(ctx)
	if err != nil {
		log.Fatalf("[boot] wiring failed: %v", err)
	}
	defer c.Close()

	// ─────────────────────────────────────────────────────────────
	// Cart-changed notification (the UI re-render hook)
	// ─────────────────────────────────────────────────────────────
	c.Carts.OnChange(func(items []cartdom.CartItem) {
		log.Printf("[cart] changed: lines=%d units=%d", len(items), countUnits(items))
	})

	log.Printf("[boot] cart hydrated: lines=%d total=%.2f", len(c.Carts.Items()), c.Carts.Total())

	// ─────────────────────────────────────────────────────────────
	// Identity: verify the session token if one was provided.
	// Absent/invalid token means an anonymous, local-only session.
	// ─────────────────────────────────────────────────────────────
	if idToken := strings.TrimSpace(os.Getenv("SESSION_ID_TOKEN")); idToken != "" && c.FirebaseAuth != nil {
		v, err := c.FirebaseAuth.VerifyIDToken(ctx, idToken)
		if err != nil {
			log.Printf("[boot] WARN: token rejected, staying anonymous: %v", err)
		} else {
			c.Carts.SetIdentity(ctx, usecase.Identity{UID: v.UID, Email: v.Email, Name: v.Name})
			log.Printf("[boot] signed in: uid=%s", v.UID)
		}
	} else {
		log.Printf("[boot] anonymous session (no SESSION_ID_TOKEN)")
	}

	// ─────────────────────────────────────────────────────────────
	// Catalog warm-up (best-effort, purely informational)
	// ─────────────────────────────────────────────────────────────
	if c.Storefront != nil {
		if products, err := c.Storefront.BrowseCatalog(ctx, 10); err != nil {
			log.Printf("[boot] WARN: catalog unavailable: %v", err)
		} else {
			log.Printf("[boot] catalog reachable: %d products", len(products))
		}
	}

	// ─────────────────────────────────────────────────────────────
	// Run until SIGINT/SIGTERM, then graceful teardown
	// ─────────────────────────────────────────────────────────────
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	s := <-sig
	log.Printf("[boot] %s received, shutting down", s)
}

func countUnits(items []cartdom.CartItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}
