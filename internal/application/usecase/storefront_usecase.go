// internal/application/usecase/storefront_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"

	cartdom "hearthwood/internal/domain/cart"
	catalogdom "hearthwood/internal/domain/catalog"
)

var ErrStorefrontInvalidArgument = errors.New("storefront_usecase: invalid argument")

// StorefrontUsecase glues the read-only catalog to the cart: look a product
// up, freeze its price/name/image into a line snapshot, and add it.
type StorefrontUsecase struct {
	catalog catalogdom.Reader
	carts   *CartService
}

func NewStorefrontUsecase(catalog catalogdom.Reader, carts *CartService) *StorefrontUsecase {
	return &StorefrontUsecase{catalog: catalog, carts: carts}
}

// AddProductToCart resolves productID in the catalog and adds qty of it.
// Returns the line snapshot that went into the cart.
func (uc *StorefrontUsecase) AddProductToCart(ctx context.Context, productID string, qty int) (cartdom.CartItem, error) {
	pid := strings.TrimSpace(productID)
	if pid == "" {
		return cartdom.CartItem{}, ErrStorefrontInvalidArgument
	}

	p, err := uc.catalog.GetByID(ctx, pid)
	if err != nil {
		return cartdom.CartItem{}, err
	}

	line := p.CartLine()
	uc.carts.AddItem(line, qty)
	return line, nil
}

// BrowseCatalog is a pass-through listing for the storefront.
func (uc *StorefrontUsecase) BrowseCatalog(ctx context.Context, limit int) ([]catalogdom.Product, error) {
	return uc.catalog.List(ctx, limit)
}
