package cart

import (
	"context"

	"techfix-shop/internal/domain"
)

// Repository persists cart items per customer session. The database is the
// authority for the cart: concurrent tabs of one session go through
// row-level operations here, so an append can never be lost and removing an
// already-removed item is a no-op rather than an error.
type Repository interface {
	ListBySession(ctx context.Context, sessionID string) ([]domain.CartItem, error)
	Add(ctx context.Context, sessionID string, item domain.CartItem) (*domain.CartItem, error)
	Remove(ctx context.Context, sessionID, itemID string) error
	Clear(ctx context.Context, sessionID string) error
}
