package order

import (
	"context"

	"techfix-shop/internal/domain"
)

// Repository persists submitted orders. Orders are frozen at creation;
// UpdateStatus is the only mutation.
type Repository interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	GetByNumber(ctx context.Context, number, email string) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}
