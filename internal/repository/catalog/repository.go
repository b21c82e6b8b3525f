package catalog

import (
	"context"

	"techfix-shop/internal/domain"
)

// Repository persists the single catalog document. The document is always
// read and written wholesale; its version is the server-side updated_at
// timestamp.
type Repository interface {
	Get(ctx context.Context) (*domain.CatalogDocument, error)
	Put(ctx context.Context, doc domain.CatalogDocument) (*domain.CatalogDocument, error)
}
