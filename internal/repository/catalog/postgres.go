package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"

	"techfix-shop/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres. The catalog lives in
// a single row so reads and writes are atomic without explicit locking.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Get(ctx context.Context) (*domain.CatalogDocument, error) {
	const q = `
SELECT doc, updated_at
FROM catalog
WHERE id = 1
`
	var raw []byte
	var doc domain.CatalogDocument
	err := r.pool.QueryRow(ctx, q).Scan(&raw, &doc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("catalog repo: get error=%v", err)
		return nil, err
	}
	updatedAt := doc.UpdatedAt
	if err := json.Unmarshal(raw, &doc); err != nil {
		r.logger.Printf("catalog repo: decode error=%v", err)
		return nil, err
	}
	doc.UpdatedAt = updatedAt
	return &doc, nil
}

func (r *postgresRepo) Put(ctx context.Context, doc domain.CatalogDocument) (*domain.CatalogDocument, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	const q = `
INSERT INTO catalog (id, doc, updated_at)
VALUES (1, $1, now())
ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()
RETURNING updated_at
`
	if err := r.pool.QueryRow(ctx, q, raw).Scan(&doc.UpdatedAt); err != nil {
		r.logger.Printf("catalog repo: put error=%v", err)
		return nil, err
	}
	r.logger.Printf("catalog repo: document updated version=%s", doc.UpdatedAt.Format("2006-01-02T15:04:05.000Z07:00"))
	return &doc, nil
}
