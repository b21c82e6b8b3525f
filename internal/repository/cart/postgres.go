package cart

import (
	"context"
	"encoding/json"
	"io"
	"log"

	"techfix-shop/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) ListBySession(ctx context.Context, sessionID string) ([]domain.CartItem, error) {
	const q = `
SELECT id::text, kind, title, COALESCE(description, ''), price, meta, created_at
FROM cart_items
WHERE session_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q, sessionID)
	if err != nil {
		r.logger.Printf("cart repo: list session=%s error=%v", sessionID, err)
		return nil, err
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var it domain.CartItem
		var metaJSON []byte
		if err := rows.Scan(&it.ID, &it.Kind, &it.Title, &it.Description, &it.Price, &metaJSON, &it.CreatedAt); err != nil {
			return nil, err
		}
		if len(metaJSON) > 0 {
			if err := json.Unmarshal(metaJSON, &it.Meta); err != nil {
				r.logger.Printf("cart repo: decode meta id=%s err=%v", it.ID, err)
				return nil, err
			}
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *postgresRepo) Add(ctx context.Context, sessionID string, item domain.CartItem) (*domain.CartItem, error) {
	metaJSON, err := json.Marshal(item.Meta)
	if err != nil {
		return nil, err
	}
	const q = `
INSERT INTO cart_items (session_id, kind, title, description, price, meta)
VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
RETURNING id::text, created_at
`
	if err := r.pool.QueryRow(ctx, q, sessionID, item.Kind, item.Title, item.Description, item.Price, metaJSON).Scan(&item.ID, &item.CreatedAt); err != nil {
		r.logger.Printf("cart repo: add session=%s error=%v", sessionID, err)
		return nil, err
	}
	r.logger.Printf("cart repo: added session=%s id=%s kind=%s", sessionID, item.ID, item.Kind)
	return &item, nil
}

// Remove deletes one item. Removing an id that is already gone is not an
// error: a second tab may have removed it first.
func (r *postgresRepo) Remove(ctx context.Context, sessionID, itemID string) error {
	const q = `
DELETE FROM cart_items
WHERE session_id = $1 AND id = $2
`
	cmd, err := r.pool.Exec(ctx, q, sessionID, itemID)
	if err != nil {
		r.logger.Printf("cart repo: remove session=%s id=%s error=%v", sessionID, itemID, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		r.logger.Printf("cart repo: remove session=%s id=%s already gone", sessionID, itemID)
	}
	return nil
}

func (r *postgresRepo) Clear(ctx context.Context, sessionID string) error {
	const q = `
DELETE FROM cart_items
WHERE session_id = $1
`
	if _, err := r.pool.Exec(ctx, q, sessionID); err != nil {
		r.logger.Printf("cart repo: clear session=%s error=%v", sessionID, err)
		return err
	}
	return nil
}
