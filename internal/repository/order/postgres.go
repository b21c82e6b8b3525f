package order

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"strings"

	"techfix-shop/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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

const orderColumns = `id::text, number, email, phone, first_name, last_name,
       COALESCE(street, ''), COALESCE(city, ''), COALESCE(zip, ''),
       service_type, payment_method, items, subtotal, delivery_fee, payment_fee, total,
       status, pickup_point, COALESCE(note, ''), created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return nil, err
	}
	var pickupJSON []byte
	if o.PickupPoint != nil {
		if pickupJSON, err = json.Marshal(o.PickupPoint); err != nil {
			return nil, err
		}
	}
	const q = `
INSERT INTO orders (
    number, email, phone, first_name, last_name, street, city, zip,
    service_type, payment_method, items, subtotal, delivery_fee, payment_fee, total,
    status, pickup_point, note
) VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''),
          $9, $10, $11, $12, $13, $14, $15, $16, $17, NULLIF($18, ''))
RETURNING ` + orderColumns + `
`
	row := r.pool.QueryRow(ctx, q,
		o.Number,
		strings.ToLower(o.Email),
		o.Phone,
		o.FirstName,
		o.LastName,
		o.Street,
		o.City,
		o.Zip,
		o.ServiceType,
		o.PaymentMethod,
		itemsJSON,
		o.Subtotal,
		o.DeliveryFee,
		o.PaymentFee,
		o.Total,
		o.Status,
		pickupJSON,
		o.Note,
	)
	created, err := r.scanOrder(row)
	if err != nil {
		r.logger.Printf("order repo: create number=%s error=%v", o.Number, err)
		return nil, err
	}
	r.logger.Printf("order repo: created number=%s total=%.2f", created.Number, created.Total)
	return created, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return r.scanOrder(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) GetByNumber(ctx context.Context, number, email string) (*domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE number = $1 AND lower(email) = lower($2)`
	return r.scanOrder(r.pool.QueryRow(ctx, q, number, email))
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	return r.listOrders(ctx, q)
}

func (r *postgresRepo) ListByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE lower(email) = lower($1) ORDER BY created_at DESC`
	return r.listOrders(ctx, q, email)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	const q = `
UPDATE orders
SET status = $1, updated_at = now()
WHERE id = $2
RETURNING ` + orderColumns + `
`
	updated, err := r.scanOrder(r.pool.QueryRow(ctx, q, status, id))
	if err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: status number=%s -> %s", updated.Number, status)
	return updated, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) listOrders(ctx context.Context, q string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("order repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		o, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var itemsJSON, pickupJSON []byte
	err := row.Scan(
		&o.ID,
		&o.Number,
		&o.Email,
		&o.Phone,
		&o.FirstName,
		&o.LastName,
		&o.Street,
		&o.City,
		&o.Zip,
		&o.ServiceType,
		&o.PaymentMethod,
		&itemsJSON,
		&o.Subtotal,
		&o.DeliveryFee,
		&o.PaymentFee,
		&o.Total,
		&o.Status,
		&pickupJSON,
		&o.Note,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
			r.logger.Printf("order repo: decode items id=%s err=%v", o.ID, err)
			return nil, err
		}
	}
	if len(pickupJSON) > 0 {
		if err := json.Unmarshal(pickupJSON, &o.PickupPoint); err != nil {
			r.logger.Printf("order repo: decode pickup point id=%s err=%v", o.ID, err)
			return nil, err
		}
	}
	return &o, nil
}
