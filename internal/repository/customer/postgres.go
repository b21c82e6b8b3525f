package customer

import (
	"context"
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

func (r *postgresRepo) Create(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	const q = `
INSERT INTO customers (email, password_hash, first_name, last_name, phone, role)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id::text, email, password_hash, first_name, last_name, COALESCE(phone, ''), role, created_at
`
	return r.scanCustomer(r.pool.QueryRow(
		ctx,
		q,
		strings.ToLower(c.Email),
		c.PasswordHash,
		c.FirstName,
		c.LastName,
		c.Phone,
		c.Role,
	))
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	const q = `
SELECT id::text, email, password_hash, first_name, last_name, COALESCE(phone, ''), role, created_at
FROM customers
WHERE lower(email) = lower($1)
LIMIT 1
`
	return r.scanCustomer(r.pool.QueryRow(ctx, q, email))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	const q = `
SELECT id::text, email, password_hash, first_name, last_name, COALESCE(phone, ''), role, created_at
FROM customers
WHERE id = $1
LIMIT 1
`
	return r.scanCustomer(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(
		&c.ID,
		&c.Email,
		&c.PasswordHash,
		&c.FirstName,
		&c.LastName,
		&c.Phone,
		&c.Role,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("customer repo: scan error=%v", err)
		return nil, err
	}
	return &c, nil
}
