// Package repository persists the static service price catalog.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"zumarlaw_backend/platform/apperr"
)

const priceNotFoundMessage = "service price not found"

// ServicePrice is one catalog row.
type ServicePrice struct {
	Title string
	Price int64
}

// Repo implements the price list repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new price list repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// List returns all catalog entries ordered by title.
func (r *Repo) List(ctx context.Context) ([]ServicePrice, error) {
	rows, err := r.pool.Query(ctx, `SELECT title, price FROM service_prices ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("list service prices: %w", err)
	}
	defer rows.Close()

	var prices []ServicePrice
	for rows.Next() {
		var price ServicePrice
		if err := rows.Scan(&price.Title, &price.Price); err != nil {
			return nil, fmt.Errorf("scan service price: %w", err)
		}
		prices = append(prices, price)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list service prices: %w", err)
	}
	return prices, nil
}

// Upsert creates or updates one catalog entry.
func (r *Repo) Upsert(ctx context.Context, price ServicePrice) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO service_prices (title, price)
		VALUES ($1, $2)
		ON CONFLICT (title) DO UPDATE SET price = EXCLUDED.price, updated_at = now()`,
		price.Title, price.Price)
	if err != nil {
		return fmt.Errorf("upsert service price: %w", err)
	}
	return nil
}

// Delete removes one catalog entry.
func (r *Repo) Delete(ctx context.Context, title string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM service_prices WHERE title = $1`, title)
	if err != nil {
		return fmt.Errorf("delete service price: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(priceNotFoundMessage)
	}
	return nil
}

// Get fetches one catalog entry.
func (r *Repo) Get(ctx context.Context, title string) (ServicePrice, error) {
	var price ServicePrice
	err := r.pool.QueryRow(ctx, `SELECT title, price FROM service_prices WHERE title = $1`, title).
		Scan(&price.Title, &price.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ServicePrice{}, apperr.NotFound(priceNotFoundMessage)
		}
		return ServicePrice{}, fmt.Errorf("get service price: %w", err)
	}
	return price, nil
}

// Count returns the number of catalog entries.
func (r *Repo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM service_prices`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count service prices: %w", err)
	}
	return count, nil
}
