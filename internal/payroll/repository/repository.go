// Package repository persists salary payments.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"zumarlaw_backend/platform/apperr"
)

// Payroll is one recorded salary payment.
type Payroll struct {
	ID           uuid.UUID
	EmployeeName string
	Salary       int64
	CreatedAt    time.Time
}

// ListParams bound a payroll listing to a time range. Zero values mean
// unbounded.
type ListParams struct {
	From time.Time
	To   time.Time
}

// Repo implements the payroll repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new payroll repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create records a salary payment.
func (r *Repo) Create(ctx context.Context, employeeName string, salary int64) (Payroll, error) {
	payroll := Payroll{
		ID:           uuid.New(),
		EmployeeName: employeeName,
		Salary:       salary,
	}

	query := `
		INSERT INTO payrolls (id, employee_name, salary)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	if err := r.pool.QueryRow(ctx, query, payroll.ID, employeeName, salary).Scan(&payroll.CreatedAt); err != nil {
		return Payroll{}, fmt.Errorf("create payroll: %w", err)
	}
	return payroll, nil
}

// List returns salary payments in the range, most recent first.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Payroll, error) {
	query := `
		SELECT id, employee_name, salary, created_at
		FROM payrolls`

	where := ""
	args := []interface{}{}
	if !params.From.IsZero() {
		args = append(args, params.From)
		where = fmt.Sprintf(" WHERE created_at >= $%d", len(args))
	}
	if !params.To.IsZero() {
		args = append(args, params.To)
		clause := "WHERE"
		if where != "" {
			clause = "AND"
		}
		where += fmt.Sprintf(" %s created_at <= $%d", clause, len(args))
	}
	query += where + " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payrolls: %w", err)
	}
	defer rows.Close()

	var payrolls []Payroll
	for rows.Next() {
		var payroll Payroll
		if err := rows.Scan(&payroll.ID, &payroll.EmployeeName, &payroll.Salary, &payroll.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payroll: %w", err)
		}
		payrolls = append(payrolls, payroll)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list payrolls: %w", err)
	}
	return payrolls, nil
}

// Delete removes one salary payment.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM payrolls WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payroll: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("payroll entry not found")
	}
	return nil
}
