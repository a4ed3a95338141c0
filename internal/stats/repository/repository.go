// Package repository provides the read-only source readers the stats facade
// aggregates over. The store is never filtered by time window here; window
// semantics stay centralized and testable in the domain package. Status
// pre-filtering and limits are offered purely for efficiency.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"zumarlaw_backend/internal/stats/domain"
	"zumarlaw_backend/internal/stats/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo reads the three engagement collections and payroll.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new stats repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Sources returns the three source readers for the stats facade.
func (r *Repo) Sources() service.Sources {
	return service.Sources{
		Direct:    &sourceReader{repo: r, source: domain.SourceDirect},
		Manual:    &sourceReader{repo: r, source: domain.SourceManual},
		Converted: &sourceReader{repo: r, source: domain.SourceConverted},
	}
}

// sourceReader adapts one collection to the facade's SourceReader port.
type sourceReader struct {
	repo   *Repo
	source domain.SourceKind
}

func (s *sourceReader) List(ctx context.Context, opts service.ListOptions) ([]domain.RawEngagement, error) {
	return s.repo.listSource(ctx, s.source, opts)
}

// sourceTables maps a source kind to its table and title column. The three
// collections were never unified in storage; each keeps its own shape.
var sourceTables = map[domain.SourceKind]struct {
	table       string
	titleColumn string
}{
	domain.SourceDirect:    {table: "direct_services", titleColumn: "service_title"},
	domain.SourceManual:    {table: "manual_submissions", titleColumn: "service_type"},
	domain.SourceConverted: {table: "converted_leads", titleColumn: "service"},
}

func (r *Repo) listSource(ctx context.Context, source domain.SourceKind, opts service.ListOptions) ([]domain.RawEngagement, error) {
	meta, ok := sourceTables[source]
	if !ok {
		return nil, fmt.Errorf("unknown engagement source %q", source)
	}

	query := fmt.Sprintf(`
		SELECT id, client_name, %s, status, payment_amount, fields, certificate, assigned_to, created_at, updated_at
		FROM %s`, meta.titleColumn, meta.table)

	args := make([]interface{}, 0, 2)
	if opts.Status != nil {
		args = append(args, string(*opts.Status))
		query += fmt.Sprintf(" WHERE lower(status) = $%d", len(args))
	}
	query += " ORDER BY COALESCE(updated_at, created_at) DESC NULLS LAST"
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", meta.table, err)
	}
	defer rows.Close()

	var records []domain.RawEngagement
	for rows.Next() {
		var (
			raw           domain.RawEngagement
			clientName    *string
			title         *string
			status        *string
			paymentAmount *string
			fields        []byte
			certificate   *string
			assignedTo    *string
			createdAt     *time.Time
			updatedAt     *time.Time
		)
		if err := rows.Scan(&raw.ID, &clientName, &title, &status, &paymentAmount,
			&fields, &certificate, &assignedTo, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan %s: %w", meta.table, err)
		}

		raw.Source = source
		switch source {
		case domain.SourceDirect:
			raw.ServiceTitle = deref(title)
		case domain.SourceManual:
			raw.ServiceType = deref(title)
		case domain.SourceConverted:
			raw.Service = deref(title)
		}
		raw.ClientName = deref(clientName)
		raw.Status = deref(status)
		if paymentAmount != nil {
			raw.PaymentAmount = *paymentAmount
		}
		if len(fields) > 0 {
			// Free-form JSONB; a decode failure just leaves Fields nil and the
			// price chain moves past the nested candidates.
			_ = json.Unmarshal(fields, &raw.Fields)
		}
		raw.Certificate = deref(certificate)
		raw.AssignedTo = deref(assignedTo)
		raw.CreatedAt = createdAt
		raw.UpdatedAt = updatedAt

		records = append(records, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", meta.table, err)
	}

	return records, nil
}

// ListSalaries returns payroll payments, most recent first.
func (r *Repo) ListSalaries(ctx context.Context) ([]service.SalaryRecord, error) {
	query := `
		SELECT id, employee_name, salary, created_at
		FROM payrolls
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list payrolls: %w", err)
	}
	defer rows.Close()

	var records []service.SalaryRecord
	for rows.Next() {
		var record service.SalaryRecord
		if err := rows.Scan(&record.ID, &record.EmployeeName, &record.Salary, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payroll: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list payrolls: %w", err)
	}

	return records, nil
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

// Compile-time check that Repo satisfies the payroll port.
var _ service.PayrollReader = (*Repo)(nil)
