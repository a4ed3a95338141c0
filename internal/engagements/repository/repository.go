// Package repository persists the three engagement source collections. The
// collections keep their historical, independently-shaped schemas; only this
// package knows which table and title column each source uses.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"zumarlaw_backend/platform/apperr"
)

const engagementNotFoundMessage = "engagement not found"

// Engagement is one record from any of the three collections.
type Engagement struct {
	ID            uuid.UUID
	Source        string
	ClientName    string
	ClientEmail   string
	Title         string
	Status        string
	PaymentAmount *string
	Fields        map[string]interface{}
	Certificate   string
	AssignedTo    string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreateParams are the inputs for a new engagement.
type CreateParams struct {
	Source        string
	ClientName    string
	ClientEmail   string
	Title         string
	PaymentAmount *string
	Fields        map[string]interface{}
	AssignedTo    string
}

// ListParams filter a listing.
type ListParams struct {
	Source string
	Status string
	Offset int
	Limit  int
}

type sourceMeta struct {
	table       string
	titleColumn string
}

var sourceTables = map[string]sourceMeta{
	"direct":    {table: "direct_services", titleColumn: "service_title"},
	"manual":    {table: "manual_submissions", titleColumn: "service_type"},
	"converted": {table: "converted_leads", titleColumn: "service"},
}

func metaFor(source string) (sourceMeta, error) {
	meta, ok := sourceTables[source]
	if !ok {
		return sourceMeta{}, apperr.Validation(fmt.Sprintf("unknown engagement source %q", source))
	}
	return meta, nil
}

// Repo implements the engagements repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new engagements repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new engagement into its source collection.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Engagement, error) {
	meta, err := metaFor(params.Source)
	if err != nil {
		return Engagement{}, err
	}

	fields, err := marshalFields(params.Fields)
	if err != nil {
		return Engagement{}, err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, client_name, client_email, %s, status, payment_amount, fields, assigned_to)
		VALUES ($1, $2, $3, $4, 'pending', $5, $6, $7)
		RETURNING created_at, updated_at`, meta.table, meta.titleColumn)

	engagement := Engagement{
		ID:            uuid.New(),
		Source:        params.Source,
		ClientName:    params.ClientName,
		ClientEmail:   params.ClientEmail,
		Title:         params.Title,
		Status:        "pending",
		PaymentAmount: params.PaymentAmount,
		Fields:        params.Fields,
		AssignedTo:    params.AssignedTo,
	}

	if err := r.pool.QueryRow(ctx, query,
		engagement.ID, params.ClientName, params.ClientEmail, params.Title,
		params.PaymentAmount, fields, params.AssignedTo,
	).Scan(&engagement.CreatedAt, &engagement.UpdatedAt); err != nil {
		return Engagement{}, fmt.Errorf("create %s engagement: %w", params.Source, err)
	}

	return engagement, nil
}

// GetByID fetches one engagement from its source collection.
func (r *Repo) GetByID(ctx context.Context, source string, id uuid.UUID) (Engagement, error) {
	meta, err := metaFor(source)
	if err != nil {
		return Engagement{}, err
	}

	query := fmt.Sprintf(`
		SELECT id, client_name, client_email, %s, status, payment_amount, fields, certificate, assigned_to, created_at, updated_at
		FROM %s WHERE id = $1`, meta.titleColumn, meta.table)

	engagement, err := r.scanOne(r.pool.QueryRow(ctx, query, id), source)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Engagement{}, apperr.NotFound(engagementNotFoundMessage)
		}
		return Engagement{}, fmt.Errorf("get %s engagement: %w", source, err)
	}
	return engagement, nil
}

// List returns a page of engagements from one source collection.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Engagement, int, error) {
	meta, err := metaFor(params.Source)
	if err != nil {
		return nil, 0, err
	}

	where := ""
	args := []interface{}{}
	if params.Status != "" {
		args = append(args, params.Status)
		where = " WHERE lower(status) = $1"
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s%s`, meta.table, where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count %s engagements: %w", params.Source, err)
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT id, client_name, client_email, %s, status, payment_amount, fields, certificate, assigned_to, created_at, updated_at
		FROM %s%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, meta.titleColumn, meta.table, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s engagements: %w", params.Source, err)
	}
	defer rows.Close()

	var engagements []Engagement
	for rows.Next() {
		engagement, err := r.scanOne(rows, params.Source)
		if err != nil {
			return nil, 0, fmt.Errorf("scan %s engagement: %w", params.Source, err)
		}
		engagements = append(engagements, engagement)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list %s engagements: %w", params.Source, err)
	}

	return engagements, total, nil
}

// UpdateStatus transitions an engagement and returns the updated record.
func (r *Repo) UpdateStatus(ctx context.Context, source string, id uuid.UUID, status string) (Engagement, error) {
	meta, err := metaFor(source)
	if err != nil {
		return Engagement{}, err
	}

	query := fmt.Sprintf(`
		UPDATE %s SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, client_name, client_email, %s, status, payment_amount, fields, certificate, assigned_to, created_at, updated_at`,
		meta.table, meta.titleColumn)

	engagement, err := r.scanOne(r.pool.QueryRow(ctx, query, id, status), source)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Engagement{}, apperr.NotFound(engagementNotFoundMessage)
		}
		return Engagement{}, fmt.Errorf("update %s engagement status: %w", source, err)
	}
	return engagement, nil
}

// Assign sets the staff member responsible for an engagement.
func (r *Repo) Assign(ctx context.Context, source string, id uuid.UUID, assignedTo string) error {
	meta, err := metaFor(source)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s SET assigned_to = $2, updated_at = now() WHERE id = $1`, meta.table)
	result, err := r.pool.Exec(ctx, query, id, assignedTo)
	if err != nil {
		return fmt.Errorf("assign %s engagement: %w", source, err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(engagementNotFoundMessage)
	}
	return nil
}

// SetCertificate records the uploaded certificate object key.
func (r *Repo) SetCertificate(ctx context.Context, source string, id uuid.UUID, fileName string) error {
	meta, err := metaFor(source)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s SET certificate = $2, updated_at = now() WHERE id = $1`, meta.table)
	result, err := r.pool.Exec(ctx, query, id, fileName)
	if err != nil {
		return fmt.Errorf("set %s engagement certificate: %w", source, err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(engagementNotFoundMessage)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repo) scanOne(row rowScanner, source string) (Engagement, error) {
	var (
		engagement  Engagement
		clientEmail *string
		title       *string
		fields      []byte
		certificate *string
		assignedTo  *string
	)
	if err := row.Scan(&engagement.ID, &engagement.ClientName, &clientEmail, &title,
		&engagement.Status, &engagement.PaymentAmount, &fields, &certificate,
		&assignedTo, &engagement.CreatedAt, &engagement.UpdatedAt); err != nil {
		return Engagement{}, err
	}

	engagement.Source = source
	if clientEmail != nil {
		engagement.ClientEmail = *clientEmail
	}
	if title != nil {
		engagement.Title = *title
	}
	if len(fields) > 0 {
		_ = json.Unmarshal(fields, &engagement.Fields)
	}
	if certificate != nil {
		engagement.Certificate = *certificate
	}
	if assignedTo != nil {
		engagement.AssignedTo = *assignedTo
	}
	return engagement, nil
}

func marshalFields(fields map[string]interface{}) ([]byte, error) {
	if fields == nil {
		return nil, nil
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, apperr.Validation("fields must be JSON-serializable")
	}
	return raw, nil
}
