// Package domain contains the pure reporting logic for service engagements:
// normalization of the three source record shapes, price resolution, time
// windows, and aggregation. Nothing in this package performs I/O.
package domain

import (
	"strings"
	"time"
)

// SourceKind identifies which source collection an engagement came from.
// The tag is preserved end-to-end so aggregates can be decomposed by source.
type SourceKind string

const (
	// SourceDirect is a service booked directly by a client.
	SourceDirect SourceKind = "direct"
	// SourceManual is a paperwork case submitted manually by staff.
	SourceManual SourceKind = "manual"
	// SourceConverted is a sales lead converted into a service.
	SourceConverted SourceKind = "converted"
)

// Status is one of the four canonical engagement statuses. No raw status
// value ever leaks past Normalize.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusRejected   Status = "rejected"
)

// DefaultTitle is used when no source-specific title field is populated.
const DefaultTitle = "Other"

// RawEngagement is the tagged union of the three source record shapes.
// Only the field matching Source carries the service name; the rest stay
// empty. PaymentAmount and Fields values are deliberately untyped because
// the legacy collections stored them as strings, numbers, or not at all.
type RawEngagement struct {
	ID     string
	Source SourceKind

	ServiceTitle string // direct
	ServiceType  string // manual
	Service      string // converted

	Status        string
	PaymentAmount any
	Fields        map[string]any
	CreatedAt     *time.Time
	UpdatedAt     *time.Time

	// Passed through untouched.
	Certificate string
	AssignedTo  string
	ClientName  string
}

// EngagementView is the canonical, immutable view of one engagement. It is
// request-scoped: built from freshly read raw records, never persisted.
type EngagementView struct {
	ID          string
	Source      SourceKind
	Title       string
	Status      Status
	Timestamp   time.Time
	Price       int64
	Certificate string
	AssignedTo  string
	ClientName  string

	// TimestampMissing is set in strict mode when neither createdAt nor
	// updatedAt was usable. Such views still count in histograms but are
	// excluded from recency ordering.
	TimestampMissing bool
}

// NormalizeOptions control timestamp resolution.
type NormalizeOptions struct {
	// PreferUpdatedAt selects updatedAt over createdAt, used for
	// "latest completed" queries where completion time matters.
	PreferUpdatedAt bool
	// StrictTimestamps flags records with unusable timestamps instead of
	// silently substituting the reference instant.
	StrictTimestamps bool
	// Now is the reference instant substituted for missing timestamps in
	// tolerant mode. Zero means time.Now().
	Now time.Time
}

// Normalize maps a raw engagement record into its canonical view. It is pure
// and total: every input, including the zero value, produces exactly one
// view with a canonical status. It never mutates raw.
//
// Price is not resolved here; see ResolvePrice.
func Normalize(raw RawEngagement, opts NormalizeOptions) EngagementView {
	view := EngagementView{
		ID:          raw.ID,
		Source:      raw.Source,
		Title:       resolveTitle(raw),
		Status:      resolveStatus(raw.Status),
		Certificate: raw.Certificate,
		AssignedTo:  raw.AssignedTo,
		ClientName:  raw.ClientName,
	}

	view.Timestamp, view.TimestampMissing = resolveTimestamp(raw, opts)
	return view
}

func resolveTitle(raw RawEngagement) string {
	var title string
	switch raw.Source {
	case SourceDirect:
		title = raw.ServiceTitle
	case SourceManual:
		title = raw.ServiceType
	case SourceConverted:
		title = raw.Service
	default:
		// Unknown provenance: take whichever field is populated.
		for _, candidate := range []string{raw.ServiceTitle, raw.ServiceType, raw.Service} {
			if strings.TrimSpace(candidate) != "" {
				title = candidate
				break
			}
		}
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return DefaultTitle
	}
	return title
}

func resolveStatus(raw string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusPending:
		return StatusPending
	case StatusProcessing:
		return StatusProcessing
	case StatusCompleted:
		return StatusCompleted
	case StatusRejected:
		return StatusRejected
	default:
		return StatusPending
	}
}

func resolveTimestamp(raw RawEngagement, opts NormalizeOptions) (time.Time, bool) {
	if opts.PreferUpdatedAt && validTime(raw.UpdatedAt) {
		return *raw.UpdatedAt, false
	}
	if validTime(raw.CreatedAt) {
		return *raw.CreatedAt, false
	}
	// Latest-completed queries fall back to updatedAt even outside
	// PreferUpdatedAt before giving up entirely.
	if validTime(raw.UpdatedAt) {
		return *raw.UpdatedAt, false
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	if opts.StrictTimestamps {
		return now, true
	}
	return now, false
}

func validTime(t *time.Time) bool {
	return t != nil && !t.IsZero()
}
