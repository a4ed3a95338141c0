package domain

import (
	"testing"
	"time"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Status
	}{
		{"lowercase", "completed", StatusCompleted},
		{"capitalized", "Completed", StatusCompleted},
		{"whitespace", "  PENDING  ", StatusPending},
		{"processing", "Processing", StatusProcessing},
		{"rejected", "rejected", StatusRejected},
		{"unknown", "archived", StatusPending},
		{"empty", "", StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := Normalize(RawEngagement{Status: tt.raw}, NormalizeOptions{Now: time.Now()})
			if view.Status != tt.want {
				t.Errorf("status %q: got %q, want %q", tt.raw, view.Status, tt.want)
			}
		})
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name string
		raw  RawEngagement
		want string
	}{
		{"direct uses serviceTitle", RawEngagement{Source: SourceDirect, ServiceTitle: "Tax Filing"}, "Tax Filing"},
		{"manual uses serviceType", RawEngagement{Source: SourceManual, ServiceType: "NTN Registration"}, "NTN Registration"},
		{"converted uses service", RawEngagement{Source: SourceConverted, Service: "Visa Consultancy"}, "Visa Consultancy"},
		{"direct ignores other fields", RawEngagement{Source: SourceDirect, ServiceType: "Wrong", Service: "Wrong"}, DefaultTitle},
		{"whitespace trimmed", RawEngagement{Source: SourceDirect, ServiceTitle: "  Tax Filing  "}, "Tax Filing"},
		{"empty falls back", RawEngagement{Source: SourceManual}, DefaultTitle},
		{"unknown source takes populated field", RawEngagement{Source: "legacy", Service: "Court Marriage"}, "Court Marriage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := Normalize(tt.raw, NormalizeOptions{Now: time.Now()})
			if view.Title != tt.want {
				t.Errorf("got title %q, want %q", view.Title, tt.want)
			}
		})
	}
}

func TestNormalizeIsTotal(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	view := Normalize(RawEngagement{}, NormalizeOptions{Now: now})

	if view.Status != StatusPending {
		t.Errorf("zero value status: got %q, want %q", view.Status, StatusPending)
	}
	if view.Title != DefaultTitle {
		t.Errorf("zero value title: got %q, want %q", view.Title, DefaultTitle)
	}
	if !view.Timestamp.Equal(now) {
		t.Errorf("zero value timestamp: got %v, want %v", view.Timestamp, now)
	}
	if view.TimestampMissing {
		t.Error("tolerant mode must not flag the timestamp")
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	created := time.Date(2026, time.January, 5, 8, 0, 0, 0, time.UTC)
	raw := RawEngagement{
		ID:           "a1",
		Source:       SourceDirect,
		ServiceTitle: "  Tax Filing  ",
		Status:       "COMPLETED",
		CreatedAt:    &created,
	}

	first := Normalize(raw, NormalizeOptions{})
	second := Normalize(raw, NormalizeOptions{})

	if first != second {
		t.Errorf("normalize not deterministic: %+v vs %+v", first, second)
	}
	if raw.ServiceTitle != "  Tax Filing  " || raw.Status != "COMPLETED" {
		t.Error("normalize mutated its input")
	}
}

func TestNormalizeTimestampResolution(t *testing.T) {
	created := time.Date(2026, time.February, 1, 9, 0, 0, 0, time.UTC)
	updated := time.Date(2026, time.February, 3, 9, 0, 0, 0, time.UTC)
	now := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)
	var zero time.Time

	tests := []struct {
		name        string
		raw         RawEngagement
		opts        NormalizeOptions
		want        time.Time
		wantMissing bool
	}{
		{
			name: "default prefers createdAt",
			raw:  RawEngagement{CreatedAt: &created, UpdatedAt: &updated},
			opts: NormalizeOptions{Now: now},
			want: created,
		},
		{
			name: "preferUpdatedAt selects updatedAt",
			raw:  RawEngagement{CreatedAt: &created, UpdatedAt: &updated},
			opts: NormalizeOptions{PreferUpdatedAt: true, Now: now},
			want: updated,
		},
		{
			name: "preferUpdatedAt falls back to createdAt",
			raw:  RawEngagement{CreatedAt: &created},
			opts: NormalizeOptions{PreferUpdatedAt: true, Now: now},
			want: created,
		},
		{
			name: "updatedAt used when createdAt missing",
			raw:  RawEngagement{UpdatedAt: &updated},
			opts: NormalizeOptions{Now: now},
			want: updated,
		},
		{
			name: "zero-value createdAt is unusable",
			raw:  RawEngagement{CreatedAt: &zero},
			opts: NormalizeOptions{Now: now},
			want: now,
		},
		{
			name: "tolerant substitutes now",
			raw:  RawEngagement{},
			opts: NormalizeOptions{Now: now},
			want: now,
		},
		{
			name:        "strict flags missing",
			raw:         RawEngagement{},
			opts:        NormalizeOptions{StrictTimestamps: true, Now: now},
			want:        now,
			wantMissing: true,
		},
		{
			name: "strict leaves usable timestamps alone",
			raw:  RawEngagement{CreatedAt: &created},
			opts: NormalizeOptions{StrictTimestamps: true, Now: now},
			want: created,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := Normalize(tt.raw, tt.opts)
			if !view.Timestamp.Equal(tt.want) {
				t.Errorf("timestamp: got %v, want %v", view.Timestamp, tt.want)
			}
			if view.TimestampMissing != tt.wantMissing {
				t.Errorf("timestampMissing: got %v, want %v", view.TimestampMissing, tt.wantMissing)
			}
		})
	}
}
