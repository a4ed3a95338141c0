package domain

import (
	"reflect"
	"testing"
	"time"
)

func TestCountByStatus(t *testing.T) {
	views := []EngagementView{
		{Status: StatusCompleted},
		{Status: StatusCompleted},
		{Status: StatusPending},
		{Status: StatusProcessing},
		{Status: StatusRejected},
	}

	counts := CountByStatus(views)
	want := StatusCounts{Pending: 1, Processing: 1, Completed: 2, Rejected: 1}
	if counts != want {
		t.Errorf("got %+v, want %+v", counts, want)
	}
	if counts.Total() != 5 {
		t.Errorf("total: got %d, want 5", counts.Total())
	}
}

func TestRevenueByService(t *testing.T) {
	views := []EngagementView{
		{Title: "Tax Filing", Status: StatusCompleted, Price: 1000},
		{Title: "Visa Consultancy", Status: StatusPending, Price: 2000},
		{Title: "NTN Registration", Status: StatusCompleted, Price: 500},
		{Title: "Tax Filing", Status: StatusCompleted, Price: 1500},
		{Title: "Tax Filing", Status: StatusRejected, Price: 9999},
	}

	got := RevenueByService(views)
	want := []ServiceRevenue{
		{Title: "Tax Filing", Amount: 2500},
		{Title: "NTN Registration", Amount: 500},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestRevenueByServiceKeepsInsertionOrder(t *testing.T) {
	views := []EngagementView{
		{Title: "Zebra", Status: StatusCompleted, Price: 1},
		{Title: "Alpha", Status: StatusCompleted, Price: 2},
		{Title: "Zebra", Status: StatusCompleted, Price: 3},
	}

	got := RevenueByService(views)
	if len(got) != 2 || got[0].Title != "Zebra" || got[1].Title != "Alpha" {
		t.Errorf("expected first-seen order [Zebra Alpha], got %+v", got)
	}
}

func TestComputeTotals(t *testing.T) {
	views := []EngagementView{
		{Status: StatusCompleted, Price: 1000},
		{Status: StatusCompleted, Price: 1500},
		{Status: StatusPending, Price: 2000},
		{Status: StatusProcessing, Price: 700}, // excluded from pendingAmount
		{Status: StatusRejected, Price: 300},
	}

	totals := ComputeTotals(views, 500)
	want := Totals{TotalRevenue: 2500, PendingAmount: 2000, SalaryPaid: 500, TotalProfit: 2000}
	if totals != want {
		t.Errorf("got %+v, want %+v", totals, want)
	}
}

func TestComputeTotalsNegativeProfit(t *testing.T) {
	totals := ComputeTotals([]EngagementView{{Status: StatusCompleted, Price: 100}}, 5000)
	if totals.TotalProfit != -4900 {
		t.Errorf("profit: got %d, want -4900", totals.TotalProfit)
	}
}

func TestFilterWindow(t *testing.T) {
	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)
	window := &Window{Start: start, End: end}

	views := []EngagementView{
		{ID: "in-start", Timestamp: start},
		{ID: "in-end", Timestamp: end},
		{ID: "before", Timestamp: start.Add(-time.Second)},
		{ID: "after", Timestamp: end.Add(time.Second)},
	}

	got := FilterWindow(views, window)
	if len(got) != 2 || got[0].ID != "in-start" || got[1].ID != "in-end" {
		t.Errorf("got %+v, want the two boundary views", got)
	}

	if all := FilterWindow(views, nil); len(all) != len(views) {
		t.Errorf("nil window filtered records: got %d, want %d", len(all), len(views))
	}
}

func TestMergeLatest(t *testing.T) {
	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	at := func(d int) time.Time { return base.AddDate(0, 0, d) }

	views := []EngagementView{
		{ID: "d1", Source: SourceDirect, Timestamp: at(1)},
		{ID: "m1", Source: SourceManual, Timestamp: at(4)},
		{ID: "c1", Source: SourceConverted, Timestamp: at(2)},
		{ID: "d2", Source: SourceDirect, Timestamp: at(3)},
	}

	got := MergeLatest(views, 2)
	if len(got) != 2 || got[0].ID != "m1" || got[1].ID != "d2" {
		t.Errorf("expected [m1 d2], got %+v", got)
	}
}

func TestMergeLatestExcludesMissingTimestamps(t *testing.T) {
	now := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	views := []EngagementView{
		{ID: "flagged", Timestamp: now, TimestampMissing: true},
		{ID: "real", Timestamp: now.AddDate(0, 0, -5)},
	}

	got := MergeLatest(views, 2)
	if len(got) != 1 || got[0].ID != "real" {
		t.Errorf("expected only the real record, got %+v", got)
	}
}

func TestMergeLatestTieBreaks(t *testing.T) {
	stamp := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	views := []EngagementView{
		{ID: "b", Source: SourceManual, Timestamp: stamp},
		{ID: "a", Source: SourceManual, Timestamp: stamp},
		{ID: "z", Source: SourceConverted, Timestamp: stamp},
	}

	got := MergeLatest(views, 3)
	// Ties order by source kind, then ID.
	if got[0].ID != "z" || got[1].ID != "a" || got[2].ID != "b" {
		t.Errorf("expected [z a b], got %+v", got)
	}
}

func TestMergeLatestBounds(t *testing.T) {
	views := []EngagementView{{ID: "only", Timestamp: time.Now()}}

	if got := MergeLatest(views, 5); len(got) != 1 {
		t.Errorf("n beyond len: got %d records, want 1", len(got))
	}
	if got := MergeLatest(views, 0); got != nil {
		t.Errorf("n=0: got %+v, want nil", got)
	}
}
