package domain

import "sort"

// StatusCounts is the histogram of engagements per canonical status.
type StatusCounts struct {
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Completed  int `json:"completed"`
	Rejected   int `json:"rejected"`
}

// Total returns the number of engagements across all statuses.
func (c StatusCounts) Total() int {
	return c.Pending + c.Processing + c.Completed + c.Rejected
}

// CountByStatus builds the status histogram over the given views.
func CountByStatus(views []EngagementView) StatusCounts {
	var counts StatusCounts
	for _, view := range views {
		switch view.Status {
		case StatusProcessing:
			counts.Processing++
		case StatusCompleted:
			counts.Completed++
		case StatusRejected:
			counts.Rejected++
		default:
			counts.Pending++
		}
	}
	return counts
}

// ServiceRevenue is one title's summed revenue.
type ServiceRevenue struct {
	Title  string `json:"title"`
	Amount int64  `json:"amount"`
}

// RevenueByService sums price per title over completed views. Output order
// is first-seen insertion order of titles, which keeps the dashboard
// breakdown deterministic without imposing an alphabetical sort.
func RevenueByService(views []EngagementView) []ServiceRevenue {
	index := make(map[string]int)
	var result []ServiceRevenue

	for _, view := range views {
		if view.Status != StatusCompleted {
			continue
		}
		if i, seen := index[view.Title]; seen {
			result[i].Amount += view.Price
			continue
		}
		index[view.Title] = len(result)
		result = append(result, ServiceRevenue{Title: view.Title, Amount: view.Price})
	}

	return result
}

// Totals are the money aggregates for a window.
type Totals struct {
	TotalRevenue  int64 `json:"totalRevenue"`
	PendingAmount int64 `json:"pendingAmount"`
	SalaryPaid    int64 `json:"salaryPaid"`
	TotalProfit   int64 `json:"totalProfit"`
}

// ComputeTotals sums revenue over completed views and the amount owed over
// pending views. Only the pending bucket counts toward PendingAmount;
// processing and rejected are excluded, matching the firm's accounting
// convention. TotalProfit may go negative; that is valid output.
func ComputeTotals(views []EngagementView, salaryPaid int64) Totals {
	totals := Totals{SalaryPaid: salaryPaid}
	for _, view := range views {
		switch view.Status {
		case StatusCompleted:
			totals.TotalRevenue += view.Price
		case StatusPending:
			totals.PendingAmount += view.Price
		}
	}
	totals.TotalProfit = totals.TotalRevenue - salaryPaid
	return totals
}

// FilterWindow keeps the views whose timestamp falls inside the window.
// A nil window keeps everything.
func FilterWindow(views []EngagementView, window *Window) []EngagementView {
	if window == nil {
		return views
	}
	result := make([]EngagementView, 0, len(views))
	for _, view := range views {
		if window.Contains(view.Timestamp) {
			result = append(result, view)
		}
	}
	return result
}

// MergeLatest returns the n most recent views across all sources, ordered by
// timestamp descending with ties broken by source kind then ID for
// determinism. Views flagged TimestampMissing are excluded: their stamp is a
// substitute and would incorrectly float to the top.
//
// Callers must supply at least n candidates from each source; any single
// source could dominate the true top n.
func MergeLatest(views []EngagementView, n int) []EngagementView {
	if n <= 0 {
		return nil
	}

	candidates := make([]EngagementView, 0, len(views))
	for _, view := range views {
		if view.TimestampMissing {
			continue
		}
		candidates = append(candidates, view)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.After(b.Timestamp)
		}
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		return a.ID < b.ID
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}
