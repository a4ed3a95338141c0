package transport

import "zumarlaw_backend/internal/stats/domain"

// StatsQuery is the dashboard stats request. All parts are optional; an
// unrecognized filter behaves as "day".
type StatsQuery struct {
	Filter string `form:"filter" validate:"omitempty,max=20"`
	Date   string `form:"date" validate:"omitempty,datetime=2006-01-02"`
	Month  int    `form:"month" validate:"omitempty,min=1,max=12"`
	Year   int    `form:"year" validate:"omitempty,min=2000,max=2100"`
}

// StatsMetric is one named dashboard figure. Value is either a number or,
// for the price breakdown, a list of CompletedServicePrice.
type StatsMetric struct {
	Title string      `json:"title"`
	Value interface{} `json:"value"`
}

// CompletedServicePrice is one completed engagement with its resolved price.
type CompletedServicePrice struct {
	ID     string `json:"id"`
	Source string `json:"type"`
	Title  string `json:"title"`
	Price  int64  `json:"price"`
}

// StatsResponse is the ordered metric list the dashboard renders.
type StatsResponse struct {
	Filter  string        `json:"filter"`
	Metrics []StatsMetric `json:"metrics"`
}

// StatusCountsResponse is the cross-source status histogram.
type StatusCountsResponse struct {
	Completed  int `json:"completed"`
	Processing int `json:"processing"`
	Pending    int `json:"pending"`
	Rejected   int `json:"rejected"`
}

// LatestCompletedQuery bounds the latest-completed listing.
type LatestCompletedQuery struct {
	Limit int `form:"limit" validate:"omitempty,min=1,max=50"`
}

// LatestCompletedItem is one recently completed engagement for the dashboard.
type LatestCompletedItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Service     string `json:"service"`
	Source      string `json:"source"`
	CompletedAt string `json:"completedAt"`
	Certificate string `json:"certificate,omitempty"`
}

// AccountsSummaryQuery selects an optional explicit month.
type AccountsSummaryQuery struct {
	Month int `form:"month" validate:"omitempty,min=1,max=12"`
	Year  int `form:"year" validate:"omitempty,min=2000,max=2100"`
}

// PayrollEntry is one salary payment in the summary payload.
type PayrollEntry struct {
	ID           string `json:"id"`
	EmployeeName string `json:"employeeName"`
	Salary       int64  `json:"salary"`
	CreatedAt    string `json:"createdAt"`
}

// AccountsSummaryResponse mirrors the accounts dashboard card.
type AccountsSummaryResponse struct {
	TotalRevenue      int64                   `json:"totalRevenue"`
	PendingAmount     int64                   `json:"pendingAmount"`
	SalaryPaid        int64                   `json:"salaryPaid"`
	TotalProfit       int64                   `json:"totalProfit"`
	RevenueByServices []domain.ServiceRevenue `json:"revenueByServices"`
	LatestPayrolls    []PayrollEntry          `json:"latestPayrolls"`
}
