package service

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"zumarlaw_backend/internal/stats/domain"
	"zumarlaw_backend/internal/stats/transport"
	"zumarlaw_backend/platform/apperr"
	"zumarlaw_backend/platform/logger"
)

type stubSource struct {
	mu      sync.Mutex
	records []domain.RawEngagement
	err     error
	calls   []ListOptions
}

func (s *stubSource) List(_ context.Context, opts ListOptions) ([]domain.RawEngagement, error) {
	s.mu.Lock()
	s.calls = append(s.calls, opts)
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

type stubPayroll struct {
	records []SalaryRecord
	err     error
}

func (s *stubPayroll) ListSalaries(context.Context) ([]SalaryRecord, error) {
	return s.records, s.err
}

type stubCatalog struct {
	prices domain.PriceList
	err    error
}

func (s *stubCatalog) PriceList(context.Context) (domain.PriceList, error) {
	return s.prices, s.err
}

func timePtr(t time.Time) *time.Time { return &t }

var testNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func newTestService(sources Sources, payroll PayrollReader, catalog PriceCatalog, opts Options) *Service {
	if opts.Now == nil {
		opts.Now = func() time.Time { return testNow }
	}
	return New(sources, payroll, catalog, nil, logger.New("test"), opts)
}

// scenarioSources builds the canonical three-record fixture: a hand-priced
// completed tax filing, a catalog-priced completed tax filing, and a pending
// visa case with an explicit amount.
func scenarioSources() (Sources, *stubSource, *stubSource, *stubSource) {
	direct := &stubSource{records: []domain.RawEngagement{{
		ID:            "d1",
		Source:        domain.SourceDirect,
		ServiceTitle:  "Tax Filing",
		Status:        "completed",
		PaymentAmount: "1000",
		CreatedAt:     timePtr(testNow.Add(-2 * time.Hour)),
	}}}
	manual := &stubSource{records: []domain.RawEngagement{{
		ID:          "m1",
		Source:      domain.SourceManual,
		ServiceType: "Tax Filing",
		Status:      "Completed",
		CreatedAt:   timePtr(testNow.Add(-1 * time.Hour)),
	}}}
	converted := &stubSource{records: []domain.RawEngagement{{
		ID:            "c1",
		Source:        domain.SourceConverted,
		Service:       "Visa Consultancy",
		Status:        "pending",
		PaymentAmount: "2000",
		CreatedAt:     timePtr(testNow.Add(-30 * time.Minute)),
	}}}
	return Sources{Direct: direct, Manual: manual, Converted: converted}, direct, manual, converted
}

func metricValue(t *testing.T, resp transport.StatsResponse, title string) interface{} {
	t.Helper()
	for _, metric := range resp.Metrics {
		if metric.Title == title {
			return metric.Value
		}
	}
	t.Fatalf("metric %q not found in %+v", title, resp.Metrics)
	return nil
}

func TestGetStatsScenario(t *testing.T) {
	sources, _, _, _ := scenarioSources()
	svc := newTestService(sources, &stubPayroll{}, &stubCatalog{prices: domain.PriceList{"Tax Filing": 1500}}, Options{})

	resp, err := svc.GetStats(context.Background(), transport.StatsQuery{Filter: "all"})
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}

	if resp.Filter != "all" {
		t.Errorf("filter: got %q, want all", resp.Filter)
	}
	if got := metricValue(t, resp, "Completed Services"); got != 2 {
		t.Errorf("completed: got %v, want 2", got)
	}
	if got := metricValue(t, resp, "Pending Services"); got != 1 {
		t.Errorf("pending: got %v, want 1", got)
	}
	if got := metricValue(t, resp, "Total Leads"); got != 3 {
		t.Errorf("total leads: got %v, want 3", got)
	}
	// d1 explicit 1000 + m1 catalog 1500
	if got := metricValue(t, resp, "Payment of Completed"); got != int64(2500) {
		t.Errorf("payment of completed: got %v, want 2500", got)
	}

	prices, ok := metricValue(t, resp, "Completed Service Prices").([]transport.CompletedServicePrice)
	if !ok || len(prices) != 2 {
		t.Fatalf("completed service prices: got %v", metricValue(t, resp, "Completed Service Prices"))
	}
	if prices[0].ID != "d1" || prices[0].Price != 1000 || prices[1].ID != "m1" || prices[1].Price != 1500 {
		t.Errorf("unexpected price breakdown: %+v", prices)
	}
}

func TestGetStatsIsIdempotent(t *testing.T) {
	sources, _, _, _ := scenarioSources()
	svc := newTestService(sources, &stubPayroll{}, &stubCatalog{prices: domain.PriceList{"Tax Filing": 1500}}, Options{})

	first, err := svc.GetStats(context.Background(), transport.StatsQuery{Filter: "week"})
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := svc.GetStats(context.Background(), transport.StatsQuery{Filter: "week"})
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("responses differ:\n%+v\n%+v", first, second)
	}
}

func TestGetStatsSourceFailureFailsWhole(t *testing.T) {
	sources, _, manual, _ := scenarioSources()
	manual.err = errors.New("connection refused")
	svc := newTestService(sources, &stubPayroll{}, &stubCatalog{}, Options{})

	_, err := svc.GetStats(context.Background(), transport.StatsQuery{Filter: "all"})
	if err == nil {
		t.Fatal("expected error when one source fails")
	}
	if !apperr.Is(err, apperr.KindUnavailable) {
		t.Errorf("got kind %v, want KindUnavailable", apperr.GetKind(err))
	}

	var typed *apperr.Error
	if !errors.As(err, &typed) {
		t.Fatal("expected *apperr.Error")
	}
	if !errors.Is(err, manual.err) {
		t.Error("underlying source error not wrapped")
	}
}

func TestGetStatsWindowFiltering(t *testing.T) {
	inside := domain.RawEngagement{
		ID: "in", Source: domain.SourceDirect, ServiceTitle: "Tax Filing",
		Status: "completed", PaymentAmount: "100",
		CreatedAt: timePtr(testNow.Add(-time.Hour)),
	}
	outside := domain.RawEngagement{
		ID: "out", Source: domain.SourceDirect, ServiceTitle: "Tax Filing",
		Status: "completed", PaymentAmount: "900",
		CreatedAt: timePtr(testNow.AddDate(0, 0, -3)),
	}

	sources := Sources{
		Direct:    &stubSource{records: []domain.RawEngagement{inside, outside}},
		Manual:    &stubSource{},
		Converted: &stubSource{},
	}
	svc := newTestService(sources, &stubPayroll{}, &stubCatalog{}, Options{})

	resp, err := svc.GetStats(context.Background(), transport.StatsQuery{Filter: "day"})
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if got := metricValue(t, resp, "Completed Services"); got != 1 {
		t.Errorf("day window: got %v completed, want 1", got)
	}
	if got := metricValue(t, resp, "Payment of Completed"); got != int64(100) {
		t.Errorf("day window revenue: got %v, want 100", got)
	}
}

func TestGetAccountsSummary(t *testing.T) {
	sources, _, _, _ := scenarioSources()
	payroll := &stubPayroll{records: []SalaryRecord{
		{ID: "p3", EmployeeName: "Ayesha", Salary: 300, CreatedAt: testNow.Add(-time.Hour)},
		{ID: "p2", EmployeeName: "Bilal", Salary: 200, CreatedAt: testNow.Add(-2 * time.Hour)},
		{ID: "p1", EmployeeName: "Hamza", Salary: 100, CreatedAt: testNow.Add(-3 * time.Hour)},
	}}
	svc := newTestService(sources, payroll, &stubCatalog{prices: domain.PriceList{"Tax Filing": 1500}}, Options{})

	resp, err := svc.GetAccountsSummary(context.Background(), transport.AccountsSummaryQuery{Month: 3, Year: 2026})
	if err != nil {
		t.Fatalf("GetAccountsSummary: %v", err)
	}

	if resp.TotalRevenue != 2500 {
		t.Errorf("totalRevenue: got %d, want 2500", resp.TotalRevenue)
	}
	if resp.PendingAmount != 2000 {
		t.Errorf("pendingAmount: got %d, want 2000", resp.PendingAmount)
	}
	if resp.SalaryPaid != 600 {
		t.Errorf("salaryPaid: got %d, want 600", resp.SalaryPaid)
	}
	if resp.TotalProfit != 1900 {
		t.Errorf("totalProfit: got %d, want 1900", resp.TotalProfit)
	}

	wantBreakdown := []domain.ServiceRevenue{{Title: "Tax Filing", Amount: 2500}}
	if !reflect.DeepEqual(resp.RevenueByServices, wantBreakdown) {
		t.Errorf("revenueByServices: got %+v, want %+v", resp.RevenueByServices, wantBreakdown)
	}

	// Most recent two payroll entries only.
	if len(resp.LatestPayrolls) != 2 || resp.LatestPayrolls[0].ID != "p3" || resp.LatestPayrolls[1].ID != "p2" {
		t.Errorf("latestPayrolls: got %+v", resp.LatestPayrolls)
	}
}

func TestGetAccountsSummaryExplicitMonthExcludesOthers(t *testing.T) {
	sources, _, _, _ := scenarioSources()
	svc := newTestService(sources, &stubPayroll{}, &stubCatalog{prices: domain.PriceList{"Tax Filing": 1500}}, Options{})

	resp, err := svc.GetAccountsSummary(context.Background(), transport.AccountsSummaryQuery{Month: 1, Year: 2026})
	if err != nil {
		t.Fatalf("GetAccountsSummary: %v", err)
	}
	if resp.TotalRevenue != 0 || resp.PendingAmount != 0 {
		t.Errorf("january window should be empty, got %+v", resp)
	}
	if len(resp.RevenueByServices) != 0 {
		t.Errorf("expected empty breakdown, got %+v", resp.RevenueByServices)
	}
}

func TestGetLatestCompleted(t *testing.T) {
	direct := &stubSource{records: []domain.RawEngagement{
		{ID: "d1", Source: domain.SourceDirect, ServiceTitle: "Tax Filing", Status: "completed",
			ClientName: "Ali", UpdatedAt: timePtr(testNow.Add(-1 * time.Hour))},
		{ID: "d2", Source: domain.SourceDirect, ServiceTitle: "NTN Registration", Status: "completed",
			UpdatedAt: timePtr(testNow.Add(-4 * time.Hour))},
	}}
	manual := &stubSource{records: []domain.RawEngagement{
		{ID: "m1", Source: domain.SourceManual, ServiceType: "Court Marriage", Status: "completed",
			ClientName: "Sara", UpdatedAt: timePtr(testNow.Add(-2 * time.Hour))},
	}}
	converted := &stubSource{records: []domain.RawEngagement{
		{ID: "c1", Source: domain.SourceConverted, Service: "Visa Consultancy", Status: "completed",
			ClientName: "Omar", UpdatedAt: timePtr(testNow.Add(-3 * time.Hour))},
	}}

	svc := newTestService(Sources{Direct: direct, Manual: manual, Converted: converted},
		&stubPayroll{}, &stubCatalog{}, Options{})

	items, err := svc.GetLatestCompleted(context.Background(), 2)
	if err != nil {
		t.Fatalf("GetLatestCompleted: %v", err)
	}

	// Interleaved across sources by recency.
	if len(items) != 2 || items[0].ID != "d1" || items[1].ID != "m1" {
		t.Errorf("expected [d1 m1], got %+v", items)
	}
	if items[0].Name != "Ali" || items[0].Service != "Tax Filing" || items[0].Source != "direct" {
		t.Errorf("unexpected first item: %+v", items[0])
	}

	// Each source is asked for completed records with an over-fetched limit.
	for _, source := range []*stubSource{direct, manual, converted} {
		if len(source.calls) != 1 {
			t.Fatalf("expected one list call, got %d", len(source.calls))
		}
		opts := source.calls[0]
		if opts.Status == nil || *opts.Status != domain.StatusCompleted {
			t.Errorf("expected completed status filter, got %+v", opts.Status)
		}
		if opts.Limit != 4 {
			t.Errorf("expected over-fetched limit 4, got %d", opts.Limit)
		}
	}
}

func TestGetLatestCompletedNameFallback(t *testing.T) {
	direct := &stubSource{records: []domain.RawEngagement{
		{ID: "d1", Source: domain.SourceDirect, ServiceTitle: "Tax Filing", Status: "completed",
			UpdatedAt: timePtr(testNow.Add(-time.Hour))},
	}}
	svc := newTestService(Sources{Direct: direct, Manual: &stubSource{}, Converted: &stubSource{}},
		&stubPayroll{}, &stubCatalog{}, Options{})

	items, err := svc.GetLatestCompleted(context.Background(), 4)
	if err != nil {
		t.Fatalf("GetLatestCompleted: %v", err)
	}
	if len(items) != 1 || items[0].Name != "N/A" {
		t.Errorf("expected N/A name fallback, got %+v", items)
	}
}

func TestGetLatestCompletedStrictExcludesUndated(t *testing.T) {
	direct := &stubSource{records: []domain.RawEngagement{
		{ID: "undated", Source: domain.SourceDirect, ServiceTitle: "Tax Filing", Status: "completed"},
		{ID: "dated", Source: domain.SourceDirect, ServiceTitle: "Tax Filing", Status: "completed",
			UpdatedAt: timePtr(testNow.Add(-time.Hour))},
	}}
	svc := newTestService(Sources{Direct: direct, Manual: &stubSource{}, Converted: &stubSource{}},
		&stubPayroll{}, &stubCatalog{}, Options{StrictTimestamps: true})

	items, err := svc.GetLatestCompleted(context.Background(), 4)
	if err != nil {
		t.Fatalf("GetLatestCompleted: %v", err)
	}
	if len(items) != 1 || items[0].ID != "dated" {
		t.Errorf("strict mode must exclude undated records from recency, got %+v", items)
	}
}

func TestGetStatusCounts(t *testing.T) {
	sources, _, _, _ := scenarioSources()
	svc := newTestService(sources, &stubPayroll{}, &stubCatalog{}, Options{})

	counts, err := svc.GetStatusCounts(context.Background())
	if err != nil {
		t.Fatalf("GetStatusCounts: %v", err)
	}
	want := transport.StatusCountsResponse{Completed: 2, Pending: 1}
	if counts != want {
		t.Errorf("got %+v, want %+v", counts, want)
	}
}

func TestGetStatusCountsStrictStillCountsUndated(t *testing.T) {
	direct := &stubSource{records: []domain.RawEngagement{
		{ID: "undated", Source: domain.SourceDirect, Status: "completed"},
	}}
	svc := newTestService(Sources{Direct: direct, Manual: &stubSource{}, Converted: &stubSource{}},
		&stubPayroll{}, &stubCatalog{}, Options{StrictTimestamps: true})

	counts, err := svc.GetStatusCounts(context.Background())
	if err != nil {
		t.Fatalf("GetStatusCounts: %v", err)
	}
	if counts.Completed != 1 {
		t.Errorf("undated record must still count in histograms, got %+v", counts)
	}
}
