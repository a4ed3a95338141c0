// Package service implements the stats facade: the single entry point the
// dashboard layer calls for aggregated engagement statistics. It orchestrates
// the three source reads, normalization, price resolution, window filtering,
// and aggregation from the domain package.
package service

import (
	"context"
	"time"

	"zumarlaw_backend/internal/stats/domain"
	"zumarlaw_backend/internal/stats/transport"
	"zumarlaw_backend/platform/apperr"
	"zumarlaw_backend/platform/logger"

	"golang.org/x/sync/errgroup"
)

const (
	metricCompleted      = "Completed Services"
	metricPending        = "Pending Services"
	metricTotalLeads     = "Total Leads"
	metricPaymentSum     = "Payment of Completed"
	metricSalaryPaid     = "Salary Paid"
	metricServicePrices  = "Completed Service Prices"
	msgSourceUnavailable = "engagement data is temporarily unavailable, please retry"

	// Latest-completed over-fetch factor: reading 2×limit from each source is
	// sufficient whenever no single source contributes more than half of the
	// final top-N. Operating constraint, not a proof.
	latestOverFetchFactor = 2

	defaultLatestLimit = 4
	latestPayrollCount = 2
)

// ListOptions narrow a source read. Status pre-filtering is an efficiency
// contract with the store; semantics never depend on it.
type ListOptions struct {
	Status *domain.Status
	Limit  int
}

// SourceReader lists raw engagement records from one source collection.
type SourceReader interface {
	List(ctx context.Context, opts ListOptions) ([]domain.RawEngagement, error)
}

// Sources bundles the three read-only source collaborators.
type Sources struct {
	Direct    SourceReader
	Manual    SourceReader
	Converted SourceReader
}

// SalaryRecord is one payroll payment as read from the payroll collaborator.
type SalaryRecord struct {
	ID           string
	EmployeeName string
	Salary       int64
	CreatedAt    time.Time
}

// PayrollReader lists salary payments, most recent first.
type PayrollReader interface {
	ListSalaries(ctx context.Context) ([]SalaryRecord, error)
}

// PriceCatalog supplies the static service price list.
type PriceCatalog interface {
	PriceList(ctx context.Context) (domain.PriceList, error)
}

// Options tune facade behavior.
type Options struct {
	// StrictTimestamps excludes records with unusable timestamps from
	// recency ordering instead of substituting the current instant.
	StrictTimestamps bool
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Service is the stats facade. Stateless and safe for concurrent use; every
// call builds its views from freshly read records.
type Service struct {
	sources Sources
	payroll PayrollReader
	catalog PriceCatalog
	cache   *Cache
	log     *logger.Logger
	strict  bool
	now     func() time.Time
}

// New creates the stats facade. cache may be nil to disable caching.
func New(sources Sources, payroll PayrollReader, catalog PriceCatalog, cache *Cache, log *logger.Logger, opts Options) *Service {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		sources: sources,
		payroll: payroll,
		catalog: catalog,
		cache:   cache,
		log:     log,
		strict:  opts.StrictTimestamps,
		now:     now,
	}
}

type sourceBatch struct {
	direct    []domain.RawEngagement
	manual    []domain.RawEngagement
	converted []domain.RawEngagement
}

func (b sourceBatch) size() int {
	return len(b.direct) + len(b.manual) + len(b.converted)
}

// fetchSources issues the three independent source reads concurrently and
// joins them before normalization. Any single failure fails the whole call:
// partial aggregation across two of three sources would silently
// under-report revenue.
func (s *Service) fetchSources(ctx context.Context, opts ListOptions) (sourceBatch, error) {
	var batch sourceBatch

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		records, err := s.sources.Direct.List(gctx, opts)
		if err != nil {
			s.log.SourceFetchError(string(domain.SourceDirect), err)
			return err
		}
		batch.direct = records
		return nil
	})
	g.Go(func() error {
		records, err := s.sources.Manual.List(gctx, opts)
		if err != nil {
			s.log.SourceFetchError(string(domain.SourceManual), err)
			return err
		}
		batch.manual = records
		return nil
	})
	g.Go(func() error {
		records, err := s.sources.Converted.List(gctx, opts)
		if err != nil {
			s.log.SourceFetchError(string(domain.SourceConverted), err)
			return err
		}
		batch.converted = records
		return nil
	})

	if err := g.Wait(); err != nil {
		return sourceBatch{}, apperr.Wrap(apperr.KindUnavailable, msgSourceUnavailable, err)
	}
	return batch, nil
}

// normalizeAndPrice turns a batch into priced canonical views. Per-record
// failures are neutralized by Normalize and ResolvePrice, never dropped, so
// one malformed record cannot invalidate a batch.
func (s *Service) normalizeAndPrice(batch sourceBatch, prices domain.PriceList, preferUpdated bool, now time.Time) []domain.EngagementView {
	opts := domain.NormalizeOptions{
		PreferUpdatedAt:  preferUpdated,
		StrictTimestamps: s.strict,
		Now:              now,
	}

	views := make([]domain.EngagementView, 0, batch.size())
	for _, raws := range [][]domain.RawEngagement{batch.direct, batch.manual, batch.converted} {
		for _, raw := range raws {
			view := domain.Normalize(raw, opts)
			view.Price = domain.ResolvePrice(view.Title, raw, prices)
			views = append(views, view)
		}
	}
	return views
}

// GetStats computes the dashboard metric list for the requested window.
func (s *Service) GetStats(ctx context.Context, query transport.StatsQuery) (transport.StatsResponse, error) {
	start := time.Now()
	now := s.now()
	granularity := domain.ParseGranularity(query.Filter)

	if s.cache != nil {
		if cached, ok := s.cache.GetStats(ctx, query); ok {
			s.log.StatsRequest(string(granularity), len(cached.Metrics), true, float64(time.Since(start).Milliseconds()))
			return cached, nil
		}
	}

	window := domain.WindowFor(granularity, now, s.windowParts(query, now))

	var (
		batch    sourceBatch
		prices   domain.PriceList
		salaries []SalaryRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		batch, err = s.fetchSources(gctx, ListOptions{})
		return err
	})
	g.Go(func() error {
		var err error
		prices, err = s.catalog.PriceList(gctx)
		if err != nil {
			return apperr.Wrap(apperr.KindUnavailable, msgSourceUnavailable, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		salaries, err = s.payroll.ListSalaries(gctx)
		if err != nil {
			return apperr.Wrap(apperr.KindUnavailable, msgSourceUnavailable, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return transport.StatsResponse{}, err
	}

	views := s.normalizeAndPrice(batch, prices, false, now)
	windowed := domain.FilterWindow(views, window)

	counts := domain.CountByStatus(windowed)
	salaryPaid := sumSalaries(salaries, window)
	totals := domain.ComputeTotals(windowed, salaryPaid)

	response := transport.StatsResponse{
		Filter: string(granularity),
		Metrics: []transport.StatsMetric{
			{Title: metricCompleted, Value: counts.Completed},
			{Title: metricPending, Value: counts.Pending},
			{Title: metricTotalLeads, Value: counts.Total()},
			{Title: metricPaymentSum, Value: totals.TotalRevenue},
			{Title: metricSalaryPaid, Value: totals.SalaryPaid},
			{Title: metricServicePrices, Value: completedPrices(windowed)},
		},
	}

	if s.cache != nil {
		s.cache.SetStats(ctx, query, response)
	}

	s.log.StatsRequest(string(granularity), len(windowed), false, float64(time.Since(start).Milliseconds()))
	return response, nil
}

// GetAccountsSummary computes the accounts card: totals, per-service revenue
// breakdown, salary paid, and profit for an optional explicit month.
func (s *Service) GetAccountsSummary(ctx context.Context, query transport.AccountsSummaryQuery) (transport.AccountsSummaryResponse, error) {
	now := s.now()

	var window *domain.Window
	if query.Month >= 1 && query.Month <= 12 && query.Year > 0 {
		start := time.Date(query.Year, time.Month(query.Month), 1, 0, 0, 0, 0, now.Location())
		window = &domain.Window{Start: start, End: start.AddDate(0, 1, 0).Add(-time.Nanosecond)}
	}

	var (
		batch    sourceBatch
		prices   domain.PriceList
		salaries []SalaryRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		batch, err = s.fetchSources(gctx, ListOptions{})
		return err
	})
	g.Go(func() error {
		var err error
		prices, err = s.catalog.PriceList(gctx)
		if err != nil {
			return apperr.Wrap(apperr.KindUnavailable, msgSourceUnavailable, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		salaries, err = s.payroll.ListSalaries(gctx)
		if err != nil {
			return apperr.Wrap(apperr.KindUnavailable, msgSourceUnavailable, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return transport.AccountsSummaryResponse{}, err
	}

	views := s.normalizeAndPrice(batch, prices, false, now)
	windowed := domain.FilterWindow(views, window)

	salaryPaid := sumSalaries(salaries, window)
	totals := domain.ComputeTotals(windowed, salaryPaid)

	breakdown := domain.RevenueByService(windowed)
	if breakdown == nil {
		breakdown = []domain.ServiceRevenue{}
	}

	return transport.AccountsSummaryResponse{
		TotalRevenue:      totals.TotalRevenue,
		PendingAmount:     totals.PendingAmount,
		SalaryPaid:        totals.SalaryPaid,
		TotalProfit:       totals.TotalProfit,
		RevenueByServices: breakdown,
		LatestPayrolls:    latestPayrolls(salaries, window, latestPayrollCount),
	}, nil
}

// GetLatestCompleted returns the limit most recently completed engagements
// across all three sources, interleaved by completion time.
func (s *Service) GetLatestCompleted(ctx context.Context, limit int) ([]transport.LatestCompletedItem, error) {
	if limit <= 0 {
		limit = defaultLatestLimit
	}

	completed := domain.StatusCompleted
	batch, err := s.fetchSources(ctx, ListOptions{
		Status: &completed,
		Limit:  limit * latestOverFetchFactor,
	})
	if err != nil {
		return nil, err
	}

	prices, err := s.catalog.PriceList(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnavailable, msgSourceUnavailable, err)
	}

	views := s.normalizeAndPrice(batch, prices, true, s.now())
	latest := domain.MergeLatest(views, limit)

	items := make([]transport.LatestCompletedItem, 0, len(latest))
	for _, view := range latest {
		name := view.ClientName
		if name == "" {
			name = "N/A"
		}
		items = append(items, transport.LatestCompletedItem{
			ID:          view.ID,
			Name:        name,
			Service:     view.Title,
			Source:      string(view.Source),
			CompletedAt: view.Timestamp.Format(time.RFC3339),
			Certificate: view.Certificate,
		})
	}
	return items, nil
}

// GetStatusCounts returns the unwindowed cross-source status histogram.
func (s *Service) GetStatusCounts(ctx context.Context) (transport.StatusCountsResponse, error) {
	batch, err := s.fetchSources(ctx, ListOptions{})
	if err != nil {
		return transport.StatusCountsResponse{}, err
	}

	views := s.normalizeAndPrice(batch, nil, false, s.now())
	counts := domain.CountByStatus(views)

	return transport.StatusCountsResponse{
		Completed:  counts.Completed,
		Processing: counts.Processing,
		Pending:    counts.Pending,
		Rejected:   counts.Rejected,
	}, nil
}

func (s *Service) windowParts(query transport.StatsQuery, now time.Time) domain.WindowParts {
	parts := domain.WindowParts{
		Month: time.Month(query.Month),
		Year:  query.Year,
	}
	if query.Date != "" {
		// An unparseable explicit date falls back to the relative window.
		if parsed, err := time.ParseInLocation("2006-01-02", query.Date, now.Location()); err == nil {
			parts.Date = &parsed
		}
	}
	return parts
}

func completedPrices(views []domain.EngagementView) []transport.CompletedServicePrice {
	result := make([]transport.CompletedServicePrice, 0)
	for _, view := range views {
		if view.Status != domain.StatusCompleted {
			continue
		}
		result = append(result, transport.CompletedServicePrice{
			ID:     view.ID,
			Source: string(view.Source),
			Title:  view.Title,
			Price:  view.Price,
		})
	}
	return result
}

func sumSalaries(salaries []SalaryRecord, window *domain.Window) int64 {
	var sum int64
	for _, record := range salaries {
		if window.Contains(record.CreatedAt) {
			sum += record.Salary
		}
	}
	return sum
}

func latestPayrolls(salaries []SalaryRecord, window *domain.Window, limit int) []transport.PayrollEntry {
	entries := make([]transport.PayrollEntry, 0, limit)
	for _, record := range salaries {
		if !window.Contains(record.CreatedAt) {
			continue
		}
		entries = append(entries, transport.PayrollEntry{
			ID:           record.ID,
			EmployeeName: record.EmployeeName,
			Salary:       record.Salary,
			CreatedAt:    record.CreatedAt.Format(time.RFC3339),
		})
		if len(entries) == limit {
			break
		}
	}
	return entries
}
