// Package scheduler runs background jobs over asynq: dashboard cache
// warming and the monthly accounts report email.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"zumarlaw_backend/internal/notification/email"
	statsservice "zumarlaw_backend/internal/stats/service"
	statstransport "zumarlaw_backend/internal/stats/transport"
	"zumarlaw_backend/platform/config"
	"zumarlaw_backend/platform/logger"
)

// defaultWarmFilters are the dashboard windows precomputed on each warm run.
var defaultWarmFilters = []string{"day", "week", "month", "year", "all"}

type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	stats     *statsservice.Service
	sender    email.Sender
	recipient string
	log       *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, stats *statsservice.Service, sender email.Sender, recipient string, log *logger.Logger) (*Worker, error) {
	opt, err := redisClientOpt(cfg.GetRedisURL())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:    server,
		mux:       mux,
		stats:     stats,
		sender:    sender,
		recipient: recipient,
		log:       log,
	}

	mux.HandleFunc(TaskStatsCacheWarm, w.handleStatsCacheWarm)
	mux.HandleFunc(TaskMonthlyAccountsReport, w.handleMonthlyAccountsReport)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

// handleStatsCacheWarm precomputes the dashboard stats for the standard
// filters so the first request of the day is a cache hit.
func (w *Worker) handleStatsCacheWarm(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseStatsCacheWarmPayload(task)
	if err != nil {
		return err
	}

	filters := payload.Filters
	if len(filters) == 0 {
		filters = defaultWarmFilters
	}

	for _, filter := range filters {
		if _, err := w.stats.GetStats(ctx, statstransport.StatsQuery{Filter: filter}); err != nil {
			return fmt.Errorf("warm stats cache for %q: %w", filter, err)
		}
	}

	w.log.Info("stats cache warmed", "filters", filters)
	return nil
}

// handleMonthlyAccountsReport emails the accounts summary for the requested
// month, defaulting to the previous calendar month.
func (w *Worker) handleMonthlyAccountsReport(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseMonthlyAccountsReportPayload(task)
	if err != nil {
		return err
	}

	if w.recipient == "" {
		w.log.Warn("monthly report skipped, no recipient configured")
		return nil
	}

	month, year := payload.Month, payload.Year
	if month == 0 || year == 0 {
		previous := time.Now().AddDate(0, -1, 0)
		month, year = int(previous.Month()), previous.Year()
	}

	summary, err := w.stats.GetAccountsSummary(ctx, statstransport.AccountsSummaryQuery{Month: month, Year: year})
	if err != nil {
		return fmt.Errorf("accounts summary for %d-%02d: %w", year, month, err)
	}

	period := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
	if err := w.sender.SendMonthlyReportEmail(ctx, w.recipient, email.ReportSummary{
		Period:        period,
		TotalRevenue:  summary.TotalRevenue,
		SalaryPaid:    summary.SalaryPaid,
		TotalProfit:   summary.TotalProfit,
		PendingAmount: summary.PendingAmount,
	}); err != nil {
		w.log.EmailEvent("monthly_report", w.recipient, err)
		return err
	}

	w.log.EmailEvent("monthly_report", w.recipient, nil)
	return nil
}
