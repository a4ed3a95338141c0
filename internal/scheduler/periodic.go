package scheduler

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"zumarlaw_backend/platform/config"
	"zumarlaw_backend/platform/logger"
)

const (
	cacheWarmSpec     = "@every 10m"
	monthlyReportSpec = "0 6 1 * *"
)

// Periodic registers the recurring jobs with asynq and keeps them enqueued
// on schedule.
type Periodic struct {
	scheduler *asynq.Scheduler
	log       *logger.Logger
}

// NewPeriodic creates the periodic job scheduler with the standard entries:
// a cache warm every ten minutes and the accounts report on the first of
// each month.
func NewPeriodic(cfg config.SchedulerConfig, log *logger.Logger) (*Periodic, error) {
	opt, err := redisClientOpt(cfg.GetRedisURL())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	scheduler := asynq.NewScheduler(opt, &asynq.SchedulerOpts{})

	warmTask, err := NewStatsCacheWarmTask(StatsCacheWarmPayload{})
	if err != nil {
		return nil, err
	}
	if _, err := scheduler.Register(cacheWarmSpec, warmTask, asynq.Queue(queue)); err != nil {
		return nil, fmt.Errorf("register cache warm: %w", err)
	}

	reportTask, err := NewMonthlyAccountsReportTask(MonthlyAccountsReportPayload{})
	if err != nil {
		return nil, err
	}
	if _, err := scheduler.Register(monthlyReportSpec, reportTask, asynq.Queue(queue)); err != nil {
		return nil, fmt.Errorf("register monthly report: %w", err)
	}

	return &Periodic{scheduler: scheduler, log: log}, nil
}

// Run starts the scheduler and blocks until the context is cancelled.
func (p *Periodic) Run(ctx context.Context) {
	if p == nil || p.scheduler == nil {
		return
	}

	go func() {
		<-ctx.Done()
		p.scheduler.Shutdown()
	}()

	if err := p.scheduler.Run(); err != nil {
		p.log.Error("periodic scheduler stopped", "error", err)
	}
}
