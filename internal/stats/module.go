// Package stats provides the reporting bounded context module: the
// cross-source analytics aggregator behind the admin dashboard.
package stats

import (
	apphttp "zumarlaw_backend/internal/http"
	"zumarlaw_backend/internal/stats/handler"
	"zumarlaw_backend/internal/stats/repository"
	"zumarlaw_backend/internal/stats/service"
	"zumarlaw_backend/platform/config"
	"zumarlaw_backend/platform/logger"
	"zumarlaw_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Module is the stats bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    *repository.Repo
}

// NewModule creates and initializes the stats module. redisClient may be nil
// to run without response caching.
func NewModule(pool *pgxpool.Pool, redisClient *redis.Client, catalog service.PriceCatalog, val *validator.Validator, cfg config.StatsConfig, log *logger.Logger) *Module {
	repo := repository.New(pool)

	cache := service.NewCache(redisClient, cfg.GetStatsCacheTTL(), log)
	svc := service.New(repo.Sources(), repo, catalog, cache, log, service.Options{
		StrictTimestamps: cfg.GetStatsStrictTimestamps(),
	})
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "stats"
}

// Service returns the service layer for external use (scheduler warm-up,
// report emails).
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the reporting routes on the admin group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Admin.GET("/stats", m.handler.GetStats)
	ctx.Admin.GET("/service-status-counts", m.handler.GetStatusCounts)
	ctx.Admin.GET("/latest-completed-services", m.handler.GetLatestCompleted)
	ctx.Admin.GET("/accounts/summary", m.handler.GetAccountsSummary)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
