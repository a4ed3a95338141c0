// Package pricelist provides the service price catalog bounded context.
package pricelist

import (
	"context"

	apphttp "zumarlaw_backend/internal/http"
	"zumarlaw_backend/internal/pricelist/handler"
	"zumarlaw_backend/internal/pricelist/repository"
	"zumarlaw_backend/internal/pricelist/service"
	"zumarlaw_backend/platform/logger"
	"zumarlaw_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the price catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the price list module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "pricelist"
}

// Service returns the service layer; the stats module consumes it as its
// price catalog port.
func (m *Module) Service() *service.Service {
	return m.service
}

// Seed loads the YAML seed into an empty catalog at startup.
func (m *Module) Seed(ctx context.Context, seedPath string) error {
	return m.service.Seed(ctx, seedPath)
}

// RegisterRoutes mounts the catalog routes on the admin group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Admin.GET("/prices", m.handler.List)
	ctx.Admin.PUT("/prices", m.handler.Set)
	ctx.Admin.DELETE("/prices/:title", m.handler.Delete)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
