// Package payroll provides the salary payments bounded context.
package payroll

import (
	"github.com/jackc/pgx/v5/pgxpool"

	apphttp "zumarlaw_backend/internal/http"
	"zumarlaw_backend/internal/payroll/handler"
	"zumarlaw_backend/internal/payroll/repository"
	"zumarlaw_backend/internal/payroll/service"
	"zumarlaw_backend/platform/logger"
	"zumarlaw_backend/platform/validator"
)

// Module is the payroll bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the payroll module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{handler: h}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "payroll"
}

// RegisterRoutes mounts the payroll routes on the admin group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Admin.POST("/payrolls", m.handler.Create)
	ctx.Admin.GET("/payrolls", m.handler.List)
	ctx.Admin.DELETE("/payrolls/:id", m.handler.Delete)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
