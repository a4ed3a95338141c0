// Package auth provides the staff authentication bounded context.
package auth

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"zumarlaw_backend/internal/auth/handler"
	"zumarlaw_backend/internal/auth/repository"
	"zumarlaw_backend/internal/auth/service"
	apphttp "zumarlaw_backend/internal/http"
	"zumarlaw_backend/platform/config"
	"zumarlaw_backend/platform/logger"
	"zumarlaw_backend/platform/validator"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the auth module.
func NewModule(pool *pgxpool.Pool, cfg config.AuthServiceConfig, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, log)
	h := handler.New(svc, val)

	return &Module{handler: h}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// RegisterRoutes mounts the auth routes. Login sits behind the stricter
// per-IP rate limiter.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/auth/login", ctx.AuthRateLimiter.RateLimit(), m.handler.Login)
	ctx.Protected.GET("/auth/me", m.handler.Me)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
