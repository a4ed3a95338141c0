// Package engagements provides the engagement lifecycle bounded context:
// intake into the three source collections, status transitions, staff
// assignment, and certificate storage.
package engagements

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"zumarlaw_backend/internal/adapters/storage"
	"zumarlaw_backend/internal/engagements/handler"
	"zumarlaw_backend/internal/engagements/repository"
	"zumarlaw_backend/internal/engagements/service"
	"zumarlaw_backend/internal/events"
	apphttp "zumarlaw_backend/internal/http"
	"zumarlaw_backend/platform/logger"
	"zumarlaw_backend/platform/validator"
)

// Module is the engagements bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the engagements module. storageSvc may be
// nil when object storage is not configured.
func NewModule(pool *pgxpool.Pool, storageSvc storage.StorageService, bucket string, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, storageSvc, bucket, bus, log)
	h := handler.New(svc, val)

	return &Module{handler: h}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "engagements"
}

// RegisterRoutes mounts the engagement routes. Reads and status updates are
// available to any authenticated staff member; assignment is admin-only.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.POST("/engagements", m.handler.Create)
	ctx.Protected.GET("/engagements", m.handler.List)
	ctx.Protected.GET("/engagements/:source/:id", m.handler.Get)
	ctx.Protected.PATCH("/engagements/:source/:id/status", m.handler.UpdateStatus)

	ctx.Protected.POST("/engagements/certificates/presign", m.handler.PresignCertificateUpload)
	ctx.Protected.PUT("/engagements/:source/:id/certificate", m.handler.AttachCertificate)
	ctx.Protected.GET("/engagements/:source/:id/certificate", m.handler.DownloadCertificate)

	ctx.Admin.PATCH("/engagements/:source/:id/assign", m.handler.Assign)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
