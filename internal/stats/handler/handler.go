// Package handler exposes the dashboard reporting endpoints.
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"zumarlaw_backend/internal/stats/service"
	"zumarlaw_backend/internal/stats/transport"
	"zumarlaw_backend/platform/httpkit"
	"zumarlaw_backend/platform/validator"
)

const msgInvalidRequest = "invalid request"

// Handler handles HTTP requests for dashboard statistics.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new stats handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// GetStats returns the dashboard metric list for a reporting window.
// GET /api/v1/admin/stats?filter=day|week|month|year|all&date=&month=&year=
func (h *Handler) GetStats(c *gin.Context) {
	var query transport.StatsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(query); err != nil {
		// Bad date parts degrade to the default window instead of failing;
		// the dashboard always gets numbers or a retryable 503.
		query = transport.StatsQuery{Filter: query.Filter}
	}

	result, err := h.svc.GetStats(c.Request.Context(), query)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetStatusCounts returns the cross-source status histogram.
// GET /api/v1/admin/service-status-counts
func (h *Handler) GetStatusCounts(c *gin.Context) {
	result, err := h.svc.GetStatusCounts(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetLatestCompleted returns the most recently completed engagements.
// GET /api/v1/admin/latest-completed-services?limit=4
func (h *Handler) GetLatestCompleted(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "4"))
	if limit < 1 || limit > 50 {
		limit = 4
	}

	result, err := h.svc.GetLatestCompleted(c.Request.Context(), limit)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetAccountsSummary returns the accounts card figures.
// GET /api/v1/admin/accounts/summary?month=&year=
func (h *Handler) GetAccountsSummary(c *gin.Context) {
	var query transport.AccountsSummaryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(query); err != nil {
		query = transport.AccountsSummaryQuery{}
	}

	result, err := h.svc.GetAccountsSummary(c.Request.Context(), query)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
