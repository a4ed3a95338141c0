// Package handler exposes HTTP endpoints for the engagement collections.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"zumarlaw_backend/internal/engagements/service"
	"zumarlaw_backend/internal/engagements/transport"
	"zumarlaw_backend/platform/httpkit"
	"zumarlaw_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid engagement id"
)

// Handler handles HTTP requests for engagements.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new engagements handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Create opens a new engagement.
// POST /api/v1/engagements
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateEngagementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, resp)
}

// List returns a page of engagements from one source collection.
// GET /api/v1/engagements?source=direct&status=pending&page=1&pageSize=20
func (h *Handler) List(c *gin.Context) {
	var req transport.ListEngagementsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	resp, err := h.svc.List(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// Get fetches one engagement.
// GET /api/v1/engagements/:source/:id
func (h *Handler) Get(c *gin.Context) {
	source, id, ok := h.pathParams(c)
	if !ok {
		return
	}

	resp, err := h.svc.Get(c.Request.Context(), source, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// UpdateStatus transitions an engagement to a new status.
// PATCH /api/v1/engagements/:source/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	source, id, ok := h.pathParams(c)
	if !ok {
		return
	}

	var req transport.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	resp, err := h.svc.UpdateStatus(c.Request.Context(), source, id, req.Status)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// Assign sets the staff member responsible for an engagement.
// PATCH /api/v1/admin/engagements/:source/:id/assign
func (h *Handler) Assign(c *gin.Context) {
	source, id, ok := h.pathParams(c)
	if !ok {
		return
	}

	var req transport.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.Assign(c.Request.Context(), source, id, req.AssignedTo); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"assignedTo": req.AssignedTo})
}

// PresignCertificateUpload returns a presigned PUT URL for a certificate.
// POST /api/v1/engagements/certificates/presign
func (h *Handler) PresignCertificateUpload(c *gin.Context) {
	var req transport.CertificatePresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	url, err := h.svc.CertificateUploadURL(c.Request.Context(), req.FileName)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, url)
}

// AttachCertificate records an uploaded certificate object key.
// PUT /api/v1/engagements/:source/:id/certificate
func (h *Handler) AttachCertificate(c *gin.Context) {
	source, id, ok := h.pathParams(c)
	if !ok {
		return
	}

	var req transport.AttachCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.AttachCertificate(c.Request.Context(), source, id, req.FileName); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"certificate": req.FileName})
}

// DownloadCertificate returns a presigned GET URL for an engagement's
// certificate.
// GET /api/v1/engagements/:source/:id/certificate
func (h *Handler) DownloadCertificate(c *gin.Context) {
	source, id, ok := h.pathParams(c)
	if !ok {
		return
	}

	url, err := h.svc.CertificateDownloadURL(c.Request.Context(), source, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, url)
}

func (h *Handler) pathParams(c *gin.Context) (string, uuid.UUID, bool) {
	source := c.Param("source")
	if err := h.val.Var(source, "required,oneof=direct manual converted"); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, "source must be one of direct, manual, converted")
		return "", uuid.Nil, false
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return "", uuid.Nil, false
	}
	return source, id, true
}
