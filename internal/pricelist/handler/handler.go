// Package handler exposes admin CRUD for the service price catalog.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zumarlaw_backend/internal/pricelist/service"
	"zumarlaw_backend/platform/httpkit"
	"zumarlaw_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for the price catalog.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new price list handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// SetPriceRequest creates or updates one catalog entry.
type SetPriceRequest struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
	Price int64  `json:"price" validate:"min=0"`
}

// List returns all catalog entries.
// GET /api/v1/admin/prices
func (h *Handler) List(c *gin.Context) {
	prices, err := h.svc.List(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	type entry struct {
		Title string `json:"title"`
		Price int64  `json:"price"`
	}
	result := make([]entry, 0, len(prices))
	for _, price := range prices {
		result = append(result, entry{Title: price.Title, Price: price.Price})
	}
	httpkit.OK(c, result)
}

// Set creates or updates one catalog entry.
// PUT /api/v1/admin/prices
func (h *Handler) Set(c *gin.Context) {
	var req SetPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.Set(c.Request.Context(), req.Title, req.Price); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"title": req.Title, "price": req.Price})
}

// Delete removes one catalog entry.
// DELETE /api/v1/admin/prices/:title
func (h *Handler) Delete(c *gin.Context) {
	title := c.Param("title")
	if err := h.svc.Delete(c.Request.Context(), title); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}
