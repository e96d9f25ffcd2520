package handler

import (
	"net/http"

	"referral_portal_backend/internal/contacts/service"
	"referral_portal_backend/internal/contacts/transport"
	"referral_portal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

const msgInvalidRequest = "invalid request"

// Handler handles HTTP requests for contact reconciliation.
type Handler struct {
	svc *service.Service
}

// New creates a new contacts handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Reconcile reconciles a single mobile/telephone pair.
// POST /api/v1/contacts/reconcile
func (h *Handler) Reconcile(c *gin.Context) {
	var req transport.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.Reconcile(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ReconcileBatch reconciles up to transport.MaxBatchSize pairs.
// POST /api/v1/contacts/reconcile/batch
func (h *Handler) ReconcileBatch(c *gin.Context) {
	var req transport.BatchReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.ReconcileBatch(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
