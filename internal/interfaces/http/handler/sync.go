package handler

import (
	"github.com/gin-gonic/gin"

	appsync "github.com/shopmetrics/backend/internal/application/sync"
)

// SyncHandler triggers full storefront backfills for the caller's tenant
type SyncHandler struct {
	BaseHandler
	service *appsync.Service
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(service *appsync.Service) *SyncHandler {
	return &SyncHandler{service: service}
}

// RegisterRoutes registers sync routes on the given router group
func (h *SyncHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/sync", h.Trigger)
}

// Trigger runs a full sync synchronously and returns per-entity counts.
// Backfills are small enough that blocking the request was chosen over
// tracking job state.
func (h *SyncHandler) Trigger(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	result, err := h.service.SyncTenant(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
