package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appidentity "github.com/shopmetrics/backend/internal/application/identity"
	"github.com/shopmetrics/backend/internal/domain/shared"
	"github.com/shopmetrics/backend/internal/interfaces/http/dto"
	"github.com/shopmetrics/backend/internal/interfaces/http/middleware"
)

// TenantHandler handles tenant provisioning and management
type TenantHandler struct {
	BaseHandler
	service *appidentity.TenantService
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(service *appidentity.TenantService) *TenantHandler {
	return &TenantHandler{service: service}
}

// RegisterRoutes registers tenant routes on the given router group
func (h *TenantHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tenants := rg.Group("/tenants")
	{
		tenants.POST("", h.Create)
		tenants.GET("", h.List)
		tenants.GET("/current", h.Current)
		tenants.GET("/:id", h.Get)
		tenants.PUT("/:id/access-token", h.UpdateAccessToken)
	}
}

// Create provisions a new tenant for the authenticated user
func (h *TenantHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var input appidentity.CreateTenantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	tenant, err := h.service.CreateTenant(c.Request.Context(), userID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, tenant)
}

// List returns a page of tenants
func (h *TenantHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	filter := shared.Filter{Page: req.Page, PageSize: req.PageSize}
	tenants, err := h.service.ListTenants(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenants)
}

// Current returns the tenant owned by the authenticated user
func (h *TenantHandler) Current(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	tenant, err := h.service.ResolveForUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenant)
}

// Get returns one tenant by ID
func (h *TenantHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	tenant, err := h.service.GetTenant(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenant)
}

// UpdateAccessTokenRequest carries a replacement Admin API access token
type UpdateAccessTokenRequest struct {
	AccessToken string `json:"access_token" binding:"required"`
}

// UpdateAccessToken replaces the tenant's Admin API access token
func (h *TenantHandler) UpdateAccessToken(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req UpdateAccessTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.service.UpdateAccessToken(c.Request.Context(), id, req.AccessToken); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"updated": true})
}
