package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shopmetrics/backend/internal/application/report"
	"github.com/shopmetrics/backend/internal/domain/shared"
	"github.com/shopmetrics/backend/internal/interfaces/http/dto"
)

// DashboardHandler serves the aggregate read models behind the dashboard
type DashboardHandler struct {
	BaseHandler
	service *report.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(service *report.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// RegisterRoutes registers dashboard routes on the given router group
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("/stats", h.GetStats)
		dashboard.GET("/orders-by-date", h.GetOrdersByDate)
		dashboard.GET("/top-customers", h.GetTopCustomers)
		dashboard.GET("/orders", h.ListOrders)
	}
}

// GetStats returns headline counts and total revenue for the tenant
func (h *DashboardHandler) GetStats(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	stats, err := h.service.GetStats(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}

// GetOrdersByDate returns the daily order count and revenue series
func (h *DashboardHandler) GetOrdersByDate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days < 1 || days > 365 {
		h.BadRequest(c, "days must be between 1 and 365")
		return
	}

	series, err := h.service.GetSalesByDay(c.Request.Context(), tenantID, days)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, series)
}

// GetTopCustomers returns customers ranked by total spend
func (h *DashboardHandler) GetTopCustomers(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil || limit < 1 {
		h.BadRequest(c, "limit must be a positive integer")
		return
	}

	customers, err := h.service.GetTopCustomers(c.Request.Context(), tenantID, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customers)
}

// ListOrders returns a page of orders with their customer names
func (h *DashboardHandler) ListOrders(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	query := report.OrderQuery{Filter: shared.Filter{Page: req.Page, PageSize: req.PageSize}}
	if from, ok, err := parseDateParam(c, "from"); err != nil {
		h.BadRequest(c, "from must be an RFC 3339 timestamp or YYYY-MM-DD date")
		return
	} else if ok {
		query.From = &from
	}
	if to, ok, err := parseDateParam(c, "to"); err != nil {
		h.BadRequest(c, "to must be an RFC 3339 timestamp or YYYY-MM-DD date")
		return
	} else if ok {
		query.To = &to
	}

	page, err := h.service.ListOrders(c.Request.Context(), tenantID, query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// parseDateParam reads an optional query parameter as either an RFC 3339
// timestamp or a bare date. The second return reports whether it was set.
func parseDateParam(c *gin.Context, name string) (time.Time, bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, false, nil
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts, true, nil
	}
	ts, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false, err
	}
	return ts, true, nil
}
