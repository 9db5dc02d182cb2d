package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shopmetrics/backend/internal/domain/ingestion"
	"github.com/shopmetrics/backend/internal/domain/shared"
	"github.com/shopmetrics/backend/internal/interfaces/http/dto"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping() error
}

// SystemHandler handles health checks and operational endpoints
type SystemHandler struct {
	BaseHandler
	db          Pinger
	deadLetters ingestion.DeadLetterRepository
	startTime   time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db Pinger, deadLetters ingestion.DeadLetterRepository) *SystemHandler {
	return &SystemHandler{
		db:          db,
		deadLetters: deadLetters,
		startTime:   time.Now(),
	}
}

// RegisterRoutes registers system routes on the given router group
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	system := rg.Group("/system")
	{
		system.GET("/info", h.GetSystemInfo)
		system.GET("/dead-letters", h.ListDeadLetters)
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Health reports process and database liveness. Registered outside the
// authenticated group so load balancers can probe it.
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{Status: "ok", Database: "ok"}
	status := http.StatusOK

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			resp.Status = "degraded"
			resp.Database = "unreachable"
			status = http.StatusServiceUnavailable
		}
	}

	c.JSON(status, resp)
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// GetSystemInfo returns basic system information including version and uptime
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	info := SystemInfoResponse{
		Name:      "ShopMetrics API",
		Version:   "1.0.0",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}

	h.Success(c, info)
}

// DeadLetterView is the read representation of a dead-lettered event
type DeadLetterView struct {
	ID         string    `json:"id"`
	Topic      string    `json:"topic"`
	ShopDomain string    `json:"shop_domain"`
	LastError  string    `json:"last_error"`
	Attempts   int       `json:"attempts"`
	CreatedAt  time.Time `json:"created_at"`
}

// ListDeadLetters returns a page of events that exhausted their retries,
// for manual inspection and replay.
func (h *SystemHandler) ListDeadLetters(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	filter := shared.Filter{Page: req.Page, PageSize: req.PageSize}
	letters, err := h.deadLetters.FindAll(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	total, err := h.deadLetters.Count(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	views := make([]DeadLetterView, 0, len(letters))
	for _, letter := range letters {
		views = append(views, DeadLetterView{
			ID:         letter.ID.String(),
			Topic:      letter.Topic,
			ShopDomain: letter.ShopDomain,
			LastError:  letter.LastError,
			Attempts:   letter.Attempts,
			CreatedAt:  letter.CreatedAt,
		})
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	h.SuccessWithMeta(c, views, total, page, filter.Limit())
}
