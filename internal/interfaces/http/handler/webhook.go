package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopmetrics/backend/internal/application/ingest"
)

// Webhook header names used by the storefront platform
const (
	HeaderWebhookTopic      = "X-Shopify-Topic"
	HeaderWebhookShopDomain = "X-Shopify-Shop-Domain"
	HeaderWebhookSignature  = "X-Shopify-Hmac-Sha256"
)

// WebhookHandler receives storefront webhook deliveries. Its responses
// deliberately bypass the standard envelope: the sender expects this exact
// wire contract and retries on anything it does not recognize as success.
type WebhookHandler struct {
	service *ingest.WebhookService
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(service *ingest.WebhookService) *WebhookHandler {
	return &WebhookHandler{service: service}
}

// RegisterRoutes registers webhook routes on the given router group
func (h *WebhookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/shopify", h.Receive)
}

// Receive handles one webhook delivery. The raw body is read before any
// parsing because the signature covers the exact bytes on the wire. A 200
// acknowledges dispatch initiation only; handlers run asynchronously.
func (h *WebhookHandler) Receive(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Payload too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to read request body"})
		return
	}

	input := ingest.WebhookInput{
		Topic:      c.GetHeader(HeaderWebhookTopic),
		ShopDomain: c.GetHeader(HeaderWebhookShopDomain),
		Signature:  c.GetHeader(HeaderWebhookSignature),
		Body:       body,
	}

	if err := h.service.Process(c.Request.Context(), input); err != nil {
		switch {
		case errors.Is(err, ingest.ErrMissingHeaders):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required headers"})
		case errors.Is(err, ingest.ErrInvalidSignature):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
		case errors.Is(err, ingest.ErrMalformedPayload):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON payload"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
