package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration. Registrars added with Register
// mount under the versioned API prefix; webhook registrars mount under
// /webhooks, outside the API prefix, because the sender's delivery URL is
// configured once and never versioned.
type Router struct {
	engine      *gin.Engine
	apiVersion  string
	registrars  []RouteRegistrar
	webhooks    []RouteRegistrar
	webhookMids []gin.HandlerFunc
	apiMids     []gin.HandlerFunc
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// WithAPIMiddleware sets middleware applied to the versioned API group only
func WithAPIMiddleware(mids ...gin.HandlerFunc) RouterOption {
	return func(r *Router) {
		r.apiMids = append(r.apiMids, mids...)
	}
}

// WithWebhookMiddleware sets middleware applied to the webhook group only
func WithWebhookMiddleware(mids ...gin.HandlerFunc) RouterOption {
	return func(r *Router) {
		r.webhookMids = append(r.webhookMids, mids...)
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds a RouteRegistrar mounted under the versioned API prefix
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// RegisterWebhook adds a RouteRegistrar mounted under /webhooks
func (r *Router) RegisterWebhook(registrar RouteRegistrar) *Router {
	r.webhooks = append(r.webhooks, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group("/api/"+r.apiVersion, r.apiMids...)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}

	webhooks := r.engine.Group("/webhooks", r.webhookMids...)
	for _, registrar := range r.webhooks {
		registrar.RegisterRoutes(webhooks)
	}
}

// Engine returns the underlying gin engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
