package http

import (
	"github.com/fasthttp/router"

	"github.com/creonhq/creon/pkg/authtoken"
	"github.com/creonhq/creon/pkg/httputil"
)

// Router registers plan HTTP routes
type Router struct {
	handler *Handler
	tokens  *authtoken.Manager
}

// NewRouter creates a new plan router
func NewRouter(handler *Handler, tokens *authtoken.Manager) *Router {
	return &Router{handler: handler, tokens: tokens}
}

// RegisterRoutes registers plan routes on the router
func (r *Router) RegisterRoutes(rt *router.Router) {
	api := httputil.NewMiddlewareGroup(rt.Group("/api/v1/telegram")).
		Use(httputil.Auth(r.tokens))

	api.POST("/channels/{channelId}/plans", r.handler.Create)
	api.GET("/channels/{channelId}/plans", r.handler.List)
	api.PUT("/plans/{planId}", r.handler.Update)
	api.DELETE("/plans/{planId}", r.handler.Delete)
}
