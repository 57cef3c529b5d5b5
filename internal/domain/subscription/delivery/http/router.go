package http

import (
	"github.com/fasthttp/router"

	"github.com/creonhq/creon/pkg/authtoken"
	"github.com/creonhq/creon/pkg/httputil"
)

// Router registers subscription HTTP routes
type Router struct {
	handler *Handler
	tokens  *authtoken.Manager
}

// NewRouter creates a new subscription router
func NewRouter(handler *Handler, tokens *authtoken.Manager) *Router {
	return &Router{handler: handler, tokens: tokens}
}

// RegisterRoutes registers subscription routes on the router
func (r *Router) RegisterRoutes(rt *router.Router) {
	telegram := httputil.NewMiddlewareGroup(rt.Group("/api/v1/telegram")).
		Use(httputil.Auth(r.tokens))
	telegram.POST("/channels/{channelId}/plans/{planId}/subscribe", r.handler.Subscribe)

	api := httputil.NewMiddlewareGroup(rt.Group("/api/v1")).
		Use(httputil.Auth(r.tokens))
	api.GET("/subscriptions", r.handler.List)
}
