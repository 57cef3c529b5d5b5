package http

import (
	"github.com/fasthttp/router"

	"github.com/creonhq/creon/pkg/authtoken"
	"github.com/creonhq/creon/pkg/httputil"
)

// Router registers dashboard HTTP routes
type Router struct {
	handler *Handler
	tokens  *authtoken.Manager
}

// NewRouter creates a new dashboard router
func NewRouter(handler *Handler, tokens *authtoken.Manager) *Router {
	return &Router{handler: handler, tokens: tokens}
}

// RegisterRoutes registers dashboard routes on the router
func (r *Router) RegisterRoutes(rt *router.Router) {
	dashboard := httputil.NewMiddlewareGroup(rt.Group("/api/v1/dashboard")).
		Use(httputil.Auth(r.tokens))
	dashboard.GET("/summary", r.handler.Summary)
	dashboard.GET("/sales", r.handler.Sales)
}
