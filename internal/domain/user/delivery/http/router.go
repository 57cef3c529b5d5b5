package http

import (
	"github.com/fasthttp/router"

	"github.com/creonhq/creon/pkg/authtoken"
	"github.com/creonhq/creon/pkg/httputil"
)

// Router registers user auth HTTP routes
type Router struct {
	handler *Handler
	tokens  *authtoken.Manager
}

// NewRouter creates a new user router
func NewRouter(handler *Handler, tokens *authtoken.Manager) *Router {
	return &Router{handler: handler, tokens: tokens}
}

// RegisterRoutes registers auth routes on the router
func (r *Router) RegisterRoutes(rt *router.Router) {
	public := httputil.NewMiddlewareGroup(rt.Group("/api/v1/auth"))
	public.POST("/register", r.handler.Register)
	public.POST("/login", r.handler.Login)

	authed := httputil.NewMiddlewareGroup(rt.Group("/api/v1/auth")).
		Use(httputil.Auth(r.tokens))
	authed.GET("/me", r.handler.Me)
}
