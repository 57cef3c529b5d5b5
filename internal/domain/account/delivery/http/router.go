package http

import (
	"github.com/fasthttp/router"

	"github.com/creonhq/creon/pkg/authtoken"
	"github.com/creonhq/creon/pkg/httputil"
)

// Router registers account HTTP routes
type Router struct {
	handler *Handler
	tokens  *authtoken.Manager
}

// NewRouter creates a new account router
func NewRouter(handler *Handler, tokens *authtoken.Manager) *Router {
	return &Router{handler: handler, tokens: tokens}
}

// RegisterRoutes registers account routes on the router
func (r *Router) RegisterRoutes(rt *router.Router) {
	api := httputil.NewMiddlewareGroup(rt.Group("/api/v1/telegram")).
		Use(httputil.Auth(r.tokens))

	api.POST("/send-otp", r.handler.SendOTP)
	api.POST("/verify-otp", r.handler.VerifyOTP)
	api.GET("/accounts", r.handler.ListAccounts)
	api.DELETE("/accounts/{accountId}", r.handler.DeleteAccount)
}
