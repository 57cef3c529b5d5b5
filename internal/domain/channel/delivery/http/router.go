package http

import (
	"github.com/fasthttp/router"

	"github.com/creonhq/creon/pkg/authtoken"
	"github.com/creonhq/creon/pkg/httputil"
)

// Router registers channel HTTP routes
type Router struct {
	handler *Handler
	tokens  *authtoken.Manager
}

// NewRouter creates a new channel router
func NewRouter(handler *Handler, tokens *authtoken.Manager) *Router {
	return &Router{handler: handler, tokens: tokens}
}

// RegisterRoutes registers channel routes on the router
func (r *Router) RegisterRoutes(rt *router.Router) {
	public := httputil.NewMiddlewareGroup(rt.Group("/api/v1/telegram/public"))
	public.GET("/channels/{slug}", r.handler.PublicBySlug)

	api := httputil.NewMiddlewareGroup(rt.Group("/api/v1/telegram")).
		Use(httputil.Auth(r.tokens))

	api.GET("/dialogs", r.handler.ListDialogs)

	api.POST("/channels", r.handler.Create)
	api.POST("/channels/import", r.handler.Import)
	api.GET("/channels", r.handler.List)
	api.GET("/channels/{channelId}", r.handler.Get)
	api.PUT("/channels/{channelId}", r.handler.Update)
	api.PUT("/channels/{channelId}/contact", r.handler.UpdateContact)
	api.PUT("/channels/{channelId}/banner", r.handler.UploadBanner)
	api.PUT("/channels/{channelId}/publish", r.handler.Publish)
	api.PUT("/channels/{channelId}/unpublish", r.handler.Unpublish)
	api.DELETE("/channels/{channelId}", r.handler.Delete)
}
