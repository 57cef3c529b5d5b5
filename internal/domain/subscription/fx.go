package subscription

import (
	"go.uber.org/fx"

	"github.com/creonhq/creon/internal/domain/subscription/delivery/http"
	"github.com/creonhq/creon/internal/domain/subscription/repository/postgres"
	"github.com/creonhq/creon/internal/domain/subscription/usecase/business"
	"github.com/creonhq/creon/internal/domain/subscription/workers"
	"github.com/creonhq/creon/internal/infrastructure/http/server"
)

// Module provides subscription domain components for fx DI
var Module = fx.Module("subscription",
	fx.Provide(
		postgres.NewRepository,
		business.NewUseCase,
		http.NewHandler,
		http.NewRouter,
	),
	fx.Invoke(registerRoutes),
	workers.Module,
)

// registerRoutes registers subscription HTTP routes on the server
func registerRoutes(srv *server.Server, router *http.Router) {
	router.RegisterRoutes(srv.Router)
}
