package dashboard

import (
	"go.uber.org/fx"

	"github.com/creonhq/creon/internal/domain/dashboard/delivery/http"
	"github.com/creonhq/creon/internal/domain/dashboard/repository/postgres"
	"github.com/creonhq/creon/internal/domain/dashboard/usecase/business"
	"github.com/creonhq/creon/internal/infrastructure/http/server"
)

// Module provides dashboard domain components for fx DI
var Module = fx.Module("dashboard",
	fx.Provide(
		postgres.NewRepository,
		business.NewUseCase,
		http.NewHandler,
		http.NewRouter,
	),
	fx.Invoke(registerRoutes),
)

// registerRoutes registers dashboard HTTP routes on the server
func registerRoutes(srv *server.Server, router *http.Router) {
	router.RegisterRoutes(srv.Router)
}
