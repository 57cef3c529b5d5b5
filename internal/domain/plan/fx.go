package plan

import (
	"go.uber.org/fx"

	"github.com/creonhq/creon/internal/domain/plan/delivery/http"
	"github.com/creonhq/creon/internal/domain/plan/repository/postgres"
	"github.com/creonhq/creon/internal/domain/plan/usecase/business"
	"github.com/creonhq/creon/internal/infrastructure/http/server"
)

// Module provides plan domain components for fx DI
var Module = fx.Module("plan",
	fx.Provide(
		postgres.NewRepository,
		business.NewUseCase,
		http.NewHandler,
		http.NewRouter,
	),
	fx.Invoke(registerRoutes),
)

// registerRoutes registers plan HTTP routes on the server
func registerRoutes(srv *server.Server, router *http.Router) {
	router.RegisterRoutes(srv.Router)
}
