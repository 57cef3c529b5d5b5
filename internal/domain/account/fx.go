package account

import (
	"go.uber.org/fx"

	"github.com/creonhq/creon/internal/domain/account/delivery/http"
	"github.com/creonhq/creon/internal/domain/account/repository/postgres"
	"github.com/creonhq/creon/internal/domain/account/usecase/business"
	"github.com/creonhq/creon/internal/infrastructure/http/server"
)

// Module provides account domain components for fx DI
var Module = fx.Module("account",
	fx.Provide(
		postgres.NewRepository,
		business.NewUseCase,
		http.NewHandler,
		http.NewRouter,
	),
	fx.Invoke(registerRoutes),
)

// registerRoutes registers account HTTP routes on the server
func registerRoutes(srv *server.Server, router *http.Router) {
	router.RegisterRoutes(srv.Router)
}
