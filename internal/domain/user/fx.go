package user

import (
	"go.uber.org/fx"

	"github.com/creonhq/creon/internal/domain/user/delivery/http"
	"github.com/creonhq/creon/internal/domain/user/repository/postgres"
	"github.com/creonhq/creon/internal/domain/user/usecase/business"
	"github.com/creonhq/creon/internal/infrastructure/http/server"
)

// Module provides user domain components for fx DI
var Module = fx.Module("user",
	fx.Provide(
		postgres.NewRepository,
		business.NewUseCase,
		http.NewHandler,
		http.NewRouter,
	),
	fx.Invoke(registerRoutes),
)

// registerRoutes registers user HTTP routes on the server
func registerRoutes(srv *server.Server, router *http.Router) {
	router.RegisterRoutes(srv.Router)
}
