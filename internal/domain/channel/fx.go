package channel

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/creonhq/creon/config"
	"github.com/creonhq/creon/internal/domain"
	accountdeps "github.com/creonhq/creon/internal/domain/account/deps"
	"github.com/creonhq/creon/internal/domain/channel/delivery/http"
	"github.com/creonhq/creon/internal/domain/channel/deps"
	"github.com/creonhq/creon/internal/domain/channel/repository/postgres"
	"github.com/creonhq/creon/internal/domain/channel/usecase/business"
	"github.com/creonhq/creon/internal/infrastructure/http/server"
	"github.com/creonhq/creon/internal/infrastructure/metrics"
	"github.com/creonhq/creon/internal/infrastructure/s3"
	"github.com/creonhq/creon/pkg/keylock"
)

// Module provides channel domain components for fx DI
var Module = fx.Module("channel",
	fx.Provide(
		postgres.NewRepository,
		NewUseCaseFx,
		http.NewHandler,
		http.NewRouter,
	),
	fx.Invoke(registerRoutes),
)

// NewUseCaseFx creates the channel usecase from config for fx DI
func NewUseCaseFx(
	repo deps.ChannelRepository,
	store accountdeps.SessionStore,
	gateway domain.TelegramGateway,
	media s3.MediaStore,
	notifier domain.BotNotifier,
	locks *keylock.KeyLock,
	m *metrics.Metrics,
	cfg *config.TelegramConfig,
	logger zerolog.Logger,
) deps.ChannelService {
	return business.NewUseCase(repo, store, gateway, media, notifier, locks, m, cfg.BotUsername, logger)
}

// registerRoutes registers channel HTTP routes on the server
func registerRoutes(srv *server.Server, router *http.Router) {
	router.RegisterRoutes(srv.Router)
}
