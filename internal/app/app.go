package app

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/creonhq/creon/config"
	"github.com/creonhq/creon/internal/domain/account"
	"github.com/creonhq/creon/internal/domain/channel"
	"github.com/creonhq/creon/internal/domain/dashboard"
	"github.com/creonhq/creon/internal/domain/plan"
	"github.com/creonhq/creon/internal/domain/subscription"
	"github.com/creonhq/creon/internal/domain/user"
	"github.com/creonhq/creon/internal/infrastructure/bot"
	"github.com/creonhq/creon/internal/infrastructure/database"
	"github.com/creonhq/creon/internal/infrastructure/http"
	"github.com/creonhq/creon/internal/infrastructure/kafka"
	"github.com/creonhq/creon/internal/infrastructure/logger"
	"github.com/creonhq/creon/internal/infrastructure/metrics"
	"github.com/creonhq/creon/internal/infrastructure/s3"
	"github.com/creonhq/creon/internal/infrastructure/telegram"
	"github.com/creonhq/creon/pkg/authtoken"
	apperrors "github.com/creonhq/creon/pkg/errors"
	"github.com/creonhq/creon/pkg/keylock"
)

// CreateApp creates the fx application options
func CreateApp() fx.Option {
	return fx.Options(
		fx.Provide(
			config.Out,
			newTokenManager,
			keylock.New,
			apperrors.NewMapper,
		),

		logger.Module,
		metrics.Module,
		database.Module,
		telegram.Module,
		s3.Module,
		kafka.Module,
		bot.Module,
		http.Module,

		// Domain modules
		user.Module,
		account.Module,
		channel.Module,
		plan.Module,
		subscription.Module,
		dashboard.Module,
	)
}

func newTokenManager(cfg *config.AuthConfig, logger zerolog.Logger) (*authtoken.Manager, error) {
	manager, err := authtoken.NewManager(cfg.TokenSecret, cfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	logger.Info().Dur("ttl", cfg.TokenTTL).Msg("Token manager initialized")
	return manager, nil
}
