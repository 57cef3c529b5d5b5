package bot

import (
	"github.com/creonhq/creon/config"
	"github.com/creonhq/creon/internal/domain"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// Module provides the Bot API notifier for fx DI
var Module = fx.Module("bot",
	fx.Provide(NewNotifierFx),
)

// NewNotifierFx creates the bot notifier, or a no-op when no token is configured
func NewNotifierFx(cfg *config.TelegramConfig, logger zerolog.Logger) (domain.BotNotifier, error) {
	if cfg.BotToken == "" {
		logger.Info().Msg("Bot token not configured, channel announcements disabled")
		return NoopNotifier{}, nil
	}

	return NewNotifier(cfg.BotToken, logger)
}
