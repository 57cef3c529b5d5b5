package telegram

import (
	"github.com/creonhq/creon/config"
	"github.com/creonhq/creon/internal/domain"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// Module provides the MTProto gateway for fx DI
var Module = fx.Module("telegram",
	fx.Provide(NewGatewayFx),
)

// NewGatewayFx creates the MTProto gateway from config
func NewGatewayFx(cfg *config.TelegramConfig, logger zerolog.Logger) (domain.TelegramGateway, error) {
	return NewClient(Config{
		APIID:       cfg.APIID,
		APIHash:     cfg.APIHash,
		ConnTimeout: cfg.ConnTimeout,
		Logger:      logger,
	})
}
