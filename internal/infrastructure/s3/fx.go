package s3

import (
	"context"

	"github.com/creonhq/creon/config"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// Module provides S3/MinIO client for fx DI
var Module = fx.Module("s3",
	fx.Provide(newConfig),
	fx.Provide(NewClient),
	fx.Provide(func(client *Client) MediaStore { return client }),
	fx.Invoke(registerLifecycle),
)

func newConfig(cfg *config.S3Config) *Config {
	return &Config{
		Endpoint:   cfg.Endpoint,
		AccessKey:  cfg.AccessKey,
		SecretKey:  cfg.SecretKey,
		Bucket:     cfg.Bucket,
		UseSSL:     cfg.UseSSL,
		PresignTTL: cfg.PresignTTL,
	}
}

func registerLifecycle(lc fx.Lifecycle, client *Client, logger zerolog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.EnsureBucket(ctx); err != nil {
				return err
			}
			logger.Info().Msg("S3 client initialized successfully")
			return nil
		},
	})
}
