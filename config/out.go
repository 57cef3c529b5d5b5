package config

import "go.uber.org/fx"

// Configs exposes per-section configuration for fx DI
type Configs struct {
	fx.Out

	Config   *Config
	Service  *ServiceConfig
	Logging  *LoggingConfig
	Database *DatabaseConfig
	Telegram *TelegramConfig
	Auth     *AuthConfig
	S3       *S3Config
	Kafka    *KafkaConfig
	Workers  *WorkerConfig
}

// Out loads configuration and provides each section to the fx container
func Out() (Configs, error) {
	cfg, err := Load()
	if err != nil {
		return Configs{}, err
	}

	return Configs{
		Config:   cfg,
		Service:  &cfg.Service,
		Logging:  &cfg.Logging,
		Database: &cfg.Database,
		Telegram: &cfg.Telegram,
		Auth:     &cfg.Auth,
		S3:       &cfg.S3,
		Kafka:    &cfg.Kafka,
		Workers:  &cfg.Workers,
	}, nil
}
