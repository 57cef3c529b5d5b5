package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the service
type Config struct {
	Service  ServiceConfig
	Logging  LoggingConfig
	Database DatabaseConfig
	Telegram TelegramConfig
	Auth     AuthConfig
	S3       S3Config
	Kafka    KafkaConfig
	Workers  WorkerConfig
}

// ServiceConfig holds service configuration
type ServiceConfig struct {
	Name            string
	Port            string
	ShutdownTimeout time.Duration
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// TelegramConfig holds Telegram MTProto and bot configuration
type TelegramConfig struct {
	APIID       int
	APIHash     string
	BotUsername string
	BotToken    string
	ConnTimeout time.Duration
}

// AuthConfig holds bearer token configuration
type AuthConfig struct {
	TokenSecret string
	TokenTTL    time.Duration
}

// S3Config holds object storage configuration
type S3Config struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	Bucket     string
	UseSSL     bool
	PresignTTL time.Duration
}

// KafkaConfig holds event stream configuration. Empty Brokers disables publishing.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Enabled reports whether event publishing is configured
func (c *KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

// WorkerConfig holds background worker configuration
type WorkerConfig struct {
	ActivationInterval time.Duration
	ActivationTimeout  time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	apiID, err := strconv.Atoi(getEnv("TELEGRAM_API_ID", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_API_ID: %w", err)
	}

	shutdownTimeout, err := time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	connTimeout, err := time.ParseDuration(getEnv("TELEGRAM_CONN_TIMEOUT", "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_CONN_TIMEOUT: %w", err)
	}

	tokenTTL, err := time.ParseDuration(getEnv("AUTH_TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_TOKEN_TTL: %w", err)
	}

	presignTTL, err := time.ParseDuration(getEnv("S3_PRESIGN_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid S3_PRESIGN_TTL: %w", err)
	}

	activationInterval, err := time.ParseDuration(getEnv("SUBSCRIPTION_ACTIVATION_INTERVAL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SUBSCRIPTION_ACTIVATION_INTERVAL: %w", err)
	}

	activationTimeout, err := time.ParseDuration(getEnv("SUBSCRIPTION_ACTIVATION_TIMEOUT", "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SUBSCRIPTION_ACTIVATION_TIMEOUT: %w", err)
	}

	useSSL, err := strconv.ParseBool(getEnv("S3_USE_SSL", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid S3_USE_SSL: %w", err)
	}

	brokers := []string{}
	brokersStr := getEnv("KAFKA_BROKERS", "")
	if brokersStr != "" {
		brokers = strings.Split(brokersStr, ",")
	}

	cfg := &Config{
		Service: ServiceConfig{
			Name:            getEnv("SERVICE_NAME", "creon-api"),
			Port:            getEnv("SERVICE_PORT", "8080"),
			ShutdownTimeout: shutdownTimeout,
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "creon"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Telegram: TelegramConfig{
			APIID:       apiID,
			APIHash:     getEnv("TELEGRAM_API_HASH", ""),
			BotUsername: getEnv("TELEGRAM_BOT_USERNAME", ""),
			BotToken:    getEnv("TELEGRAM_BOT_TOKEN", ""),
			ConnTimeout: connTimeout,
		},
		Auth: AuthConfig{
			TokenSecret: getEnv("AUTH_TOKEN_SECRET", ""),
			TokenTTL:    tokenTTL,
		},
		S3: S3Config{
			Endpoint:   getEnv("S3_ENDPOINT", "localhost:9000"),
			AccessKey:  getEnv("S3_ACCESS_KEY", ""),
			SecretKey:  getEnv("S3_SECRET_KEY", ""),
			Bucket:     getEnv("S3_BUCKET", "creon-media"),
			UseSSL:     useSSL,
			PresignTTL: presignTTL,
		},
		Kafka: KafkaConfig{
			Brokers: brokers,
			Topic:   getEnv("KAFKA_TOPIC_SALES", "creon.sales"),
		},
		Workers: WorkerConfig{
			ActivationInterval: activationInterval,
			ActivationTimeout:  activationTimeout,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Telegram.APIID == 0 {
		return fmt.Errorf("TELEGRAM_API_ID is required")
	}

	if c.Telegram.APIHash == "" {
		return fmt.Errorf("TELEGRAM_API_HASH is required")
	}

	if c.Telegram.BotUsername == "" {
		return fmt.Errorf("TELEGRAM_BOT_USERNAME is required")
	}

	if c.Auth.TokenSecret == "" {
		return fmt.Errorf("AUTH_TOKEN_SECRET is required")
	}

	return nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
