package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gotd/td/telegram"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/creonhq/creon/internal/domain"
)

// Client implements domain.TelegramGateway using the gotd/td library.
// Every WithSession call opens its own vendor connection and tears it down
// on all exit paths; the vendor holds stateful connection slots server-side
// and leaking them exhausts the account's slot budget.
type Client struct {
	apiID       int
	apiHash     string
	connTimeout time.Duration
	rateLimiter *rate.Limiter
	logger      zerolog.Logger
}

// Config holds configuration for the MTProto gateway
type Config struct {
	APIID       int
	APIHash     string
	ConnTimeout time.Duration
	Logger      zerolog.Logger
}

// maskPhoneNumber masks phone number for logging (keeps first 2 and last 2 digits)
func maskPhoneNumber(phone string) string {
	if len(phone) < 4 {
		return "***"
	}
	return phone[:2] + strings.Repeat("*", len(phone)-4) + phone[len(phone)-2:]
}

// NewClient creates a new MTProto gateway
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIID == 0 {
		return nil, fmt.Errorf("APIID is required")
	}
	if cfg.APIHash == "" {
		return nil, fmt.Errorf("APIHash is required")
	}
	if cfg.ConnTimeout <= 0 {
		cfg.ConnTimeout = 60 * time.Second
	}

	return &Client{
		apiID:       cfg.APIID,
		apiHash:     cfg.APIHash,
		connTimeout: cfg.ConnTimeout,
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 10), // 10 requests per second
		logger:      cfg.Logger.With().Str("component", "mtproto_gateway").Logger(),
	}, nil
}

// WithSession opens a vendor connection seeded with the given session blob,
// runs fn against it and disconnects. The possibly-rotated blob is returned
// on every path, including vendor errors, so callers can persist it.
func (c *Client) WithSession(ctx context.Context, sessionBlob string, fn func(ctx context.Context, conn domain.TelegramConn) error) (string, error) {
	data, err := decodeBlob(sessionBlob)
	if err != nil {
		return sessionBlob, err
	}

	storage := &memorySession{data: data}

	client := telegram.NewClient(c.apiID, c.apiHash, telegram.Options{
		SessionStorage: storage,
		RetryInterval:  time.Second,
		MaxRetries:     3,
	})

	runCtx, cancel := context.WithTimeout(ctx, c.connTimeout)
	defer cancel()

	runErr := client.Run(runCtx, func(ctx context.Context) error {
		conn := &Conn{
			client:      client,
			api:         client.API(),
			rateLimiter: c.rateLimiter,
			logger:      c.logger,
		}
		return fn(ctx, conn)
	})

	newBlob := encodeBlob(storage.snapshot())
	if newBlob == "" {
		// client.Run may not flush a fresh session on failure paths
		newBlob = sessionBlob
	}

	if runErr != nil {
		return newBlob, mapVendorError(runErr)
	}

	return newBlob, nil
}

// Ensure Client implements domain.TelegramGateway interface
var _ domain.TelegramGateway = (*Client)(nil)
