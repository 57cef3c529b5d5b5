package bot

import (
	"context"
	"fmt"

	tgbot "github.com/go-telegram/bot"
	"github.com/creonhq/creon/internal/domain"
	"github.com/rs/zerolog"
)

// Notifier posts messages into provisioned channels through the Bot API.
// All sends are best effort: the bot may not have posting rights yet.
type Notifier struct {
	bot    *tgbot.Bot
	logger zerolog.Logger
}

// NewNotifier creates a new Bot API notifier
func NewNotifier(token string, logger zerolog.Logger) (*Notifier, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}

	b, err := tgbot.New(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &Notifier{
		bot:    b,
		logger: logger.With().Str("component", "bot_notifier").Logger(),
	}, nil
}

// AnnounceChannelConnected posts a setup confirmation into the channel
func (n *Notifier) AnnounceChannelConnected(ctx context.Context, remoteID int64, title string) error {
	// Bot API addresses channels as -100<id>
	chatID := -1_000_000_000_000 - remoteID

	_, err := n.bot.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: chatID,
		Text:   fmt.Sprintf("%s is now connected. Paid subscriptions are managed from your dashboard.", title),
	})
	if err != nil {
		n.logger.Warn().Err(err).Int64("remote_id", remoteID).Msg("failed to announce channel connection")
		return err
	}

	n.logger.Debug().Int64("remote_id", remoteID).Msg("announced channel connection")
	return nil
}

// NoopNotifier is used when no bot token is configured
type NoopNotifier struct{}

func (NoopNotifier) AnnounceChannelConnected(ctx context.Context, remoteID int64, title string) error {
	return nil
}

var (
	_ domain.BotNotifier = (*Notifier)(nil)
	_ domain.BotNotifier = NoopNotifier{}
)
