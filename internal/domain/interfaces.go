package domain

import "context"

// TelegramConn is a live vendor connection scoped to one WithSession call
type TelegramConn interface {
	// SendCode requests a login code for the phone number and returns the code hash
	SendCode(ctx context.Context, phoneNumber string) (string, error)

	// SignIn completes the login with the code the user received
	SignIn(ctx context.Context, phoneNumber, codeHash, code string) error

	// IsAuthorized reports whether the current session is authorized
	IsAuthorized(ctx context.Context) (bool, error)

	// CreateChannel creates a broadcast channel and returns its remote identity
	CreateChannel(ctx context.Context, title, about string) (RemoteChannel, error)

	// InviteBot invites the platform bot into the channel. Recoverable vendor
	// rejections surface as InviteResult{Success: false}, not as errors.
	InviteBot(ctx context.Context, channel RemoteChannel, botUsername string) (InviteResult, error)

	// ListOwnedDialogs returns channels where the identity has creator or admin rights
	ListOwnedDialogs(ctx context.Context) ([]RemoteChannelSummary, error)

	// FindOwnedChannel looks up an owned channel by its remote ID
	FindOwnedChannel(ctx context.Context, remoteID int64) (RemoteChannel, bool, error)
}

// TelegramGateway acquires scoped vendor connections. The connection is torn
// down on every exit path; the possibly-rotated session blob is always returned.
type TelegramGateway interface {
	WithSession(ctx context.Context, sessionBlob string, fn func(ctx context.Context, conn TelegramConn) error) (string, error)
}

// BotNotifier posts messages into channels through the Bot API, best effort
type BotNotifier interface {
	AnnounceChannelConnected(ctx context.Context, remoteID int64, title string) error
}

// EventProducer publishes sales lifecycle events for analytics consumers
type EventProducer interface {
	Publish(ctx context.Context, key string, event any) error
	Close() error
}
