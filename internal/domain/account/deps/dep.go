package deps

import (
	"context"

	"github.com/creonhq/creon/internal/domain/account/entities"
)

// SessionStore persists one Telegram session per (user, phone number) pair.
// It provides no concurrency control of its own; callers serialize mutations
// per (user, phone) before reaching it.
type SessionStore interface {
	// Get returns the non-deleted account for (userID, phoneNumber),
	// or ErrAccountNotFound
	Get(ctx context.Context, userID uint, phoneNumber string) (*entities.Account, error)

	// GetByID returns the non-deleted account with the given ID
	GetByID(ctx context.Context, accountID uint) (*entities.Account, error)

	// Put stores a fresh session blob and code hash with create-or-update
	// semantics. Reusing a soft-deleted row clears its deletion mark.
	Put(ctx context.Context, userID uint, phoneNumber, sessionBlob, phoneCodeHash string) (*entities.Account, error)

	// MarkAuthenticated flips the account to authenticated and stores the
	// post-sign-in session blob
	MarkAuthenticated(ctx context.Context, accountID uint, newSessionBlob string) error

	// UpdateSessionBlob stores a rotated session blob without touching flags
	UpdateSessionBlob(ctx context.Context, accountID uint, sessionBlob string) error

	// ClearSession wipes the session blob and authenticated flag. Used on
	// fatal vendor session conflicts to force the user back through OTP.
	ClearSession(ctx context.Context, accountID uint) error

	// List returns all non-deleted accounts of the user
	List(ctx context.Context, userID uint) ([]entities.Account, error)

	// SoftDelete marks the account deleted, preserving history
	SoftDelete(ctx context.Context, userID, accountID uint) error
}

// AccountService orchestrates the OTP login lifecycle
type AccountService interface {
	RequestCode(ctx context.Context, userID uint, phoneNumber string) (*entities.Account, error)
	VerifyCode(ctx context.Context, userID uint, phoneNumber, code string) (*entities.Account, error)
	ListAccounts(ctx context.Context, userID uint) ([]entities.Account, error)
	DeleteAccount(ctx context.Context, userID, accountID uint) error
}
