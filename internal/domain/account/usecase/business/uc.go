package business

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/creonhq/creon/internal/domain"
	"github.com/creonhq/creon/internal/domain/account/deps"
	"github.com/creonhq/creon/internal/domain/account/entities"
	accounterrors "github.com/creonhq/creon/internal/domain/account/errors"
	"github.com/creonhq/creon/internal/infrastructure/metrics"
	apperrors "github.com/creonhq/creon/pkg/errors"
	"github.com/creonhq/creon/pkg/keylock"
)

// UseCase implements deps.AccountService. All session mutations for the same
// (user, phone) pair are serialized through a keyed mutex: two interleaved
// verification attempts would race on the stored code hash and session blob.
type UseCase struct {
	store   deps.SessionStore
	gateway domain.TelegramGateway
	locks   *keylock.KeyLock
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewUseCase creates a new account lifecycle usecase
func NewUseCase(
	store deps.SessionStore,
	gateway domain.TelegramGateway,
	locks *keylock.KeyLock,
	m *metrics.Metrics,
	logger zerolog.Logger,
) deps.AccountService {
	return &UseCase{
		store:   store,
		gateway: gateway,
		locks:   locks,
		metrics: m,
		logger:  logger.With().Str("component", "account_usecase").Logger(),
	}
}

// accountKey is the serialization key for per-account mutations
func accountKey(userID uint, phoneNumber string) string {
	return fmt.Sprintf("%d:%s", userID, phoneNumber)
}

// RequestCode sends a verification code to the phone number and stores the
// returned code hash together with the still-unauthenticated session blob.
// Repeating the call overwrites both; only the most recent code verifies.
func (uc *UseCase) RequestCode(ctx context.Context, userID uint, phoneNumber string) (*entities.Account, error) {
	phoneNumber = strings.TrimSpace(phoneNumber)
	if phoneNumber == "" {
		return nil, apperrors.NewValidationError("phoneNumber is required")
	}
	if userID == 0 {
		return nil, apperrors.NewValidationError("user is required")
	}

	release := uc.locks.Lock(accountKey(userID, phoneNumber))
	defer release()

	uc.metrics.OTPRequestsTotal.Inc()

	var codeHash string
	// A code request always starts from an empty session; the previous
	// blob belongs to the previous verification attempt.
	newBlob, err := uc.gateway.WithSession(ctx, "", func(ctx context.Context, conn domain.TelegramConn) error {
		hash, err := conn.SendCode(ctx, phoneNumber)
		if err != nil {
			return err
		}
		codeHash = hash
		return nil
	})
	if err != nil {
		uc.logger.Error().Err(err).Uint("user_id", userID).Msg("failed to send verification code")
		return nil, uc.mapVendorErr(err)
	}

	account, err := uc.store.Put(ctx, userID, phoneNumber, newBlob, codeHash)
	if err != nil {
		return nil, err
	}

	uc.logger.Info().Uint("user_id", userID).Uint("account_id", account.ID).Msg("verification code sent")
	return account, nil
}

// VerifyCode completes the OTP flow using the stored code hash. On success the
// account flips to authenticated with the rotated session blob. Invalid codes
// and two-factor requirements leave stored state untouched.
func (uc *UseCase) VerifyCode(ctx context.Context, userID uint, phoneNumber, code string) (*entities.Account, error) {
	phoneNumber = strings.TrimSpace(phoneNumber)
	code = strings.TrimSpace(code)
	if phoneNumber == "" || code == "" {
		return nil, apperrors.NewValidationError("phoneNumber and code are required")
	}

	release := uc.locks.Lock(accountKey(userID, phoneNumber))
	defer release()

	account, err := uc.store.Get(ctx, userID, phoneNumber)
	if err != nil {
		if errors.Is(err, accounterrors.ErrAccountNotFound) {
			return nil, apperrors.NewPreconditionError("no verification in progress, request a new OTP first")
		}
		return nil, err
	}

	if !account.HasPendingCode() {
		return nil, apperrors.NewPreconditionError("no verification in progress, request a new OTP first")
	}

	newBlob, err := uc.gateway.WithSession(ctx, account.SessionBlob, func(ctx context.Context, conn domain.TelegramConn) error {
		return conn.SignIn(ctx, phoneNumber, account.PhoneCodeHash, code)
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCode):
			uc.metrics.RecordOTPVerification("invalid_code")
			return nil, apperrors.NewValidationError("invalid or expired verification code")
		case errors.Is(err, domain.ErrTwoFactorRequired):
			uc.metrics.RecordOTPVerification("two_factor_required")
			return nil, apperrors.NewValidationError("two-factor authentication is enabled for this account and is not supported")
		case errors.Is(err, domain.ErrSessionConflict):
			// The stored session is poisoned; wipe it so the next attempt
			// goes back through a fresh OTP.
			uc.metrics.SessionConflictsTotal.Inc()
			uc.metrics.RecordOTPVerification("session_conflict")
			if clearErr := uc.store.ClearSession(ctx, account.ID); clearErr != nil {
				uc.logger.Error().Err(clearErr).Uint("account_id", account.ID).Msg("failed to clear conflicted session")
			}
			return nil, apperrors.NewUnauthorizedError("session invalidated by a concurrent login, request a new OTP")
		default:
			uc.metrics.RecordOTPVerification("vendor_error")
			return nil, uc.mapVendorErr(err)
		}
	}

	if err := uc.store.MarkAuthenticated(ctx, account.ID, newBlob); err != nil {
		return nil, err
	}

	uc.metrics.RecordOTPVerification("success")
	uc.logger.Info().Uint("user_id", userID).Uint("account_id", account.ID).Msg("account authenticated")

	account.SessionBlob = newBlob
	account.PhoneCodeHash = ""
	account.Authenticated = true
	account.Verified = true
	return account, nil
}

// ListAccounts returns all non-deleted accounts of the user
func (uc *UseCase) ListAccounts(ctx context.Context, userID uint) ([]entities.Account, error) {
	return uc.store.List(ctx, userID)
}

// DeleteAccount soft-deletes the account, preserving audit history
func (uc *UseCase) DeleteAccount(ctx context.Context, userID, accountID uint) error {
	err := uc.store.SoftDelete(ctx, userID, accountID)
	if err != nil {
		if errors.Is(err, accounterrors.ErrAccountNotFound) {
			return apperrors.NewNotFoundError("account not found")
		}
		return err
	}

	uc.logger.Info().Uint("user_id", userID).Uint("account_id", accountID).Msg("account deleted")
	return nil
}

// mapVendorErr converts residual vendor failures into the HTTP error taxonomy
func (uc *UseCase) mapVendorErr(err error) error {
	var vendorErr *domain.VendorError
	if errors.As(err, &vendorErr) {
		uc.metrics.RecordVendorError("request_failed")
		return apperrors.NewInternalError("telegram request failed")
	}
	return err
}
