package telegram

import (
	"errors"

	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tgerr"

	"github.com/creonhq/creon/internal/domain"
	apperrors "github.com/creonhq/creon/pkg/errors"
)

// mapVendorError translates vendor error codes into structured domain kinds
// at the adapter boundary. Downstream logic never matches on free text.
func mapVendorError(err error) error {
	var vendorErr *domain.VendorError
	var apiErr apperrors.APIError

	switch {
	case err == nil:
		return nil
	case errors.As(err, &apiErr):
		// application error raised inside the connection scope, not a vendor failure
		return err
	case errors.Is(err, domain.ErrInvalidCode),
		errors.Is(err, domain.ErrTwoFactorRequired),
		errors.Is(err, domain.ErrSessionConflict),
		errors.Is(err, domain.ErrNotAuthorized),
		errors.As(err, &vendorErr):
		// already mapped inside the connection scope
		return err
	case errors.Is(err, auth.ErrPasswordAuthNeeded) || tgerr.Is(err, "SESSION_PASSWORD_NEEDED"):
		return domain.ErrTwoFactorRequired
	case tgerr.Is(err, "PHONE_CODE_INVALID", "PHONE_CODE_EXPIRED", "PHONE_CODE_EMPTY"):
		return domain.ErrInvalidCode
	case tgerr.Is(err, "AUTH_KEY_DUPLICATED", "SESSION_REVOKED", "SESSION_EXPIRED", "AUTH_KEY_UNREGISTERED"):
		return domain.ErrSessionConflict
	default:
		return domain.NewVendorError(err)
	}
}

// softInviteReasons are vendor rejections of a bot invitation that leave the
// channel itself intact and usable. They surface as a soft failure, never an error.
var softInviteReasons = []string{
	"USER_ALREADY_PARTICIPANT",
	"BOT_GROUPS_BLOCKED",
	"CHAT_ADMIN_REQUIRED",
	"USER_PRIVACY_RESTRICTED",
	"USER_BOT_INVALID",
	"PEER_FLOOD",
	"USER_CHANNELS_TOO_MUCH",
}

// softInviteReason returns the vendor code when the error is a recoverable
// invite rejection, or "" when it is not
func softInviteReason(err error) string {
	for _, reason := range softInviteReasons {
		if tgerr.Is(err, reason) {
			return reason
		}
	}
	return ""
}
