package business

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/teris-io/shortid"

	"github.com/creonhq/creon/internal/domain"
	accountdeps "github.com/creonhq/creon/internal/domain/account/deps"
	accountentities "github.com/creonhq/creon/internal/domain/account/entities"
	accounterrors "github.com/creonhq/creon/internal/domain/account/errors"
	"github.com/creonhq/creon/internal/domain/channel/deps"
	"github.com/creonhq/creon/internal/domain/channel/entities"
	channelerrors "github.com/creonhq/creon/internal/domain/channel/errors"
	"github.com/creonhq/creon/internal/infrastructure/metrics"
	"github.com/creonhq/creon/internal/infrastructure/s3"
	apperrors "github.com/creonhq/creon/pkg/errors"
	"github.com/creonhq/creon/pkg/keylock"
)

// UseCase implements deps.ChannelService. Provisioning for the same account
// is serialized through the shared per-(user, phone) keyed mutex so two
// concurrent creates cannot both open vendor connections on one session.
type UseCase struct {
	repo        deps.ChannelRepository
	store       accountdeps.SessionStore
	gateway     domain.TelegramGateway
	media       s3.MediaStore
	notifier    domain.BotNotifier
	locks       *keylock.KeyLock
	metrics     *metrics.Metrics
	botUsername string
	logger      zerolog.Logger
}

// NewUseCase creates a new channel provisioning usecase
func NewUseCase(
	repo deps.ChannelRepository,
	store accountdeps.SessionStore,
	gateway domain.TelegramGateway,
	media s3.MediaStore,
	notifier domain.BotNotifier,
	locks *keylock.KeyLock,
	m *metrics.Metrics,
	botUsername string,
	logger zerolog.Logger,
) deps.ChannelService {
	return &UseCase{
		repo:        repo,
		store:       store,
		gateway:     gateway,
		media:       media,
		notifier:    notifier,
		locks:       locks,
		metrics:     m,
		botUsername: botUsername,
		logger:      logger.With().Str("component", "channel_usecase").Logger(),
	}
}

// CreateNew provisions a brand-new remote channel. The local row is persisted
// between the remote create and the bot invitation: a remotely created channel
// must never be lost to the system when the riskier bot step fails. A failed
// bot invitation keeps the row with botAdded=false and surfaces a message,
// not an error: the vendor's reason on a soft rejection, a generic marker on
// a hard failure.
func (uc *UseCase) CreateNew(ctx context.Context, userID uint, phoneNumber, name, about string) (*deps.ProvisionedChannel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("channelName is required")
	}
	phoneNumber = strings.TrimSpace(phoneNumber)

	// The lock is taken before the account is read so the session blob cannot
	// be replaced or wiped between the read and the vendor call.
	release := uc.locks.Lock(accountKey(userID, phoneNumber))
	defer release()

	account, err := uc.requireAuthenticatedAccount(ctx, userID, phoneNumber)
	if err != nil {
		return nil, err
	}

	timer := prometheus.NewTimer(uc.metrics.ProvisioningDuration)
	defer timer.ObserveDuration()

	var created *entities.Channel
	var invite domain.InviteResult

	sessionErr := uc.withAccountSession(ctx, account, func(ctx context.Context, conn domain.TelegramConn) error {
		if err := uc.requireAuthorized(ctx, conn); err != nil {
			return err
		}

		remote, err := conn.CreateChannel(ctx, name, about)
		if err != nil {
			return err
		}

		slug, err := shortid.Generate()
		if err != nil {
			return apperrors.NewInternalErrorf("failed to generate slug: %v", err)
		}

		created, err = uc.repo.Create(ctx, &entities.Channel{
			UserID:      userID,
			AccountID:   account.ID,
			RemoteID:    remote.ID,
			Slug:        slug,
			Name:        name,
			Description: about,
			Status:      entities.StatusInactive,
		})
		if err != nil {
			return apperrors.NewInternalErrorf("failed to persist channel: %v", err)
		}

		invite, err = conn.InviteBot(ctx, remote, uc.botUsername)
		return err
	})
	if sessionErr != nil {
		if created == nil {
			return nil, sessionErr
		}
		if !invite.Success {
			invite = uc.downgradeInviteFailure(created, sessionErr)
		}
	}

	uc.metrics.RecordProvisioned("created")

	return uc.finishProvisioning(ctx, created, invite, false)
}

// ImportExisting mirrors an already-existing remote channel. The call is
// idempotent: a second import of the same remote ID returns the stored row
// with IsExisting set instead of duplicating it.
func (uc *UseCase) ImportExisting(ctx context.Context, userID uint, phoneNumber string, remoteID int64, name, about string) (*deps.ProvisionedChannel, error) {
	if remoteID == 0 {
		return nil, apperrors.NewValidationError("telegramChannelId is required")
	}
	phoneNumber = strings.TrimSpace(phoneNumber)

	// Lock first: the idempotency check is only sound when no concurrent
	// import of the same remote channel can run between check and insert.
	release := uc.locks.Lock(accountKey(userID, phoneNumber))
	defer release()

	existing, err := uc.repo.GetByRemoteID(ctx, userID, remoteID)
	if err == nil {
		return &deps.ProvisionedChannel{
			Channel:    existing,
			BotAdded:   existing.BotAdded,
			IsExisting: true,
		}, nil
	}
	if !errors.Is(err, channelerrors.ErrChannelNotFound) {
		return nil, err
	}

	account, err := uc.requireAuthenticatedAccount(ctx, userID, phoneNumber)
	if err != nil {
		return nil, err
	}

	timer := prometheus.NewTimer(uc.metrics.ProvisioningDuration)
	defer timer.ObserveDuration()

	var created *entities.Channel
	var invite domain.InviteResult

	sessionErr := uc.withAccountSession(ctx, account, func(ctx context.Context, conn domain.TelegramConn) error {
		if err := uc.requireAuthorized(ctx, conn); err != nil {
			return err
		}

		remote, found, err := conn.FindOwnedChannel(ctx, remoteID)
		if err != nil {
			return err
		}
		if !found {
			return apperrors.NewNotFoundError("channel not found among your owned dialogs")
		}

		if name == "" {
			name = remote.Title
		}

		slug, err := shortid.Generate()
		if err != nil {
			return apperrors.NewInternalErrorf("failed to generate slug: %v", err)
		}

		created, err = uc.repo.Create(ctx, &entities.Channel{
			UserID:      userID,
			AccountID:   account.ID,
			RemoteID:    remote.ID,
			Slug:        slug,
			Name:        name,
			Description: about,
			Status:      entities.StatusInactive,
		})
		if err != nil {
			return apperrors.NewInternalErrorf("failed to persist channel: %v", err)
		}

		invite, err = conn.InviteBot(ctx, remote, uc.botUsername)
		return err
	})
	if sessionErr != nil {
		if created == nil {
			return nil, sessionErr
		}
		if !invite.Success {
			invite = uc.downgradeInviteFailure(created, sessionErr)
		}
	}

	uc.metrics.RecordProvisioned("imported")

	return uc.finishProvisioning(ctx, created, invite, false)
}

// finishProvisioning records the invite outcome on the persisted row and
// announces the connection through the bot, best effort
func (uc *UseCase) finishProvisioning(ctx context.Context, created *entities.Channel, invite domain.InviteResult, isExisting bool) (*deps.ProvisionedChannel, error) {
	if !invite.Success {
		uc.metrics.BotInviteFailuresTotal.Inc()
		uc.logger.Warn().
			Uint("channel_id", created.ID).
			Str("reason", invite.Message).
			Msg("channel provisioned without bot")

		return &deps.ProvisionedChannel{
			Channel:    created,
			BotAdded:   false,
			Message:    invite.Message,
			IsExisting: isExisting,
		}, nil
	}

	if err := uc.repo.MarkBotAdded(ctx, created.ID, invite.CanonicalID); err != nil {
		return nil, err
	}
	created.BotAdded = true
	created.RemoteID = invite.CanonicalID

	if err := uc.notifier.AnnounceChannelConnected(ctx, created.RemoteID, created.Name); err != nil {
		// best effort: the channel is provisioned either way
		uc.logger.Debug().Err(err).Uint("channel_id", created.ID).Msg("bot announcement skipped")
	}

	uc.logger.Info().
		Uint("channel_id", created.ID).
		Int64("remote_id", created.RemoteID).
		Msg("channel provisioned")

	return &deps.ProvisionedChannel{
		Channel:    created,
		BotAdded:   true,
		Message:    invite.Message,
		IsExisting: isExisting,
	}, nil
}

// List returns all non-deleted channels of the user
func (uc *UseCase) List(ctx context.Context, userID uint) ([]entities.Channel, error) {
	return uc.repo.ListByUser(ctx, userID)
}

// Get returns the channel with a presigned banner URL
func (uc *UseCase) Get(ctx context.Context, userID, channelID uint) (*entities.Channel, error) {
	channel, err := uc.repo.GetByID(ctx, userID, channelID)
	if err != nil {
		return nil, uc.mapRepoErr(err)
	}

	uc.attachBannerURL(ctx, channel)
	return channel, nil
}

// Update applies a partial display-field update
func (uc *UseCase) Update(ctx context.Context, userID, channelID uint, update entities.ChannelUpdate) (*entities.Channel, error) {
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, apperrors.NewValidationError("name cannot be empty")
	}

	channel, err := uc.repo.Update(ctx, userID, channelID, update)
	if err != nil {
		return nil, uc.mapRepoErr(err)
	}
	return channel, nil
}

// UpdateContact applies a partial contact-field update
func (uc *UseCase) UpdateContact(ctx context.Context, userID, channelID uint, update entities.ContactUpdate) (*entities.Channel, error) {
	channel, err := uc.repo.UpdateContact(ctx, userID, channelID, update)
	if err != nil {
		return nil, uc.mapRepoErr(err)
	}
	return channel, nil
}

// UploadBanner stores the banner image and records its object key
func (uc *UseCase) UploadBanner(ctx context.Context, userID, channelID uint, contentType string, data []byte) (*entities.Channel, error) {
	if len(data) == 0 {
		return nil, apperrors.NewValidationError("banner image is required")
	}

	channel, err := uc.repo.GetByID(ctx, userID, channelID)
	if err != nil {
		return nil, uc.mapRepoErr(err)
	}

	objectKey, err := uc.media.UploadBanner(ctx, channel.ID, contentType, data)
	if err != nil {
		return nil, apperrors.NewInternalErrorf("failed to store banner: %v", err)
	}

	if err := uc.repo.SetBanner(ctx, userID, channelID, objectKey); err != nil {
		return nil, uc.mapRepoErr(err)
	}

	channel.BannerKey = objectKey
	uc.attachBannerURL(ctx, channel)
	return channel, nil
}

// Publish flips the channel to ACTIVE
func (uc *UseCase) Publish(ctx context.Context, userID, channelID uint) error {
	return uc.mapRepoErr(uc.repo.SetStatus(ctx, userID, channelID, entities.StatusActive))
}

// Unpublish flips the channel to INACTIVE
func (uc *UseCase) Unpublish(ctx context.Context, userID, channelID uint) error {
	return uc.mapRepoErr(uc.repo.SetStatus(ctx, userID, channelID, entities.StatusInactive))
}

// Delete soft-deletes the channel together with all of its plans
func (uc *UseCase) Delete(ctx context.Context, userID, channelID uint) error {
	err := uc.repo.SoftDeleteWithPlans(ctx, userID, channelID)
	if err != nil {
		return uc.mapRepoErr(err)
	}

	uc.logger.Info().Uint("user_id", userID).Uint("channel_id", channelID).Msg("channel deleted")
	return nil
}

// PublicBySlug returns the published storefront view of a channel
func (uc *UseCase) PublicBySlug(ctx context.Context, slug string) (*entities.Channel, error) {
	channel, err := uc.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, uc.mapRepoErr(err)
	}

	uc.attachBannerURL(ctx, channel)
	return channel, nil
}

// ListDialogs lists remote channels the account owns or administers
func (uc *UseCase) ListDialogs(ctx context.Context, userID uint, phoneNumber string) ([]domain.RemoteChannelSummary, error) {
	account, err := uc.requireAuthenticatedAccount(ctx, userID, phoneNumber)
	if err != nil {
		return nil, err
	}

	var dialogs []domain.RemoteChannelSummary
	err = uc.withAccountSession(ctx, account, func(ctx context.Context, conn domain.TelegramConn) error {
		if err := uc.requireAuthorized(ctx, conn); err != nil {
			return err
		}

		result, err := conn.ListOwnedDialogs(ctx)
		if err != nil {
			return err
		}
		dialogs = result
		return nil
	})
	if err != nil {
		return nil, err
	}

	return dialogs, nil
}

// botInviteFailedMessage marks a hard invite failure on a channel row that
// was already persisted
const botInviteFailedMessage = "BOT_INVITE_FAILED"

// downgradeInviteFailure turns a failed invite on an already-persisted row
// into a bot-not-added outcome. Failing the call would hide a channel that
// exists both remotely and locally.
func (uc *UseCase) downgradeInviteFailure(created *entities.Channel, err error) domain.InviteResult {
	uc.logger.Error().
		Err(err).
		Uint("channel_id", created.ID).
		Msg("bot invitation failed after channel was persisted")

	return domain.InviteResult{Message: botInviteFailedMessage, CanonicalID: created.RemoteID}
}

// accountKey is the serialization key shared with the account usecase
func accountKey(userID uint, phoneNumber string) string {
	return fmt.Sprintf("%d:%s", userID, phoneNumber)
}

// requireAuthenticatedAccount loads the account and enforces the provisioning
// precondition: authenticated with a stored session
func (uc *UseCase) requireAuthenticatedAccount(ctx context.Context, userID uint, phoneNumber string) (*accountentities.Account, error) {
	phoneNumber = strings.TrimSpace(phoneNumber)
	if phoneNumber == "" {
		return nil, apperrors.NewValidationError("telegramNumber is required")
	}

	account, err := uc.store.Get(ctx, userID, phoneNumber)
	if err != nil {
		if errors.Is(err, accounterrors.ErrAccountNotFound) {
			return nil, apperrors.NewPreconditionError("no telegram account linked for this phone number, complete OTP login first")
		}
		return nil, err
	}

	if !account.Authenticated || account.SessionBlob == "" {
		return nil, apperrors.NewPreconditionError("telegram account is not authenticated, complete OTP login first")
	}

	return account, nil
}

// requireAuthorized re-checks the vendor-side authorization of the session.
// A stored session can be externally invalidated at any time, which is
// distinct from "never authenticated".
func (uc *UseCase) requireAuthorized(ctx context.Context, conn domain.TelegramConn) error {
	authorized, err := conn.IsAuthorized(ctx)
	if err != nil {
		return err
	}
	if !authorized {
		return domain.ErrNotAuthorized
	}
	return nil
}

// withAccountSession runs fn on a scoped vendor connection, persists the
// rotated session blob on every path and applies the session-conflict
// compensation: wipe the poisoned session so the next interaction is forced
// back through OTP instead of retrying against it.
func (uc *UseCase) withAccountSession(ctx context.Context, account *accountentities.Account, fn func(ctx context.Context, conn domain.TelegramConn) error) error {
	newBlob, err := uc.gateway.WithSession(ctx, account.SessionBlob, fn)

	if newBlob != "" && newBlob != account.SessionBlob {
		if updateErr := uc.store.UpdateSessionBlob(ctx, account.ID, newBlob); updateErr != nil {
			uc.logger.Error().Err(updateErr).Uint("account_id", account.ID).Msg("failed to persist rotated session blob")
		}
	}

	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrSessionConflict):
		uc.metrics.SessionConflictsTotal.Inc()
		if clearErr := uc.store.ClearSession(ctx, account.ID); clearErr != nil {
			uc.logger.Error().Err(clearErr).Uint("account_id", account.ID).Msg("failed to clear conflicted session")
		}
		return apperrors.NewUnauthorizedError("telegram session invalidated by a concurrent login, request a new OTP")
	case errors.Is(err, domain.ErrNotAuthorized):
		return apperrors.NewUnauthorizedError("telegram session expired, request a new OTP")
	default:
		var vendorErr *domain.VendorError
		if errors.As(err, &vendorErr) {
			uc.metrics.RecordVendorError("request_failed")
			uc.logger.Error().Err(err).Uint("account_id", account.ID).Msg("vendor request failed")
			return apperrors.NewInternalError("telegram request failed")
		}
		return err
	}
}

// attachBannerURL presigns a time-limited access URL for the stored banner
func (uc *UseCase) attachBannerURL(ctx context.Context, channel *entities.Channel) {
	if channel.BannerKey == "" {
		return
	}

	url, err := uc.media.PresignedURL(ctx, channel.BannerKey)
	if err != nil {
		uc.logger.Warn().Err(err).Uint("channel_id", channel.ID).Msg("failed to presign banner URL")
		return
	}
	channel.BannerURL = url
}

// mapRepoErr converts repository sentinels into the HTTP error taxonomy
func (uc *UseCase) mapRepoErr(err error) error {
	if errors.Is(err, channelerrors.ErrChannelNotFound) {
		return apperrors.NewNotFoundError("channel not found")
	}
	return err
}
