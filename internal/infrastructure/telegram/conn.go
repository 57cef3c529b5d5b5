package telegram

import (
	"context"
	"fmt"

	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/creonhq/creon/internal/domain"
)

// Conn is a live vendor connection scoped to one WithSession call
type Conn struct {
	client      *telegram.Client
	api         *tg.Client
	rateLimiter *rate.Limiter
	logger      zerolog.Logger
}

// SendCode requests a login code for the phone number and returns the code hash
func (c *Conn) SendCode(ctx context.Context, phoneNumber string) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait cancelled: %w", err)
	}

	c.logger.Info().Str("phone", maskPhoneNumber(phoneNumber)).Msg("sending verification code")

	sent, err := c.client.Auth().SendCode(ctx, phoneNumber, auth.SendCodeOptions{})
	if err != nil {
		return "", mapVendorError(err)
	}

	code, ok := sent.(*tg.AuthSentCode)
	if !ok {
		return "", domain.NewVendorError(fmt.Errorf("unexpected sent code response: %T", sent))
	}

	return code.PhoneCodeHash, nil
}

// SignIn completes the login with the code the user received
func (c *Conn) SignIn(ctx context.Context, phoneNumber, codeHash, code string) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait cancelled: %w", err)
	}

	c.logger.Info().Str("phone", maskPhoneNumber(phoneNumber)).Msg("signing in with verification code")

	if _, err := c.client.Auth().SignIn(ctx, phoneNumber, code, codeHash); err != nil {
		return mapVendorError(err)
	}

	return nil
}

// IsAuthorized reports whether the current session is authorized
func (c *Conn) IsAuthorized(ctx context.Context) (bool, error) {
	status, err := c.client.Auth().Status(ctx)
	if err != nil {
		return false, mapVendorError(err)
	}
	return status.Authorized, nil
}

// CreateChannel creates a broadcast channel and returns its remote identity
func (c *Conn) CreateChannel(ctx context.Context, title, about string) (domain.RemoteChannel, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return domain.RemoteChannel{}, fmt.Errorf("rate limit wait cancelled: %w", err)
	}

	c.logger.Info().Str("title", title).Msg("creating remote channel")

	updates, err := c.api.ChannelsCreateChannel(ctx, &tg.ChannelsCreateChannelRequest{
		Broadcast: true,
		Title:     title,
		About:     about,
	})
	if err != nil {
		return domain.RemoteChannel{}, mapVendorError(err)
	}

	channel, ok := channelFromUpdates(updates)
	if !ok {
		return domain.RemoteChannel{}, domain.NewVendorError(fmt.Errorf("create channel response contained no channel"))
	}

	c.logger.Info().Int64("remote_id", channel.ID).Msg("remote channel created")

	return domain.RemoteChannel{
		ID:         channel.ID,
		AccessHash: channel.AccessHash,
		Title:      channel.Title,
	}, nil
}

// InviteBot invites the platform bot into the channel and promotes it to admin.
// Recoverable vendor rejections surface as InviteResult{Success: false}.
func (c *Conn) InviteBot(ctx context.Context, channel domain.RemoteChannel, botUsername string) (domain.InviteResult, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return domain.InviteResult{}, fmt.Errorf("rate limit wait cancelled: %w", err)
	}

	botUser, err := c.resolveBot(ctx, botUsername)
	if err != nil {
		if reason := softInviteReason(err); reason != "" {
			return domain.InviteResult{Success: false, Message: reason, CanonicalID: channel.ID}, nil
		}
		return domain.InviteResult{}, mapVendorError(err)
	}

	inputChannel := &tg.InputChannel{ChannelID: channel.ID, AccessHash: channel.AccessHash}
	inputBot := &tg.InputUser{UserID: botUser.ID, AccessHash: botUser.AccessHash}

	updates, err := c.api.ChannelsInviteToChannel(ctx, &tg.ChannelsInviteToChannelRequest{
		Channel: inputChannel,
		Users:   []tg.InputUserClass{inputBot},
	})
	if err != nil {
		if reason := softInviteReason(err); reason != "" {
			c.logger.Warn().
				Int64("remote_id", channel.ID).
				Str("reason", reason).
				Msg("bot invitation rejected by vendor")
			return domain.InviteResult{Success: false, Message: reason, CanonicalID: channel.ID}, nil
		}
		return domain.InviteResult{}, mapVendorError(err)
	}

	result := domain.InviteResult{Success: true, CanonicalID: canonicalChannelID(updates, channel.ID)}

	// Promote to admin so the bot can manage join requests. The invite already
	// succeeded, so a rights failure only narrows what the bot can do.
	_, err = c.api.ChannelsEditAdmin(ctx, &tg.ChannelsEditAdminRequest{
		Channel: inputChannel,
		UserID:  inputBot,
		AdminRights: tg.ChatAdminRights{
			InviteUsers:  true,
			BanUsers:     true,
			PostMessages: true,
		},
		Rank: "bot",
	})
	if err != nil {
		c.logger.Warn().Err(err).Int64("remote_id", channel.ID).Msg("failed to promote bot to admin")
		result.Message = "BOT_ADMIN_RIGHTS_NOT_GRANTED"
	}

	c.logger.Info().Int64("remote_id", channel.ID).Msg("bot invited to channel")
	return result, nil
}

// dialogPageLimit is the page size for dialog listing. The vendor caps a
// single request at 100 dialogs, so the list has to be walked page by page.
const dialogPageLimit = 100

// ListOwnedDialogs returns channels where the identity has creator or admin
// rights. Every dialog page is fetched: an owned channel must not vanish just
// because it sorts beyond the first page.
func (c *Conn) ListOwnedDialogs(ctx context.Context) ([]domain.RemoteChannelSummary, error) {
	var summaries []domain.RemoteChannelSummary
	seen := make(map[int64]struct{})

	req := &tg.MessagesGetDialogsRequest{
		OffsetPeer: &tg.InputPeerEmpty{},
		Limit:      dialogPageLimit,
	}

	for {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait cancelled: %w", err)
		}

		result, err := c.api.MessagesGetDialogs(ctx, req)
		if err != nil {
			return nil, mapVendorError(err)
		}

		var page dialogPage
		switch dialogs := result.(type) {
		case *tg.MessagesDialogs:
			page = dialogPage{dialogs: dialogs.Dialogs, messages: dialogs.Messages, chats: dialogs.Chats, users: dialogs.Users}
		case *tg.MessagesDialogsSlice:
			page = dialogPage{dialogs: dialogs.Dialogs, messages: dialogs.Messages, chats: dialogs.Chats, users: dialogs.Users}
		default:
			return summaries, nil
		}

		for _, summary := range ownedChannelSummaries(page.chats) {
			if _, dup := seen[summary.ID]; dup {
				continue
			}
			seen[summary.ID] = struct{}{}
			summaries = append(summaries, summary)
		}

		if len(page.dialogs) < dialogPageLimit {
			return summaries, nil
		}

		offsetDate, offsetID, offsetPeer, ok := page.nextOffset()
		if !ok {
			return summaries, nil
		}
		req.OffsetDate = offsetDate
		req.OffsetID = offsetID
		req.OffsetPeer = offsetPeer
	}
}

// ownedChannelSummaries keeps the channels where the identity is the creator
// or holds admin rights
func ownedChannelSummaries(chats []tg.ChatClass) []domain.RemoteChannelSummary {
	summaries := make([]domain.RemoteChannelSummary, 0, len(chats))
	for _, chat := range chats {
		channel, ok := chat.(*tg.Channel)
		if !ok {
			continue
		}

		_, isAdmin := channel.GetAdminRights()
		if !channel.Creator && !isAdmin {
			continue
		}

		members, _ := channel.GetParticipantsCount()
		summaries = append(summaries, domain.RemoteChannelSummary{
			ID:          channel.ID,
			Title:       channel.Title,
			Username:    channel.Username,
			MemberCount: members,
			IsCreator:   channel.Creator,
			IsBroadcast: channel.Broadcast,
			AccessHash:  channel.AccessHash,
		})
	}

	return summaries
}

// dialogPage is one page of a MessagesGetDialogs result
type dialogPage struct {
	dialogs  []tg.DialogClass
	messages []tg.MessageClass
	chats    []tg.ChatClass
	users    []tg.UserClass
}

// nextOffset derives the offset triple addressing the page after this one
// from the last dialog and its top message
func (p dialogPage) nextOffset() (int, int, tg.InputPeerClass, bool) {
	if len(p.dialogs) == 0 {
		return 0, 0, nil, false
	}

	last, ok := p.dialogs[len(p.dialogs)-1].(*tg.Dialog)
	if !ok {
		return 0, 0, nil, false
	}

	peer := p.inputPeer(last.Peer)
	if peer == nil {
		return 0, 0, nil, false
	}

	return p.messageDate(last.TopMessage), last.TopMessage, peer, true
}

// messageDate returns the date of the message with the given ID, or zero
func (p dialogPage) messageDate(id int) int {
	for _, m := range p.messages {
		switch msg := m.(type) {
		case *tg.Message:
			if msg.ID == id {
				return msg.Date
			}
		case *tg.MessageService:
			if msg.ID == id {
				return msg.Date
			}
		}
	}
	return 0
}

// inputPeer resolves a peer reference against the entities carried by the page
func (p dialogPage) inputPeer(peer tg.PeerClass) tg.InputPeerClass {
	switch pr := peer.(type) {
	case *tg.PeerChannel:
		for _, chat := range p.chats {
			if channel, ok := chat.(*tg.Channel); ok && channel.ID == pr.ChannelID {
				return &tg.InputPeerChannel{ChannelID: channel.ID, AccessHash: channel.AccessHash}
			}
		}
	case *tg.PeerChat:
		return &tg.InputPeerChat{ChatID: pr.ChatID}
	case *tg.PeerUser:
		for _, u := range p.users {
			if user, ok := u.(*tg.User); ok && user.ID == pr.UserID {
				return &tg.InputPeerUser{UserID: user.ID, AccessHash: user.AccessHash}
			}
		}
	}
	return nil
}

// FindOwnedChannel looks up an owned channel by its remote ID
func (c *Conn) FindOwnedChannel(ctx context.Context, remoteID int64) (domain.RemoteChannel, bool, error) {
	dialogs, err := c.ListOwnedDialogs(ctx)
	if err != nil {
		return domain.RemoteChannel{}, false, err
	}

	for _, dialog := range dialogs {
		if dialog.ID == remoteID {
			return domain.RemoteChannel{
				ID:         dialog.ID,
				AccessHash: dialog.AccessHash,
				Title:      dialog.Title,
			}, true, nil
		}
	}

	return domain.RemoteChannel{}, false, nil
}

// resolveBot resolves the bot username to its vendor user identity
func (c *Conn) resolveBot(ctx context.Context, botUsername string) (*tg.User, error) {
	resolved, err := c.api.ContactsResolveUsername(ctx, botUsername)
	if err != nil {
		return nil, err
	}

	for _, u := range resolved.Users {
		if user, ok := u.(*tg.User); ok && user.Bot {
			return user, nil
		}
	}

	return nil, fmt.Errorf("resolved peer %q is not a bot", botUsername)
}

// canonicalChannelID extracts the channel identity the vendor reports back
// in the invite response, falling back to the requested ID when the response
// carries no channel. The vendor can report a different ID after a migration.
func canonicalChannelID(updates tg.UpdatesClass, fallback int64) int64 {
	if channel, ok := channelFromUpdates(updates); ok {
		return channel.ID
	}
	return fallback
}

// channelFromUpdates extracts the created channel from a vendor updates response
func channelFromUpdates(updates tg.UpdatesClass) (*tg.Channel, bool) {
	var chats []tg.ChatClass
	switch u := updates.(type) {
	case *tg.Updates:
		chats = u.Chats
	case *tg.UpdatesCombined:
		chats = u.Chats
	}

	for _, chat := range chats {
		if channel, ok := chat.(*tg.Channel); ok {
			return channel, true
		}
	}

	return nil, false
}

// Ensure Conn implements domain.TelegramConn interface
var _ domain.TelegramConn = (*Conn)(nil)
