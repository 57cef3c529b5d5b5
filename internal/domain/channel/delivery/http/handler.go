package http

import (
	"encoding/json"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/creonhq/creon/internal/domain/channel/deps"
	"github.com/creonhq/creon/internal/domain/channel/dto"
	"github.com/creonhq/creon/internal/domain/channel/entities"
	apperrors "github.com/creonhq/creon/pkg/errors"
	"github.com/creonhq/creon/pkg/httputil"
)

// Handler handles channel HTTP requests
type Handler struct {
	useCase deps.ChannelService
	mapper  *apperrors.Mapper
	logger  zerolog.Logger
}

// NewHandler creates a new channel handler
func NewHandler(useCase deps.ChannelService, mapper *apperrors.Mapper, logger zerolog.Logger) *Handler {
	return &Handler{
		useCase: useCase,
		mapper:  mapper,
		logger:  logger.With().Str("handler", "channel").Logger(),
	}
}

// Create handles POST /api/v1/telegram/channels
func (h *Handler) Create(ctx *fasthttp.RequestCtx) {
	userID, ok := httputil.UserID(ctx)
	if !ok {
		httputil.WriteErrorResponse(ctx, "authentication required", fasthttp.StatusUnauthorized)
		return
	}

	var req dto.CreateChannelRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		httputil.WriteErrorResponse(ctx, "invalid request body", fasthttp.StatusBadRequest)
		return
	}

	result, err := h.useCase.CreateNew(ctx, userID, req.TelegramNumber, req.ChannelName, req.ChannelDescription)
	if err != nil {
		status, message := h.mapper.MapErrorToHTTP(err)
		httputil.WriteErrorResponse(ctx, message, status)
		return
	}

	// A soft bot-invite failure is still HTTP success: the channel exists
	// and is usable, just not bot-enabled yet.
	httputil.WriteSuccessWithStatus(ctx, toProvisionResponse(result), fasthttp.StatusCreated)
}

// Import handles POST /api/v1/telegram/channels/import
func (h *Handler) Import(ctx *fasthttp.RequestCtx) {
	userID, ok := httputil.UserID(ctx)
	if !ok {
		httputil.WriteErrorResponse(ctx, "authentication required", fasthttp.StatusUnauthorized)
		return
	}

	var req dto.ImportChannelRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		httputil.WriteErrorResponse(ctx, "invalid request body", fasthttp.StatusBadRequest)
		return
	}

	result, err := h.useCase.ImportExisting(ctx, userID, req.TelegramNumber, req.TelegramChannelID, req.ChannelName, req.ChannelDescription)
	if err != nil {
		status, message := h.mapper.MapErrorToHTTP(err)
		httputil.WriteErrorResponse(ctx, message, status)
		return
	}

	status := fasthttp.StatusCreated
	if result.IsExisting {
		status = fasthttp.StatusOK
	}
	httputil.WriteSuccessWithStatus(ctx, toProvisionResponse(result), status)
}

// List handles GET /api/v1/telegram/channels
func (h *Handler) List(ctx *fasthttp.RequestCtx) {
	userID, ok := httputil.UserID(ctx)
	if !ok {
		httputil.WriteErrorResponse(ctx, "authentication required", fasthttp.StatusUnauthorized)
		return
	}

	channels, err := h.useCase.List(ctx, userID)
	if err != nil {
		status, message := h.mapper.MapErrorToHTTP(err)
		httputil.WriteErrorResponse(ctx, message, status)
		return
	}

	responses := make([]dto.ChannelResponse, len(channels))
	for i, channel := range channels {
		responses[i] = toChannelResponse(&channel)
	}

	httputil.WriteSuccess(ctx, responses)
}

// Get handles GET /api/v1/telegram/channels/{channelId}
func (h *Handler) Get(ctx *fasthttp.RequestCtx) {
	userID, channelID, ok := h.authedChannelID(ctx)
	if !ok {
		return
	}

	channel, err := h.useCase.Get(ctx, userID, channelID)
	if err != nil {
		status, message := h.mapper.MapErrorToHTTP(err)
		httputil.WriteErrorResponse(ctx, message, status)
		return
	}

	httputil.WriteSuccess(ctx, toChannelResponse(channel))
}

// Update handles PUT /api/v1/telegram/channels/{channelId}
func (h *Handler) Update(ctx *fasthttp.RequestCtx) {
	userID, channelID, ok := h.authedChannelID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateChannelRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		httputil.WriteErrorResponse(ctx, "invalid request body", fasthttp.StatusBadRequest)
		return
	}

	channel, err := h.useCase.Update(ctx, userID, channelID, entities.ChannelUpdate{
		Name:            req.Name,
		Description:     req.Description,
		RichDescription: req.RichDescription,
	})
	if err != nil {
		status, message := h.mapper.MapErrorToHTTP(err)
		httputil.WriteErrorResponse(ctx, message, status)
		return
	}

	httputil.WriteSuccess(ctx, toChannelResponse(channel))
}

// UpdateContact handles PUT /api/v1/telegram/channels/{channelId}/contact
func (h *Handler) UpdateContact(ctx *fasthttp.RequestCtx) {
	userID, channelID, ok := h.authedChannelID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateContactRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		httputil.WriteErrorResponse(ctx, "invalid request body", fasthttp.StatusBadRequest)
		return
	}

	channel, err := h.useCase.UpdateContact(ctx, userID, channelID, entities.ContactUpdate{
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	})
	if err != nil {
		status, message := h.mapper.MapErrorToHTTP(err)
		httputil.WriteErrorResponse(ctx, message, status)
		return
	}

	httputil.WriteSuccess(ctx, toChannelResponse(channel))
}

// UploadBanner handles PUT /api/v1/telegram/channels/{channelId}/banner.
// The request body is the raw image; Content-Type carries its media type.
func (h *Handler) UploadBanner(ctx *fasthttp.RequestCtx) {
	userID, channelID, ok := h.authedChannelID(ctx)
	if !ok {
		return
	}

	contentType := string(ctx.Request.Header.ContentType())
	channel, err := h.useCase.UploadBanner(ctx, userID, channelID, contentType, ctx.PostBody())
	if err != nil {
		status, message := h.mapper.MapErrorToHTTP(err)
		httputil.WriteErrorResponse(ctx, message, status)
		return
	}

	httputil.WriteSuccess(ctx, toChannelResponse(channel))
}

// Publish handles PUT /api/v1/telegram/channels/{channelId}/publish
func (h *Handler) Publish(ctx *fasthttp.RequestCtx) {
	userID, channelID, ok := h.authedChannelID(ctx)
	if !ok {
		return
	}

	if err := h.useCase.Publish(ctx, userID, channelID); err != nil {
		status, message := h.mapper.MapErrorToHTTP(err)
		httputil.WriteErrorResponse(ctx, message, status)
		return
	}

	httputil.WriteSuccessMessage(ctx, "channel published")
}

// Unpublish handles PUT /api/v1/telegram/channels/{channelId}/unpublish
func (h *Handler) Unpublish(ctx *fasthttp.RequestCtx) {
	userID, channelID, ok := h.authedChannelID(ctx)
	if !ok {
		return
	}

	if err := h.useCase.Unpublish(ctx, userID, channelID); err != nil {
		status, message := h.mapper.MapErrorToHTTP(err)
		httputil.WriteErrorResponse(ctx, message, status)
		return
	}

	httputil.WriteSuccessMessage(ctx, "channel unpublished")
}

// Delete handles DELETE /api/v1/telegram/channels/{channelId}
func (h *Handler) Delete(ctx *fasthttp.RequestCtx) {
	userID, channelID, ok := h.authedChannelID(ctx)
	if !ok {
		return
	}

	if err := h.useCase.Delete(ctx, userID, channelID); err != nil {
		status, message := h.mapper.MapErrorToHTTP(err)
		httputil.WriteErrorResponse(ctx, message, status)
		return
	}

	httputil.WriteSuccessMessage(ctx, "channel deleted")
}

// PublicBySlug handles GET /api/v1/telegram/public/channels/{slug}
func (h *Handler) PublicBySlug(ctx *fasthttp.RequestCtx) {
	slug, _ := ctx.UserValue("slug").(string)
	if slug == "" {
		httputil.WriteErrorResponse(ctx, "slug is required", fasthttp.StatusBadRequest)
		return
	}

	channel, err := h.useCase.PublicBySlug(ctx, slug)
	if err != nil {
		status, message := h.mapper.MapErrorToHTTP(err)
		httputil.WriteErrorResponse(ctx, message, status)
		return
	}

	httputil.WriteSuccess(ctx, dto.PublicChannelResponse{
		Slug:            channel.Slug,
		Name:            channel.Name,
		Description:     channel.Description,
		RichDescription: channel.RichDescription,
		BannerURL:       channel.BannerURL,
		ContactEmail:    channel.ContactEmail,
	})
}

// ListDialogs handles GET /api/v1/telegram/dialogs?telegramNumber=
func (h *Handler) ListDialogs(ctx *fasthttp.RequestCtx) {
	userID, ok := httputil.UserID(ctx)
	if !ok {
		httputil.WriteErrorResponse(ctx, "authentication required", fasthttp.StatusUnauthorized)
		return
	}

	phoneNumber := string(ctx.QueryArgs().Peek("telegramNumber"))
	dialogs, err := h.useCase.ListDialogs(ctx, userID, phoneNumber)
	if err != nil {
		status, message := h.mapper.MapErrorToHTTP(err)
		httputil.WriteErrorResponse(ctx, message, status)
		return
	}

	httputil.WriteSuccess(ctx, dialogs)
}

// authedChannelID extracts the authenticated user and the channelId path param
func (h *Handler) authedChannelID(ctx *fasthttp.RequestCtx) (uint, uint, bool) {
	userID, ok := httputil.UserID(ctx)
	if !ok {
		httputil.WriteErrorResponse(ctx, "authentication required", fasthttp.StatusUnauthorized)
		return 0, 0, false
	}

	raw, _ := ctx.UserValue("channelId").(string)
	channelID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		httputil.WriteErrorResponse(ctx, "invalid channelId", fasthttp.StatusBadRequest)
		return 0, 0, false
	}

	return userID, uint(channelID), true
}

func toProvisionResponse(result *deps.ProvisionedChannel) dto.ProvisionResponse {
	return dto.ProvisionResponse{
		Channel:              toChannelResponse(result.Channel),
		BotAddedSuccessfully: result.BotAdded,
		Message:              result.Message,
		IsExisting:           result.IsExisting,
	}
}

func toChannelResponse(channel *entities.Channel) dto.ChannelResponse {
	return dto.ChannelResponse{
		ID:              channel.ID,
		RemoteID:        channel.RemoteID,
		Slug:            channel.Slug,
		Name:            channel.Name,
		Description:     channel.Description,
		RichDescription: channel.RichDescription,
		BannerURL:       channel.BannerURL,
		ContactEmail:    channel.ContactEmail,
		ContactPhone:    channel.ContactPhone,
		BotAdded:        channel.BotAdded,
		Status:          channel.Status,
		CreatedAt:       channel.CreatedAt,
		UpdatedAt:       channel.UpdatedAt,
	}
}
