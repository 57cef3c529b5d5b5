package http

import (
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/creonhq/creon/internal/domain/subscription/deps"
	"github.com/creonhq/creon/internal/domain/subscription/dto"
	"github.com/creonhq/creon/internal/domain/subscription/entities"
	apperrors "github.com/creonhq/creon/pkg/errors"
	"github.com/creonhq/creon/pkg/httputil"
)

// Handler handles subscription HTTP requests
type Handler struct {
	useCase deps.SubscriptionService
	mapper  *apperrors.Mapper
	logger  zerolog.Logger
}

// NewHandler creates a new subscription handler
func NewHandler(useCase deps.SubscriptionService, mapper *apperrors.Mapper, logger zerolog.Logger) *Handler {
	return &Handler{
		useCase: useCase,
		mapper:  mapper,
		logger:  logger.With().Str("handler", "subscription").Logger(),
	}
}

// Subscribe handles POST /api/v1/telegram/channels/{channelId}/plans/{planId}/subscribe
func (h *Handler) Subscribe(ctx *fasthttp.RequestCtx) {
	userID, ok := httputil.UserID(ctx)
	if !ok {
		httputil.WriteErrorResponse(ctx, "authentication required", fasthttp.StatusUnauthorized)
		return
	}

	channelID, err := pathID(ctx, "channelId")
	if err != nil {
		httputil.WriteErrorResponse(ctx, "invalid channelId", fasthttp.StatusBadRequest)
		return
	}

	planID, err := pathID(ctx, "planId")
	if err != nil {
		httputil.WriteErrorResponse(ctx, "invalid planId", fasthttp.StatusBadRequest)
		return
	}

	sub, err := h.useCase.Subscribe(ctx, userID, channelID, planID)
	if err != nil {
		status, message := h.mapper.MapErrorToHTTP(err)
		httputil.WriteErrorResponse(ctx, message, status)
		return
	}

	httputil.WriteSuccessWithStatus(ctx, toSubscriptionResponse(sub), fasthttp.StatusCreated)
}

// List handles GET /api/v1/subscriptions
func (h *Handler) List(ctx *fasthttp.RequestCtx) {
	userID, ok := httputil.UserID(ctx)
	if !ok {
		httputil.WriteErrorResponse(ctx, "authentication required", fasthttp.StatusUnauthorized)
		return
	}

	subs, err := h.useCase.ListByUser(ctx, userID)
	if err != nil {
		status, message := h.mapper.MapErrorToHTTP(err)
		httputil.WriteErrorResponse(ctx, message, status)
		return
	}

	responses := make([]dto.SubscriptionResponse, len(subs))
	for i, sub := range subs {
		responses[i] = toSubscriptionResponse(&sub)
	}

	httputil.WriteSuccess(ctx, responses)
}

// pathID parses a numeric path parameter
func pathID(ctx *fasthttp.RequestCtx, name string) (uint, error) {
	raw, _ := ctx.UserValue(name).(string)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func toSubscriptionResponse(sub *entities.Subscription) dto.SubscriptionResponse {
	return dto.SubscriptionResponse{
		ID:               sub.ID,
		ChannelID:        sub.ChannelID,
		PlanID:           sub.PlanID,
		PlanName:         sub.PlanName,
		PlanPrice:        sub.PlanPrice,
		PlanDurationDays: sub.PlanDurationDays,
		Status:           sub.Status,
		Queued:           sub.Queued(time.Now()),
		ExpiryDate:       sub.ExpiryDate,
		CreatedAt:        sub.CreatedAt,
	}
}
