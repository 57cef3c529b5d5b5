package http

import (
	"encoding/json"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/creonhq/creon/internal/domain/plan/deps"
	"github.com/creonhq/creon/internal/domain/plan/dto"
	"github.com/creonhq/creon/internal/domain/plan/entities"
	apperrors "github.com/creonhq/creon/pkg/errors"
	"github.com/creonhq/creon/pkg/httputil"
)

// Handler handles plan HTTP requests
type Handler struct {
	useCase deps.PlanService
	mapper  *apperrors.Mapper
	logger  zerolog.Logger
}

// NewHandler creates a new plan handler
func NewHandler(useCase deps.PlanService, mapper *apperrors.Mapper, logger zerolog.Logger) *Handler {
	return &Handler{
		useCase: useCase,
		mapper:  mapper,
		logger:  logger.With().Str("handler", "plan").Logger(),
	}
}

// Create handles POST /api/v1/telegram/channels/{channelId}/plans
func (h *Handler) Create(ctx *fasthttp.RequestCtx) {
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

	var req dto.CreatePlanRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		httputil.WriteErrorResponse(ctx, "invalid request body", fasthttp.StatusBadRequest)
		return
	}

	plan, err := h.useCase.Create(ctx, userID, channelID, req.Name, req.Price, req.DurationDays)
	if err != nil {
		status, message := h.mapper.MapErrorToHTTP(err)
		httputil.WriteErrorResponse(ctx, message, status)
		return
	}

	httputil.WriteSuccessWithStatus(ctx, toPlanResponse(plan), fasthttp.StatusCreated)
}

// List handles GET /api/v1/telegram/channels/{channelId}/plans
func (h *Handler) List(ctx *fasthttp.RequestCtx) {
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

	plans, err := h.useCase.ListByChannel(ctx, userID, channelID)
	if err != nil {
		status, message := h.mapper.MapErrorToHTTP(err)
		httputil.WriteErrorResponse(ctx, message, status)
		return
	}

	responses := make([]dto.PlanResponse, len(plans))
	for i, plan := range plans {
		responses[i] = toPlanResponse(&plan)
	}

	httputil.WriteSuccess(ctx, responses)
}

// Update handles PUT /api/v1/telegram/plans/{planId}
func (h *Handler) Update(ctx *fasthttp.RequestCtx) {
	userID, ok := httputil.UserID(ctx)
	if !ok {
		httputil.WriteErrorResponse(ctx, "authentication required", fasthttp.StatusUnauthorized)
		return
	}

	planID, err := pathID(ctx, "planId")
	if err != nil {
		httputil.WriteErrorResponse(ctx, "invalid planId", fasthttp.StatusBadRequest)
		return
	}

	var req dto.UpdatePlanRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		httputil.WriteErrorResponse(ctx, "invalid request body", fasthttp.StatusBadRequest)
		return
	}

	plan, err := h.useCase.Update(ctx, userID, planID, entities.PlanUpdate{
		Name:         req.Name,
		Price:        req.Price,
		DurationDays: req.DurationDays,
		Status:       req.Status,
	})
	if err != nil {
		status, message := h.mapper.MapErrorToHTTP(err)
		httputil.WriteErrorResponse(ctx, message, status)
		return
	}

	httputil.WriteSuccess(ctx, toPlanResponse(plan))
}

// Delete handles DELETE /api/v1/telegram/plans/{planId}
func (h *Handler) Delete(ctx *fasthttp.RequestCtx) {
	userID, ok := httputil.UserID(ctx)
	if !ok {
		httputil.WriteErrorResponse(ctx, "authentication required", fasthttp.StatusUnauthorized)
		return
	}

	planID, err := pathID(ctx, "planId")
	if err != nil {
		httputil.WriteErrorResponse(ctx, "invalid planId", fasthttp.StatusBadRequest)
		return
	}

	if err := h.useCase.Delete(ctx, userID, planID); err != nil {
		status, message := h.mapper.MapErrorToHTTP(err)
		httputil.WriteErrorResponse(ctx, message, status)
		return
	}

	httputil.WriteSuccessMessage(ctx, "plan retired")
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

func toPlanResponse(plan *entities.Plan) dto.PlanResponse {
	return dto.PlanResponse{
		ID:           plan.ID,
		ChannelID:    plan.ChannelID,
		Name:         plan.Name,
		Price:        plan.Price,
		DurationDays: plan.DurationDays,
		Status:       plan.Status,
		CreatedAt:    plan.CreatedAt,
		UpdatedAt:    plan.UpdatedAt,
	}
}
