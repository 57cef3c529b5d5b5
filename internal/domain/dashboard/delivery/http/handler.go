package http

import (
	"strconv"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/creonhq/creon/internal/domain/dashboard/deps"
	"github.com/creonhq/creon/internal/domain/dashboard/dto"
	apperrors "github.com/creonhq/creon/pkg/errors"
	"github.com/creonhq/creon/pkg/httputil"
)

// Handler handles dashboard HTTP requests
type Handler struct {
	useCase deps.DashboardService
	mapper  *apperrors.Mapper
	logger  zerolog.Logger
}

// NewHandler creates a new dashboard handler
func NewHandler(useCase deps.DashboardService, mapper *apperrors.Mapper, logger zerolog.Logger) *Handler {
	return &Handler{
		useCase: useCase,
		mapper:  mapper,
		logger:  logger.With().Str("handler", "dashboard").Logger(),
	}
}

// Summary handles GET /api/v1/dashboard/summary
func (h *Handler) Summary(ctx *fasthttp.RequestCtx) {
	userID, ok := httputil.UserID(ctx)
	if !ok {
		httputil.WriteErrorResponse(ctx, "authentication required", fasthttp.StatusUnauthorized)
		return
	}

	summary, err := h.useCase.Summary(ctx, userID)
	if err != nil {
		status, message := h.mapper.MapErrorToHTTP(err)
		httputil.WriteErrorResponse(ctx, message, status)
		return
	}

	httputil.WriteSuccess(ctx, dto.SummaryResponse{
		TotalRevenue:        summary.TotalRevenue,
		ActiveSubscriptions: summary.ActiveSubscriptions,
		ChannelCount:        summary.ChannelCount,
		AccountCount:        summary.AccountCount,
	})
}

// Sales handles GET /api/v1/dashboard/sales
func (h *Handler) Sales(ctx *fasthttp.RequestCtx) {
	userID, ok := httputil.UserID(ctx)
	if !ok {
		httputil.WriteErrorResponse(ctx, "authentication required", fasthttp.StatusUnauthorized)
		return
	}

	limit, _ := strconv.Atoi(string(ctx.QueryArgs().Peek("limit")))

	sales, err := h.useCase.RecentSales(ctx, userID, limit)
	if err != nil {
		status, message := h.mapper.MapErrorToHTTP(err)
		httputil.WriteErrorResponse(ctx, message, status)
		return
	}

	responses := make([]dto.SaleResponse, len(sales))
	for i, sale := range sales {
		responses[i] = dto.SaleResponse{
			OrderID:     sale.OrderID,
			ChannelID:   sale.ChannelID,
			ChannelName: sale.ChannelName,
			PlanName:    sale.PlanName,
			Amount:      sale.Amount,
			CreatedAt:   sale.CreatedAt,
		}
	}

	httputil.WriteSuccess(ctx, responses)
}
