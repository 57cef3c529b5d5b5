package http

import (
	"encoding/json"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/creonhq/creon/internal/domain/account/deps"
	"github.com/creonhq/creon/internal/domain/account/dto"
	"github.com/creonhq/creon/internal/domain/account/entities"
	apperrors "github.com/creonhq/creon/pkg/errors"
	"github.com/creonhq/creon/pkg/httputil"
)

// Handler handles Telegram account HTTP requests
type Handler struct {
	useCase deps.AccountService
	mapper  *apperrors.Mapper
	logger  zerolog.Logger
}

// NewHandler creates a new account handler
func NewHandler(useCase deps.AccountService, mapper *apperrors.Mapper, logger zerolog.Logger) *Handler {
	return &Handler{
		useCase: useCase,
		mapper:  mapper,
		logger:  logger.With().Str("handler", "account").Logger(),
	}
}

// SendOTP handles POST /api/v1/telegram/send-otp
func (h *Handler) SendOTP(ctx *fasthttp.RequestCtx) {
	userID, ok := httputil.UserID(ctx)
	if !ok {
		httputil.WriteErrorResponse(ctx, "authentication required", fasthttp.StatusUnauthorized)
		return
	}

	var req dto.SendOTPRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		httputil.WriteErrorResponse(ctx, "invalid request body", fasthttp.StatusBadRequest)
		return
	}

	_, err := h.useCase.RequestCode(ctx, userID, req.PhoneNumber)
	if err != nil {
		status, message := h.mapper.MapErrorToHTTP(err)
		httputil.WriteErrorResponse(ctx, message, status)
		return
	}

	httputil.WriteSuccess(ctx, dto.SendOTPResponse{UserID: userID})
}

// VerifyOTP handles POST /api/v1/telegram/verify-otp
func (h *Handler) VerifyOTP(ctx *fasthttp.RequestCtx) {
	userID, ok := httputil.UserID(ctx)
	if !ok {
		httputil.WriteErrorResponse(ctx, "authentication required", fasthttp.StatusUnauthorized)
		return
	}

	var req dto.VerifyOTPRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		httputil.WriteErrorResponse(ctx, "invalid request body", fasthttp.StatusBadRequest)
		return
	}

	account, err := h.useCase.VerifyCode(ctx, userID, req.PhoneNumber, req.Code)
	if err != nil {
		status, message := h.mapper.MapErrorToHTTP(err)
		httputil.WriteErrorResponse(ctx, message, status)
		return
	}

	httputil.WriteSuccess(ctx, dto.VerifyOTPResponse{
		UserID:        userID,
		Authenticated: account.Authenticated,
	})
}

// ListAccounts handles GET /api/v1/telegram/accounts
func (h *Handler) ListAccounts(ctx *fasthttp.RequestCtx) {
	userID, ok := httputil.UserID(ctx)
	if !ok {
		httputil.WriteErrorResponse(ctx, "authentication required", fasthttp.StatusUnauthorized)
		return
	}

	accounts, err := h.useCase.ListAccounts(ctx, userID)
	if err != nil {
		status, message := h.mapper.MapErrorToHTTP(err)
		httputil.WriteErrorResponse(ctx, message, status)
		return
	}

	responses := make([]dto.AccountResponse, len(accounts))
	for i, account := range accounts {
		responses[i] = toAccountResponse(&account)
	}

	httputil.WriteSuccess(ctx, responses)
}

// DeleteAccount handles DELETE /api/v1/telegram/accounts/{accountId}
func (h *Handler) DeleteAccount(ctx *fasthttp.RequestCtx) {
	userID, ok := httputil.UserID(ctx)
	if !ok {
		httputil.WriteErrorResponse(ctx, "authentication required", fasthttp.StatusUnauthorized)
		return
	}

	accountID, err := pathID(ctx, "accountId")
	if err != nil {
		httputil.WriteErrorResponse(ctx, "invalid accountId", fasthttp.StatusBadRequest)
		return
	}

	if err := h.useCase.DeleteAccount(ctx, userID, accountID); err != nil {
		status, message := h.mapper.MapErrorToHTTP(err)
		httputil.WriteErrorResponse(ctx, message, status)
		return
	}

	httputil.WriteSuccessMessage(ctx, "account deleted")
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

func toAccountResponse(account *entities.Account) dto.AccountResponse {
	return dto.AccountResponse{
		ID:            account.ID,
		PhoneNumber:   account.PhoneNumber,
		Authenticated: account.Authenticated,
		Verified:      account.Verified,
		CreatedAt:     account.CreatedAt,
	}
}
