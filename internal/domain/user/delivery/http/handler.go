package http

import (
	"encoding/json"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/creonhq/creon/internal/domain/user/deps"
	"github.com/creonhq/creon/internal/domain/user/dto"
	"github.com/creonhq/creon/internal/domain/user/entities"
	apperrors "github.com/creonhq/creon/pkg/errors"
	"github.com/creonhq/creon/pkg/httputil"
)

// Handler handles user registration and login HTTP requests
type Handler struct {
	useCase deps.UserService
	mapper  *apperrors.Mapper
	logger  zerolog.Logger
}

// NewHandler creates a new user handler
func NewHandler(useCase deps.UserService, mapper *apperrors.Mapper, logger zerolog.Logger) *Handler {
	return &Handler{
		useCase: useCase,
		mapper:  mapper,
		logger:  logger.With().Str("handler", "user").Logger(),
	}
}

// Register handles POST /api/v1/auth/register
func (h *Handler) Register(ctx *fasthttp.RequestCtx) {
	var req dto.RegisterRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		httputil.WriteErrorResponse(ctx, "invalid request body", fasthttp.StatusBadRequest)
		return
	}

	user, token, err := h.useCase.Register(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		status, message := h.mapper.MapErrorToHTTP(err)
		httputil.WriteErrorResponse(ctx, message, status)
		return
	}

	httputil.WriteSuccessWithStatus(ctx, dto.AuthResponse{
		Token: token,
		User:  toUserResponse(user),
	}, fasthttp.StatusCreated)
}

// Login handles POST /api/v1/auth/login
func (h *Handler) Login(ctx *fasthttp.RequestCtx) {
	var req dto.LoginRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		httputil.WriteErrorResponse(ctx, "invalid request body", fasthttp.StatusBadRequest)
		return
	}

	user, token, err := h.useCase.Login(ctx, req.Email, req.Password)
	if err != nil {
		status, message := h.mapper.MapErrorToHTTP(err)
		httputil.WriteErrorResponse(ctx, message, status)
		return
	}

	httputil.WriteSuccess(ctx, dto.AuthResponse{
		Token: token,
		User:  toUserResponse(user),
	})
}

// Me handles GET /api/v1/auth/me
func (h *Handler) Me(ctx *fasthttp.RequestCtx) {
	userID, ok := httputil.UserID(ctx)
	if !ok {
		httputil.WriteErrorResponse(ctx, "authentication required", fasthttp.StatusUnauthorized)
		return
	}

	user, err := h.useCase.Me(ctx, userID)
	if err != nil {
		status, message := h.mapper.MapErrorToHTTP(err)
		httputil.WriteErrorResponse(ctx, message, status)
		return
	}

	httputil.WriteSuccess(ctx, toUserResponse(user))
}

func toUserResponse(user *entities.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}
