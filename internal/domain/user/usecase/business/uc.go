package business

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/creonhq/creon/internal/domain/user/deps"
	"github.com/creonhq/creon/internal/domain/user/entities"
	usererrors "github.com/creonhq/creon/internal/domain/user/errors"
	"github.com/creonhq/creon/pkg/authtoken"
	apperrors "github.com/creonhq/creon/pkg/errors"
)

// UseCase implements deps.UserService
type UseCase struct {
	repo   deps.UserRepository
	tokens *authtoken.Manager
	logger zerolog.Logger
}

// NewUseCase creates a new user usecase
func NewUseCase(repo deps.UserRepository, tokens *authtoken.Manager, logger zerolog.Logger) deps.UserService {
	return &UseCase{
		repo:   repo,
		tokens: tokens,
		logger: logger.With().Str("component", "user_usecase").Logger(),
	}
}

// Register creates a new user and issues a bearer token
func (uc *UseCase) Register(ctx context.Context, email, password, name string) (*entities.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", apperrors.NewValidationError("a valid email is required")
	}
	if len(password) < 8 {
		return nil, "", apperrors.NewValidationError("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apperrors.NewInternalErrorf("failed to hash password: %v", err)
	}

	user, err := uc.repo.Create(ctx, email, string(hash), name)
	if err != nil {
		if errors.Is(err, usererrors.ErrEmailTaken) {
			return nil, "", apperrors.NewConflictError("email is already registered")
		}
		return nil, "", err
	}

	token, err := uc.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", apperrors.NewInternalErrorf("failed to issue token: %v", err)
	}

	uc.logger.Info().Uint("user_id", user.ID).Msg("user registered")
	return user, token, nil
}

// Login verifies credentials and issues a bearer token
func (uc *UseCase) Login(ctx context.Context, email, password string) (*entities.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", apperrors.NewValidationError("email and password are required")
	}

	user, hash, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, usererrors.ErrUserNotFound) {
			return nil, "", apperrors.NewUnauthorizedError("invalid email or password")
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, "", apperrors.NewUnauthorizedError("invalid email or password")
	}

	token, err := uc.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", apperrors.NewInternalErrorf("failed to issue token: %v", err)
	}

	return user, token, nil
}

// Me returns the profile of the authenticated user
func (uc *UseCase) Me(ctx context.Context, userID uint) (*entities.User, error) {
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, usererrors.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		return nil, err
	}
	return user, nil
}
