package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/creonhq/creon/internal/domain/user/deps"
	"github.com/creonhq/creon/internal/domain/user/entities"
	usererrors "github.com/creonhq/creon/internal/domain/user/errors"
)

// Repository implements deps.UserRepository using PostgreSQL
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new PostgreSQL user repository
func NewRepository(db *gorm.DB) deps.UserRepository {
	return &Repository{db: db}
}

// Create inserts a new user row
func (r *Repository) Create(ctx context.Context, email, passwordHash, name string) (*entities.User, error) {
	model := &entities.UserModel{
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, usererrors.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return model.ToEntity(), nil
}

// GetByEmail returns the user and its password hash for login verification
func (r *Repository) GetByEmail(ctx context.Context, email string) (*entities.User, string, error) {
	var model entities.UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", usererrors.ErrUserNotFound
		}
		return nil, "", fmt.Errorf("failed to get user by email: %w", err)
	}

	return model.ToEntity(), model.PasswordHash, nil
}

// GetByID returns the user with the given ID
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.User, error) {
	var model entities.UserModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usererrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return model.ToEntity(), nil
}
