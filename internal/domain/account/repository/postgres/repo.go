package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/creonhq/creon/internal/domain/account/deps"
	"github.com/creonhq/creon/internal/domain/account/entities"
	accounterrors "github.com/creonhq/creon/internal/domain/account/errors"
)

// Repository implements deps.SessionStore using PostgreSQL
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new PostgreSQL session store
func NewRepository(db *gorm.DB) deps.SessionStore {
	return &Repository{db: db}
}

// Get returns the non-deleted account for (userID, phoneNumber)
func (r *Repository) Get(ctx context.Context, userID uint, phoneNumber string) (*entities.Account, error) {
	var model entities.AccountModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND phone_number = ?", userID, phoneNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, accounterrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return model.ToEntity(), nil
}

// GetByID returns the non-deleted account with the given ID
func (r *Repository) GetByID(ctx context.Context, accountID uint) (*entities.Account, error) {
	var model entities.AccountModel
	if err := r.db.WithContext(ctx).First(&model, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, accounterrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by ID: %w", err)
	}

	return model.ToEntity(), nil
}

// Put stores a fresh session blob and code hash with create-or-update semantics.
// A soft-deleted row for the same (user, phone) is revived rather than duplicated,
// preserving the one-non-deleted-account-per-pair invariant.
func (r *Repository) Put(ctx context.Context, userID uint, phoneNumber, sessionBlob, phoneCodeHash string) (*entities.Account, error) {
	var model entities.AccountModel

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Unscoped: a soft-deleted row still occupies the (user, phone) pair
		result := tx.Unscoped().
			Where("user_id = ? AND phone_number = ?", userID, phoneNumber).
			First(&model)

		if result.Error != nil {
			if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to look up account: %w", result.Error)
			}

			model = entities.AccountModel{
				UserID:        userID,
				PhoneNumber:   phoneNumber,
				SessionBlob:   sessionBlob,
				PhoneCodeHash: phoneCodeHash,
			}
			if err := tx.Create(&model).Error; err != nil {
				return fmt.Errorf("failed to create account: %w", err)
			}
			return nil
		}

		updates := map[string]interface{}{
			"session_blob":    sessionBlob,
			"phone_code_hash": phoneCodeHash,
			"authenticated":   false,
			"deleted_at":      nil,
		}
		if err := tx.Unscoped().Model(&model).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update account: %w", err)
		}

		model.SessionBlob = sessionBlob
		model.PhoneCodeHash = phoneCodeHash
		model.Authenticated = false
		model.DeletedAt = gorm.DeletedAt{}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return model.ToEntity(), nil
}

// MarkAuthenticated flips the account to authenticated with the post-sign-in blob
func (r *Repository) MarkAuthenticated(ctx context.Context, accountID uint, newSessionBlob string) error {
	result := r.db.WithContext(ctx).
		Model(&entities.AccountModel{}).
		Where("id = ?", accountID).
		Updates(map[string]interface{}{
			"session_blob":    newSessionBlob,
			"phone_code_hash": "",
			"authenticated":   true,
			"verified":        true,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to mark account authenticated: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return accounterrors.ErrAccountNotFound
	}

	return nil
}

// UpdateSessionBlob stores a rotated session blob without touching flags
func (r *Repository) UpdateSessionBlob(ctx context.Context, accountID uint, sessionBlob string) error {
	result := r.db.WithContext(ctx).
		Model(&entities.AccountModel{}).
		Where("id = ?", accountID).
		Update("session_blob", sessionBlob)

	if result.Error != nil {
		return fmt.Errorf("failed to update session blob: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return accounterrors.ErrAccountNotFound
	}

	return nil
}

// ClearSession wipes the session blob and authenticated flag
func (r *Repository) ClearSession(ctx context.Context, accountID uint) error {
	result := r.db.WithContext(ctx).
		Model(&entities.AccountModel{}).
		Where("id = ?", accountID).
		Updates(map[string]interface{}{
			"session_blob":    "",
			"phone_code_hash": "",
			"authenticated":   false,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to clear session: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return accounterrors.ErrAccountNotFound
	}

	return nil
}

// List returns all non-deleted accounts of the user
func (r *Repository) List(ctx context.Context, userID uint) ([]entities.Account, error) {
	var models []entities.AccountModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	accounts := make([]entities.Account, len(models))
	for i, model := range models {
		accounts[i] = *model.ToEntity()
	}

	return accounts, nil
}

// SoftDelete marks the account deleted. Ownership is enforced by the
// (id, user_id) predicate.
func (r *Repository) SoftDelete(ctx context.Context, userID, accountID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", accountID, userID).
		Delete(&entities.AccountModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete account: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return accounterrors.ErrAccountNotFound
	}

	return nil
}
