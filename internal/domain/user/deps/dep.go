package deps

import (
	"context"

	"github.com/creonhq/creon/internal/domain/user/entities"
)

// UserRepository persists tenant identities
type UserRepository interface {
	Create(ctx context.Context, email, passwordHash, name string) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, string, error)
	GetByID(ctx context.Context, id uint) (*entities.User, error)
}

// UserService handles registration and login
type UserService interface {
	Register(ctx context.Context, email, password, name string) (*entities.User, string, error)
	Login(ctx context.Context, email, password string) (*entities.User, string, error)
	Me(ctx context.Context, userID uint) (*entities.User, error)
}
