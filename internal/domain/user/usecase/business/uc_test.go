package business

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/creonhq/creon/internal/domain/user/entities"
	usererrors "github.com/creonhq/creon/internal/domain/user/errors"
	"github.com/creonhq/creon/pkg/authtoken"
	apperrors "github.com/creonhq/creon/pkg/errors"
)

// mockUserRepo is a mock implementation of deps.UserRepository
type mockUserRepo struct {
	users  map[string]*entities.User
	hashes map[string]string
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:  make(map[string]*entities.User),
		hashes: make(map[string]string),
	}
}

func (m *mockUserRepo) Create(ctx context.Context, email, passwordHash, name string) (*entities.User, error) {
	if _, ok := m.users[email]; ok {
		return nil, usererrors.ErrEmailTaken
	}
	user := &entities.User{ID: uint(len(m.users) + 1), Email: email, Name: name}
	m.users[email] = user
	m.hashes[email] = passwordHash
	return user, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entities.User, string, error) {
	user, ok := m.users[email]
	if !ok {
		return nil, "", usererrors.ErrUserNotFound
	}
	return user, m.hashes[email], nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uint) (*entities.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, usererrors.ErrUserNotFound
}

func newTestUseCase(t *testing.T, repo *mockUserRepo) *UseCase {
	t.Helper()
	tokens, err := authtoken.NewManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("failed to create token manager: %v", err)
	}
	return &UseCase{repo: repo, tokens: tokens, logger: zerolog.Nop()}
}

func TestRegister_Success(t *testing.T) {
	repo := newMockUserRepo()
	uc := newTestUseCase(t, repo)

	user, token, err := uc.Register(context.Background(), "  Alice@Example.COM ", "correct horse", "Alice")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if user.Email != "alice@example.com" {
		t.Errorf("email = %q, want it normalized to lowercase", user.Email)
	}
	if token == "" {
		t.Error("expected a bearer token")
	}

	hash := repo.hashes["alice@example.com"]
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("correct horse")); err != nil {
		t.Errorf("stored hash does not match the password: %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "empty email", email: "", password: "long enough"},
		{name: "not an email", email: "nope", password: "long enough"},
		{name: "short password", email: "a@b.com", password: "short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(t, newMockUserRepo())

			_, _, err := uc.Register(context.Background(), tt.email, tt.password, "")

			var validationErr *apperrors.ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestRegister_EmailTaken(t *testing.T) {
	repo := newMockUserRepo()
	uc := newTestUseCase(t, repo)

	if _, _, err := uc.Register(context.Background(), "a@b.com", "long enough", ""); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	_, _, err := uc.Register(context.Background(), "a@b.com", "long enough", "")

	var conflictErr *apperrors.ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	repo := newMockUserRepo()
	uc := newTestUseCase(t, repo)

	if _, _, err := uc.Register(context.Background(), "a@b.com", "long enough", ""); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	user, token, err := uc.Login(context.Background(), "A@B.com", "long enough")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.Email != "a@b.com" || token == "" {
		t.Errorf("user = %+v, token = %q", user, token)
	}
}

func TestLogin_WrongCredentials(t *testing.T) {
	repo := newMockUserRepo()
	uc := newTestUseCase(t, repo)

	if _, _, err := uc.Register(context.Background(), "a@b.com", "long enough", ""); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "unknown email", email: "x@b.com", password: "long enough"},
		{name: "wrong password", email: "a@b.com", password: "wrong password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := uc.Login(context.Background(), tt.email, tt.password)

			var unauthorizedErr *apperrors.UnauthorizedError
			if !errors.As(err, &unauthorizedErr) {
				t.Fatalf("expected UnauthorizedError, got %v", err)
			}
		})
	}
}

func TestMe_NotFound(t *testing.T) {
	uc := newTestUseCase(t, newMockUserRepo())

	_, err := uc.Me(context.Background(), 42)

	var notFoundErr *apperrors.NotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
