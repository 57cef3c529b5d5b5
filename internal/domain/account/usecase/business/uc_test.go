package business

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/creonhq/creon/internal/domain"
	"github.com/creonhq/creon/internal/domain/account/entities"
	accounterrors "github.com/creonhq/creon/internal/domain/account/errors"
	"github.com/creonhq/creon/internal/infrastructure/metrics"
	apperrors "github.com/creonhq/creon/pkg/errors"
	"github.com/creonhq/creon/pkg/keylock"
)

// mockSessionStore is a mock implementation of deps.SessionStore
type mockSessionStore struct {
	getFunc               func(ctx context.Context, userID uint, phoneNumber string) (*entities.Account, error)
	putFunc               func(ctx context.Context, userID uint, phoneNumber, sessionBlob, phoneCodeHash string) (*entities.Account, error)
	markAuthenticatedFunc func(ctx context.Context, accountID uint, newSessionBlob string) error
	clearSessionFunc      func(ctx context.Context, accountID uint) error
	softDeleteFunc        func(ctx context.Context, userID, accountID uint) error

	clearedSessions []uint
}

func (m *mockSessionStore) Get(ctx context.Context, userID uint, phoneNumber string) (*entities.Account, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, userID, phoneNumber)
	}
	return nil, accounterrors.ErrAccountNotFound
}

func (m *mockSessionStore) GetByID(ctx context.Context, accountID uint) (*entities.Account, error) {
	return nil, accounterrors.ErrAccountNotFound
}

func (m *mockSessionStore) Put(ctx context.Context, userID uint, phoneNumber, sessionBlob, phoneCodeHash string) (*entities.Account, error) {
	if m.putFunc != nil {
		return m.putFunc(ctx, userID, phoneNumber, sessionBlob, phoneCodeHash)
	}
	return &entities.Account{ID: 1, UserID: userID, PhoneNumber: phoneNumber, SessionBlob: sessionBlob, PhoneCodeHash: phoneCodeHash}, nil
}

func (m *mockSessionStore) MarkAuthenticated(ctx context.Context, accountID uint, newSessionBlob string) error {
	if m.markAuthenticatedFunc != nil {
		return m.markAuthenticatedFunc(ctx, accountID, newSessionBlob)
	}
	return nil
}

func (m *mockSessionStore) UpdateSessionBlob(ctx context.Context, accountID uint, sessionBlob string) error {
	return nil
}

func (m *mockSessionStore) ClearSession(ctx context.Context, accountID uint) error {
	m.clearedSessions = append(m.clearedSessions, accountID)
	if m.clearSessionFunc != nil {
		return m.clearSessionFunc(ctx, accountID)
	}
	return nil
}

func (m *mockSessionStore) List(ctx context.Context, userID uint) ([]entities.Account, error) {
	return nil, nil
}

func (m *mockSessionStore) SoftDelete(ctx context.Context, userID, accountID uint) error {
	if m.softDeleteFunc != nil {
		return m.softDeleteFunc(ctx, userID, accountID)
	}
	return nil
}

// mockConn is a mock implementation of domain.TelegramConn
type mockConn struct {
	sendCodeFunc func(ctx context.Context, phoneNumber string) (string, error)
	signInFunc   func(ctx context.Context, phoneNumber, codeHash, code string) error
}

func (m *mockConn) SendCode(ctx context.Context, phoneNumber string) (string, error) {
	if m.sendCodeFunc != nil {
		return m.sendCodeFunc(ctx, phoneNumber)
	}
	return "hash", nil
}

func (m *mockConn) SignIn(ctx context.Context, phoneNumber, codeHash, code string) error {
	if m.signInFunc != nil {
		return m.signInFunc(ctx, phoneNumber, codeHash, code)
	}
	return nil
}

func (m *mockConn) IsAuthorized(ctx context.Context) (bool, error) {
	return true, nil
}

func (m *mockConn) CreateChannel(ctx context.Context, title, about string) (domain.RemoteChannel, error) {
	return domain.RemoteChannel{}, nil
}

func (m *mockConn) InviteBot(ctx context.Context, channel domain.RemoteChannel, botUsername string) (domain.InviteResult, error) {
	return domain.InviteResult{}, nil
}

func (m *mockConn) ListOwnedDialogs(ctx context.Context) ([]domain.RemoteChannelSummary, error) {
	return nil, nil
}

func (m *mockConn) FindOwnedChannel(ctx context.Context, remoteID int64) (domain.RemoteChannel, bool, error) {
	return domain.RemoteChannel{}, false, nil
}

// mockGateway is a mock implementation of domain.TelegramGateway
type mockGateway struct {
	conn     *mockConn
	newBlob  string
	lastBlob string
}

func (m *mockGateway) WithSession(ctx context.Context, sessionBlob string, fn func(ctx context.Context, conn domain.TelegramConn) error) (string, error) {
	m.lastBlob = sessionBlob
	conn := m.conn
	if conn == nil {
		conn = &mockConn{}
	}
	if err := fn(ctx, conn); err != nil {
		return m.newBlob, err
	}
	return m.newBlob, nil
}

func newTestUseCase(store *mockSessionStore, gateway *mockGateway) *UseCase {
	return &UseCase{
		store:   store,
		gateway: gateway,
		locks:   keylock.New(),
		metrics: metrics.GetDefaultMetrics(),
		logger:  zerolog.Nop(),
	}
}

func TestRequestCode_StoresHashAndBlob(t *testing.T) {
	var putBlob, putHash string
	store := &mockSessionStore{
		putFunc: func(ctx context.Context, userID uint, phoneNumber, sessionBlob, phoneCodeHash string) (*entities.Account, error) {
			putBlob, putHash = sessionBlob, phoneCodeHash
			return &entities.Account{ID: 7, UserID: userID, PhoneNumber: phoneNumber, SessionBlob: sessionBlob, PhoneCodeHash: phoneCodeHash}, nil
		},
	}
	gateway := &mockGateway{
		newBlob: "fresh-blob",
		conn: &mockConn{
			sendCodeFunc: func(ctx context.Context, phoneNumber string) (string, error) {
				return "hash-123", nil
			},
		},
	}

	uc := newTestUseCase(store, gateway)

	account, err := uc.RequestCode(context.Background(), 1, "+15551234567")
	if err != nil {
		t.Fatalf("RequestCode failed: %v", err)
	}

	if gateway.lastBlob != "" {
		t.Errorf("expected code request to start from an empty session, got %q", gateway.lastBlob)
	}
	if putBlob != "fresh-blob" || putHash != "hash-123" {
		t.Errorf("stored blob/hash = %q/%q, want fresh-blob/hash-123", putBlob, putHash)
	}
	if account.ID != 7 {
		t.Errorf("account ID = %d, want 7", account.ID)
	}
}

func TestRequestCode_EmptyPhone(t *testing.T) {
	uc := newTestUseCase(&mockSessionStore{}, &mockGateway{})

	_, err := uc.RequestCode(context.Background(), 1, "   ")

	var validationErr *apperrors.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestVerifyCode_NoPendingVerification(t *testing.T) {
	tests := []struct {
		name  string
		store *mockSessionStore
	}{
		{
			name:  "account missing",
			store: &mockSessionStore{},
		},
		{
			name: "account without pending code",
			store: &mockSessionStore{
				getFunc: func(ctx context.Context, userID uint, phoneNumber string) (*entities.Account, error) {
					return &entities.Account{ID: 1, UserID: userID, PhoneNumber: phoneNumber, SessionBlob: "blob"}, nil
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(tt.store, &mockGateway{})

			_, err := uc.VerifyCode(context.Background(), 1, "+15551234567", "12345")

			var preconditionErr *apperrors.PreconditionError
			if !errors.As(err, &preconditionErr) {
				t.Fatalf("expected PreconditionError, got %v", err)
			}
		})
	}
}

func TestVerifyCode_Success(t *testing.T) {
	var authenticatedID uint
	var authenticatedBlob string
	store := &mockSessionStore{
		getFunc: func(ctx context.Context, userID uint, phoneNumber string) (*entities.Account, error) {
			return &entities.Account{ID: 3, UserID: userID, PhoneNumber: phoneNumber, SessionBlob: "pending-blob", PhoneCodeHash: "hash-123"}, nil
		},
		markAuthenticatedFunc: func(ctx context.Context, accountID uint, newSessionBlob string) error {
			authenticatedID, authenticatedBlob = accountID, newSessionBlob
			return nil
		},
	}

	var gotHash, gotCode string
	gateway := &mockGateway{
		newBlob: "authorized-blob",
		conn: &mockConn{
			signInFunc: func(ctx context.Context, phoneNumber, codeHash, code string) error {
				gotHash, gotCode = codeHash, code
				return nil
			},
		},
	}

	uc := newTestUseCase(store, gateway)

	account, err := uc.VerifyCode(context.Background(), 1, "+15551234567", "12345")
	if err != nil {
		t.Fatalf("VerifyCode failed: %v", err)
	}

	if gotHash != "hash-123" || gotCode != "12345" {
		t.Errorf("sign-in called with hash=%q code=%q", gotHash, gotCode)
	}
	if authenticatedID != 3 || authenticatedBlob != "authorized-blob" {
		t.Errorf("MarkAuthenticated(%d, %q), want (3, authorized-blob)", authenticatedID, authenticatedBlob)
	}
	if !account.Authenticated || !account.Verified {
		t.Error("returned account should be authenticated and verified")
	}
	if account.SessionBlob != "authorized-blob" || account.PhoneCodeHash != "" {
		t.Errorf("returned account blob=%q hash=%q", account.SessionBlob, account.PhoneCodeHash)
	}
}

func TestVerifyCode_InvalidCode(t *testing.T) {
	markCalled := false
	store := &mockSessionStore{
		getFunc: func(ctx context.Context, userID uint, phoneNumber string) (*entities.Account, error) {
			return &entities.Account{ID: 3, SessionBlob: "pending-blob", PhoneCodeHash: "hash-123"}, nil
		},
		markAuthenticatedFunc: func(ctx context.Context, accountID uint, newSessionBlob string) error {
			markCalled = true
			return nil
		},
	}
	gateway := &mockGateway{
		conn: &mockConn{
			signInFunc: func(ctx context.Context, phoneNumber, codeHash, code string) error {
				return domain.ErrInvalidCode
			},
		},
	}

	uc := newTestUseCase(store, gateway)

	_, err := uc.VerifyCode(context.Background(), 1, "+15551234567", "00000")

	var validationErr *apperrors.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if markCalled {
		t.Error("invalid code must not mark the account authenticated")
	}
	if len(store.clearedSessions) != 0 {
		t.Error("invalid code must leave the stored session untouched")
	}
}

func TestVerifyCode_SessionConflictWipesSession(t *testing.T) {
	store := &mockSessionStore{
		getFunc: func(ctx context.Context, userID uint, phoneNumber string) (*entities.Account, error) {
			return &entities.Account{ID: 9, SessionBlob: "poisoned-blob", PhoneCodeHash: "hash-123"}, nil
		},
	}
	gateway := &mockGateway{
		conn: &mockConn{
			signInFunc: func(ctx context.Context, phoneNumber, codeHash, code string) error {
				return domain.ErrSessionConflict
			},
		},
	}

	uc := newTestUseCase(store, gateway)

	_, err := uc.VerifyCode(context.Background(), 1, "+15551234567", "12345")

	var unauthorizedErr *apperrors.UnauthorizedError
	if !errors.As(err, &unauthorizedErr) {
		t.Fatalf("expected UnauthorizedError, got %v", err)
	}
	if len(store.clearedSessions) != 1 || store.clearedSessions[0] != 9 {
		t.Errorf("expected session 9 to be cleared, got %v", store.clearedSessions)
	}
}

func TestVerifyCode_VendorError(t *testing.T) {
	store := &mockSessionStore{
		getFunc: func(ctx context.Context, userID uint, phoneNumber string) (*entities.Account, error) {
			return &entities.Account{ID: 3, SessionBlob: "pending-blob", PhoneCodeHash: "hash-123"}, nil
		},
	}
	gateway := &mockGateway{
		conn: &mockConn{
			signInFunc: func(ctx context.Context, phoneNumber, codeHash, code string) error {
				return domain.NewVendorError(errors.New("FLOOD_WAIT_420"))
			},
		},
	}

	uc := newTestUseCase(store, gateway)

	_, err := uc.VerifyCode(context.Background(), 1, "+15551234567", "12345")

	var internalErr *apperrors.InternalError
	if !errors.As(err, &internalErr) {
		t.Fatalf("expected InternalError, got %v", err)
	}
}

func TestDeleteAccount_NotFound(t *testing.T) {
	store := &mockSessionStore{
		softDeleteFunc: func(ctx context.Context, userID, accountID uint) error {
			return accounterrors.ErrAccountNotFound
		},
	}

	uc := newTestUseCase(store, &mockGateway{})

	err := uc.DeleteAccount(context.Background(), 1, 42)

	var notFoundErr *apperrors.NotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
