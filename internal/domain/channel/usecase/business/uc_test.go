package business

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/creonhq/creon/internal/domain"
	accountentities "github.com/creonhq/creon/internal/domain/account/entities"
	accounterrors "github.com/creonhq/creon/internal/domain/account/errors"
	"github.com/creonhq/creon/internal/domain/channel/deps"
	"github.com/creonhq/creon/internal/domain/channel/entities"
	channelerrors "github.com/creonhq/creon/internal/domain/channel/errors"
	"github.com/creonhq/creon/internal/infrastructure/metrics"
	apperrors "github.com/creonhq/creon/pkg/errors"
	"github.com/creonhq/creon/pkg/keylock"
)

// mockChannelRepo is a mock implementation of deps.ChannelRepository
type mockChannelRepo struct {
	createFunc        func(ctx context.Context, channel *entities.Channel) (*entities.Channel, error)
	getByRemoteIDFunc func(ctx context.Context, userID uint, remoteID int64) (*entities.Channel, error)
	markBotAddedFunc  func(ctx context.Context, channelID uint, canonicalRemoteID int64) error
	softDeleteFunc    func(ctx context.Context, userID, channelID uint) error

	created      []*entities.Channel
	botAddedID   uint
	canonicalID  int64
	softDeleted  []uint
}

func (m *mockChannelRepo) Create(ctx context.Context, channel *entities.Channel) (*entities.Channel, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, channel)
	}
	channel.ID = uint(len(m.created) + 1)
	m.created = append(m.created, channel)
	return channel, nil
}

func (m *mockChannelRepo) GetByID(ctx context.Context, userID, channelID uint) (*entities.Channel, error) {
	return nil, channelerrors.ErrChannelNotFound
}

func (m *mockChannelRepo) GetByRemoteID(ctx context.Context, userID uint, remoteID int64) (*entities.Channel, error) {
	if m.getByRemoteIDFunc != nil {
		return m.getByRemoteIDFunc(ctx, userID, remoteID)
	}
	return nil, channelerrors.ErrChannelNotFound
}

func (m *mockChannelRepo) GetBySlug(ctx context.Context, slug string) (*entities.Channel, error) {
	return nil, channelerrors.ErrChannelNotFound
}

func (m *mockChannelRepo) ListByUser(ctx context.Context, userID uint) ([]entities.Channel, error) {
	return nil, nil
}

func (m *mockChannelRepo) Update(ctx context.Context, userID, channelID uint, update entities.ChannelUpdate) (*entities.Channel, error) {
	return nil, channelerrors.ErrChannelNotFound
}

func (m *mockChannelRepo) UpdateContact(ctx context.Context, userID, channelID uint, update entities.ContactUpdate) (*entities.Channel, error) {
	return nil, channelerrors.ErrChannelNotFound
}

func (m *mockChannelRepo) MarkBotAdded(ctx context.Context, channelID uint, canonicalRemoteID int64) error {
	m.botAddedID = channelID
	m.canonicalID = canonicalRemoteID
	if m.markBotAddedFunc != nil {
		return m.markBotAddedFunc(ctx, channelID, canonicalRemoteID)
	}
	return nil
}

func (m *mockChannelRepo) SetBanner(ctx context.Context, userID, channelID uint, objectKey string) error {
	return nil
}

func (m *mockChannelRepo) SetStatus(ctx context.Context, userID, channelID uint, status string) error {
	return nil
}

func (m *mockChannelRepo) SoftDeleteWithPlans(ctx context.Context, userID, channelID uint) error {
	m.softDeleted = append(m.softDeleted, channelID)
	if m.softDeleteFunc != nil {
		return m.softDeleteFunc(ctx, userID, channelID)
	}
	return nil
}

// mockSessionStore is a mock implementation of accountdeps.SessionStore
type mockSessionStore struct {
	account *accountentities.Account

	getCalls        atomic.Int32
	updatedBlobs    []string
	clearedSessions []uint
}

func (m *mockSessionStore) Get(ctx context.Context, userID uint, phoneNumber string) (*accountentities.Account, error) {
	m.getCalls.Add(1)
	if m.account == nil {
		return nil, accounterrors.ErrAccountNotFound
	}
	return m.account, nil
}

func (m *mockSessionStore) GetByID(ctx context.Context, accountID uint) (*accountentities.Account, error) {
	return m.account, nil
}

func (m *mockSessionStore) Put(ctx context.Context, userID uint, phoneNumber, sessionBlob, phoneCodeHash string) (*accountentities.Account, error) {
	return nil, nil
}

func (m *mockSessionStore) MarkAuthenticated(ctx context.Context, accountID uint, newSessionBlob string) error {
	return nil
}

func (m *mockSessionStore) UpdateSessionBlob(ctx context.Context, accountID uint, sessionBlob string) error {
	m.updatedBlobs = append(m.updatedBlobs, sessionBlob)
	return nil
}

func (m *mockSessionStore) ClearSession(ctx context.Context, accountID uint) error {
	m.clearedSessions = append(m.clearedSessions, accountID)
	return nil
}

func (m *mockSessionStore) List(ctx context.Context, userID uint) ([]accountentities.Account, error) {
	return nil, nil
}

func (m *mockSessionStore) SoftDelete(ctx context.Context, userID, accountID uint) error {
	return nil
}

// mockConn is a mock implementation of domain.TelegramConn
type mockConn struct {
	authorized        bool
	createChannelFunc func(ctx context.Context, title, about string) (domain.RemoteChannel, error)
	inviteBotFunc     func(ctx context.Context, channel domain.RemoteChannel, botUsername string) (domain.InviteResult, error)
	findOwnedFunc     func(ctx context.Context, remoteID int64) (domain.RemoteChannel, bool, error)
}

func (m *mockConn) SendCode(ctx context.Context, phoneNumber string) (string, error) {
	return "", nil
}

func (m *mockConn) SignIn(ctx context.Context, phoneNumber, codeHash, code string) error {
	return nil
}

func (m *mockConn) IsAuthorized(ctx context.Context) (bool, error) {
	return m.authorized, nil
}

func (m *mockConn) CreateChannel(ctx context.Context, title, about string) (domain.RemoteChannel, error) {
	if m.createChannelFunc != nil {
		return m.createChannelFunc(ctx, title, about)
	}
	return domain.RemoteChannel{ID: 100, AccessHash: 1, Title: title}, nil
}

func (m *mockConn) InviteBot(ctx context.Context, channel domain.RemoteChannel, botUsername string) (domain.InviteResult, error) {
	if m.inviteBotFunc != nil {
		return m.inviteBotFunc(ctx, channel, botUsername)
	}
	return domain.InviteResult{Success: true, CanonicalID: channel.ID}, nil
}

func (m *mockConn) ListOwnedDialogs(ctx context.Context) ([]domain.RemoteChannelSummary, error) {
	return nil, nil
}

func (m *mockConn) FindOwnedChannel(ctx context.Context, remoteID int64) (domain.RemoteChannel, bool, error) {
	if m.findOwnedFunc != nil {
		return m.findOwnedFunc(ctx, remoteID)
	}
	return domain.RemoteChannel{}, false, nil
}

// mockGateway is a mock implementation of domain.TelegramGateway
type mockGateway struct {
	conn    *mockConn
	newBlob string
	err     error
}

func (m *mockGateway) WithSession(ctx context.Context, sessionBlob string, fn func(ctx context.Context, conn domain.TelegramConn) error) (string, error) {
	if m.err != nil {
		return m.newBlob, m.err
	}
	blob := m.newBlob
	if blob == "" {
		blob = sessionBlob
	}
	if err := fn(ctx, m.conn); err != nil {
		return blob, err
	}
	return blob, nil
}

// mockMediaStore is a mock implementation of s3.MediaStore
type mockMediaStore struct{}

func (m *mockMediaStore) UploadBanner(ctx context.Context, channelID uint, contentType string, data []byte) (string, error) {
	return "banners/1", nil
}

func (m *mockMediaStore) PresignedURL(ctx context.Context, objectKey string) (string, error) {
	return "https://cdn.example.com/" + objectKey, nil
}

func (m *mockMediaStore) EnsureBucket(ctx context.Context) error {
	return nil
}

// mockNotifier is a mock implementation of domain.BotNotifier
type mockNotifier struct {
	announced []int64
}

func (m *mockNotifier) AnnounceChannelConnected(ctx context.Context, remoteID int64, title string) error {
	m.announced = append(m.announced, remoteID)
	return nil
}

func authenticatedAccount() *accountentities.Account {
	return &accountentities.Account{
		ID:            5,
		UserID:        1,
		PhoneNumber:   "+15551234567",
		SessionBlob:   "session-blob",
		Authenticated: true,
		Verified:      true,
	}
}

func newTestUseCase(repo *mockChannelRepo, store *mockSessionStore, gateway *mockGateway, notifier *mockNotifier) *UseCase {
	return &UseCase{
		repo:        repo,
		store:       store,
		gateway:     gateway,
		media:       &mockMediaStore{},
		notifier:    notifier,
		locks:       keylock.New(),
		metrics:     metrics.GetDefaultMetrics(),
		botUsername: "creon_bot",
		logger:      zerolog.Nop(),
	}
}

func TestCreateNew_Success(t *testing.T) {
	repo := &mockChannelRepo{}
	store := &mockSessionStore{account: authenticatedAccount()}
	notifier := &mockNotifier{}
	gateway := &mockGateway{conn: &mockConn{authorized: true}}

	uc := newTestUseCase(repo, store, gateway, notifier)

	result, err := uc.CreateNew(context.Background(), 1, "+15551234567", "My Channel", "about")
	if err != nil {
		t.Fatalf("CreateNew failed: %v", err)
	}

	if !result.BotAdded {
		t.Error("expected bot to be added")
	}
	if result.Channel.RemoteID != 100 {
		t.Errorf("remote ID = %d, want 100", result.Channel.RemoteID)
	}
	if result.Channel.Slug == "" {
		t.Error("expected a generated slug")
	}
	if repo.botAddedID != result.Channel.ID {
		t.Errorf("MarkBotAdded called for channel %d, want %d", repo.botAddedID, result.Channel.ID)
	}
	if len(notifier.announced) != 1 {
		t.Errorf("expected one bot announcement, got %d", len(notifier.announced))
	}
}

func TestCreateNew_SoftInviteFailureKeepsChannel(t *testing.T) {
	repo := &mockChannelRepo{}
	store := &mockSessionStore{account: authenticatedAccount()}
	gateway := &mockGateway{conn: &mockConn{
		authorized: true,
		inviteBotFunc: func(ctx context.Context, channel domain.RemoteChannel, botUsername string) (domain.InviteResult, error) {
			return domain.InviteResult{Success: false, Message: "USER_ALREADY_PARTICIPANT"}, nil
		},
	}}

	uc := newTestUseCase(repo, store, gateway, &mockNotifier{})

	result, err := uc.CreateNew(context.Background(), 1, "+15551234567", "My Channel", "")
	if err != nil {
		t.Fatalf("soft invite failure must not fail the operation: %v", err)
	}

	if result.BotAdded {
		t.Error("expected botAdded=false after soft invite failure")
	}
	if result.Message != "USER_ALREADY_PARTICIPANT" {
		t.Errorf("message = %q, want the vendor reason", result.Message)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected the channel row to be persisted, got %d rows", len(repo.created))
	}
	if repo.botAddedID != 0 {
		t.Error("MarkBotAdded must not be called on soft failure")
	}
}

func TestCreateNew_RequiresAuthenticatedAccount(t *testing.T) {
	tests := []struct {
		name    string
		account *accountentities.Account
	}{
		{name: "no account", account: nil},
		{name: "not authenticated", account: &accountentities.Account{ID: 5, SessionBlob: "blob"}},
		{name: "empty session", account: &accountentities.Account{ID: 5, Authenticated: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockSessionStore{account: tt.account}
			uc := newTestUseCase(&mockChannelRepo{}, store, &mockGateway{conn: &mockConn{}}, &mockNotifier{})

			_, err := uc.CreateNew(context.Background(), 1, "+15551234567", "My Channel", "")

			var preconditionErr *apperrors.PreconditionError
			if !errors.As(err, &preconditionErr) {
				t.Fatalf("expected PreconditionError, got %v", err)
			}
		})
	}
}

func TestCreateNew_SessionConflictWipesSession(t *testing.T) {
	store := &mockSessionStore{account: authenticatedAccount()}
	gateway := &mockGateway{err: domain.ErrSessionConflict}

	uc := newTestUseCase(&mockChannelRepo{}, store, gateway, &mockNotifier{})

	_, err := uc.CreateNew(context.Background(), 1, "+15551234567", "My Channel", "")

	var unauthorizedErr *apperrors.UnauthorizedError
	if !errors.As(err, &unauthorizedErr) {
		t.Fatalf("expected UnauthorizedError, got %v", err)
	}
	if len(store.clearedSessions) != 1 || store.clearedSessions[0] != 5 {
		t.Errorf("expected session 5 to be cleared, got %v", store.clearedSessions)
	}
}

func TestCreateNew_PersistsRotatedSessionBlob(t *testing.T) {
	store := &mockSessionStore{account: authenticatedAccount()}
	gateway := &mockGateway{newBlob: "rotated-blob", conn: &mockConn{authorized: true}}

	uc := newTestUseCase(&mockChannelRepo{}, store, gateway, &mockNotifier{})

	if _, err := uc.CreateNew(context.Background(), 1, "+15551234567", "My Channel", ""); err != nil {
		t.Fatalf("CreateNew failed: %v", err)
	}

	if len(store.updatedBlobs) != 1 || store.updatedBlobs[0] != "rotated-blob" {
		t.Errorf("expected rotated blob to be persisted, got %v", store.updatedBlobs)
	}
}

func TestImportExisting_Idempotent(t *testing.T) {
	stored := &entities.Channel{ID: 11, UserID: 1, RemoteID: 100, Name: "Existing", BotAdded: true}
	repo := &mockChannelRepo{
		getByRemoteIDFunc: func(ctx context.Context, userID uint, remoteID int64) (*entities.Channel, error) {
			return stored, nil
		},
	}

	uc := newTestUseCase(repo, &mockSessionStore{}, &mockGateway{}, &mockNotifier{})

	result, err := uc.ImportExisting(context.Background(), 1, "+15551234567", 100, "", "")
	if err != nil {
		t.Fatalf("ImportExisting failed: %v", err)
	}

	if !result.IsExisting {
		t.Error("expected isExisting=true for an already-imported channel")
	}
	if result.Channel.ID != 11 {
		t.Errorf("channel ID = %d, want the stored row", result.Channel.ID)
	}
	if len(repo.created) != 0 {
		t.Error("re-import must not create a second row")
	}
}

func TestImportExisting_NotOwned(t *testing.T) {
	store := &mockSessionStore{account: authenticatedAccount()}
	gateway := &mockGateway{conn: &mockConn{
		authorized: true,
		findOwnedFunc: func(ctx context.Context, remoteID int64) (domain.RemoteChannel, bool, error) {
			return domain.RemoteChannel{}, false, nil
		},
	}}

	uc := newTestUseCase(&mockChannelRepo{}, store, gateway, &mockNotifier{})

	_, err := uc.ImportExisting(context.Background(), 1, "+15551234567", 999, "", "")

	var notFoundErr *apperrors.NotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestImportExisting_DefaultsNameToRemoteTitle(t *testing.T) {
	repo := &mockChannelRepo{}
	store := &mockSessionStore{account: authenticatedAccount()}
	gateway := &mockGateway{conn: &mockConn{
		authorized: true,
		findOwnedFunc: func(ctx context.Context, remoteID int64) (domain.RemoteChannel, bool, error) {
			return domain.RemoteChannel{ID: remoteID, Title: "Remote Title"}, true, nil
		},
	}}

	uc := newTestUseCase(repo, store, gateway, &mockNotifier{})

	result, err := uc.ImportExisting(context.Background(), 1, "+15551234567", 200, "", "")
	if err != nil {
		t.Fatalf("ImportExisting failed: %v", err)
	}

	if result.Channel.Name != "Remote Title" {
		t.Errorf("name = %q, want the remote title", result.Channel.Name)
	}
}

func TestImportExisting_ConcurrentSameRemote(t *testing.T) {
	var mu sync.Mutex
	rows := make(map[int64]*entities.Channel)

	repo := &mockChannelRepo{}
	repo.getByRemoteIDFunc = func(ctx context.Context, userID uint, remoteID int64) (*entities.Channel, error) {
		mu.Lock()
		defer mu.Unlock()
		if row, ok := rows[remoteID]; ok {
			return row, nil
		}
		return nil, channelerrors.ErrChannelNotFound
	}
	repo.createFunc = func(ctx context.Context, channel *entities.Channel) (*entities.Channel, error) {
		mu.Lock()
		defer mu.Unlock()
		channel.ID = uint(len(rows) + 1)
		rows[channel.RemoteID] = channel
		return channel, nil
	}

	store := &mockSessionStore{account: authenticatedAccount()}
	gateway := &mockGateway{conn: &mockConn{
		authorized: true,
		findOwnedFunc: func(ctx context.Context, remoteID int64) (domain.RemoteChannel, bool, error) {
			return domain.RemoteChannel{ID: remoteID, Title: "Shared"}, true, nil
		},
	}}

	uc := newTestUseCase(repo, store, gateway, &mockNotifier{})

	var wg sync.WaitGroup
	results := make([]*deps.ProvisionedChannel, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := uc.ImportExisting(context.Background(), 1, "+15551234567", 100, "", "")
			if err != nil {
				t.Errorf("ImportExisting failed: %v", err)
				return
			}
			results[i] = result
		}(i)
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(rows) != 1 {
		t.Fatalf("expected one row for remote channel 100, got %d", len(rows))
	}

	existingCount := 0
	for _, result := range results {
		if result != nil && result.IsExisting {
			existingCount++
		}
	}
	if existingCount != 1 {
		t.Errorf("expected exactly one import to report isExisting, got %d", existingCount)
	}
}

func TestCreateNew_ReadsAccountUnderLock(t *testing.T) {
	store := &mockSessionStore{account: authenticatedAccount()}
	gateway := &mockGateway{conn: &mockConn{authorized: true}}

	uc := newTestUseCase(&mockChannelRepo{}, store, gateway, &mockNotifier{})

	release := uc.locks.Lock(accountKey(1, "+15551234567"))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = uc.CreateNew(context.Background(), 1, "+15551234567", "My Channel", "")
	}()

	time.Sleep(10 * time.Millisecond)
	if got := store.getCalls.Load(); got != 0 {
		t.Fatalf("account read while the provisioning lock was held elsewhere (%d reads)", got)
	}

	release()
	<-done
	if store.getCalls.Load() == 0 {
		t.Error("expected the account to be read once the lock was released")
	}
}

func TestCreateNew_HardInviteFailureKeepsChannel(t *testing.T) {
	repo := &mockChannelRepo{}
	store := &mockSessionStore{account: authenticatedAccount()}
	gateway := &mockGateway{conn: &mockConn{
		authorized: true,
		inviteBotFunc: func(ctx context.Context, channel domain.RemoteChannel, botUsername string) (domain.InviteResult, error) {
			return domain.InviteResult{}, domain.NewVendorError(errors.New("FLOOD_WAIT_420"))
		},
	}}

	uc := newTestUseCase(repo, store, gateway, &mockNotifier{})

	result, err := uc.CreateNew(context.Background(), 1, "+15551234567", "My Channel", "")
	if err != nil {
		t.Fatalf("a failed invite must not discard the persisted channel: %v", err)
	}

	if result.BotAdded {
		t.Error("expected botAdded=false after a failed invite")
	}
	if result.Message != botInviteFailedMessage {
		t.Errorf("message = %q, want %q", result.Message, botInviteFailedMessage)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected the channel row to survive, got %d rows", len(repo.created))
	}
	if repo.botAddedID != 0 {
		t.Error("MarkBotAdded must not be called on a failed invite")
	}
}

func TestCreateNew_SessionConflictDuringInviteKeepsChannel(t *testing.T) {
	repo := &mockChannelRepo{}
	store := &mockSessionStore{account: authenticatedAccount()}
	gateway := &mockGateway{conn: &mockConn{
		authorized: true,
		inviteBotFunc: func(ctx context.Context, channel domain.RemoteChannel, botUsername string) (domain.InviteResult, error) {
			return domain.InviteResult{}, domain.ErrSessionConflict
		},
	}}

	uc := newTestUseCase(repo, store, gateway, &mockNotifier{})

	result, err := uc.CreateNew(context.Background(), 1, "+15551234567", "My Channel", "")
	if err != nil {
		t.Fatalf("the persisted channel must survive a late session conflict: %v", err)
	}

	if result.BotAdded {
		t.Error("expected botAdded=false after a late session conflict")
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected the channel row to survive, got %d rows", len(repo.created))
	}
	if len(store.clearedSessions) != 1 || store.clearedSessions[0] != 5 {
		t.Errorf("expected the conflicted session to still be wiped, got %v", store.clearedSessions)
	}
}

func TestDelete_CascadesToPlans(t *testing.T) {
	repo := &mockChannelRepo{}

	uc := newTestUseCase(repo, &mockSessionStore{}, &mockGateway{}, &mockNotifier{})

	if err := uc.Delete(context.Background(), 1, 11); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if len(repo.softDeleted) != 1 || repo.softDeleted[0] != 11 {
		t.Errorf("expected channel 11 to be soft-deleted with its plans, got %v", repo.softDeleted)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo := &mockChannelRepo{
		softDeleteFunc: func(ctx context.Context, userID, channelID uint) error {
			return channelerrors.ErrChannelNotFound
		},
	}

	uc := newTestUseCase(repo, &mockSessionStore{}, &mockGateway{}, &mockNotifier{})

	err := uc.Delete(context.Background(), 1, 11)

	var notFoundErr *apperrors.NotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
