package goAccounts

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/MrEthical07/goAccounts/password"
	"github.com/MrEthical07/goAccounts/token"
)

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// mockAccountStore keeps accounts in maps and copies values on the way in and
// out, so engine mutations only become visible after an explicit Update.
type mockAccountStore struct {
	mu         sync.Mutex
	byID       map[string]Account
	byUsername map[string]string
	byEmail    map[string]string
	failWith   error
}

func newMockAccountStore() *mockAccountStore {
	return &mockAccountStore{
		byID:       map[string]Account{},
		byUsername: map[string]string{},
		byEmail:    map[string]string{},
	}
}

func (m *mockAccountStore) Create(_ context.Context, account *Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	if _, taken := m.byUsername[account.Username]; taken {
		return ErrUsernameTaken
	}
	if _, taken := m.byEmail[account.Email]; taken {
		return ErrEmailTaken
	}
	m.byID[account.ID] = *account
	m.byUsername[account.Username] = account.ID
	m.byEmail[account.Email] = account.ID
	return nil
}

func (m *mockAccountStore) Update(_ context.Context, account *Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.byID[account.ID]; !ok {
		return ErrAccountNotFound
	}
	m.byID[account.ID] = *account
	return nil
}

func (m *mockAccountStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	account, ok := m.byID[id]
	if !ok {
		return ErrAccountNotFound
	}
	delete(m.byID, id)
	delete(m.byUsername, account.Username)
	delete(m.byEmail, account.Email)
	return nil
}

func (m *mockAccountStore) FindByID(_ context.Context, id string) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	account, ok := m.byID[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	out := account
	return &out, nil
}

func (m *mockAccountStore) FindByUsername(ctx context.Context, username string) (*Account, error) {
	m.mu.Lock()
	id, ok := m.byUsername[username]
	m.mu.Unlock()
	if !ok {
		if m.failWith != nil {
			return nil, m.failWith
		}
		return nil, ErrAccountNotFound
	}
	return m.FindByID(ctx, id)
}

func (m *mockAccountStore) FindByEmail(ctx context.Context, email string) (*Account, error) {
	m.mu.Lock()
	id, ok := m.byEmail[email]
	m.mu.Unlock()
	if !ok {
		if m.failWith != nil {
			return nil, m.failWith
		}
		return nil, ErrAccountNotFound
	}
	return m.FindByID(ctx, id)
}

func (m *mockAccountStore) stored(t *testing.T, id string) Account {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.byID[id]
	if !ok {
		t.Fatalf("account %q not in store", id)
	}
	return account
}

func newTestHasher(t *testing.T) *password.Hasher {
	t.Helper()
	h, err := password.NewHasher(password.Config{Cost: 4})
	if err != nil {
		t.Fatalf("NewHasher: %v", err)
	}
	return h
}

func newTestTokenManager(t *testing.T, clock *testClock) *token.Manager {
	t.Helper()
	tm, err := token.NewManager(token.Config{
		TTL:           120 * time.Minute,
		SigningMethod: token.MethodHS256,
		PrivateKey:    []byte("engine-test-secret-engine-test-secret"),
		Now:           clock.Now,
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return tm
}

func newTestEngine(t *testing.T, store AccountStore, clock *testClock) *Engine {
	t.Helper()

	cfg := defaultConfig()
	cfg.Token.PrivateKey = []byte("engine-test-secret-engine-test-secret")
	cfg.Federated.Enabled = true
	cfg.Mail.Enabled = true

	return &Engine{
		config: cfg,
		store:  store,
		hasher: newTestHasher(t),
		tokens: newTestTokenManager(t, clock),
		now:    clock.Now,
	}
}

func seedAccount(t *testing.T, e *Engine, store *mockAccountStore, username, email, plaintext string, active bool) *Account {
	t.Helper()

	account, err := NewAccount(username, email)
	if err != nil {
		t.Fatalf("NewAccount: %v", err)
	}
	if err := account.SetPassword(e.hasher, plaintext); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if active {
		account.Activate()
	}
	if err := store.Create(context.Background(), account); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return account
}
