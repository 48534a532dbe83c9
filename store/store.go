package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	goAccounts "github.com/MrEthical07/goAccounts"
)

const (
	createStatusOK            int64 = 0
	createStatusUsernameTaken int64 = 1
	createStatusEmailTaken    int64 = 2
)

const createAccountScript = `
if redis.call("EXISTS", KEYS[2]) == 1 then
  return 1
end
if redis.call("EXISTS", KEYS[3]) == 1 then
  return 2
end
redis.call("SET", KEYS[1], ARGV[1])
redis.call("SET", KEYS[2], ARGV[2])
redis.call("SET", KEYS[3], ARGV[2])
return 0
`

var createAccountLua = redis.NewScript(createAccountScript)

const deleteAccountScript = `
local existed = redis.call("EXISTS", KEYS[1])
redis.call("DEL", KEYS[1], KEYS[2], KEYS[3])
return existed
`

var deleteAccountLua = redis.NewScript(deleteAccountScript)

// Store is a Redis-backed account store. Accounts are stored as JSON blobs
// keyed by ID, with username and email uniqueness enforced through index keys
// created atomically alongside the account.
type Store struct {
	redis  redis.UniversalClient
	prefix string
}

// NewStore creates an account [Store] backed by the given Redis client.
// prefix sets the Redis key namespace.
func NewStore(client redis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = "acc"
	}
	return &Store{redis: client, prefix: prefix}
}

func (s *Store) key(id string) string {
	return s.prefix + ":id:" + id
}

func (s *Store) usernameKey(username string) string {
	return s.prefix + ":un:" + username
}

func (s *Store) emailKey(email string) string {
	return s.prefix + ":em:" + email
}

// Create persists a new account and claims its username and email index
// entries in one atomic step, so two concurrent registrations can never both
// win the same identifier.
//
//	Performance: 1 Lua EVALSHA.
func (s *Store) Create(ctx context.Context, account *goAccounts.Account) error {
	data, err := json.Marshal(account)
	if err != nil {
		return err
	}

	status, err := createAccountLua.Run(
		ctx,
		s.redis,
		[]string{s.key(account.ID), s.usernameKey(account.Username), s.emailKey(account.Email)},
		data,
		account.ID,
	).Int64()
	if err != nil {
		return fmt.Errorf("%w: %v", goAccounts.ErrStoreUnavailable, err)
	}

	switch status {
	case createStatusOK:
		return nil
	case createStatusUsernameTaken:
		return goAccounts.ErrUsernameTaken
	case createStatusEmailTaken:
		return goAccounts.ErrEmailTaken
	default:
		return fmt.Errorf("%w: unknown create script status %d", goAccounts.ErrStoreUnavailable, status)
	}
}

// Update overwrites the stored account blob. Username and email are treated
// as immutable after Create; Update never touches the index keys.
//
//	Performance: 1 Redis SET (preceded by an EXISTS check).
func (s *Store) Update(ctx context.Context, account *goAccounts.Account) error {
	exists, err := s.redis.Exists(ctx, s.key(account.ID)).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", goAccounts.ErrStoreUnavailable, err)
	}
	if exists == 0 {
		return goAccounts.ErrAccountNotFound
	}

	data, err := json.Marshal(account)
	if err != nil {
		return err
	}
	if err := s.redis.Set(ctx, s.key(account.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", goAccounts.ErrStoreUnavailable, err)
	}
	return nil
}

// Delete removes the account and its index entries. Deleting an absent
// account returns [goAccounts.ErrAccountNotFound].
//
//	Performance: 1 Redis GET + 1 Lua EVALSHA.
func (s *Store) Delete(ctx context.Context, id string) error {
	account, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}

	_, err = deleteAccountLua.Run(
		ctx,
		s.redis,
		[]string{s.key(id), s.usernameKey(account.Username), s.emailKey(account.Email)},
	).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", goAccounts.ErrStoreUnavailable, err)
	}
	return nil
}

// FindByID retrieves an account by its ID.
//
//	Performance: 1 Redis GET.
func (s *Store) FindByID(ctx context.Context, id string) (*goAccounts.Account, error) {
	data, err := s.redis.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, goAccounts.ErrAccountNotFound
		}
		return nil, fmt.Errorf("%w: %v", goAccounts.ErrStoreUnavailable, err)
	}

	var account goAccounts.Account
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, fmt.Errorf("%w: corrupt account blob: %v", goAccounts.ErrStoreUnavailable, err)
	}
	return &account, nil
}

// FindByUsername retrieves an account through the username index.
//
//	Performance: 2 Redis GETs.
func (s *Store) FindByUsername(ctx context.Context, username string) (*goAccounts.Account, error) {
	return s.findByIndex(ctx, s.usernameKey(username))
}

// FindByEmail retrieves an account through the email index.
//
//	Performance: 2 Redis GETs.
func (s *Store) FindByEmail(ctx context.Context, email string) (*goAccounts.Account, error) {
	return s.findByIndex(ctx, s.emailKey(email))
}

func (s *Store) findByIndex(ctx context.Context, indexKey string) (*goAccounts.Account, error) {
	id, err := s.redis.Get(ctx, indexKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, goAccounts.ErrAccountNotFound
		}
		return nil, fmt.Errorf("%w: %v", goAccounts.ErrStoreUnavailable, err)
	}
	return s.FindByID(ctx, id)
}

// Ping returns a point-in-time Redis availability check.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", goAccounts.ErrStoreUnavailable, err)
	}
	return nil
}
