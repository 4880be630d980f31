package devstack

import (
	"context"
	"sync"
	"time"

	redisadapter "github.com/camixfedex/saludo-app/internal/adapters/redis"
)

// AccountStore persists accounts minted by the identity endpoints.
// The Redis-backed implementation lives in internal/adapters/redis.
type AccountStore interface {
	Save(ctx context.Context, acct redisadapter.Account) error
	Get(ctx context.Context, refreshToken string) (redisadapter.Account, error)
	Delete(ctx context.Context, refreshToken string) error
}

// MemoryAccountStore keeps accounts in process memory. It is the
// default when no Redis address is configured.
type MemoryAccountStore struct {
	mu       sync.Mutex
	accounts map[string]redisadapter.Account
}

// NewMemoryAccountStore creates an empty in-memory account store.
func NewMemoryAccountStore() *MemoryAccountStore {
	return &MemoryAccountStore{accounts: make(map[string]redisadapter.Account)}
}

// Save stores the account keyed by refresh token.
func (s *MemoryAccountStore) Save(_ context.Context, acct redisadapter.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[acct.RefreshToken] = acct
	return nil
}

// Get looks up an account by refresh token.
func (s *MemoryAccountStore) Get(_ context.Context, refreshToken string) (redisadapter.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[refreshToken]
	if !ok {
		return redisadapter.Account{}, redisadapter.ErrNotFound
	}
	if time.Now().After(acct.ExpiresAt) {
		delete(s.accounts, refreshToken)
		return redisadapter.Account{}, redisadapter.ErrNotFound
	}
	return acct, nil
}

// Delete removes an account by refresh token.
func (s *MemoryAccountStore) Delete(_ context.Context, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.accounts, refreshToken)
	return nil
}
