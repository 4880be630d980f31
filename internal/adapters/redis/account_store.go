package redis

// Package redis provides the Redis-backed account store used by the
// devstack identity server. Issued anonymous accounts are keyed by
// refresh token so the token grant can look them up across restarts.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Account is the provider-side record for an issued anonymous account.
// ExpiresAt bounds the refresh token's validity, not the ID token's.
type Account struct {
	UID          string    `json:"uid"`
	RefreshToken string    `json:"refresh_token"`
	IDToken      string    `json:"id_token"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AccountStore persists accounts in Redis with TTL semantics derived
// from the refresh token validity.
type AccountStore struct {
	client redis.UniversalClient
	prefix string
}

// NewAccountStore creates a Redis-backed account store.
func NewAccountStore(client redis.UniversalClient) *AccountStore {
	return &AccountStore{
		client: client,
		prefix: "account:",
	}
}

// NewAccountStoreWithPrefix creates an account store with a custom key prefix.
func NewAccountStoreWithPrefix(client redis.UniversalClient, prefix string) *AccountStore {
	return &AccountStore{
		client: client,
		prefix: prefix,
	}
}

// Save stores the account keyed by refresh token, expiring with it.
func (s *AccountStore) Save(ctx context.Context, acct Account) error {
	if acct.RefreshToken == "" {
		return errors.New("account refresh token cannot be empty")
	}

	data, err := json.Marshal(acct)
	if err != nil {
		return fmt.Errorf("marshal account: %w", err)
	}

	ttl := time.Until(acct.ExpiresAt)
	if ttl <= 0 {
		return errors.New("account is expired")
	}

	key := s.prefix + acct.RefreshToken
	return s.client.Set(ctx, key, data, ttl).Err()
}

// Get looks up an account by refresh token.
func (s *AccountStore) Get(ctx context.Context, refreshToken string) (Account, error) {
	if refreshToken == "" {
		return Account{}, ErrNotFound
	}

	key := s.prefix + refreshToken
	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Account{}, ErrNotFound
		}
		return Account{}, fmt.Errorf("redis get: %w", err)
	}

	var acct Account
	if unmarshalErr := json.Unmarshal([]byte(data), &acct); unmarshalErr != nil {
		return Account{}, fmt.Errorf("unmarshal account: %w", unmarshalErr)
	}

	// Redis TTL should already have evicted expired entries; be defensive.
	if time.Now().After(acct.ExpiresAt) {
		if deleteErr := s.Delete(ctx, refreshToken); deleteErr != nil {
			return Account{}, fmt.Errorf("cleanup expired account: %w", deleteErr)
		}
		return Account{}, ErrNotFound
	}

	return acct, nil
}

// Delete removes an account by refresh token.
func (s *AccountStore) Delete(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil // Nothing to delete
	}

	key := s.prefix + refreshToken
	return s.client.Del(ctx, key).Err()
}

// ErrNotFound is returned when an account is not found.
type notFoundError struct{}

func (notFoundError) Error() string { return "account not found" }

var ErrNotFound error = notFoundError{}
