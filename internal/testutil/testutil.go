// Package testutil provides testing helpers shared across packages.
package testutil

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// GetTestRedisAddr returns the Redis address for integration tests.
// Reads TEST_REDIS_ADDR, falling back to localhost:6379.
func GetTestRedisAddr() string {
	if addr := strings.TrimSpace(os.Getenv("TEST_REDIS_ADDR")); addr != "" {
		return addr
	}
	return "localhost:6379"
}

// requireRedis reports whether tests must fail (rather than skip) when
// Redis is unreachable. Set TEST_REQUIRE_REDIS=true in CI.
func requireRedis() bool {
	return strings.EqualFold(os.Getenv("TEST_REQUIRE_REDIS"), "true")
}

// SetupTestRedis creates a Redis client for testing. Tests are skipped
// if Redis is not available, unless TEST_REQUIRE_REDIS is set.
func SetupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	addr := GetTestRedisAddr()
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   15, // keep test data away from any local dev database
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		if cerr := client.Close(); cerr != nil {
			t.Logf("warning: failed to close redis client after ping error: %v", cerr)
		}
		if requireRedis() {
			t.Fatalf("Redis not available for testing at %s: %v", addr, err)
		}
		t.Skipf("Redis not available for testing at %s: %v", addr, err)
	}

	client.FlushDB(ctx)

	t.Cleanup(func() {
		if err := client.Close(); err != nil {
			t.Logf("warning: failed to close redis client: %v", err)
		}
	})

	return client
}
