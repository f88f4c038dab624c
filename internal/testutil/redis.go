package testutil

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisCandidates are tried in order when TEST_REDIS_ADDR is unset.
var redisCandidates = []string{"localhost:56379", "localhost:6379", "redis:6379"}

// SetupTestRedis returns a client on an empty database reserved for this test.
// The client is closed and the reservation released when the test ends.
func SetupTestRedis(t testing.TB) *redis.Client {
	t.Helper()

	addr, err := reachableRedis()
	if err != nil {
		if requireEnv("TEST_REQUIRE_REDIS") || requireEnv("TEST_REQUIRE_INFRA") {
			t.Fatalf("redis not available: %v", err)
		}
		t.Skipf("redis not available: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: reserveRedisDB(t, addr)})
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("flush redis test db: %v", err)
	}
	return client
}

func reachableRedis() (string, error) {
	candidates := redisCandidates
	if addr := os.Getenv("TEST_REDIS_ADDR"); addr != "" {
		candidates = []string{addr}
	}
	var lastErr error
	for _, addr := range candidates {
		c := redis.NewClient(&redis.Options{Addr: addr})
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		lastErr = c.Ping(ctx).Err()
		cancel()
		_ = c.Close()
		if lastErr == nil {
			return addr, nil
		}
	}
	return "", lastErr
}

// reserveRedisDB picks a database in 1..15 so packages tested in parallel do
// not flush each other. Reservations are SETNX keys in database 0.
func reserveRedisDB(t testing.TB, addr string) int {
	if v := os.Getenv("TEST_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}

	meta := redis.NewClient(&redis.Options{Addr: addr})
	defer meta.Close()
	owner := fmt.Sprintf("%d:%d", os.Getpid(), time.Now().UnixNano())
	for n := 1; n <= 15; n++ {
		key := fmt.Sprintf("txpay:testutil:redis-db:%d", n)
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		ok, err := meta.SetNX(ctx, key, owner, 30*time.Minute).Result()
		cancel()
		if err != nil || !ok {
			continue
		}
		t.Cleanup(func() {
			c := redis.NewClient(&redis.Options{Addr: addr})
			defer c.Close()
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = c.Del(ctx, key).Err()
		})
		return n
	}
	t.Logf("no free redis test db at %s, sharing db 1", addr)
	return 1
}
