// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Valkey client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		client.Del(ctx, treeKey)
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestConnectValkey(t *testing.T) {
	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")

	client, err := ConnectValkey(host+":"+port, "")
	if err != nil {
		t.Skipf("skipping: Valkey not available: %v", err)
	}
	defer client.Close()

	ctx := context.Background()
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if pong != "PONG" {
		t.Errorf("expected PONG, got %q", pong)
	}
}

func TestTreeCacheSetAndGet(t *testing.T) {
	client := testValkeyClient(t)
	tc := NewTreeCache(client, 1*time.Minute)

	ctx := context.Background()

	// Miss.
	data, ok := tc.Get(ctx)
	if ok {
		t.Error("expected cache miss")
	}
	if data != nil {
		t.Error("expected nil data on miss")
	}

	// Set.
	tree := []byte(`[{"id":1,"name":"Root Category","parentId":null,"children":[]}]`)
	tc.Set(ctx, tree)

	// Hit.
	data, ok = tc.Get(ctx)
	if !ok {
		t.Error("expected cache hit")
	}
	if string(data) != string(tree) {
		t.Errorf("data mismatch: got %q, want %q", data, tree)
	}
}

func TestTreeCacheInvalidate(t *testing.T) {
	client := testValkeyClient(t)
	tc := NewTreeCache(client, 1*time.Minute)

	ctx := context.Background()

	tc.Set(ctx, []byte("[]"))

	// Verify it's cached.
	_, ok := tc.Get(ctx)
	if !ok {
		t.Fatal("expected cache hit before invalidation")
	}

	// Invalidate.
	tc.Invalidate(ctx)

	// Verify it's gone.
	_, ok = tc.Get(ctx)
	if ok {
		t.Error("expected cache miss after invalidation")
	}
}

func TestTreeCacheNilClient(t *testing.T) {
	tc := NewTreeCache(nil, 1*time.Minute)

	ctx := context.Background()

	// All operations are safe no-ops without a client.
	tc.Set(ctx, []byte("[]"))
	if _, ok := tc.Get(ctx); ok {
		t.Error("expected miss with nil client")
	}
	tc.Invalidate(ctx)
}

func TestNewTreeCacheDefaultTTL(t *testing.T) {
	tc := NewTreeCache(nil, 0)
	if tc.ttl != DefaultTreeTTL {
		t.Errorf("expected DefaultTreeTTL (%v), got %v", DefaultTreeTTL, tc.ttl)
	}
}
