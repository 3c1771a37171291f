// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// tree.go provides a Valkey-backed cache for the serialized category tree.
// Building the tree walks every category, so the rendered JSON is stored in
// Valkey and reused until a category is created, edited or deleted.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// treeKey is the Valkey key holding the serialized category tree.
	treeKey = "categories:tree"

	// DefaultTreeTTL is how long the category tree stays cached.
	DefaultTreeTTL = 5 * time.Minute
)

// TreeCache manages category tree caching in Valkey. A nil client disables
// caching entirely, so callers degrade to the store without nil checks.
type TreeCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTreeCache creates a category tree cache backed by the given Valkey
// client. The client may be nil, in which case every Get is a miss.
func NewTreeCache(client *redis.Client, ttl time.Duration) *TreeCache {
	if ttl == 0 {
		ttl = DefaultTreeTTL
	}
	return &TreeCache{client: client, ttl: ttl}
}

// Get retrieves the cached category tree JSON. Returns false on miss.
func (tc *TreeCache) Get(ctx context.Context) ([]byte, bool) {
	if tc.client == nil {
		return nil, false
	}
	val, err := tc.client.Get(ctx, treeKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("tree cache get error", "error", err)
		return nil, false
	}
	slog.Debug("tree cache hit")
	return val, true
}

// Set stores the serialized category tree with the configured TTL.
func (tc *TreeCache) Set(ctx context.Context, tree []byte) {
	if tc.client == nil {
		return
	}
	if err := tc.client.Set(ctx, treeKey, tree, tc.ttl).Err(); err != nil {
		slog.Warn("tree cache set error", "error", err)
	}
}

// Invalidate removes the cached tree. Called after any category mutation.
func (tc *TreeCache) Invalidate(ctx context.Context) {
	if tc.client == nil {
		return
	}
	if err := tc.client.Del(ctx, treeKey).Err(); err != nil {
		slog.Warn("tree cache invalidate error", "error", err)
	}
	slog.Debug("tree cache invalidated")
}
