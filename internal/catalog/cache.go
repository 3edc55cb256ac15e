// Copyright (c) 2026 Lotsawa. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lotsawa/canon/internal/platform/constants"
)

// # Tree Cache

/*
TreeCache stores built category trees.

Implementations never fail the caller: a miss or a broken cache simply means
the tree is rebuilt from the store.

Every Invalidate bumps a generation counter. A caller reads the generation
before loading the categories and hands it to Set, which drops the tree when
an invalidation happened in between. A tree built from data that a
concurrent write has already replaced therefore never reaches the cache.
*/
type TreeCache interface {
	Get(context context.Context, key string) ([]*TreeNode, bool)
	// Generation returns the current invalidation count. ok is false when
	// the count cannot be read, in which case the caller must not Set.
	Generation(context context.Context) (generation int64, ok bool)
	Set(context context.Context, key string, generation int64, nodes []*TreeNode)
	Invalidate(context context.Context)
}

// TreeCacheKey names one cached tree: the root slug ("" for the whole
// forest) and the active filter.
func TreeCacheKey(rootSlug string, activeOnly bool) string {
	return rootSlug + "|" + strconv.FormatBool(activeOnly)
}

// NopTreeCache is used when trees cannot be shared safely, e.g. several
// instances on one database without Redis.
type NopTreeCache struct{}

func (NopTreeCache) Get(context.Context, string) ([]*TreeNode, bool) { return nil, false }
func (NopTreeCache) Generation(context.Context) (int64, bool) { return 0, false }
func (NopTreeCache) Set(context.Context, string, int64, []*TreeNode) {}
func (NopTreeCache) Invalidate(context.Context) {}

// MemoryTreeCache keeps trees in process. It pairs with the memory backend,
// whose data lives in the same process.
type MemoryTreeCache struct {
	mu         sync.Mutex
	trees      map[string][]*TreeNode
	generation int64
}

// NewMemoryTreeCache constructs an empty [MemoryTreeCache].
func NewMemoryTreeCache() *MemoryTreeCache {
	return &MemoryTreeCache{trees: make(map[string][]*TreeNode)}
}

func (cache *MemoryTreeCache) Get(_ context.Context, key string) ([]*TreeNode, bool) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	nodes, ok := cache.trees[key]
	return nodes, ok
}

func (cache *MemoryTreeCache) Generation(context.Context) (int64, bool) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	return cache.generation, true
}

func (cache *MemoryTreeCache) Set(_ context.Context, key string, generation int64, nodes []*TreeNode) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	if generation != cache.generation {
		return
	}
	cache.trees[key] = nodes
}

func (cache *MemoryTreeCache) Invalidate(context.Context) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.generation++
	cache.trees = make(map[string][]*TreeNode)
}

// errStaleTree aborts a Redis write whose generation is out of date.
var errStaleTree = errors.New("tree generation changed")

// RedisTreeCache keeps every cached tree as a field of one Redis hash so a
// single DEL drops them all. The generation lives in its own key and is
// WATCHed by Set.
type RedisTreeCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisTreeCache constructs a [RedisTreeCache].
func NewRedisTreeCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisTreeCache {
	return &RedisTreeCache{client: client, ttl: ttl, logger: logger}
}

func (cache *RedisTreeCache) Get(context context.Context, key string) ([]*TreeNode, bool) {
	payload, err := cache.client.HGet(context, constants.RedisKeyCategoryTree, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		cache.logger.Warn("tree_cache_read_failed", slog.String("field", key), slog.Any("error", err))
		return nil, false
	}

	var nodes []*TreeNode
	if err := json.Unmarshal(payload, &nodes); err != nil {
		cache.logger.Warn("tree_cache_corrupt", slog.String("field", key), slog.Any("error", err))
		return nil, false
	}
	return nodes, true
}

func (cache *RedisTreeCache) Generation(context context.Context) (int64, bool) {
	generation, err := readGeneration(context, cache.client)
	if err != nil {
		cache.logger.Warn("tree_cache_generation_failed", slog.Any("error", err))
		return 0, false
	}
	return generation, true
}

// generationReader is satisfied by both a client and a WATCH transaction.
type generationReader interface {
	Get(context context.Context, key string) *redis.StringCmd
}

// readGeneration treats a missing counter as generation zero.
func readGeneration(context context.Context, reader generationReader) (int64, error) {
	generation, err := reader.Get(context, constants.RedisKeyCategoryTreeGeneration).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return generation, err
}

func (cache *RedisTreeCache) Set(context context.Context, key string, generation int64, nodes []*TreeNode) {
	payload, err := json.Marshal(nodes)
	if err != nil {
		cache.logger.Warn("tree_cache_encode_failed", slog.String("field", key), slog.Any("error", err))
		return
	}

	err = cache.client.Watch(context, func(tx *redis.Tx) error {
		current, err := readGeneration(context, tx)
		if err != nil {
			return err
		}
		if current != generation {
			return errStaleTree
		}

		_, err = tx.TxPipelined(context, func(pipe redis.Pipeliner) error {
			pipe.HSet(context, constants.RedisKeyCategoryTree, key, payload)
			pipe.Expire(context, constants.RedisKeyCategoryTree, cache.ttl)
			return nil
		})
		return err
	}, constants.RedisKeyCategoryTreeGeneration)

	switch {
	case err == nil:
	case errors.Is(err, errStaleTree), errors.Is(err, redis.TxFailedErr):
		cache.logger.Debug("tree_cache_write_skipped", slog.String("field", key))
	default:
		cache.logger.Warn("tree_cache_write_failed", slog.String("field", key), slog.Any("error", err))
	}
}

func (cache *RedisTreeCache) Invalidate(context context.Context) {
	_, err := cache.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		pipe.Incr(context, constants.RedisKeyCategoryTreeGeneration)
		pipe.Del(context, constants.RedisKeyCategoryTree)
		return nil
	})
	if err != nil {
		cache.logger.Warn("tree_cache_invalidate_failed", slog.Any("error", err))
	}
}
