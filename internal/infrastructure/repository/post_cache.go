package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/patrickmn/go-cache"

	"github.com/NefariousNGGA/backend/internal/domain"
)

// PostCache holds rendered post views. Posts never change after creation,
// so entries are never invalidated.
type PostCache interface {
	Get(ctx context.Context, id int64) (*domain.PostView, bool)
	Set(ctx context.Context, post domain.PostView)
}

const postCacheTTL = time.Hour

func postCacheKey(id int64) string {
	return "lair:post:" + strconv.FormatInt(id, 10)
}

type MemcachePostCache struct {
	mc *memcache.Client
}

func NewMemcachePostCache(mc *memcache.Client) *MemcachePostCache {
	return &MemcachePostCache{mc: mc}
}

func (c *MemcachePostCache) Get(ctx context.Context, id int64) (*domain.PostView, bool) {
	item, err := c.mc.Get(postCacheKey(id))
	if err != nil {
		if err != memcache.ErrCacheMiss {
			slog.DebugContext(ctx, "memcache get failed", slog.String("error", err.Error()), slog.String("module", "repository"))
		}
		return nil, false
	}
	var post domain.PostView
	if err := json.Unmarshal(item.Value, &post); err != nil {
		return nil, false
	}
	return &post, true
}

func (c *MemcachePostCache) Set(ctx context.Context, post domain.PostView) {
	value, err := json.Marshal(post)
	if err != nil {
		return
	}
	err = c.mc.Set(&memcache.Item{
		Key:        postCacheKey(post.ID),
		Value:      value,
		Expiration: int32(postCacheTTL.Seconds()),
	})
	if err != nil {
		slog.DebugContext(ctx, "memcache set failed", slog.String("error", err.Error()), slog.String("module", "repository"))
	}
}

// LocalPostCache is the in-process fallback when no memcached is configured.
type LocalPostCache struct {
	cache *cache.Cache
}

func NewLocalPostCache() *LocalPostCache {
	return &LocalPostCache{cache: cache.New(postCacheTTL, 2*postCacheTTL)}
}

func (c *LocalPostCache) Get(ctx context.Context, id int64) (*domain.PostView, bool) {
	v, ok := c.cache.Get(postCacheKey(id))
	if !ok {
		return nil, false
	}
	post := v.(domain.PostView)
	return &post, true
}

func (c *LocalPostCache) Set(ctx context.Context, post domain.PostView) {
	c.cache.Set(postCacheKey(post.ID), post, cache.DefaultExpiration)
}
