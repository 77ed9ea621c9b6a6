package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// TagCache is a Redis-backed response cache with tag invalidation. Each
// cached key may be registered under one or more tags; invalidating a tag
// drops every key registered under it. The server uses a single tag for all
// post listings so any write wipes them wholesale.
type TagCache struct {
	Cli *redis.Client
	TTL time.Duration
}

// TagPosts groups every cached post listing.
const TagPosts = "posts"

func New(addr string, db int, ttlSeconds int) *TagCache {
	return &TagCache{
		Cli: redis.NewClient(&redis.Options{Addr: addr, DB: db}),
		TTL: time.Duration(ttlSeconds) * time.Second,
	}
}

func (c *TagCache) Ping(ctx context.Context) error {
	return c.Cli.Ping(ctx).Err()
}

// Get returns the cached value. IsMiss distinguishes an absent key from a
// Redis failure.
func (c *TagCache) Get(ctx context.Context, key string) (string, error) {
	return c.Cli.Get(ctx, key).Result()
}

// IsMiss reports whether err means "key not cached".
func IsMiss(err error) bool {
	return errors.Is(err, redis.Nil)
}

// Set stores val under key and registers the key with the given tags.
// Tag membership sets expire alongside the entries they track.
func (c *TagCache) Set(ctx context.Context, key, val string, tags ...string) error {
	pipe := c.Cli.TxPipeline()
	pipe.Set(ctx, key, val, c.TTL)
	for _, tag := range tags {
		pipe.SAdd(ctx, tagKey(tag), key)
		pipe.Expire(ctx, tagKey(tag), c.TTL)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// InvalidateTag removes every key registered under tag, then the tag set
// itself.
func (c *TagCache) InvalidateTag(ctx context.Context, tag string) error {
	keys, err := c.Cli.SMembers(ctx, tagKey(tag)).Result()
	if err != nil {
		return err
	}
	pipe := c.Cli.TxPipeline()
	if len(keys) > 0 {
		pipe.Del(ctx, keys...)
	}
	pipe.Del(ctx, tagKey(tag))
	_, err = pipe.Exec(ctx)
	return err
}

func tagKey(tag string) string {
	return "tag:" + tag
}
