package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mdanassaif/bigNweirdwords/internal/logger"
	"github.com/mdanassaif/bigNweirdwords/internal/models"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "definition:"

// RedisCache shares definitions between service instances. Keys never
// expire, matching the in-memory cache.
type RedisCache struct {
	client *redis.Client
	log    *logger.Logger
}

// NewRedisCache connects to redisURL (redis://host:port or
// redis://host:port/db) and verifies the connection.
func NewRedisCache(ctx context.Context, redisURL string, log *logger.Logger) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("error parsing redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}

	log.Info("connected to redis", "addr", opts.Addr)
	return newRedisCache(client, log), nil
}

func newRedisCache(client *redis.Client, log *logger.Logger) *RedisCache {
	return &RedisCache{client: client, log: log}
}

func (c *RedisCache) Get(ctx context.Context, word string) (models.DefinitionEntry, bool) {
	var entry models.DefinitionEntry

	raw, err := c.client.Get(ctx, Key(word)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("redis get failed", "word", word, "error", err)
		}
		return entry, false
	}

	if err := json.Unmarshal(raw, &entry); err != nil {
		c.log.Warn("discarding malformed cached definition", "word", word, "error", err)
		return entry, false
	}
	return entry, true
}

func (c *RedisCache) Set(ctx context.Context, word string, entry models.DefinitionEntry) {
	raw, err := json.Marshal(entry)
	if err != nil {
		c.log.Warn("error encoding definition", "word", word, "error", err)
		return
	}
	if err := c.client.Set(ctx, Key(word), raw, 0).Err(); err != nil {
		c.log.Warn("redis set failed", "word", word, "error", err)
	}
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Key returns the redis key of a word, e.g. "definition:hypothesis".
func Key(word string) string {
	return keyPrefix + strings.ToLower(word)
}
