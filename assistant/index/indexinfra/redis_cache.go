package indexinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/Abraxas-365/resumegpt/assistant/index"
	"github.com/go-redis/redis/v8"
)

// RedisEmbeddingCache stores packed vectors under a key prefix
type RedisEmbeddingCache struct {
	client *redis.Client
	prefix string
}

var _ index.EmbeddingCache = (*RedisEmbeddingCache)(nil)

func NewRedisEmbeddingCache(client *redis.Client, prefix string) *RedisEmbeddingCache {
	return &RedisEmbeddingCache{
		client: client,
		prefix: prefix,
	}
}

// GetMany returns the cached vectors; missing keys are absent from the map
func (c *RedisEmbeddingCache) GetMany(ctx context.Context, keys []string) (map[string][]float32, error) {
	if len(keys) == 0 {
		return map[string][]float32{}, nil
	}

	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.prefix + k
	}

	values, err := c.client.MGet(ctx, full...).Result()
	if err != nil {
		return nil, fmt.Errorf("mget embeddings: %w", err)
	}

	out := make(map[string][]float32, len(keys))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		vec, err := decodeVector([]byte(s))
		if err != nil {
			continue
		}
		out[keys[i]] = vec
	}
	return out, nil
}

// SetMany writes all entries in one pipeline
func (c *RedisEmbeddingCache) SetMany(ctx context.Context, entries map[string][]float32, ttl time.Duration) error {
	if len(entries) == 0 {
		return nil
	}

	pipe := c.client.Pipeline()
	for k, v := range entries {
		pipe.Set(ctx, c.prefix+k, encodeVector(v), ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store embeddings: %w", err)
	}
	return nil
}
