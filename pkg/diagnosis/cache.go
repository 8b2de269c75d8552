package diagnosis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/synaptica-ai/diagnostics/pkg/features"
	"github.com/synaptica-ai/diagnostics/pkg/report"
)

const cachePrefix = "diagnosis:report:"

// Cache stores reports keyed by CacheKey.
type Cache interface {
	Get(ctx context.Context, key string) (report.Report, bool, error)
	Set(ctx context.Context, key string, rep report.Report) error
}

// CacheKey is the SHA-256 of the record's JSON encoding. encoding/json sorts map keys,
// so equal records hash equally.
func CacheKey(rec features.Record) (string, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("encode record: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) (report.Report, bool, error) {
	data, err := c.client.Get(ctx, cachePrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return report.Report{}, false, nil
	}
	if err != nil {
		return report.Report{}, false, err
	}
	var rep report.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return report.Report{}, false, fmt.Errorf("decode cached report: %w", err)
	}
	return rep, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, rep report.Report) error {
	data, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return c.client.Set(ctx, cachePrefix+key, data, c.ttl).Err()
}
