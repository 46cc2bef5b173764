package redis

import (
	"context"
	"errors"
	"fmt"
	"relatedAttributes/business/related"
	"relatedAttributes/business/settings"
	"relatedAttributes/pkg/logger"
	"time"

	"github.com/redis/go-redis/v9"
)

// TermCountCache is a read-through cache in front of a TermCounter.
// Redis failures are logged and the source is queried directly.
type TermCountCache struct {
	client *redis.Client
	next   related.TermCounter
	ttl    time.Duration
}

var (
	_ related.TermCounter           = (*TermCountCache)(nil)
	_ settings.TermCountInvalidator = (*TermCountCache)(nil)
)

func NewTermCountCache(client *redis.Client, next related.TermCounter, ttl time.Duration) *TermCountCache {
	return &TermCountCache{
		client: client,
		next:   next,
		ttl:    ttl,
	}
}

func termCountKey(taxonomy string) string {
	// key format: "related:term_count:{taxonomy}"
	return fmt.Sprintf("related:term_count:%s", taxonomy)
}

func (c *TermCountCache) CountTerms(ctx context.Context, taxonomy string) (int64, error) {
	key := termCountKey(taxonomy)

	count, err := c.client.Get(ctx, key).Int64()
	if err == nil {
		return count, nil
	}
	if !errors.Is(err, redis.Nil) {
		logger.Warn("term count cache read failed", "taxonomy", taxonomy, "error", err)
	}

	count, err = c.next.CountTerms(ctx, taxonomy)
	if err != nil {
		return 0, err
	}

	if err := c.client.Set(ctx, key, count, c.ttl).Err(); err != nil {
		logger.Warn("term count cache write failed", "taxonomy", taxonomy, "error", err)
	}

	return count, nil
}

// Invalidate drops cached counts so the next read hits the source.
func (c *TermCountCache) Invalidate(ctx context.Context, taxonomies ...string) error {
	if len(taxonomies) == 0 {
		return nil
	}

	keys := make([]string, 0, len(taxonomies))
	for _, t := range taxonomies {
		keys = append(keys, termCountKey(t))
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate term counts: %w", err)
	}

	return nil
}
