package clinics

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"smarthealth-backend/internal/shared/telemetry"
)

// ListingCache keeps filtered clinic listings in Redis. Listings change only
// on admin writes, so a short TTL plus an explicit flush on write keeps reads
// cheap without staleness. A nil client disables caching entirely.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListingCache creates a ListingCache.
func NewListingCache(client *redis.Client) *ListingCache {
	return &ListingCache{
		client: client,
		ttl:    5 * time.Minute,
	}
}

func (c *ListingCache) key(filter Filter) string {
	return fmt.Sprintf("clinics:%s:%s:%s",
		strings.ToLower(strings.TrimSpace(filter.County)),
		strings.ToLower(strings.TrimSpace(filter.Service)),
		filter.PriceBand,
	)
}

// Get returns the cached listing for the filter, if present.
func (c *ListingCache) Get(ctx context.Context, filter Filter) ([]Clinic, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, c.key(filter)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		telemetry.Error("clinics.cache_get_failed", map[string]any{"error": err.Error()})
		return nil, false
	}
	var listing []Clinic
	if err := json.Unmarshal([]byte(data), &listing); err != nil {
		return nil, false
	}
	return listing, true
}

// Set stores the listing under the filter key.
func (c *ListingCache) Set(ctx context.Context, filter Filter, listing []Clinic) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(listing)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(filter), data, c.ttl).Err(); err != nil {
		telemetry.Error("clinics.cache_set_failed", map[string]any{"error": err.Error()})
	}
}

// Flush drops every cached listing. Called after admin writes.
func (c *ListingCache) Flush(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, "clinics:*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			telemetry.Error("clinics.cache_flush_failed", map[string]any{"error": err.Error()})
			return
		}
	}
	if err := iter.Err(); err != nil {
		telemetry.Error("clinics.cache_flush_failed", map[string]any{"error": err.Error()})
	}
}
