package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// AlertDedupStore implements ports.AlertDeduper using Redis SET NX.
type AlertDedupStore struct {
	client goredis.UniversalClient
	prefix string
}

// NewAlertDedupStore creates a new Redis-backed alert deduper.
func NewAlertDedupStore(client goredis.UniversalClient) *AlertDedupStore {
	return &AlertDedupStore{
		client: client,
		prefix: "alert:dedup:",
	}
}

// Claim marks key as raised for ttl.
// Returns true if this caller is the first to raise it, false if an equivalent alert is already live.
func (s *AlertDedupStore) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	result, err := s.client.SetArgs(ctx, s.prefix+key, time.Now().Unix(), goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis alert dedup: %w", err)
	}
	return result == "OK", nil
}
