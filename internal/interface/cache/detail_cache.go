package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jemis-lakhani/points-go-backend/internal/domain/entity"
	"github.com/jemis-lakhani/points-go-backend/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

// RedisDetailCache keeps recent enrichment results in Redis with a
// TTL, keyed by the full lookup tuple.
type RedisDetailCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisDetailCache creates a cache over an existing Redis client.
func NewRedisDetailCache(client *redis.Client, ttl time.Duration) repository.DetailCache {
	return &RedisDetailCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached detail, or nil on a miss.
func (c *RedisDetailCache) Get(ctx context.Context, query repository.ScheduleQuery) (*entity.FlightDetail, error) {
	data, err := c.client.Get(ctx, detailKey(query)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var detail entity.FlightDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Set stores the detail under the lookup key with the configured TTL.
func (c *RedisDetailCache) Set(ctx context.Context, query repository.ScheduleQuery, detail *entity.FlightDetail) error {
	payload, err := json.Marshal(detail)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, detailKey(query), payload, c.ttl).Err()
}

func detailKey(q repository.ScheduleQuery) string {
	return fmt.Sprintf("detail:%s:%s:%s:%s", q.Date, q.DepAirport, q.ArrAirport, q.Designator)
}
