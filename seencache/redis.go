package seencache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisSeenKey    = "newsdigest:seen"
	redisUpdatedKey = "newsdigest:seen:updated"
)

// RedisStore keeps the seen set in a Redis set, for runs that share state
// across hosts
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects using a redis:// or rediss:// URL
func NewRedisStore(location string) (*RedisStore, error) {
	opts, err := redis.ParseURL(location)
	if err != nil {
		return nil, fmt.Errorf("parse redis cache location: %w", err)
	}
	return &RedisStore{client: redis.NewClient(opts)}, nil
}

func (s *RedisStore) Load(ctx context.Context) (Cache, error) {
	urls, err := s.client.SMembers(ctx, redisSeenKey).Result()
	if err != nil {
		return Cache{}, fmt.Errorf("read seen set: %w", err)
	}

	var updated time.Time
	if raw, err := s.client.Get(ctx, redisUpdatedKey).Result(); err == nil {
		if t, perr := time.Parse(time.RFC3339, raw); perr == nil {
			updated = t
		}
	}
	return Cache{URLs: urls, Updated: updated}, nil
}

func (s *RedisStore) Save(ctx context.Context, c Cache) error {
	if len(c.URLs) > 0 {
		members := make([]interface{}, len(c.URLs))
		for i, u := range c.URLs {
			members[i] = u
		}
		if err := s.client.SAdd(ctx, redisSeenKey, members...).Err(); err != nil {
			return fmt.Errorf("update seen set: %w", err)
		}
	}
	return s.client.Set(ctx, redisUpdatedKey, c.Updated.Format(time.RFC3339), 0).Err()
}
