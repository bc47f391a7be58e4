package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Domenick1991/pawcare/config"
	"github.com/Domenick1991/pawcare/internal/domain"
	"github.com/redis/go-redis/v9"
)

func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
}

// RedisCache caches the provider catalogue.
type RedisCache struct {
	client       redis.Cmdable
	providersTTL time.Duration
}

func NewRedisCache(client redis.Cmdable, providersTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, providersTTL: providersTTL}
}

// GetProviders returns nil, nil on a cache miss.
func (c *RedisCache) GetProviders(ctx context.Context) ([]domain.Provider, error) {
	data, err := c.client.Get(ctx, providersKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var providers []domain.Provider
	if err := json.Unmarshal(data, &providers); err != nil {
		return nil, err
	}
	return providers, nil
}

func (c *RedisCache) SetProviders(ctx context.Context, providers []domain.Provider) error {
	payload, err := json.Marshal(providers)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, providersKey(), payload, c.providersTTL).Err()
}

// RedisSlot stores one serialized value under a fixed key with no expiry.
type RedisSlot struct {
	client redis.Cmdable
	key    string
}

func NewRedisSlot(client redis.Cmdable, key string) *RedisSlot {
	return &RedisSlot{client: client, key: key}
}

func (s *RedisSlot) Load(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return data, err
}

func (s *RedisSlot) Save(ctx context.Context, data []byte) error {
	return s.client.Set(ctx, s.key, data, 0).Err()
}

func providersKey() string {
	return "cache:providers"
}
