package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ridloal/product-catalog-service/internal/platform/config"
	"github.com/ridloal/product-catalog-service/internal/platform/logger"
)

const (
	defaultTTL  = 5 * time.Minute
	pingTimeout = 5 * time.Second
)

// Cache adalah wrapper tipis di atas Redis dengan serialisasi JSON.
// Nilai apa pun yang bisa di-marshal boleh disimpan; caller menentukan key.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func Connect(cfg config.RedisConfig) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Info("Successfully connected to redis at " + cfg.Addr)
	return &Cache{client: client, ttl: defaultTTL}, nil
}

// Get membaca key dan unmarshal ke dest. Return kedua false kalau cache miss.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			logger.Debug("Cache miss for key %s", key)
			return false, nil
		}
		return false, fmt.Errorf("cache get error: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache unmarshal error: %w", err)
	}
	logger.Debug("Cache hit for key %s", key)
	return true, nil
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}
	return nil
}

// Delete menghapus key. Key yang sudah tidak ada bukan error.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache delete error: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}
