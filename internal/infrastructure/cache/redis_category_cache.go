package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/catalog-admin-api/internal/application/ports"
	"github.com/jhoicas/catalog-admin-api/pkg/config"
)

var _ ports.CategoryListCache = (*RedisCategoryCache)(nil)

// DefaultCategoryKey clave del listado serializado.
const DefaultCategoryKey = "catalog:categories:all"

// RedisCategoryCache guarda el listado JSON de categorías en Redis (compartido entre instancias).
// La generación vive en key+":gen", sin TTL.
type RedisCategoryCache struct {
	client *redis.Client
	key    string
	genKey string
	ttl    time.Duration
}

// NewRedisCategoryCache conecta a Redis y verifica con PING.
func NewRedisCategoryCache(ctx context.Context, cfg config.RedisConfig) (*RedisCategoryCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("conectar redis: %w", err)
	}
	return NewRedisCategoryCacheWithClient(client, DefaultCategoryKey, cfg.TTL), nil
}

// NewRedisCategoryCacheWithClient usa un cliente existente.
func NewRedisCategoryCacheWithClient(client *redis.Client, key string, ttl time.Duration) *RedisCategoryCache {
	if key == "" {
		key = DefaultCategoryKey
	}
	return &RedisCategoryCache{client: client, key: key, genKey: key + ":gen", ttl: ttl}
}

// Get devuelve el listado cacheado; ok=false en miss.
func (c *RedisCategoryCache) Get(ctx context.Context) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return data, true, nil
}

// Generation devuelve la generación actual; 0 si nunca se invalidó.
func (c *RedisCategoryCache) Generation(ctx context.Context) (uint64, error) {
	gen, err := c.client.Get(ctx, c.genKey).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get gen: %w", err)
	}
	return gen, nil
}

// Set guarda el listado con TTL solo si la generación sigue siendo gen. WATCH sobre la clave
// de generación aborta el MULTI si otra instancia invalida entre la comparación y el SET.
func (c *RedisCategoryCache) Set(ctx context.Context, gen uint64, data []byte) (bool, error) {
	stored := false
	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, c.genKey).Uint64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.key, data, c.ttl)
			return nil
		})
		if err == nil {
			stored = true
		}
		return err
	}, c.genKey)
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis set: %w", err)
	}
	return stored, nil
}

// Invalidate avanza la generación y borra el listado en una sola transacción.
func (c *RedisCategoryCache) Invalidate(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, c.genKey)
		pipe.Del(ctx, c.key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis invalidate: %w", err)
	}
	return nil
}

// Close cierra el cliente.
func (c *RedisCategoryCache) Close() error {
	return c.client.Close()
}
