// Package redis реализует персистентное key-value хранилище корзины
// поверх Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const defaultTTL = 30 * 24 * time.Hour

// KeyValueStore хранит сериализованные корзины в Redis. Ошибки подключения
// классифицируются как ErrStorageUnavailable, чтобы корзина могла
// деградировать мягко.
type KeyValueStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewKeyValueStore создаёт хранилище поверх существующего клиента Redis.
func NewKeyValueStore(client *redis.Client) *KeyValueStore {
	return &KeyValueStore{client: client, ttl: defaultTTL}
}

// Dial подключается к Redis по адресу и проверяет доступность сервера.
func Dial(ctx context.Context, addr string) (*KeyValueStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return NewKeyValueStore(client), nil
}

// Get возвращает значение по ключу; отсутствие ключа не является ошибкой.
func (s *KeyValueStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: redis get: %v", domain.ErrStorageUnavailable, err)
	}
	return value, true, nil
}

// Set сохраняет значение по ключу с TTL корзины.
func (s *KeyValueStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: redis set: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

// Ping проверяет доступность Redis, используется health-чекером.
func (s *KeyValueStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close закрывает подключение к Redis.
func (s *KeyValueStore) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

var _ domain.KeyValueStore = (*KeyValueStore)(nil)
