package domain

import (
	"context"
	"time"
)

// KeyValueStore описывает требования к персистентному key-value хранилищу
// корзины. Хранилище может быть недоступно; все вызовы со стороны корзины
// обязаны деградировать мягко.
type KeyValueStore interface {
	// Get возвращает значение по ключу; ok == false, если ключ отсутствует.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set сохраняет значение по ключу; при недоступности хранилища
	// возвращает ошибку, классифицируемую как ErrStorageUnavailable.
	Set(ctx context.Context, key, value string) error
}

// OutboxPublisher публикует события из transactional outbox.
type OutboxPublisher interface {
	// Publish передаёт событие наружу; должен быть идемпотентным.
	Publish(event OutboxMessage) error
}

// OutboxRepository позволяет сохранять события для последующей публикации.
type OutboxRepository interface {
	Enqueue(msg OutboxMessage) (OutboxMessage, error)
	PullPending(limit int) ([]OutboxMessage, error)
	Stats() (OutboxStats, error)
	MarkSent(id string) error
	MarkFailed(id string) error
}

// OutboxMessage хранит данные для публикуемого события.
type OutboxMessage struct {
	ID            string
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

// OutboxStats описывает текущее состояние backlog transactional outbox.
type OutboxStats struct {
	PendingCount    int
	OldestPendingAt time.Time
}
