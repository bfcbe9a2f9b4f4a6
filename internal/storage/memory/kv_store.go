package memory

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// keyValueStoreInMemory — in-memory реализация KeyValueStore для
// локальной разработки и тестов. Переживает только время жизни процесса.
type keyValueStoreInMemory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewKeyValueStore создаёт in-memory key-value хранилище.
func NewKeyValueStore() domain.KeyValueStore {
	return &keyValueStoreInMemory{data: make(map[string]string)}
}

// Get возвращает значение по ключу; ok == false, если ключ отсутствует.
func (s *keyValueStoreInMemory) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	return value, ok, nil
}

// Set сохраняет значение по ключу.
func (s *keyValueStoreInMemory) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return nil
}
