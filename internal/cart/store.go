package cart

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const (
	// DefaultStorageKey — ключ корзины в key-value хранилище.
	DefaultStorageKey = "cart"

	persistTimeout = 2 * time.Second
)

// Store владеет авторитетным состоянием корзины одной сессии и
// синхронно пишет его в key-value хранилище после каждой мутации.
// Персистентность — best-effort: недоступное хранилище никогда не
// блокирует и не откатывает мутацию в памяти.
//
// Переходы состояния делегируются чистым функциям пакета domain;
// Store добавляет только владение состоянием и побочный эффект записи.
type Store struct {
	mu      sync.Mutex
	items   []domain.CartItem
	kv      domain.KeyValueStore
	key     string
	pricing domain.PricingPolicy
	logger  *log.Entry
}

// Option настраивает Store.
type Option func(*Store)

// WithKey задаёт ключ хранения (для изоляции корзин разных сессий).
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithPricing задаёт политику расчёта стоимости.
func WithPricing(policy domain.PricingPolicy) Option {
	return func(s *Store) {
		s.pricing = policy
	}
}

// WithLogger задаёт logger корзины.
func WithLogger(logger *log.Entry) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore создаёт корзину и загружает сохранённое состояние.
// Отсутствующее, повреждённое или недоступное состояние деградирует
// к пустой корзине; единственный наблюдаемый эффект — предупреждение в логе.
func NewStore(kv domain.KeyValueStore, opts ...Option) *Store {
	s := &Store{
		kv:      kv,
		key:     DefaultStorageKey,
		pricing: domain.DefaultPricingPolicy(),
		logger:  log.WithField("component", "cart"),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.items = s.load()
	return s
}

// load читает и декодирует сохранённую корзину. Никогда не возвращает ошибку.
func (s *Store) load() []domain.CartItem {
	if s.kv == nil {
		return []domain.CartItem{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	payload, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.logger.WithError(err).WithField("key", s.key).Warn("failed to load cart from storage, starting empty")
		return []domain.CartItem{}
	}
	if !ok {
		return []domain.CartItem{}
	}

	items, err := decodeItems(payload)
	if err != nil {
		// Повреждённые данные отбрасываются целиком, без частичной загрузки.
		s.logger.WithError(err).WithField("key", s.key).Warn("discarding corrupt cart data, starting empty")
		return []domain.CartItem{}
	}

	return items
}

// persist пишет текущую последовательность в хранилище best-effort.
func (s *Store) persist() {
	if s.kv == nil {
		return
	}

	payload, err := encodeItems(s.items)
	if err != nil {
		s.logger.WithError(err).Warn("failed to encode cart for persistence")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := s.kv.Set(ctx, s.key, payload); err != nil {
		s.logger.WithError(err).WithField("key", s.key).Warn("failed to persist cart, keeping in-memory state")
	}
}

// Items возвращает копию текущей последовательности позиций.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneItems(s.items)
}

// Add добавляет товар по правилам витрины и возвращает обновлённую
// последовательность. Товар без остатка и позиция на потолке остатка —
// молчаливые no-op.
func (s *Store) Add(product domain.Product) []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := domain.AddItem(s.items, product)
	if changed {
		s.items = next
		s.persist()
	}
	return domain.CloneItems(s.items)
}

// Remove удаляет позицию по идентификатору товара.
func (s *Store) Remove(productID string) []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := domain.RemoveItem(s.items, productID)
	if changed {
		s.items = next
		s.persist()
	}
	return domain.CloneItems(s.items)
}

// UpdateQuantity выставляет количество позиции; ноль удаляет позицию,
// отрицательное количество отклоняется с ErrInvalidQuantity.
func (s *Store) UpdateQuantity(productID string, quantity int32) ([]domain.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed, err := domain.SetItemQuantity(s.items, productID, quantity)
	if err != nil {
		return domain.CloneItems(s.items), err
	}
	if changed {
		s.items = next
		s.persist()
	}
	return domain.CloneItems(s.items), nil
}

// Clear опустошает корзину и персистирует пустую последовательность,
// чтобы перезагрузка сессии не воскресила уже очищенную корзину.
func (s *Store) Clear() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := domain.ClearItems(s.items)
	s.items = next
	if changed {
		s.persist()
	}
	return domain.CloneItems(s.items)
}

// SubtotalMinor возвращает подытог корзины в минимальных единицах.
func (s *Store) SubtotalMinor() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.SubtotalMinor(s.items)
}

// ShippingMinor возвращает стоимость доставки для текущего подытога.
func (s *Store) ShippingMinor() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pricing.ShippingMinor(domain.SubtotalMinor(s.items))
}

// TaxMinor возвращает налог для текущего подытога.
func (s *Store) TaxMinor() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pricing.TaxMinor(domain.SubtotalMinor(s.items))
}

// TotalMinor возвращает полную стоимость корзины.
func (s *Store) TotalMinor() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pricing.TotalMinor(s.items)
}

// Summary описывает производные суммы корзины одним снимком.
type Summary struct {
	ItemCount     int
	SubtotalMinor int64
	ShippingMinor int64
	TaxMinor      int64
	TotalMinor    int64
}

// Summary возвращает согласованный снимок производных сумм.
func (s *Store) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	subtotal := domain.SubtotalMinor(s.items)
	shipping := s.pricing.ShippingMinor(subtotal)
	tax := s.pricing.TaxMinor(subtotal)
	return Summary{
		ItemCount:     len(s.items),
		SubtotalMinor: subtotal,
		ShippingMinor: shipping,
		TaxMinor:      tax,
		TotalMinor:    subtotal + shipping + tax,
	}
}
