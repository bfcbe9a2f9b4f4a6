package api

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/cart"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const (
	// defaultMaxSessions ограничивает число корзин, живущих в памяти процесса.
	defaultMaxSessions = 10000
	// defaultSessionIdleTTL — простой сессии, после которого её корзина
	// выселяется из памяти.
	defaultSessionIdleTTL = time.Hour
)

// cartEntry — корзина сессии вместе со временем последнего обращения.
type cartEntry struct {
	store    *cart.Store
	lastSeen time.Time
}

// CartRegistry выдаёт корзину для сессии. Первое обращение поднимает
// сохранённое состояние из key-value хранилища; дальше запросы сессии
// работают с одним экземпляром Store в памяти процесса.
//
// Реестр ограничен по размеру и выселяет простаивающие сессии. Состояние
// корзины переживает выселение в key-value хранилище: следующий запрос
// сессии поднимет его заново.
type CartRegistry struct {
	mu      sync.Mutex
	kv      domain.KeyValueStore
	pricing domain.PricingPolicy
	carts   map[string]*cartEntry
	logger  *log.Entry

	maxSessions int
	idleTTL     time.Duration
	now         func() time.Time
}

// NewCartRegistry создаёт реестр корзин.
func NewCartRegistry(kv domain.KeyValueStore, pricing domain.PricingPolicy, logger *log.Entry) *CartRegistry {
	if logger == nil {
		logger = log.WithField("component", "cart-registry")
	}
	return &CartRegistry{
		kv:          kv,
		pricing:     pricing,
		carts:       make(map[string]*cartEntry),
		logger:      logger,
		maxSessions: defaultMaxSessions,
		idleTTL:     defaultSessionIdleTTL,
		now:         time.Now,
	}
}

// ForSession возвращает корзину сессии, создавая её при первом обращении.
func (r *CartRegistry) ForSession(sessionID string) *cart.Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.evictIdle(now)

	if entry, ok := r.carts[sessionID]; ok {
		entry.lastSeen = now
		return entry.store
	}

	if len(r.carts) >= r.maxSessions {
		r.evictOldest()
	}

	store := cart.NewStore(
		r.kv,
		cart.WithKey(cart.DefaultStorageKey+":"+sessionID),
		cart.WithPricing(r.pricing),
		cart.WithLogger(r.logger.WithField("session_id", sessionID)),
	)
	r.carts[sessionID] = &cartEntry{store: store, lastSeen: now}
	return store
}

// evictIdle выселяет сессии, простоявшие дольше idleTTL. Вызывается под mu.
func (r *CartRegistry) evictIdle(now time.Time) {
	for sessionID, entry := range r.carts {
		if now.Sub(entry.lastSeen) > r.idleTTL {
			delete(r.carts, sessionID)
		}
	}
}

// evictOldest выселяет сессию с самым давним обращением. Вызывается под mu.
func (r *CartRegistry) evictOldest() {
	var (
		oldestID string
		oldestAt time.Time
	)
	for sessionID, entry := range r.carts {
		if oldestID == "" || entry.lastSeen.Before(oldestAt) {
			oldestID = sessionID
			oldestAt = entry.lastSeen
		}
	}
	if oldestID != "" {
		delete(r.carts, oldestID)
		r.logger.WithField("session_id", oldestID).Debug("evicted oldest cart session")
	}
}
