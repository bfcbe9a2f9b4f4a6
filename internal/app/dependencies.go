package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/health"
	"github.com/vladislavdragonenkov/storefront/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/storefront/internal/service/outbox"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
	"github.com/vladislavdragonenkov/storefront/internal/storage/postgres"
	redisstore "github.com/vladislavdragonenkov/storefront/internal/storage/redis"
)

// Dependencies содержит инфраструктурные зависимости приложения: репозитории,
// key-value хранилище корзин и публикатор событий outbox.
type Dependencies struct {
	Products  domain.ProductRepository
	Orders    domain.OrderRepository
	Customers domain.CustomerRepository
	Outbox    domain.OutboxRepository
	CartKV    domain.KeyValueStore
	Publisher domain.OutboxPublisher
	Logger    *log.Entry

	pgStore       *postgres.Store
	redisStore    *redisstore.KeyValueStore
	kafkaProducer *kafka.Producer
}

// NewDependencies собирает зависимости по конфигурации. Memory-драйвер не
// требует внешних сервисов; postgres и redis инициализируются с проверкой
// доступности. Недоступность Kafka не фатальна: события публикуются в лог.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	deps := &Dependencies{Logger: logger}

	switch cfg.StorageDriver {
	case StorageDriverPostgres:
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if cfg.AutoMigrate {
			if err := store.EnsureSchema(ctx); err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("apply migrations: %w", err)
			}
		}
		deps.pgStore = store
		deps.Products = postgres.NewProductRepository(store)
		deps.Orders = postgres.NewOrderRepository(store)
		deps.Customers = postgres.NewCustomerRepository(store)
		deps.Outbox = postgres.NewOutboxRepository(store)
		logger.Info("postgres storage initialized")
	case StorageDriverMemory:
		deps.Products = memory.NewProductRepository()
		deps.Orders = memory.NewOrderRepository()
		deps.Customers = memory.NewCustomerRepository()
		deps.Outbox = memory.NewOutboxRepository()
		logger.Info("in-memory storage initialized")
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.StorageDriver)
	}

	if cfg.RedisAddr != "" {
		kv, err := redisstore.Dial(ctx, cfg.RedisAddr)
		if err != nil {
			deps.Close()
			return nil, fmt.Errorf("dial redis: %w", err)
		}
		deps.redisStore = kv
		deps.CartKV = kv
		logger.WithField("addr", cfg.RedisAddr).Info("redis cart storage initialized")
	} else {
		deps.CartKV = memory.NewKeyValueStore()
		logger.Info("in-memory cart storage initialized")
	}

	producer, err := initKafkaProducer(cfg.KafkaBrokers, logger)
	if err == nil && producer != nil {
		deps.kafkaProducer = producer
		deps.Publisher = kafka.NewOutboxPublisher(producer, cfg.KafkaTopic)
	} else {
		deps.Publisher = outbox.NewLogPublisher(logger.WithField("component", "outbox"))
	}

	return deps, nil
}

// RegisterHealthCheckers добавляет проверки внешних зависимостей в health-обработчик.
func (d *Dependencies) RegisterHealthCheckers(handler *health.Handler) {
	if d.pgStore != nil {
		store := d.pgStore
		handler.RegisterChecker("postgres", health.NewSimpleChecker("postgres", func() error {
			return store.Ping(context.Background())
		}))
	}
	if d.redisStore != nil {
		kv := d.redisStore
		handler.RegisterChecker("redis", health.NewSimpleChecker("redis", func() error {
			return kv.Ping(context.Background())
		}))
	}
}

// Close освобождает внешние подключения в обратном порядке инициализации.
func (d *Dependencies) Close() {
	closeKafka(d.kafkaProducer, d.Logger)
	if d.redisStore != nil {
		if err := d.redisStore.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close redis connection")
		}
	}
	if d.pgStore != nil {
		if err := d.pgStore.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close postgres connection")
		}
	}
}
