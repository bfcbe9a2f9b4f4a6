package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// Драйверы хранилища каталога, заказов и клиентов.
const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
)

// Config описывает настройки запуска витрины.
type Config struct {
	HTTPAddr    string
	MetricsAddr string

	// StorageDriver выбирает реализацию репозиториев: memory|postgres.
	StorageDriver string
	PostgresDSN   string
	// AutoMigrate применяет миграции при старте (для postgres).
	AutoMigrate bool

	// RedisAddr — адрес Redis для персистентности корзин.
	// Пустая строка означает in-memory хранилище.
	RedisAddr string

	// KafkaBrokers — список брокеров через запятую. Пустая строка означает
	// запуск без Kafka: события outbox публикуются в лог.
	KafkaBrokers string
	KafkaTopic   string

	OutboxPollInterval   time.Duration
	OutboxBatchSize      int
	OutboxMaxAttempts    int
	OutboxRetryBaseDelay time.Duration

	Pricing domain.PricingPolicy
}

// DefaultConfig возвращает конфигурацию для локального запуска без внешних
// зависимостей.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:             ":8080",
		MetricsAddr:          ":9090",
		StorageDriver:        StorageDriverMemory,
		AutoMigrate:          true,
		KafkaTopic:           "storefront.order.events",
		OutboxPollInterval:   time.Second,
		OutboxBatchSize:      100,
		OutboxMaxAttempts:    3,
		OutboxRetryBaseDelay: 50 * time.Millisecond,
		Pricing:              domain.DefaultPricingPolicy(),
	}
}

// FromEnv накладывает переменные окружения STOREFRONT_* поверх значений по
// умолчанию. Ошибки разбора возвращаются вызывающей стороне, чтобы сервис
// не стартовал с тихо проигнорированной настройкой.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("STOREFRONT_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("STOREFRONT_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv("STOREFRONT_STORAGE_DRIVER"); v != "" {
		driver := strings.ToLower(strings.TrimSpace(v))
		if driver != StorageDriverMemory && driver != StorageDriverPostgres {
			return Config{}, fmt.Errorf("unsupported storage driver: %s (use memory|postgres)", v)
		}
		cfg.StorageDriver = driver
	}
	if v := os.Getenv("STOREFRONT_POSTGRES_DSN"); v != "" {
		cfg.PostgresDSN = v
	}
	if v := os.Getenv("STOREFRONT_POSTGRES_AUTO_MIGRATE"); v != "" {
		autoMigrate, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse STOREFRONT_POSTGRES_AUTO_MIGRATE: %w", err)
		}
		cfg.AutoMigrate = autoMigrate
	}
	if v := os.Getenv("STOREFRONT_REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("STOREFRONT_KAFKA_BROKERS"); v != "" {
		cfg.KafkaBrokers = v
	}
	if v := os.Getenv("STOREFRONT_KAFKA_TOPIC"); v != "" {
		cfg.KafkaTopic = v
	}

	if err := overrideDuration("STOREFRONT_OUTBOX_POLL_INTERVAL", &cfg.OutboxPollInterval); err != nil {
		return Config{}, err
	}
	if err := overrideInt("STOREFRONT_OUTBOX_BATCH_SIZE", &cfg.OutboxBatchSize); err != nil {
		return Config{}, err
	}
	if err := overrideInt("STOREFRONT_OUTBOX_MAX_ATTEMPTS", &cfg.OutboxMaxAttempts); err != nil {
		return Config{}, err
	}
	if err := overrideDuration("STOREFRONT_OUTBOX_RETRY_BASE_DELAY", &cfg.OutboxRetryBaseDelay); err != nil {
		return Config{}, err
	}

	if err := overrideInt64("STOREFRONT_TAX_RATE_BP", &cfg.Pricing.TaxRateBasisPoints); err != nil {
		return Config{}, err
	}
	if err := overrideInt64("STOREFRONT_FREE_SHIPPING_THRESHOLD", &cfg.Pricing.FreeShippingThresholdMinor); err != nil {
		return Config{}, err
	}
	if err := overrideInt64("STOREFRONT_FLAT_SHIPPING_RATE", &cfg.Pricing.FlatShippingRateMinor); err != nil {
		return Config{}, err
	}

	if cfg.StorageDriver == StorageDriverPostgres && strings.TrimSpace(cfg.PostgresDSN) == "" {
		return Config{}, fmt.Errorf("STOREFRONT_POSTGRES_DSN is required for postgres storage driver")
	}

	return cfg, nil
}

func overrideDuration(name string, target *time.Duration) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	*target = parsed
	return nil
}

func overrideInt(name string, target *int) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	*target = parsed
	return nil
}

func overrideInt64(name string, target *int64) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	parsed, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	*target = parsed
	return nil
}
