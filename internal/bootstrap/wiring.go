package bootstrap

import (
	"errors"
	"fmt"

	"github.com/Domenick1991/pawcare/config"
	"github.com/Domenick1991/pawcare/internal/cache"
	"github.com/Domenick1991/pawcare/internal/notification"
	"github.com/Domenick1991/pawcare/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Backends holds the optional connections a storage choice may need.
type Backends struct {
	Pool  *pgxpool.Pool
	Redis redis.Cmdable
}

// NewBookingRepository picks the booking store named by cfg.Backend.
func NewBookingRepository(cfg config.StorageConfig, b Backends) (repository.BookingRepository, error) {
	switch cfg.Backend {
	case config.StorageMemory:
		return repository.NewMemoryBookingRepository(), nil
	case config.StorageSlot:
		if b.Redis == nil {
			return nil, errors.New("slot storage requires redis")
		}
		return repository.NewSlotBookingRepository(cache.NewRedisSlot(b.Redis, cfg.SlotKey)), nil
	case config.StoragePostgres:
		if b.Pool == nil {
			return nil, errors.New("postgres storage requires a database pool")
		}
		return repository.NewBookingRepository(b.Pool), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// NewProviderRepository reads the catalogue from postgres when a pool is
// available and from config otherwise.
func NewProviderRepository(cfg *config.Config, b Backends) repository.ProviderRepository {
	if b.Pool != nil {
		return repository.NewProviderRepository(b.Pool)
	}
	return repository.NewStaticProviderRepository(cfg.Providers)
}

func NewNotifier(mode string, publisher notification.Publisher, topic string, mailer notification.Notifier, logger *zap.Logger) (notification.Notifier, error) {
	switch mode {
	case config.NotifyKafka:
		if publisher == nil {
			return nil, errors.New("kafka notifications require a producer")
		}
		return notification.NewKafkaNotifier(publisher, topic), nil
	case config.NotifyEmail:
		if mailer == nil {
			return nil, errors.New("email notifications require a sender")
		}
		return mailer, nil
	case config.NotifyLog, "":
		return notification.NewLogNotifier(logger), nil
	default:
		return nil, fmt.Errorf("unknown notifications mode %q", mode)
	}
}
