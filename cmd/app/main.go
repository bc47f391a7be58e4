package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/pawcare/api"
	"github.com/Domenick1991/pawcare/config"
	"github.com/Domenick1991/pawcare/internal/bootstrap"
	"github.com/Domenick1991/pawcare/internal/cache"
	"github.com/Domenick1991/pawcare/internal/email"
	"github.com/Domenick1991/pawcare/internal/kafka"
	"github.com/Domenick1991/pawcare/internal/logger"
	"github.com/Domenick1991/pawcare/internal/notification"
	"github.com/Domenick1991/pawcare/internal/repository"
	"github.com/Domenick1991/pawcare/internal/service/booking"
	"github.com/Domenick1991/pawcare/internal/service/providers"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	lg, err := logger.New(cfg.Log.Env)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer lg.Sync()
	if cfg.Log.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var backends bootstrap.Backends
	if cfg.Storage.Backend == config.StoragePostgres {
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			lg.Fatal("connect postgres", zap.Error(err))
		}
		defer pool.Close()
		if err := repository.Migrate(ctx, pool); err != nil {
			lg.Fatal("migrate postgres", zap.Error(err))
		}
		backends.Pool = pool
	}

	var providerCache providers.ProviderCache
	if cfg.Redis.Addr != "" {
		client := cache.NewClient(cfg.Redis)
		defer client.Close()
		backends.Redis = client
		providerCache = cache.NewRedisCache(client, time.Duration(cfg.Booking.ProvidersCacheTTL)*time.Second)
	}

	bookingRepo, err := bootstrap.NewBookingRepository(cfg.Storage, backends)
	if err != nil {
		lg.Fatal("booking storage", zap.Error(err))
	}

	var publisher notification.Publisher
	if cfg.Notifications.Mode == config.NotifyKafka {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, lg)
		defer producer.Close()
		if err := producer.CheckConnection(ctx); err != nil {
			lg.Warn("kafka not reachable at startup", zap.Error(err))
		}
		publisher = producer
	}

	notifier, err := bootstrap.NewNotifier(cfg.Notifications.Mode, publisher, cfg.Kafka.NotificationsTopic, email.NewSender(cfg.Email, lg), lg)
	if err != nil {
		lg.Fatal("notifications", zap.Error(err))
	}

	bookingService := booking.NewBookingService(bookingRepo, notifier, booking.WithLogger(lg))
	providerService := providers.NewProviderService(bootstrap.NewProviderRepository(cfg, backends), providerCache, lg)

	router := api.NewRouter(api.RouterConfig{
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		JWTSecret:      cfg.Auth.JWTSecret,
	}, bookingService, providerService, lg)

	lg.Info("starting pawcare", zap.String("storage", cfg.Storage.Backend), zap.String("notifications", cfg.Notifications.Mode))
	if err := bootstrap.Run(ctx, cfg, router, lg); err != nil {
		lg.Fatal("server error", zap.Error(err))
	}
}
