package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/pawcare/config"
	"github.com/Domenick1991/pawcare/internal/email"
	"github.com/Domenick1991/pawcare/internal/kafka"
	"github.com/Domenick1991/pawcare/internal/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// The worker delivers booking emails published by the API in kafka mode.
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

	if len(cfg.Kafka.Brokers) == 0 {
		lg.Fatal("worker requires kafka brokers")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic, lg)
	defer consumer.Close()

	sender := email.NewSender(cfg.Email, lg)

	lg.Info("worker started", zap.String("topic", cfg.Kafka.NotificationsTopic))
	if err := consumer.Consume(ctx, kafka.NotificationHandler(sender, lg)); err != nil && ctx.Err() == nil {
		lg.Error("consumer stopped", zap.Error(err))
		return
	}
	lg.Info("worker shutting down")
}
