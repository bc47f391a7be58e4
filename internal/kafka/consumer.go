package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Domenick1991/pawcare/internal/notification"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type Consumer struct {
	reader messageReader
	logger *zap.Logger
}

func NewConsumer(brokers []string, groupID, topic string, logger *zap.Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
		logger: logger,
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, kafka.Message) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		if err := handler(ctx, msg); err != nil {
			c.logger.Error("handle message",
				zap.Error(err),
				zap.ByteString("key", msg.Key),
				zap.Int64("offset", msg.Offset),
			)
			return err
		}
	}
}

// NotificationHandler decodes booking notifications and passes them on.
// Undecodable messages are logged and skipped.
func NotificationHandler(next notification.Notifier, logger *zap.Logger) func(context.Context, kafka.Message) error {
	return func(ctx context.Context, msg kafka.Message) error {
		var n notification.BookingNotification
		if err := json.Unmarshal(msg.Value, &n); err != nil {
			logger.Warn("decode notification", zap.Error(err), zap.ByteString("key", msg.Key))
			return nil
		}
		return next.NotifyBookingCreated(ctx, n)
	}
}
