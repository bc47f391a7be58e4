package notification

import (
	"context"

	"github.com/Domenick1991/pawcare/internal/domain"
	"go.uber.org/zap"
)

// BookingNotification carries what the provider needs to act on a new request.
type BookingNotification struct {
	BookingID     string `json:"bookingId"`
	ProviderName  string `json:"providerName"`
	ProviderEmail string `json:"providerEmail"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
	ServiceType   string `json:"serviceType"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	NumberOfDogs  int    `json:"numberOfDogs"`
	DogDetails    string `json:"dogDetails,omitempty"`
	Message       string `json:"message,omitempty"`
}

func FromBooking(b *domain.Booking) BookingNotification {
	return BookingNotification{
		BookingID:     b.ID,
		ProviderName:  b.ProviderName,
		ProviderEmail: b.ProviderEmail,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		ServiceType:   b.ServiceType,
		StartDate:     b.StartDate,
		EndDate:       b.EndDate,
		NumberOfDogs:  b.NumberOfDogs,
		DogDetails:    b.DogDetails,
		Message:       b.Message,
	}
}

type Notifier interface {
	NotifyBookingCreated(ctx context.Context, n BookingNotification) error
}

type Publisher interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
}

// KafkaNotifier hands notifications to the worker through a topic.
type KafkaNotifier struct {
	publisher Publisher
	topic     string
}

func NewKafkaNotifier(publisher Publisher, topic string) *KafkaNotifier {
	return &KafkaNotifier{publisher: publisher, topic: topic}
}

func (n *KafkaNotifier) NotifyBookingCreated(ctx context.Context, msg BookingNotification) error {
	return n.publisher.Publish(ctx, n.topic, msg.BookingID, msg)
}

type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) NotifyBookingCreated(ctx context.Context, msg BookingNotification) error {
	n.logger.Info("booking created",
		zap.String("booking_id", msg.BookingID),
		zap.String("provider_email", msg.ProviderEmail),
		zap.String("service_type", msg.ServiceType),
	)
	return nil
}

var (
	_ Notifier = (*KafkaNotifier)(nil)
	_ Notifier = (*LogNotifier)(nil)
)
