package booking

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/Domenick1991/pawcare/internal/domain"
	"github.com/Domenick1991/pawcare/internal/notification"
	"github.com/Domenick1991/pawcare/internal/repository"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var ErrInvalidStatus = errors.New("invalid booking status")

// MissingFieldError names the first required field absent from a create request.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "Missing required field: " + e.Field
}

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	ListBookings(ctx context.Context, filter BookingFilter) ([]domain.Booking, error)
	GetBooking(ctx context.Context, id string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (bool, error)
}

// CreateBookingInput is checked field by field in declaration order; zero
// values count as missing.
type CreateBookingInput struct {
	ProviderID    string   `json:"providerId" validate:"required"`
	ProviderName  string   `json:"providerName" validate:"required"`
	ProviderEmail string   `json:"providerEmail" validate:"required"`
	CustomerName  string   `json:"customerName" validate:"required"`
	CustomerEmail string   `json:"customerEmail" validate:"required"`
	CustomerPhone string   `json:"customerPhone" validate:"required"`
	ServiceType   string   `json:"serviceType" validate:"required"`
	StartDate     string   `json:"startDate" validate:"required"`
	EndDate       string   `json:"endDate" validate:"required"`
	NumberOfDogs  DogCount `json:"numberOfDogs" validate:"required"`
	CustomerID    string   `json:"customerId"`
	DogDetails    string   `json:"dogDetails"`
	Message       string   `json:"message"`
}

type BookingFilter struct {
	ProviderID string
	CustomerID string
}

type BookingService struct {
	bookings repository.BookingRepository
	notifier notification.Notifier
	validate *validator.Validate
	logger   *zap.Logger
}

type BookingServiceOption func(*BookingService)

func WithLogger(logger *zap.Logger) BookingServiceOption {
	return func(s *BookingService) {
		s.logger = logger
	}
}

func NewBookingService(bookings repository.BookingRepository, notifier notification.Notifier, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{
		bookings: bookings,
		notifier: notifier,
		validate: newValidator(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate returns *MissingFieldError for the first missing required field.
func (s *BookingService) Validate(input CreateBookingInput) error {
	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return &MissingFieldError{Field: fieldErrs[0].Field()}
	}
	return err
}

// CreateBooking stores a pending booking and then notifies the provider.
// A notification failure is returned but the booking stays stored.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if err := s.Validate(input); err != nil {
		return nil, err
	}

	customerID := input.CustomerID
	if customerID == "" {
		customerID = domain.GuestCustomerID
	}

	booking, err := s.bookings.Create(ctx, domain.NewBooking{
		ProviderID:    input.ProviderID,
		ProviderName:  input.ProviderName,
		ProviderEmail: input.ProviderEmail,
		CustomerID:    customerID,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
		ServiceType:   input.ServiceType,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		NumberOfDogs:  int(input.NumberOfDogs),
		DogDetails:    input.DogDetails,
		Message:       input.Message,
	})
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyBookingCreated(ctx, notification.FromBooking(booking)); err != nil {
			s.logger.Error("booking stored but provider not notified",
				zap.String("booking_id", booking.ID),
				zap.Error(err),
			)
			return nil, fmt.Errorf("notify provider for booking %s: %w", booking.ID, err)
		}
	}

	s.logger.Info("booking created",
		zap.String("booking_id", booking.ID),
		zap.String("provider_id", booking.ProviderID),
		zap.String("customer_id", booking.CustomerID),
	)
	return booking, nil
}

func (s *BookingService) ListBookings(ctx context.Context, filter BookingFilter) ([]domain.Booking, error) {
	switch {
	case filter.ProviderID != "":
		bookings, err := s.bookings.ListByProvider(ctx, filter.ProviderID)
		if err != nil || filter.CustomerID == "" {
			return bookings, err
		}
		out := make([]domain.Booking, 0, len(bookings))
		for _, b := range bookings {
			if b.CustomerID == filter.CustomerID {
				out = append(out, b)
			}
		}
		return out, nil
	case filter.CustomerID != "":
		return s.bookings.ListByCustomer(ctx, filter.CustomerID)
	default:
		return s.bookings.List(ctx)
	}
}

func (s *BookingService) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

// UpdateStatus accepts any valid status regardless of the current one.
func (s *BookingService) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (bool, error) {
	if !status.Valid() {
		return false, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	ok, err := s.bookings.UpdateStatus(ctx, id, status)
	if err != nil {
		return false, fmt.Errorf("update booking %s status: %w", id, err)
	}
	if ok {
		s.logger.Info("booking status updated", zap.String("booking_id", id), zap.String("status", string(status)))
	}
	return ok, nil
}

var _ BookingUseCase = (*BookingService)(nil)
