package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/pawcare/internal/domain"
)

var ErrBookingNotFound = errors.New("booking not found")

// BookingRepository owns the stored bookings. Returned values are copies.
type BookingRepository interface {
	List(ctx context.Context) ([]domain.Booking, error)
	ListByProvider(ctx context.Context, providerID string) ([]domain.Booking, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	Create(ctx context.Context, booking domain.NewBooking) (*domain.Booking, error)
	// UpdateStatus reports false when no booking has the given id.
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (bool, error)
}

func filterBookings(all []domain.Booking, keep func(domain.Booking) bool) []domain.Booking {
	out := make([]domain.Booking, 0)
	for _, b := range all {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

func byProvider(providerID string) func(domain.Booking) bool {
	return func(b domain.Booking) bool { return b.ProviderID == providerID }
}

func byCustomer(customerID string) func(domain.Booking) bool {
	return func(b domain.Booking) bool { return b.CustomerID == customerID }
}
