package repository

import (
	"context"
	"sync"
	"time"

	"github.com/Domenick1991/pawcare/internal/domain"
)

// MemoryBookingRepository keeps bookings for the lifetime of the process.
// It is not shared between server instances.
type MemoryBookingRepository struct {
	mu       sync.RWMutex
	bookings []domain.Booking
	index    map[string]int
	now      func() time.Time
}

func NewMemoryBookingRepository() *MemoryBookingRepository {
	return &MemoryBookingRepository{
		index: make(map[string]int),
		now:   time.Now,
	}
}

func (r *MemoryBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Booking, len(r.bookings))
	copy(out, r.bookings)
	return out, nil
}

func (r *MemoryBookingRepository) ListByProvider(ctx context.Context, providerID string) ([]domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return filterBookings(r.bookings, byProvider(providerID)), nil
}

func (r *MemoryBookingRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return filterBookings(r.bookings, byCustomer(customerID)), nil
}

func (r *MemoryBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	b := r.bookings[i]
	return &b, nil
}

func (r *MemoryBookingRepository) Create(ctx context.Context, nb domain.NewBooking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b := nb.Materialize(r.now())
	r.index[b.ID] = len(r.bookings)
	r.bookings = append(r.bookings, b)
	return &b, nil
}

func (r *MemoryBookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return false, nil
	}
	r.bookings[i].Status = status
	return true, nil
}

var _ BookingRepository = (*MemoryBookingRepository)(nil)
