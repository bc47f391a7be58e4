package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Domenick1991/pawcare/internal/domain"
)

// SlotStore is a single named key holding the serialized booking list.
// Load returns nil data when the slot has never been written.
type SlotStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// SlotBookingRepository reads the whole list on every call and overwrites
// the slot on every mutation. The mutex only orders writers in this process.
type SlotBookingRepository struct {
	mu   sync.Mutex
	slot SlotStore
	now  func() time.Time
}

func NewSlotBookingRepository(slot SlotStore) *SlotBookingRepository {
	return &SlotBookingRepository{slot: slot, now: time.Now}
}

func (r *SlotBookingRepository) load(ctx context.Context) ([]domain.Booking, error) {
	data, err := r.slot.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load booking slot: %w", err)
	}
	bookings := make([]domain.Booking, 0)
	if len(data) == 0 {
		return bookings, nil
	}
	if err := json.Unmarshal(data, &bookings); err != nil {
		return nil, fmt.Errorf("decode booking slot: %w", err)
	}
	return bookings, nil
}

func (r *SlotBookingRepository) save(ctx context.Context, bookings []domain.Booking) error {
	data, err := json.Marshal(bookings)
	if err != nil {
		return fmt.Errorf("encode booking slot: %w", err)
	}
	if err := r.slot.Save(ctx, data); err != nil {
		return fmt.Errorf("save booking slot: %w", err)
	}
	return nil
}

func (r *SlotBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	return r.load(ctx)
}

func (r *SlotBookingRepository) ListByProvider(ctx context.Context, providerID string) ([]domain.Booking, error) {
	all, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return filterBookings(all, byProvider(providerID)), nil
}

func (r *SlotBookingRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Booking, error) {
	all, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return filterBookings(all, byCustomer(customerID)), nil
}

func (r *SlotBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	all, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, ErrBookingNotFound
}

func (r *SlotBookingRepository) Create(ctx context.Context, nb domain.NewBooking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	b := nb.Materialize(r.now())
	if err := r.save(ctx, append(all, b)); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *SlotBookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	for i := range all {
		if all[i].ID != id {
			continue
		}
		all[i].Status = status
		if err := r.save(ctx, all); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

var _ BookingRepository = (*SlotBookingRepository)(nil)
