package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/pawcare/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookingColumns = `id, provider_id, provider_name, provider_email, customer_id, customer_name, customer_email, customer_phone, service_type, start_date, end_date, number_of_dogs, dog_details, message, status, created_at`

type PGBookingRepository struct {
	db  *pgxpool.Pool
	now func() time.Time
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db, now: time.Now}
}

func (r *PGBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	return r.query(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY seq`)
}

func (r *PGBookingRepository) ListByProvider(ctx context.Context, providerID string) ([]domain.Booking, error) {
	return r.query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE provider_id=$1 ORDER BY seq`, providerID)
}

func (r *PGBookingRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Booking, error) {
	return r.query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE customer_id=$1 ORDER BY seq`, customerID)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id)
	b, err := scanBooking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *PGBookingRepository) Create(ctx context.Context, nb domain.NewBooking) (*domain.Booking, error) {
	// postgres keeps microseconds
	now := r.now().UTC().Truncate(time.Microsecond)
	b := nb.Materialize(now)
	_, err := r.db.Exec(ctx, `INSERT INTO bookings (`+bookingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		b.ID, b.ProviderID, b.ProviderName, b.ProviderEmail, b.CustomerID, b.CustomerName, b.CustomerEmail, b.CustomerPhone,
		b.ServiceType, b.StartDate, b.EndDate, b.NumberOfDogs, b.DogDetails, b.Message, b.Status, now)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (bool, error) {
	cmd, err := r.db.Exec(ctx, `UPDATE bookings SET status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *PGBookingRepository) query(ctx context.Context, sql string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var (
		b         domain.Booking
		createdAt time.Time
	)
	if err := row.Scan(&b.ID, &b.ProviderID, &b.ProviderName, &b.ProviderEmail, &b.CustomerID, &b.CustomerName, &b.CustomerEmail,
		&b.CustomerPhone, &b.ServiceType, &b.StartDate, &b.EndDate, &b.NumberOfDogs, &b.DogDetails, &b.Message, &b.Status, &createdAt); err != nil {
		return nil, err
	}
	b.CreatedAt = createdAt.UTC().Format(time.RFC3339Nano)
	return &b, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
