package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/pawcare/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrProviderNotFound = errors.New("provider not found")

type ProviderRepository interface {
	List(ctx context.Context) ([]domain.Provider, error)
	GetByID(ctx context.Context, id string) (*domain.Provider, error)
}

type PGProviderRepository struct {
	db *pgxpool.Pool
}

func NewProviderRepository(db *pgxpool.Pool) ProviderRepository {
	return &PGProviderRepository{db: db}
}

func (r *PGProviderRepository) List(ctx context.Context) ([]domain.Provider, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, email, city, service_types, daily_rate_cents, rating, created_at FROM providers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	providers := make([]domain.Provider, 0)
	for rows.Next() {
		var p domain.Provider
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.City, &p.ServiceTypes, &p.DailyRateCents, &p.Rating, &p.CreatedAt); err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return providers, rows.Err()
}

func (r *PGProviderRepository) GetByID(ctx context.Context, id string) (*domain.Provider, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, email, city, service_types, daily_rate_cents, rating, created_at FROM providers WHERE id=$1`, id)
	var p domain.Provider
	if err := row.Scan(&p.ID, &p.Name, &p.Email, &p.City, &p.ServiceTypes, &p.DailyRateCents, &p.Rating, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}
	return &p, nil
}

// StaticProviderRepository serves a fixed catalogue, typically from config.
type StaticProviderRepository struct {
	providers []domain.Provider
}

func NewStaticProviderRepository(providers []domain.Provider) *StaticProviderRepository {
	cp := make([]domain.Provider, len(providers))
	copy(cp, providers)
	return &StaticProviderRepository{providers: cp}
}

func (r *StaticProviderRepository) List(ctx context.Context) ([]domain.Provider, error) {
	out := make([]domain.Provider, len(r.providers))
	copy(out, r.providers)
	return out, nil
}

func (r *StaticProviderRepository) GetByID(ctx context.Context, id string) (*domain.Provider, error) {
	for _, p := range r.providers {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, ErrProviderNotFound
}

var (
	_ ProviderRepository = (*PGProviderRepository)(nil)
	_ ProviderRepository = (*StaticProviderRepository)(nil)
)
