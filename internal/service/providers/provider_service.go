package providers

import (
	"context"

	"github.com/Domenick1991/pawcare/internal/domain"
	"github.com/Domenick1991/pawcare/internal/repository"
	"go.uber.org/zap"
)

type ProviderUseCase interface {
	List(ctx context.Context) ([]domain.Provider, error)
	GetByID(ctx context.Context, id string) (*domain.Provider, error)
}

type ProviderCache interface {
	GetProviders(ctx context.Context) ([]domain.Provider, error)
	SetProviders(ctx context.Context, providers []domain.Provider) error
}

type ProviderService struct {
	repo   repository.ProviderRepository
	cache  ProviderCache
	logger *zap.Logger
}

// NewProviderService accepts a nil cache.
func NewProviderService(repo repository.ProviderRepository, cache ProviderCache, logger *zap.Logger) *ProviderService {
	return &ProviderService{repo: repo, cache: cache, logger: logger}
}

func (s *ProviderService) List(ctx context.Context) ([]domain.Provider, error) {
	if s.cache != nil {
		cached, err := s.cache.GetProviders(ctx)
		if err == nil && cached != nil {
			return cached, nil
		}
		if err != nil {
			s.logger.Warn("provider cache read failed", zap.Error(err))
		}
	}

	providers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetProviders(ctx, providers); err != nil {
			s.logger.Warn("provider cache write failed", zap.Error(err))
		}
	}
	return providers, nil
}

func (s *ProviderService) GetByID(ctx context.Context, id string) (*domain.Provider, error) {
	return s.repo.GetByID(ctx, id)
}

var _ ProviderUseCase = (*ProviderService)(nil)
