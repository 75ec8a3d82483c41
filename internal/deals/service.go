package deals

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dealdeck/dealdeck/internal/domain"
)

// statsCache is the slice of the Redis layer the service needs. A nil
// cache is valid and means every stats read hits PostgreSQL.
type statsCache interface {
	CityStats(ctx context.Context) ([]domain.CityStat, error)
	Invalidate(ctx context.Context)
}

// Service implements the deal use cases on top of the repositories.
type Service struct {
	repo  domain.DealRepository
	cache statsCache
}

// NewService wires the service. cache may be nil when Redis is not
// configured.
func NewService(repo domain.DealRepository, cache statsCache) *Service {
	return &Service{repo: repo, cache: cache}
}

// List returns one page of deals with their hotels' average ratings
// attached. The whole page costs three queries regardless of page size:
// the listing itself, the total count, and one grouped rating lookup.
func (s *Service) List(ctx context.Context, f domain.DealFilter, skip, limit int) (*domain.Page[domain.Deal], error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	items, err := s.repo.List(ctx, f, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list deals: %w", err)
	}
	total, err := s.repo.Count(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to count deals: %w", err)
	}
	if err := s.attachAvgRatings(ctx, items); err != nil {
		return nil, err
	}

	return &domain.Page[domain.Deal]{Items: items, Total: total, Skip: skip, Limit: limit}, nil
}

// Get returns a single deal with its hotel's average rating attached.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Deal, error) {
	deal, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if deal.Hotel != nil {
		ratings, err := s.repo.AvgRatingByHotel(ctx, []int64{deal.HotelID})
		if err != nil {
			return nil, fmt.Errorf("failed to load hotel ratings: %w", err)
		}
		deal.Hotel.AvgRating = ratings[deal.HotelID]
	}
	return deal, nil
}

// Create inserts a deal and invalidates the city aggregation.
func (s *Service) Create(ctx context.Context, d *domain.Deal) (*domain.Deal, error) {
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)
	return s.Get(ctx, d.ID)
}

// Update rewrites a deal's mutable fields and invalidates the city
// aggregation.
func (s *Service) Update(ctx context.Context, d *domain.Deal) (*domain.Deal, error) {
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)
	return s.Get(ctx, d.ID)
}

// Delete removes a deal and invalidates the city aggregation.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateStats(ctx)
	return nil
}

// CityStats returns the per-city aggregation, through the cache when one
// is configured.
func (s *Service) CityStats(ctx context.Context) ([]domain.CityStat, error) {
	if s.cache != nil {
		return s.cache.CityStats(ctx)
	}
	return s.repo.CityStats(ctx)
}

// attachAvgRatings fills Hotel.AvgRating for every deal in ds with one
// grouped query over the distinct hotel IDs.
func (s *Service) attachAvgRatings(ctx context.Context, ds []domain.Deal) error {
	if len(ds) == 0 {
		return nil
	}

	seen := make(map[int64]struct{}, len(ds))
	ids := make([]int64, 0, len(ds))
	for i := range ds {
		if ds[i].Hotel == nil {
			continue
		}
		if _, ok := seen[ds[i].HotelID]; ok {
			continue
		}
		seen[ds[i].HotelID] = struct{}{}
		ids = append(ids, ds[i].HotelID)
	}
	if len(ids) == 0 {
		return nil
	}

	ratings, err := s.repo.AvgRatingByHotel(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load hotel ratings: %w", err)
	}
	for i := range ds {
		if ds[i].Hotel != nil {
			ds[i].Hotel.AvgRating = ratings[ds[i].HotelID]
		}
	}
	return nil
}

func (s *Service) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	s.cache.Invalidate(ctx)
	slog.Debug("city stats cache invalidated")
}
