package flights

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/metrics"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"go.uber.org/zap"
)

type FlightUseCase interface {
	Create(ctx context.Context, input domain.FlightInput) (*domain.Flight, error)
	List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
}

// FlightCache holds the unfiltered flight listing.
type FlightCache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, int64, error)
	SetFlights(ctx context.Context, flights []domain.Flight, version int64) error
	InvalidateFlights(ctx context.Context) error
}

type FlightService struct {
	repo    repository.FlightRepository
	cache   FlightCache
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewFlightService(repo repository.FlightRepository, cache FlightCache, m *metrics.Metrics, log *zap.Logger) *FlightService {
	return &FlightService{repo: repo, cache: cache, metrics: m, log: log}
}

func (s *FlightService) Create(ctx context.Context, input domain.FlightInput) (*domain.Flight, error) {
	flight, err := domain.NewFlight(input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, flight); err != nil {
		return nil, fmt.Errorf("create flight: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateFlights(ctx); err != nil {
			s.log.Warn("invalidate flights cache", zap.Error(err))
		}
	}
	s.metrics.IncFlightsCreated()
	s.log.Info("flight created", zap.Int64("flight_id", flight.ID), zap.String("flight_code", flight.FlightCode))
	return flight, nil
}

// List returns flights matching filter. Only the unfiltered listing goes
// through the cache, and it is written back only when the cache could be
// read, so the version guard is always known.
func (s *FlightService) List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	useCache := s.cache != nil && filter.IsEmpty()
	var version int64
	if useCache {
		cached, v, err := s.cache.GetFlights(ctx)
		switch {
		case err != nil:
			s.log.Warn("read flights cache", zap.Error(err))
			useCache = false
		case cached != nil:
			return cached, nil
		default:
			version = v
		}
	}

	flights, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if useCache {
		if err := s.cache.SetFlights(ctx, flights, version); err != nil {
			s.log.Warn("write flights cache", zap.Error(err))
		}
	}
	return flights, nil
}

var _ FlightUseCase = (*FlightService)(nil)
