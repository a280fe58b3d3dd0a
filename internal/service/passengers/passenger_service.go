package passengers

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/metrics"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"go.uber.org/zap"
)

type PassengerUseCase interface {
	Create(ctx context.Context, input domain.PassengerInput) (*domain.Passenger, error)
}

type PassengerService struct {
	repo    repository.PassengerRepository
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewPassengerService(repo repository.PassengerRepository, m *metrics.Metrics, log *zap.Logger) *PassengerService {
	return &PassengerService{repo: repo, metrics: m, log: log}
}

func (s *PassengerService) Create(ctx context.Context, input domain.PassengerInput) (*domain.Passenger, error) {
	passenger, err := domain.NewPassenger(input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, passenger); err != nil {
		return nil, fmt.Errorf("create passenger: %w", err)
	}

	s.metrics.IncPassengersCreated()
	s.log.Info("passenger created", zap.Int64("passenger_id", passenger.ID))
	return passenger, nil
}

var _ PassengerUseCase = (*PassengerService)(nil)
