package reports

import (
	"context"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/repository"
)

type ReportUseCase interface {
	ListTickets(ctx context.Context) ([]domain.TicketDetails, error)
	ExportFlightTickets(ctx context.Context, flightID int64) ([]domain.ExportRow, error)
	PopularRoutes(ctx context.Context) ([]domain.RouteStats, error)
}

type ReportService struct {
	tickets repository.TicketRepository
}

func NewReportService(tickets repository.TicketRepository) *ReportService {
	return &ReportService{tickets: tickets}
}

func (s *ReportService) ListTickets(ctx context.Context) ([]domain.TicketDetails, error) {
	return s.tickets.ListDetails(ctx)
}

// ExportFlightTickets returns one row per ticket on the flight. An unknown
// flight yields no rows.
func (s *ReportService) ExportFlightTickets(ctx context.Context, flightID int64) ([]domain.ExportRow, error) {
	tickets, err := s.tickets.ListDetailsByFlight(ctx, flightID)
	if err != nil {
		return nil, err
	}
	rows := make([]domain.ExportRow, 0, len(tickets))
	for _, t := range tickets {
		rows = append(rows, domain.NewExportRow(t))
	}
	return rows, nil
}

func (s *ReportService) PopularRoutes(ctx context.Context) ([]domain.RouteStats, error) {
	tickets, err := s.tickets.ListDetails(ctx)
	if err != nil {
		return nil, err
	}
	return domain.PopularRoutes(tickets), nil
}

var _ ReportUseCase = (*ReportService)(nil)
