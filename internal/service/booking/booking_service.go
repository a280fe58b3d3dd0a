package booking

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/metrics"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	MsgUnderage   = "Passenger must be at least 2 years old"
	MsgSeatTaken  = "Seat already taken"
	MsgPastFlight = "Cannot book past flights"
)

type BookingUseCase interface {
	BookTicket(ctx context.Context, input BookTicketInput) (*domain.Ticket, error)
	BookingOptions(ctx context.Context) (*Options, error)
}

// SeatLocker serialises concurrent bookings of one seat.
type SeatLocker interface {
	AcquireSeatLock(ctx context.Context, flightID int64, seatNo string, ttl time.Duration) (token string, ok bool, err error)
	ReleaseSeatLock(ctx context.Context, flightID int64, seatNo, token string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value any) error
}

type BookTicketInput struct {
	PassengerID int64
	FlightID    int64
	SeatNo      string
}

// Options are the choices offered on the booking form.
type Options struct {
	Passengers []domain.Passenger
	Flights    []domain.Flight
}

type BookingService struct {
	passengers  repository.PassengerRepository
	flights     repository.FlightRepository
	tickets     repository.TicketRepository
	locker      SeatLocker
	producer    Producer
	ticketTopic string
	lockTTL     time.Duration
	now         func() time.Time
	metrics     *metrics.Metrics
	log         *zap.Logger
}

type BookingServiceOption func(*BookingService)

func WithSeatLocker(locker SeatLocker, ttl time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		s.locker = locker
		s.lockTTL = ttl
	}
}

func WithProducer(producer Producer, topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.ticketTopic = topic
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func WithMetrics(m *metrics.Metrics) BookingServiceOption {
	return func(s *BookingService) {
		s.metrics = m
	}
}

func WithLogger(log *zap.Logger) BookingServiceOption {
	return func(s *BookingService) {
		s.log = log
	}
}

func NewBookingService(
	passengers repository.PassengerRepository,
	flights repository.FlightRepository,
	tickets repository.TicketRepository,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		passengers: passengers,
		flights:    flights,
		tickets:    tickets,
		now:        func() time.Time { return time.Now().UTC() },
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// BookTicket runs the booking rules in order and stores the ticket when all
// of them pass. The first failing rule decides the error.
func (s *BookingService) BookTicket(ctx context.Context, input BookTicketInput) (*domain.Ticket, error) {
	ticket, passenger, flight, err := s.book(ctx, input)
	if err != nil {
		s.metrics.IncBookingRejected(domain.KindName(err))
		s.log.Info("booking rejected",
			zap.Int64("passenger_id", input.PassengerID),
			zap.Int64("flight_id", input.FlightID),
			zap.String("seat_no", input.SeatNo),
			zap.Error(err),
		)
		return nil, err
	}

	s.metrics.IncTicketsBooked()
	s.log.Info("ticket booked", zap.Int64("ticket_id", ticket.ID), zap.Int64("flight_id", ticket.FlightID), zap.String("seat_no", ticket.SeatNo))
	if err := s.publish(ctx, ticket, passenger, flight); err != nil {
		s.log.Warn("publish ticket event", zap.Int64("ticket_id", ticket.ID), zap.Error(err))
	}
	return ticket, nil
}

func (s *BookingService) book(ctx context.Context, input BookTicketInput) (*domain.Ticket, *domain.Passenger, *domain.Flight, error) {
	seatNo, err := domain.NormalizeSeat(input.SeatNo)
	if err != nil {
		return nil, nil, nil, err
	}

	passenger, err := s.passengers.GetByID(ctx, input.PassengerID)
	if err != nil {
		return nil, nil, nil, err
	}

	now := s.now()
	if passenger.AgeInDays(now) < domain.MinimumAgeDays {
		return nil, nil, nil, domain.Policy(MsgUnderage)
	}

	release, err := s.lockSeat(ctx, input.FlightID, seatNo)
	if err != nil {
		return nil, nil, nil, err
	}
	defer release()

	taken, err := s.tickets.SeatTaken(ctx, input.FlightID, seatNo)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("check seat: %w", err)
	}
	if taken {
		return nil, nil, nil, domain.Conflict(MsgSeatTaken)
	}

	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, nil, nil, err
	}
	if flight.DepartureTime.Before(now) {
		return nil, nil, nil, domain.Policy(MsgPastFlight)
	}

	ticket := &domain.Ticket{
		PassengerID: passenger.ID,
		FlightID:    flight.ID,
		SeatNo:      seatNo,
		BookedAt:    now,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, nil, nil, fmt.Errorf("create ticket: %w", err)
	}
	return ticket, passenger, flight, nil
}

// lockSeat takes the seat lock when a locker is configured. A lock held by
// another booking is reported as the seat being taken; a lock backend
// failure only loses the serialisation, the unique index still guards the
// insert. The lock is released even when ctx was canceled mid-booking.
func (s *BookingService) lockSeat(ctx context.Context, flightID int64, seatNo string) (func(), error) {
	noop := func() {}
	if s.locker == nil {
		return noop, nil
	}

	token, ok, err := s.locker.AcquireSeatLock(ctx, flightID, seatNo, s.lockTTL)
	if err != nil {
		s.log.Warn("acquire seat lock", zap.Int64("flight_id", flightID), zap.String("seat_no", seatNo), zap.Error(err))
		return noop, nil
	}
	if !ok {
		return nil, domain.Conflict(MsgSeatTaken)
	}
	return func() {
		if err := s.locker.ReleaseSeatLock(context.WithoutCancel(ctx), flightID, seatNo, token); err != nil {
			s.log.Warn("release seat lock", zap.Int64("flight_id", flightID), zap.String("seat_no", seatNo), zap.Error(err))
		}
	}, nil
}

func (s *BookingService) publish(ctx context.Context, ticket *domain.Ticket, passenger *domain.Passenger, flight *domain.Flight) error {
	if s.producer == nil || s.ticketTopic == "" {
		return nil
	}
	event := kafka.TicketEvent{
		EventID:       uuid.NewString(),
		Type:          kafka.EventTicketBooked,
		TicketID:      ticket.ID,
		PassengerID:   passenger.ID,
		PassengerName: passenger.FullName,
		Email:         passenger.Email,
		FlightID:      flight.ID,
		FlightCode:    flight.FlightCode,
		SeatNo:        ticket.SeatNo,
		DepartureTime: flight.DepartureTime,
		BookedAt:      ticket.BookedAt,
	}
	return s.producer.Publish(ctx, s.ticketTopic, strconv.FormatInt(ticket.ID, 10), event)
}

// BookingOptions lists every passenger and the flights that have not
// departed yet.
func (s *BookingService) BookingOptions(ctx context.Context) (*Options, error) {
	passengers, err := s.passengers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list passengers: %w", err)
	}
	flights, err := s.flights.ListDepartingAfter(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("list upcoming flights: %w", err)
	}
	return &Options{Passengers: passengers, Flights: flights}, nil
}

var _ BookingUseCase = (*BookingService)(nil)
