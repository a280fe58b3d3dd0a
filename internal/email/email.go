package email

import (
	"context"

	"github.com/Domenick1991/flightbooking/internal/kafka"
	"go.uber.org/zap"
)

// Sender delivers booking confirmations. Delivery is a structured log line
// until an SMTP relay is configured.
type Sender struct {
	log *zap.Logger
}

func NewSender(log *zap.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.TicketEvent) error {
	if event.Type != kafka.EventTicketBooked || event.Email == "" {
		return nil
	}
	s.log.Info("send booking confirmation",
		zap.String("to", event.Email),
		zap.String("passenger", event.PassengerName),
		zap.String("flight_code", event.FlightCode),
		zap.String("seat_no", event.SeatNo),
		zap.Time("departure_time", event.DepartureTime),
		zap.Int64("ticket_id", event.TicketID),
	)
	return nil
}
