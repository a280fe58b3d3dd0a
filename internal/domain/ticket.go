package domain

import (
	"strings"
	"time"
)

const (
	seatNoMaxLen = 5

	// BookedAtLayout is how booking timestamps appear in exports.
	BookedAtLayout = "2006-01-02 15:04"
)

type Ticket struct {
	ID          int64
	PassengerID int64
	FlightID    int64
	SeatNo      string
	BookedAt    time.Time
}

// TicketDetails is a ticket joined with its passenger and flight.
type TicketDetails struct {
	Ticket    Ticket
	Passenger Passenger
	Flight    Flight
}

// NormalizeSeat trims the seat number and checks it fits the seat column.
func NormalizeSeat(seat string) (string, error) {
	seat = strings.TrimSpace(seat)
	if seat == "" || len(seat) > seatNoMaxLen {
		return "", Validation("Seat number must be 1-5 characters")
	}
	return seat, nil
}

// ExportRow is one line of a per-flight ticket export.
type ExportRow struct {
	Passenger  string
	FlightCode string
	Seat       string
	Price      string
	BookedAt   string
}

func NewExportRow(t TicketDetails) ExportRow {
	return ExportRow{
		Passenger:  t.Passenger.FullName,
		FlightCode: t.Flight.FlightCode,
		Seat:       t.Ticket.SeatNo,
		Price:      t.Flight.Price(),
		BookedAt:   t.Ticket.BookedAt.Format(BookedAtLayout),
	}
}
