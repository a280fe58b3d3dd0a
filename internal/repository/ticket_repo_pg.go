package repository

import (
	"context"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	SeatTaken(ctx context.Context, flightID int64, seatNo string) (bool, error)
	ListDetails(ctx context.Context) ([]domain.TicketDetails, error)
	ListDetailsByFlight(ctx context.Context, flightID int64) ([]domain.TicketDetails, error)
}

type PGTicketRepository struct {
	db *pgxpool.Pool
}

func NewTicketRepository(db *pgxpool.Pool) TicketRepository {
	return &PGTicketRepository{db: db}
}

// Create inserts the ticket inside a transaction; unique and foreign key
// violations come back as domain errors and the transaction is rolled back.
func (r *PGTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `INSERT INTO tickets (passenger_id, flight_id, seat_no, booked_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`, ticket.PassengerID, ticket.FlightID, ticket.SeatNo, ticket.BookedAt).
		Scan(&ticket.ID); err != nil {
		return mapError(err)
	}

	return tx.Commit(ctx)
}

func (r *PGTicketRepository) SeatTaken(ctx context.Context, flightID int64, seatNo string) (bool, error) {
	var taken bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tickets WHERE flight_id=$1 AND seat_no=$2)`, flightID, seatNo).Scan(&taken)
	return taken, err
}

const ticketDetailsQuery = `SELECT t.id, t.passenger_id, t.flight_id, t.seat_no, t.booked_at,
		p.id, p.full_name, p.email, p.phone, p.dob, p.passport_no,
		f.id, f.flight_code, f.departure, f.destination, f.departure_time, f.arrival_time, f.price_cents
	FROM tickets t
	JOIN passengers p ON p.id = t.passenger_id
	JOIN flights f ON f.id = t.flight_id`

func (r *PGTicketRepository) ListDetails(ctx context.Context) ([]domain.TicketDetails, error) {
	rows, err := r.db.Query(ctx, ticketDetailsQuery+` ORDER BY t.id`)
	if err != nil {
		return nil, err
	}
	return collectTicketDetails(rows)
}

func (r *PGTicketRepository) ListDetailsByFlight(ctx context.Context, flightID int64) ([]domain.TicketDetails, error) {
	rows, err := r.db.Query(ctx, ticketDetailsQuery+` WHERE t.flight_id=$1 ORDER BY t.id`, flightID)
	if err != nil {
		return nil, err
	}
	return collectTicketDetails(rows)
}

func collectTicketDetails(rows pgx.Rows) ([]domain.TicketDetails, error) {
	defer rows.Close()

	tickets := make([]domain.TicketDetails, 0)
	for rows.Next() {
		var d domain.TicketDetails
		if err := rows.Scan(
			&d.Ticket.ID, &d.Ticket.PassengerID, &d.Ticket.FlightID, &d.Ticket.SeatNo, &d.Ticket.BookedAt,
			&d.Passenger.ID, &d.Passenger.FullName, &d.Passenger.Email, &d.Passenger.Phone, &d.Passenger.DOB, &d.Passenger.PassportNo,
			&d.Flight.ID, &d.Flight.FlightCode, &d.Flight.Departure, &d.Flight.Destination, &d.Flight.DepartureTime, &d.Flight.ArrivalTime, &d.Flight.PriceCents,
		); err != nil {
			return nil, err
		}
		tickets = append(tickets, d)
	}
	return tickets, rows.Err()
}

var _ TicketRepository = (*PGTicketRepository)(nil)
