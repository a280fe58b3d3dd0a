package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	Create(ctx context.Context, flight *domain.Flight) error
	List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	ListDepartingAfter(ctx context.Context, t time.Time) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, flight_code, departure, destination, departure_time, arrival_time, price_cents`

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	err := r.db.QueryRow(ctx, `INSERT INTO flights (flight_code, departure, destination, departure_time, arrival_time, price_cents)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`, flight.FlightCode, flight.Departure, flight.Destination, flight.DepartureTime, flight.ArrivalTime, flight.PriceCents).
		Scan(&flight.ID)
	return mapError(err)
}

func (r *PGFlightRepository) List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	query, args := buildFlightQuery(filter)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectFlights(rows)
}

func (r *PGFlightRepository) ListDepartingAfter(ctx context.Context, t time.Time) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights WHERE departure_time > $1 ORDER BY departure_time`, t)
	if err != nil {
		return nil, err
	}
	return collectFlights(rows)
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	f, err := scanFlight(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFound("Flight not found")
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// buildFlightQuery composes the listing filters with AND.
func buildFlightQuery(filter domain.FlightFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Departure != "" {
		conds = append(conds, "departure ILIKE "+arg(containsPattern(filter.Departure))+` ESCAPE '\'`)
	}
	if filter.Destination != "" {
		conds = append(conds, "destination ILIKE "+arg(containsPattern(filter.Destination))+` ESCAPE '\'`)
	}
	if filter.Date != nil {
		day := *filter.Date
		conds = append(conds, "departure_time >= "+arg(day)+" AND departure_time < "+arg(day.AddDate(0, 0, 1)))
	}

	query := `SELECT ` + flightColumns + ` FROM flights`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	return query + " ORDER BY departure_time, id", args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.FlightCode, &f.Departure, &f.Destination, &f.DepartureTime, &f.ArrivalTime, &f.PriceCents); err != nil {
		return nil, err
	}
	return &f, nil
}

func collectFlights(rows pgx.Rows) ([]domain.Flight, error) {
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

var _ FlightRepository = (*PGFlightRepository)(nil)
