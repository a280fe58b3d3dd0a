package repository

import (
	"errors"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
	pgForeignKey      = "23503"
)

var constraintMessages = map[string]string{
	"flights_flight_code_key":       "Flight code already exists",
	"check_arrival_after_departure": "Arrival time must be after departure time",
	"check_price_non_negative":      "Price must not be negative",
	"passengers_email_key":          "Email already registered",
	"passengers_passport_no_key":    "Passport number already registered",
	"unique_passenger_flight":       "Passenger already holds a ticket on this flight",
	"tickets_flight_seat_key":       "Seat already taken",
	"tickets_passenger_id_fkey":     "Passenger not found",
	"tickets_flight_id_fkey":        "Flight not found",
}

// mapError turns integrity violations into domain errors and passes every
// other error through unchanged.
func mapError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	msg, ok := constraintMessages[pgErr.ConstraintName]
	if !ok {
		msg = pgErr.Message
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		return domain.Conflict(msg)
	case pgCheckViolation:
		return domain.Constraint(msg)
	case pgForeignKey:
		return domain.NotFound(msg)
	}
	return err
}
