package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	FlightCodeMinLen = 3
	FlightCodeMaxLen = 10
	locationMaxLen   = 50
)

type Flight struct {
	ID            int64
	FlightCode    string
	Departure     string
	Destination   string
	DepartureTime time.Time
	ArrivalTime   time.Time
	PriceCents    int64
}

func (f Flight) Price() string {
	return FormatPrice(f.PriceCents)
}

type FlightInput struct {
	FlightCode    string
	Departure     string
	Destination   string
	DepartureTime time.Time
	ArrivalTime   time.Time
	PriceCents    int64
}

// NewFlight validates the input and returns a flight ready to be stored.
func NewFlight(in FlightInput) (*Flight, error) {
	code := in.FlightCode
	if n := utf8.RuneCountInString(code); n < FlightCodeMinLen || n > FlightCodeMaxLen {
		return nil, Validation("Flight code must be 3-10 characters")
	}
	departure := strings.TrimSpace(in.Departure)
	if departure == "" || utf8.RuneCountInString(departure) > locationMaxLen {
		return nil, Validation("Departure must be 1-50 characters")
	}
	destination := strings.TrimSpace(in.Destination)
	if destination == "" || utf8.RuneCountInString(destination) > locationMaxLen {
		return nil, Validation("Destination must be 1-50 characters")
	}
	if in.PriceCents < 0 {
		return nil, Validation("Price must not be negative")
	}
	if in.PriceCents > MaxPriceCents {
		return nil, Validation(priceTooLargeMessage)
	}
	if !in.ArrivalTime.After(in.DepartureTime) {
		return nil, Constraint("Arrival time must be after departure time")
	}

	return &Flight{
		FlightCode:    code,
		Departure:     departure,
		Destination:   destination,
		DepartureTime: in.DepartureTime,
		ArrivalTime:   in.ArrivalTime,
		PriceCents:    in.PriceCents,
	}, nil
}
