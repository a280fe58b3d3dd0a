package domain

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// FlightFilter narrows a flight listing. Empty fields do not filter.
type FlightFilter struct {
	Departure   string
	Destination string
	Date        *time.Time
}

func (f FlightFilter) IsEmpty() bool {
	return f.Departure == "" && f.Destination == "" && f.Date == nil
}

// ParseFlightFilter builds a filter from raw query values. A date that does
// not parse as YYYY-MM-DD is dropped rather than reported.
func ParseFlightFilter(departure, destination, date string) FlightFilter {
	f := FlightFilter{
		Departure:   strings.TrimSpace(departure),
		Destination: strings.TrimSpace(destination),
	}
	if date = strings.TrimSpace(date); date != "" {
		if d, err := time.Parse(DateLayout, date); err == nil {
			f.Date = &d
		}
	}
	return f
}
