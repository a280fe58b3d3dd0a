package api

import (
	"encoding/csv"
	"io"

	"github.com/Domenick1991/flightbooking/internal/domain"
)

var exportHeader = []string{"Passenger", "Flight Code", "Seat", "Price", "Booked At"}

func writeTicketsCSV(w io.Writer, rows []domain.ExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write([]string{row.Passenger, row.FlightCode, row.Seat, row.Price, row.BookedAt}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
