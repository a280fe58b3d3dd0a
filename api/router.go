package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/Domenick1991/flightbooking/internal/service/passengers"
	"github.com/Domenick1991/flightbooking/internal/service/reports"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Dependencies struct {
	Flights    flights.FlightUseCase
	Passengers passengers.PassengerUseCase
	Booking    booking.BookingUseCase
	Reports    reports.ReportUseCase
	DB         Pinger
	Metrics    http.Handler
	Log        *zap.Logger
}

func NewRouter(deps Dependencies) (*gin.Engine, error) {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	tmpl, err := Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), Logger(log))
	r.SetHTMLTemplate(tmpl)

	v := NewValidator()

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/flights")
	})
	r.GET("/healthz", healthz(deps.DB))
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics))
	}

	NewFlightHandler(deps.Flights, v, log).Register(r.Group("/flights"))
	NewPassengerHandler(deps.Passengers, v, log).Register(r.Group("/passengers"))
	NewTicketHandler(deps.Booking, deps.Reports, v, log).Register(r.Group("/tickets"))
	NewReportHandler(deps.Reports, log).Register(r.Group("/report"))

	return r, nil
}

func healthz(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			if err := db.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
