package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the booking service counters.
type Metrics struct {
	FlightsCreated    prometheus.Counter
	PassengersCreated prometheus.Counter
	TicketsBooked     prometheus.Counter
	BookingRejections *prometheus.CounterVec
}

// New creates the counters and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FlightsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "flight_booking_flights_created_total",
			Help: "Total number of flights created",
		}),
		PassengersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "flight_booking_passengers_created_total",
			Help: "Total number of passengers registered",
		}),
		TicketsBooked: factory.NewCounter(prometheus.CounterOpts{
			Name: "flight_booking_tickets_booked_total",
			Help: "Total number of tickets booked",
		}),
		BookingRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "flight_booking_booking_rejections_total",
			Help: "Booking attempts rejected, by error kind",
		}, []string{"reason"}),
	}
}

func (m *Metrics) IncFlightsCreated() {
	if m != nil {
		m.FlightsCreated.Inc()
	}
}

func (m *Metrics) IncPassengersCreated() {
	if m != nil {
		m.PassengersCreated.Inc()
	}
}

func (m *Metrics) IncTicketsBooked() {
	if m != nil {
		m.TicketsBooked.Inc()
	}
}

func (m *Metrics) IncBookingRejected(reason string) {
	if m != nil {
		m.BookingRejections.WithLabelValues(reason).Inc()
	}
}
