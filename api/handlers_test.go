package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	flights    *MockFlightUseCase
	passengers *MockPassengerUseCase
	booking    *MockBookingUseCase
	reports    *MockReportUseCase
	db         *MockPinger
	router     *gin.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fixture{
		flights:    new(MockFlightUseCase),
		passengers: new(MockPassengerUseCase),
		booking:    new(MockBookingUseCase),
		reports:    new(MockReportUseCase),
		db:         new(MockPinger),
	}
	router, err := NewRouter(Dependencies{
		Flights:    f.flights,
		Passengers: f.passengers,
		Booking:    f.booking,
		Reports:    f.reports,
		DB:         f.db,
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("flight_booking_flights_created_total 0\n"))
		}),
	})
	require.NoError(t, err)
	f.router = router
	return f
}

func (f *fixture) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func validFlightForm() url.Values {
	return url.Values{
		"flight_code":    {"VN100"},
		"departure":      {"Hanoi"},
		"destination":    {"Saigon"},
		"departure_time": {"2025-01-01T10:00"},
		"arrival_time":   {"2025-01-01T12:00"},
		"price":          {"100.00"},
	}
}

func TestRootRedirectsToFlights(t *testing.T) {
	f := newFixture(t)

	w := f.get("/")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/flights", w.Header().Get("Location"))
}

func TestRequestIDHeader(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))

	w = f.get("/")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestListFlights(t *testing.T) {
	f := newFixture(t)
	date := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	f.flights.On("List", mock.Anything, domain.FlightFilter{Departure: "han", Date: &date}).Return([]domain.Flight{{
		ID:            1,
		FlightCode:    "VN100",
		Departure:     "Hanoi",
		Destination:   "Saigon",
		DepartureTime: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
		ArrivalTime:   time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		PriceCents:    10000,
	}}, nil)

	w := f.get("/flights?departure=han&date=2025-01-01")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "VN100")
	assert.Contains(t, body, "2025-01-01 10:00")
	assert.Contains(t, body, "100.00")
	assert.Contains(t, body, "/tickets/export/1")
	f.flights.AssertExpectations(t)
}

func TestListFlightsIgnoresBadDate(t *testing.T) {
	f := newFixture(t)
	f.flights.On("List", mock.Anything, domain.FlightFilter{}).Return([]domain.Flight{}, nil)

	w := f.get("/flights?date=not-a-date")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No flights found")
	f.flights.AssertExpectations(t)
}

func TestAddFlight(t *testing.T) {
	f := newFixture(t)
	f.flights.On("Create", mock.Anything, domain.FlightInput{
		FlightCode:    "VN100",
		Departure:     "Hanoi",
		Destination:   "Saigon",
		DepartureTime: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
		ArrivalTime:   time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		PriceCents:    10000,
	}).Return(&domain.Flight{ID: 1}, nil)

	w := f.postForm("/flights/add", validFlightForm())

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/flights", w.Header().Get("Location"))
	f.flights.AssertExpectations(t)
}

func TestAddFlightErrors(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(url.Values)
		serviceErr error
		wantStatus int
		wantText   string
	}{
		{
			name:       "missing field",
			mutate:     func(v url.Values) { v.Del("departure") },
			wantStatus: http.StatusUnprocessableEntity,
			wantText:   "departure is required",
		},
		{
			name:       "bad time",
			mutate:     func(v url.Values) { v.Set("arrival_time", "tomorrow") },
			wantStatus: http.StatusUnprocessableEntity,
			wantText:   "Arrival time must be in YYYY-MM-DDTHH:MM format",
		},
		{
			name:       "bad price",
			mutate:     func(v url.Values) { v.Set("price", "abc") },
			wantStatus: http.StatusUnprocessableEntity,
			wantText:   "Price must be a number",
		},
		{
			name:       "arrival before departure",
			serviceErr: domain.Constraint("Arrival time must be after departure time"),
			wantStatus: http.StatusUnprocessableEntity,
			wantText:   "Arrival time must be after departure time",
		},
		{
			name:       "duplicate code",
			serviceErr: domain.Conflict("Flight code already exists"),
			wantStatus: http.StatusConflict,
			wantText:   "Flight code already exists",
		},
		{
			name:       "unexpected",
			serviceErr: errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantText:   internalErrorMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			form := validFlightForm()
			if tt.mutate != nil {
				tt.mutate(form)
			}
			if tt.serviceErr != nil {
				f.flights.On("Create", mock.Anything, mock.Anything).Return(nil, tt.serviceErr)
			}

			w := f.postForm("/flights/add", form)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantText)
			assert.Contains(t, w.Body.String(), `value="VN100"`)
			assert.NotContains(t, w.Body.String(), "connection reset")
			if tt.serviceErr == nil {
				f.flights.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestAddPassenger(t *testing.T) {
	f := newFixture(t)
	f.passengers.On("Create", mock.Anything, domain.PassengerInput{
		FullName:   "Ann Lee",
		Email:      "ann@example.com",
		Phone:      "0123456789",
		DOB:        time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		PassportNo: "AB123456",
	}).Return(&domain.Passenger{ID: 7}, nil)

	w := f.postForm("/passengers/add", url.Values{
		"full_name":   {"Ann Lee"},
		"email":       {"ann@example.com"},
		"phone":       {"0123456789"},
		"dob":         {"1990-01-01"},
		"passport_no": {"AB123456"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/tickets/book", w.Header().Get("Location"))
	f.passengers.AssertExpectations(t)
}

func TestAddPassengerValidationError(t *testing.T) {
	f := newFixture(t)
	f.passengers.On("Create", mock.Anything, mock.Anything).Return(nil, domain.Validation("Phone must be 10-15 digits"))

	w := f.postForm("/passengers/add", url.Values{
		"full_name":   {"Ann Lee"},
		"email":       {"ann@example.com"},
		"phone":       {"12-34"},
		"dob":         {"1990-01-01"},
		"passport_no": {"AB123456"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Phone must be 10-15 digits")
	assert.Contains(t, w.Body.String(), `value="Ann Lee"`)
}

func TestAddPassengerBadDOB(t *testing.T) {
	f := newFixture(t)

	w := f.postForm("/passengers/add", url.Values{
		"full_name":   {"Ann Lee"},
		"email":       {"ann@example.com"},
		"phone":       {"0123456789"},
		"dob":         {"01/01/1990"},
		"passport_no": {"AB123456"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Date of birth must be in YYYY-MM-DD format")
	f.passengers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookTicketForm(t *testing.T) {
	f := newFixture(t)
	f.booking.On("BookingOptions", mock.Anything).Return(&booking.Options{
		Passengers: []domain.Passenger{{ID: 7, FullName: "Ann Lee", PassportNo: "AB123456"}},
		Flights:    []domain.Flight{{ID: 1, FlightCode: "VN100", Departure: "Hanoi", Destination: "Saigon"}},
	}, nil)

	w := f.get("/tickets/book")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<option value="7">Ann Lee (AB123456)</option>`)
	assert.Contains(t, w.Body.String(), "VN100")
}

func TestBookTicket(t *testing.T) {
	f := newFixture(t)
	f.booking.On("BookTicket", mock.Anything, booking.BookTicketInput{PassengerID: 7, FlightID: 1, SeatNo: "12A"}).
		Return(&domain.Ticket{ID: 3}, nil)

	w := f.postForm("/tickets/book", url.Values{"passenger_id": {"7"}, "flight_id": {"1"}, "seat_no": {"12A"}})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/tickets", w.Header().Get("Location"))
	f.booking.AssertExpectations(t)
}

func TestBookTicketRejected(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantText   string
	}{
		{"seat taken", domain.Conflict(booking.MsgSeatTaken), http.StatusConflict, booking.MsgSeatTaken},
		{"underage", domain.Policy(booking.MsgUnderage), http.StatusUnprocessableEntity, booking.MsgUnderage},
		{"past flight", domain.Policy(booking.MsgPastFlight), http.StatusUnprocessableEntity, booking.MsgPastFlight},
		{"unknown flight", domain.NotFound("Flight not found"), http.StatusNotFound, "Flight not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.booking.On("BookTicket", mock.Anything, mock.Anything).Return(nil, tt.err)
			f.booking.On("BookingOptions", mock.Anything).Return(&booking.Options{}, nil)

			w := f.postForm("/tickets/book", url.Values{"passenger_id": {"7"}, "flight_id": {"1"}, "seat_no": {"12A"}})

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantText)
			assert.Contains(t, w.Body.String(), `value="12A"`)
		})
	}
}

func TestBookTicketBadPassengerID(t *testing.T) {
	f := newFixture(t)
	f.booking.On("BookingOptions", mock.Anything).Return(&booking.Options{}, nil)

	w := f.postForm("/tickets/book", url.Values{"passenger_id": {"x"}, "flight_id": {"1"}, "seat_no": {"12A"}})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Select a passenger")
	f.booking.AssertNotCalled(t, "BookTicket", mock.Anything, mock.Anything)
}

func TestListTickets(t *testing.T) {
	f := newFixture(t)
	f.reports.On("ListTickets", mock.Anything).Return([]domain.TicketDetails{{
		Ticket:    domain.Ticket{ID: 3, SeatNo: "12A", BookedAt: time.Date(2024, 12, 20, 8, 5, 0, 0, time.UTC)},
		Passenger: domain.Passenger{FullName: "Ann Lee"},
		Flight:    domain.Flight{FlightCode: "VN100", Departure: "Hanoi", Destination: "Saigon", PriceCents: 10000},
	}}, nil)

	w := f.get("/tickets")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Ann Lee")
	assert.Contains(t, body, "Hanoi - Saigon")
	assert.Contains(t, body, "2024-12-20 08:05")
}

func TestExportTickets(t *testing.T) {
	f := newFixture(t)
	f.reports.On("ExportFlightTickets", mock.Anything, int64(1)).Return([]domain.ExportRow{{
		Passenger:  "Ann Lee",
		FlightCode: "VN100",
		Seat:       "12A",
		Price:      "100.00",
		BookedAt:   "2024-12-20 08:05",
	}}, nil)

	w := f.get("/tickets/export/1")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=tickets_1.csv", w.Header().Get("Content-Disposition"))
	assert.Equal(t, "Passenger,Flight Code,Seat,Price,Booked At\nAnn Lee,VN100,12A,100.00,2024-12-20 08:05\n", w.Body.String())
}

func TestExportTicketsUnknownFlight(t *testing.T) {
	f := newFixture(t)
	f.reports.On("ExportFlightTickets", mock.Anything, int64(99)).Return([]domain.ExportRow{}, nil)

	w := f.get("/tickets/export/99")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Passenger,Flight Code,Seat,Price,Booked At\n", w.Body.String())
}

func TestExportTicketsBadID(t *testing.T) {
	f := newFixture(t)

	w := f.get("/tickets/export/abc")

	assert.Equal(t, http.StatusNotFound, w.Code)
	f.reports.AssertNotCalled(t, "ExportFlightTickets", mock.Anything, mock.Anything)
}

func TestPopularRoutes(t *testing.T) {
	f := newFixture(t)
	f.reports.On("PopularRoutes", mock.Anything).Return([]domain.RouteStats{
		{Departure: "Hanoi", Destination: "Saigon", TicketCount: 2, TotalRevenueCents: 20000},
	}, nil)

	w := f.get("/report/popular-routes")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<td>2</td>")
	assert.Contains(t, body, "200.00")
}

func TestHealthz(t *testing.T) {
	f := newFixture(t)
	f.db.On("Ping", mock.Anything).Return(nil).Once()
	f.db.On("Ping", mock.Anything).Return(errors.New("down")).Once()

	assert.Equal(t, http.StatusOK, f.get("/healthz").Code)
	assert.Equal(t, http.StatusServiceUnavailable, f.get("/healthz").Code)
}

func TestMetricsRoute(t *testing.T) {
	f := newFixture(t)

	w := f.get("/metrics")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "flight_booking_flights_created_total")
}
