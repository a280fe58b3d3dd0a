package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type FlightHandler struct {
	service   flights.FlightUseCase
	validator *validator.Validate
	log       *zap.Logger
}

type flightForm struct {
	FlightCode    string `form:"flight_code" validate:"required"`
	Departure     string `form:"departure" validate:"required"`
	Destination   string `form:"destination" validate:"required"`
	DepartureTime string `form:"departure_time" validate:"required"`
	ArrivalTime   string `form:"arrival_time" validate:"required"`
	Price         string `form:"price" validate:"required"`
}

type flightsPage struct {
	page
	Departure   string
	Destination string
	Date        string
	Flights     []domain.Flight
}

type addFlightPage struct {
	page
	Form flightForm
}

func NewFlightHandler(service flights.FlightUseCase, v *validator.Validate, log *zap.Logger) *FlightHandler {
	return &FlightHandler{service: service, validator: v, log: log}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/add", h.addForm)
	router.POST("/add", h.add)
}

func (h *FlightHandler) list(c *gin.Context) {
	departure, destination, date := c.Query("departure"), c.Query("destination"), c.Query("date")

	list, err := h.service.List(c.Request.Context(), domain.ParseFlightFilter(departure, destination, date))
	if err != nil {
		h.log.Error("list flights", zap.String("request_id", GetRequestID(c)), zap.Error(err))
		c.HTML(http.StatusInternalServerError, "flights.html", flightsPage{page: page{Title: "Flights", Error: internalErrorMessage}})
		return
	}

	c.HTML(http.StatusOK, "flights.html", flightsPage{
		page:        page{Title: "Flights"},
		Departure:   departure,
		Destination: destination,
		Date:        date,
		Flights:     list,
	})
}

func (h *FlightHandler) addForm(c *gin.Context) {
	c.HTML(http.StatusOK, "add_flight.html", addFlightPage{page: page{Title: "Add flight"}})
}

func (h *FlightHandler) add(c *gin.Context) {
	var form flightForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderAddError(c, form, domain.Validation("Invalid form submission"))
		return
	}

	input, err := form.toInput(h.validator)
	if err != nil {
		h.renderAddError(c, form, err)
		return
	}

	if _, err := h.service.Create(c.Request.Context(), input); err != nil {
		h.renderAddError(c, form, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/flights")
}

func (h *FlightHandler) renderAddError(c *gin.Context, form flightForm, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Error("add flight", zap.String("request_id", GetRequestID(c)), zap.Error(err))
	}
	c.HTML(status, "add_flight.html", addFlightPage{page: page{Title: "Add flight", Error: messageFor(err)}, Form: form})
}

func (f flightForm) toInput(v *validator.Validate) (domain.FlightInput, error) {
	if err := validateForm(v, f); err != nil {
		return domain.FlightInput{}, err
	}
	departureTime, err := parseFormDateTime(f.DepartureTime, "Departure time")
	if err != nil {
		return domain.FlightInput{}, err
	}
	arrivalTime, err := parseFormDateTime(f.ArrivalTime, "Arrival time")
	if err != nil {
		return domain.FlightInput{}, err
	}
	price, err := domain.ParsePrice(f.Price)
	if err != nil {
		return domain.FlightInput{}, err
	}

	return domain.FlightInput{
		FlightCode:    f.FlightCode,
		Departure:     f.Departure,
		Destination:   f.Destination,
		DepartureTime: departureTime,
		ArrivalTime:   arrivalTime,
		PriceCents:    price,
	}, nil
}

func parseFormDateTime(raw, field string) (time.Time, error) {
	t, err := time.Parse(formDateTimeLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, domain.Validation(field + " must be in YYYY-MM-DDTHH:MM format")
	}
	return t, nil
}
