package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/Domenick1991/flightbooking/internal/service/reports"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type TicketHandler struct {
	booking   booking.BookingUseCase
	reports   reports.ReportUseCase
	validator *validator.Validate
	log       *zap.Logger
}

type bookTicketForm struct {
	PassengerID string `form:"passenger_id" validate:"required"`
	FlightID    string `form:"flight_id" validate:"required"`
	SeatNo      string `form:"seat_no" validate:"required"`
}

type bookTicketPage struct {
	page
	Passengers []domain.Passenger
	Flights    []domain.Flight
	Form       bookTicketForm
}

type ticketsPage struct {
	page
	Tickets []domain.TicketDetails
}

func NewTicketHandler(bookingSvc booking.BookingUseCase, reportSvc reports.ReportUseCase, v *validator.Validate, log *zap.Logger) *TicketHandler {
	return &TicketHandler{booking: bookingSvc, reports: reportSvc, validator: v, log: log}
}

func (h *TicketHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/book", h.bookForm)
	router.POST("/book", h.book)
	router.GET("/export/:flight_id", h.export)
}

func (h *TicketHandler) list(c *gin.Context) {
	tickets, err := h.reports.ListTickets(c.Request.Context())
	if err != nil {
		h.log.Error("list tickets", zap.String("request_id", GetRequestID(c)), zap.Error(err))
		c.HTML(http.StatusInternalServerError, "tickets.html", ticketsPage{page: page{Title: "Tickets", Error: internalErrorMessage}})
		return
	}
	c.HTML(http.StatusOK, "tickets.html", ticketsPage{page: page{Title: "Tickets"}, Tickets: tickets})
}

func (h *TicketHandler) bookForm(c *gin.Context) {
	h.renderBook(c, http.StatusOK, bookTicketForm{}, "")
}

func (h *TicketHandler) book(c *gin.Context) {
	var form bookTicketForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderBookError(c, form, domain.Validation("Invalid form submission"))
		return
	}

	input, err := form.toInput(h.validator)
	if err != nil {
		h.renderBookError(c, form, err)
		return
	}

	if _, err := h.booking.BookTicket(c.Request.Context(), input); err != nil {
		h.renderBookError(c, form, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/tickets")
}

func (h *TicketHandler) renderBookError(c *gin.Context, form bookTicketForm, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Error("book ticket", zap.String("request_id", GetRequestID(c)), zap.Error(err))
	}
	h.renderBook(c, status, form, messageFor(err))
}

// renderBook shows the booking form with the current passengers and
// upcoming flights. A failure to load them replaces the page error.
func (h *TicketHandler) renderBook(c *gin.Context, status int, form bookTicketForm, message string) {
	view := bookTicketPage{page: page{Title: "Book ticket", Error: message}, Form: form}

	opts, err := h.booking.BookingOptions(c.Request.Context())
	if err != nil {
		h.log.Error("load booking options", zap.String("request_id", GetRequestID(c)), zap.Error(err))
		view.Error = internalErrorMessage
		c.HTML(http.StatusInternalServerError, "book_ticket.html", view)
		return
	}
	view.Passengers = opts.Passengers
	view.Flights = opts.Flights
	c.HTML(status, "book_ticket.html", view)
}

func (h *TicketHandler) export(c *gin.Context) {
	flightID, err := strconv.ParseInt(c.Param("flight_id"), 10, 64)
	if err != nil || flightID <= 0 {
		c.String(http.StatusNotFound, "flight not found")
		return
	}

	rows, err := h.reports.ExportFlightTickets(c.Request.Context(), flightID)
	if err != nil {
		h.log.Error("export tickets", zap.String("request_id", GetRequestID(c)), zap.Int64("flight_id", flightID), zap.Error(err))
		c.String(http.StatusInternalServerError, internalErrorMessage)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=tickets_%d.csv", flightID))
	c.Status(http.StatusOK)
	if err := writeTicketsCSV(c.Writer, rows); err != nil {
		h.log.Error("write tickets csv", zap.String("request_id", GetRequestID(c)), zap.Error(err))
	}
}

func (f bookTicketForm) toInput(v *validator.Validate) (booking.BookTicketInput, error) {
	if err := validateForm(v, f); err != nil {
		return booking.BookTicketInput{}, err
	}
	passengerID, err := strconv.ParseInt(f.PassengerID, 10, 64)
	if err != nil {
		return booking.BookTicketInput{}, domain.Validation("Select a passenger")
	}
	flightID, err := strconv.ParseInt(f.FlightID, 10, 64)
	if err != nil {
		return booking.BookTicketInput{}, domain.Validation("Select a flight")
	}
	return booking.BookTicketInput{PassengerID: passengerID, FlightID: flightID, SeatNo: f.SeatNo}, nil
}
