package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/service/passengers"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type PassengerHandler struct {
	service   passengers.PassengerUseCase
	validator *validator.Validate
	log       *zap.Logger
}

type passengerForm struct {
	FullName   string `form:"full_name" validate:"required"`
	Email      string `form:"email" validate:"required"`
	Phone      string `form:"phone" validate:"required"`
	DOB        string `form:"dob" validate:"required"`
	PassportNo string `form:"passport_no" validate:"required"`
}

type addPassengerPage struct {
	page
	Form passengerForm
}

func NewPassengerHandler(service passengers.PassengerUseCase, v *validator.Validate, log *zap.Logger) *PassengerHandler {
	return &PassengerHandler{service: service, validator: v, log: log}
}

func (h *PassengerHandler) Register(router *gin.RouterGroup) {
	router.GET("/add", h.addForm)
	router.POST("/add", h.add)
}

func (h *PassengerHandler) addForm(c *gin.Context) {
	c.HTML(http.StatusOK, "add_passenger.html", addPassengerPage{page: page{Title: "Add passenger"}})
}

func (h *PassengerHandler) add(c *gin.Context) {
	var form passengerForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderAddError(c, form, domain.Validation("Invalid form submission"))
		return
	}
	if err := validateForm(h.validator, form); err != nil {
		h.renderAddError(c, form, err)
		return
	}

	dob, err := time.Parse(domain.DateLayout, strings.TrimSpace(form.DOB))
	if err != nil {
		h.renderAddError(c, form, domain.Validation("Date of birth must be in YYYY-MM-DD format"))
		return
	}

	_, err = h.service.Create(c.Request.Context(), domain.PassengerInput{
		FullName:   form.FullName,
		Email:      form.Email,
		Phone:      form.Phone,
		DOB:        dob,
		PassportNo: form.PassportNo,
	})
	if err != nil {
		h.renderAddError(c, form, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/tickets/book")
}

func (h *PassengerHandler) renderAddError(c *gin.Context, form passengerForm, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Error("add passenger", zap.String("request_id", GetRequestID(c)), zap.Error(err))
	}
	c.HTML(status, "add_passenger.html", addPassengerPage{page: page{Title: "Add passenger", Error: messageFor(err)}, Form: form})
}
