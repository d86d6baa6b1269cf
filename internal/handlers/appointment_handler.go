package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/scheduler"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	ucRating "github.com/BruksfildServices01/barber-booking/internal/usecase/rating"
)

// ======================================================
// HANDLER
// ======================================================

// AppointmentHandler serves the customer's own appointments.
type AppointmentHandler struct {
	book       *ucAppointment.BookAppointment
	get        *ucAppointment.GetAppointment
	list       *ucAppointment.ListForCustomer
	cancel     *ucAppointment.CancelAppointment
	reschedule *ucAppointment.RescheduleAppointment
	rate       *ucRating.SubmitRating
	sched      *scheduler.Scheduler
}

func NewAppointmentHandler(
	book *ucAppointment.BookAppointment,
	get *ucAppointment.GetAppointment,
	list *ucAppointment.ListForCustomer,
	cancel *ucAppointment.CancelAppointment,
	reschedule *ucAppointment.RescheduleAppointment,
	rate *ucRating.SubmitRating,
	sched *scheduler.Scheduler,
) *AppointmentHandler {
	return &AppointmentHandler{
		book:       book,
		get:        get,
		list:       list,
		cancel:     cancel,
		reschedule: reschedule,
		rate:       rate,
		sched:      sched,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ServiceID uint   `json:"service_id" binding:"required"`
	BarberID  uint   `json:"barber_id" binding:"required"`
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	Time      string `json:"time" binding:"required"` // HH:mm
	Notes     string `json:"notes" binding:"max=500"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type RescheduleAppointmentRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

type RateAppointmentRequest struct {
	Rating int    `json:"rating" binding:"required"`
	Review string `json:"review"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}

	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), ucAppointment.BookAppointmentInput{
		Caller:    me,
		ServiceID: req.ServiceID,
		BarberID:  req.BarberID,
		Date:      req.Date,
		Time:      req.Time,
		Notes:     req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.NewAppointment(ap, h.sched.Now()))
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))

	apps, err := h.list.Execute(c.Request.Context(), ucAppointment.ListForCustomerInput{
		Caller:       me,
		UpcomingOnly: c.Query("upcoming") == "true",
		Limit:        limit,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.NewAppointments(apps, h.sched.Now()))
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), me, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewAppointment(ap, h.sched.Now()))
}

// ======================================================
// CHANGES
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req CancelAppointmentRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), ucAppointment.CancelAppointmentInput{
		Caller:        me,
		AppointmentID: id,
		Reason:        req.Reason,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewAppointment(ap, h.sched.Now()))
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req RescheduleAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), ucAppointment.RescheduleAppointmentInput{
		Caller:        me,
		AppointmentID: id,
		Date:          req.Date,
		Time:          req.Time,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewAppointment(ap, h.sched.Now()))
}

func (h *AppointmentHandler) Rate(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req RateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	r, err := h.rate.Execute(c.Request.Context(), ucRating.SubmitRatingInput{
		Caller:        me,
		AppointmentID: id,
		Rating:        req.Rating,
		Review:        req.Review,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.NewRating(*r))
}
