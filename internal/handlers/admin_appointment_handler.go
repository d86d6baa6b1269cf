package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/scheduler"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// AdminAppointmentHandler is the staff view over every barber's bookings.
type AdminAppointmentHandler struct {
	byDate       *ucAppointment.ListAppointmentsByDate
	byMonth      *ucAppointment.ListAppointmentsByMonth
	changeStatus *ucAppointment.ChangeStatus
	sched        *scheduler.Scheduler
}

func NewAdminAppointmentHandler(
	byDate *ucAppointment.ListAppointmentsByDate,
	byMonth *ucAppointment.ListAppointmentsByMonth,
	changeStatus *ucAppointment.ChangeStatus,
	sched *scheduler.Scheduler,
) *AdminAppointmentHandler {
	return &AdminAppointmentHandler{
		byDate:       byDate,
		byMonth:      byMonth,
		changeStatus: changeStatus,
		sched:        sched,
	}
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason" binding:"max=500"`
}

// List answers ?date=YYYY-MM-DD[&status=] or ?month=YYYY-MM.
func (h *AdminAppointmentHandler) List(c *gin.Context) {
	var (
		out []dto.AppointmentListDTO
		err error
	)

	if month := c.Query("month"); month != "" {
		out, err = h.byMonth.Execute(c.Request.Context(), month)
	} else {
		out, err = h.byDate.Execute(c.Request.Context(), c.Query("date"), c.Query("status"))
	}
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *AdminAppointmentHandler) ChangeStatus(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req ChangeStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.changeStatus.Execute(c.Request.Context(), ucAppointment.ChangeStatusInput{
		Caller:        me,
		AppointmentID: id,
		Status:        req.Status,
		Reason:        req.Reason,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewAppointment(ap, h.sched.Now()))
}
