package dto

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ServiceRefDTO struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
}

type BarberRefDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type AppointmentDTO struct {
	ID                 uint          `json:"id"`
	StartTime          time.Time     `json:"start_time"`
	EndTime            time.Time     `json:"end_time"`
	Status             string        `json:"status"`
	TotalPrice         float64       `json:"total_price"`
	Notes              string        `json:"notes,omitempty"`
	CancellationReason string        `json:"cancellation_reason,omitempty"`
	Service            ServiceRefDTO `json:"service"`
	Barber             BarberRefDTO  `json:"barber"`
	CanCancel          bool          `json:"can_cancel"`
	Rating             *RatingDTO    `json:"rating,omitempty"`
}

// NewAppointment maps ap for its owner; now decides can_cancel.
func NewAppointment(ap *models.Appointment, now time.Time) AppointmentDTO {
	out := AppointmentDTO{
		ID:                 ap.ID,
		StartTime:          ap.AppointmentStart,
		EndTime:            ap.AppointmentEnd,
		Status:             ap.Status,
		TotalPrice:         ap.TotalPrice,
		Notes:              ap.Notes,
		CancellationReason: ap.CancellationReason,
		Service: ServiceRefDTO{
			ID:              ap.ServiceID,
			Name:            ap.Service.Name,
			DurationMinutes: ap.Service.DurationMinutes,
			Price:           ap.Service.Price,
		},
		Barber: BarberRefDTO{
			ID:   ap.BarberID,
			Name: ap.Barber.Name,
		},
		CanCancel: appointment.CanCustomerCancel(ap, now) == nil,
	}

	if ap.Rating != nil {
		r := NewRating(*ap.Rating)
		out.Rating = &r
	}
	return out
}

func NewAppointments(apps []models.Appointment, now time.Time) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(apps))
	for i := range apps {
		out = append(out, NewAppointment(&apps[i], now))
	}
	return out
}
