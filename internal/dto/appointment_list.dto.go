package dto

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AppointmentListDTO struct {
	ID           uint      `json:"id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
	CustomerName string    `json:"customer_name"`
	ServiceName  string    `json:"service_name"`
	BarberName   string    `json:"barber_name"`
	TotalPrice   float64   `json:"total_price"`
}

func NewAppointmentList(apps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, AppointmentListDTO{
			ID:           ap.ID,
			StartTime:    ap.AppointmentStart,
			EndTime:      ap.AppointmentEnd,
			Status:       ap.Status,
			CustomerName: ap.Customer.Name,
			ServiceName:  ap.Service.Name,
			BarberName:   ap.Barber.Name,
			TotalPrice:   ap.TotalPrice,
		})
	}
	return out
}
