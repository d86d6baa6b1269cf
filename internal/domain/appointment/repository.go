package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Repository interface {
	// -------- Scheduling --------
	FindAppointments(
		ctx context.Context,
		q Query,
	) ([]Booked, error)

	// -------- Appointment --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListForCustomer(
		ctx context.Context,
		q ListQuery,
	) ([]models.Appointment, error)

	ListForPeriod(
		ctx context.Context,
		q DayQuery,
	) ([]models.Appointment, error)

	// WithinTransaction runs fn against a transactional repository whose
	// FindAppointments and GetAppointment reads take row locks.
	WithinTransaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error
}
