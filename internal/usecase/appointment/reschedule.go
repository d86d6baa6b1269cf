package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/auth"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/scheduler"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type RescheduleAppointmentInput struct {
	Caller        auth.Context
	AppointmentID uint

	Date string
	Time string
}

type RescheduleAppointment struct {
	repo    domain.Repository
	catalog Catalog
	sched   *scheduler.Scheduler
	audit   *audit.Dispatcher
}

func NewRescheduleAppointment(
	repo domain.Repository,
	catalog Catalog,
	sched *scheduler.Scheduler,
	audit *audit.Dispatcher,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:    repo,
		catalog: catalog,
		sched:   sched,
		audit:   audit,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	start, err := timezone.ParseDateTime(uc.sched.Location(), in.Date, in.Time)
	if err != nil {
		return nil, httperr.ErrInvalid("invalid_date_or_time")
	}

	var (
		ap       *models.Appointment
		previous time.Time
	)
	err = uc.repo.WithinTransaction(ctx, func(tx domain.Repository) error {
		var err error
		ap, err = tx.GetAppointment(ctx, in.AppointmentID)
		if err != nil {
			return err
		}
		if !auth.OwnsAppointment(in.Caller, ap) {
			return httperr.ErrEntityNotFound("appointment")
		}
		if !domain.Status(ap.Status).IsOccupying() {
			return httperr.ErrBusiness("invalid_state")
		}

		minutes, err := uc.catalog.GetServiceDuration(ctx, ap.ServiceID)
		if err != nil {
			return err
		}
		duration := time.Duration(minutes) * time.Minute
		previous = ap.AppointmentStart

		verdict, err := uc.sched.WithStore(tx).Check(ctx, scheduler.Proposal{
			BarberID:  ap.BarberID,
			Start:     start,
			Duration:  duration,
			ExcludeID: ap.ID,
		})
		if err != nil {
			return err
		}
		if err := verdictErr(verdict); err != nil {
			return err
		}

		if err := domain.Reschedule(ap, start, duration); err != nil {
			return err
		}
		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(actorEvent(in.Caller, audit.ActionAppointmentRescheduled, ap.ID, map[string]any{
		"from": previous,
		"to":   start,
	}))

	return ap, nil
}
