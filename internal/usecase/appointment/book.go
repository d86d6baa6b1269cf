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

// ======================================================
// INPUT
// ======================================================

type BookAppointmentInput struct {
	Caller auth.Context

	ServiceID uint
	BarberID  uint

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo    domain.Repository
	catalog Catalog
	sched   *scheduler.Scheduler
	audit   *audit.Dispatcher
}

func NewBookAppointment(
	repo domain.Repository,
	catalog Catalog,
	sched *scheduler.Scheduler,
	audit *audit.Dispatcher,
) *BookAppointment {
	return &BookAppointment{
		repo:    repo,
		catalog: catalog,
		sched:   sched,
		audit:   audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	if !auth.CanBook(in.Caller) {
		return nil, httperr.ErrBusiness("forbidden")
	}

	// --------------------------------------------------
	// Date / time in the shop timezone
	// --------------------------------------------------
	start, err := timezone.ParseDateTime(uc.sched.Location(), in.Date, in.Time)
	if err != nil {
		return nil, httperr.ErrInvalid("invalid_date_or_time")
	}

	// --------------------------------------------------
	// Service and barber
	// --------------------------------------------------
	svc, err := uc.catalog.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if !svc.IsActive {
		return nil, httperr.ErrBusiness("service_inactive")
	}

	barber, err := uc.catalog.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}
	if !barber.IsActive {
		return nil, httperr.ErrBusiness("barber_inactive")
	}

	duration := time.Duration(svc.DurationMinutes) * time.Minute

	// --------------------------------------------------
	// Availability check + insert, under the barber lock
	// --------------------------------------------------
	var ap *models.Appointment
	err = uc.repo.WithinTransaction(ctx, func(tx domain.Repository) error {
		verdict, err := uc.sched.WithStore(tx).Check(ctx, scheduler.Proposal{
			BarberID: barber.ID,
			Start:    start,
			Duration: duration,
		})
		if err != nil {
			return err
		}
		if err := verdictErr(verdict); err != nil {
			return err
		}

		ap = &models.Appointment{
			CustomerID:       in.Caller.UserID,
			ServiceID:        svc.ID,
			BarberID:         barber.ID,
			AppointmentStart: start,
			AppointmentEnd:   start.Add(duration),
			Status:           string(domain.InitialStatus()),
			TotalPrice:       svc.Price,
			Notes:            in.Notes,
		}
		return tx.CreateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	ap.Service = *svc
	ap.Barber = *barber

	uc.audit.Dispatch(actorEvent(in.Caller, audit.ActionAppointmentCreated, ap.ID, map[string]any{
		"barber_id":  barber.ID,
		"service_id": svc.ID,
		"start":      start,
	}))

	return ap, nil
}
