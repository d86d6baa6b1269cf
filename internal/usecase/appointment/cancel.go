package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/auth"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/scheduler"
)

type CancelAppointmentInput struct {
	Caller        auth.Context
	AppointmentID uint
	Reason        string
}

type CancelAppointment struct {
	repo  domain.Repository
	sched *scheduler.Scheduler
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	sched *scheduler.Scheduler,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		sched: sched,
		audit: audit,
	}
}

// Execute cancels as the owning customer (lead-time rule applies) or as
// staff (no lead-time rule).
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	in CancelAppointmentInput,
) (*models.Appointment, error) {

	var ap *models.Appointment
	err := uc.repo.WithinTransaction(ctx, func(tx domain.Repository) error {
		var err error
		ap, err = loadVisible(ctx, tx, in.Caller, in.AppointmentID)
		if err != nil {
			return err
		}

		now := uc.sched.Now()
		if auth.OwnsAppointment(in.Caller, ap) {
			err = domain.CancelByCustomer(ap, now, in.Reason)
		} else {
			err = domain.Cancel(ap, now, in.Reason)
		}
		if err != nil {
			return err
		}

		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(actorEvent(in.Caller, audit.ActionAppointmentCancelled, ap.ID, map[string]any{
		"reason": ap.CancellationReason,
	}))

	return ap, nil
}
