package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/auth"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/scheduler"
)

type ChangeStatusInput struct {
	Caller        auth.Context
	AppointmentID uint
	Status        string
	Reason        string
}

// ChangeStatus is the staff-side status update: confirm, complete,
// no_show or cancel.
type ChangeStatus struct {
	repo  domain.Repository
	sched *scheduler.Scheduler
	audit *audit.Dispatcher
}

func NewChangeStatus(
	repo domain.Repository,
	sched *scheduler.Scheduler,
	audit *audit.Dispatcher,
) *ChangeStatus {
	return &ChangeStatus{
		repo:  repo,
		sched: sched,
		audit: audit,
	}
}

func (uc *ChangeStatus) Execute(
	ctx context.Context,
	in ChangeStatusInput,
) (*models.Appointment, error) {

	if !auth.CanManageAppointments(in.Caller) {
		return nil, httperr.ErrBusiness("forbidden")
	}

	target, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	var (
		ap   *models.Appointment
		from string
	)
	err = uc.repo.WithinTransaction(ctx, func(tx domain.Repository) error {
		var err error
		ap, err = tx.GetAppointment(ctx, in.AppointmentID)
		if err != nil {
			return err
		}

		from = ap.Status
		now := uc.sched.Now()

		switch target {
		case domain.StatusConfirmed:
			err = domain.Confirm(ap, now)
		case domain.StatusCompleted:
			err = domain.Complete(ap, now)
		case domain.StatusNoShow:
			err = domain.MarkNoShow(ap)
		case domain.StatusCancelled:
			err = domain.Cancel(ap, now, in.Reason)
		default:
			err = httperr.ErrBusiness("invalid_state")
		}
		if err != nil {
			return err
		}

		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(actorEvent(in.Caller, audit.ActionAppointmentStatus, ap.ID, map[string]any{
		"from": from,
		"to":   ap.Status,
	}))

	return ap, nil
}
