package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/scheduler"
)

type ListAppointmentsByMonth struct {
	repo  domain.Repository
	sched *scheduler.Scheduler
}

func NewListAppointmentsByMonth(
	repo domain.Repository,
	sched *scheduler.Scheduler,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo:  repo,
		sched: sched,
	}
}

// Execute lists the appointments of month (YYYY-MM) in the shop timezone.
func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	month string,
) ([]dto.AppointmentListDTO, error) {

	loc := uc.sched.Location()

	first, err := time.ParseInLocation("2006-01", month, loc)
	if err != nil {
		return nil, httperr.ErrInvalid("invalid_date")
	}

	appointments, err := uc.repo.ListForPeriod(ctx, domain.DayQuery{
		From: first,
		To:   first.AddDate(0, 1, 0).Add(-time.Nanosecond),
	})
	if err != nil {
		return nil, err
	}

	return dto.NewAppointmentList(appointments), nil
}
