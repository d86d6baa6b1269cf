package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/scheduler"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo  domain.Repository
	sched *scheduler.Scheduler
}

func NewListAppointmentsByDate(
	repo domain.Repository,
	sched *scheduler.Scheduler,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo:  repo,
		sched: sched,
	}
}

// Execute lists every barber's appointments on date (YYYY-MM-DD), today when
// empty, optionally filtered by status.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	date string,
	status string,
) ([]dto.AppointmentListDTO, error) {

	loc := uc.sched.Location()

	day := uc.sched.Now()
	if date != "" {
		d, err := timezone.ParseDate(loc, date)
		if err != nil {
			return nil, httperr.ErrInvalid("invalid_date")
		}
		day = d
	}

	q := domain.DayQuery{
		From: timezone.StartOfDay(day, loc),
		To:   timezone.EndOfDay(day, loc),
	}
	if status != "" {
		st, err := domain.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		q.Status = st
	}

	appointments, err := uc.repo.ListForPeriod(ctx, q)
	if err != nil {
		return nil, err
	}

	return dto.NewAppointmentList(appointments), nil
}
