package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/auth"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/scheduler"
)

const (
	DefaultUpcomingLimit = 5
	MaxListLimit         = 100
)

type ListForCustomerInput struct {
	Caller       auth.Context
	UpcomingOnly bool
	Limit        int
}

type ListForCustomer struct {
	repo  domain.Repository
	sched *scheduler.Scheduler
}

func NewListForCustomer(
	repo domain.Repository,
	sched *scheduler.Scheduler,
) *ListForCustomer {
	return &ListForCustomer{
		repo:  repo,
		sched: sched,
	}
}

// Execute lists the caller's appointments, newest first. UpcomingOnly keeps
// occupying future appointments in ascending order, five by default.
func (uc *ListForCustomer) Execute(
	ctx context.Context,
	in ListForCustomerInput,
) ([]models.Appointment, error) {

	if !in.Caller.IsCustomer() {
		return nil, httperr.ErrBusiness("forbidden")
	}

	q := domain.ListQuery{
		CustomerID: in.Caller.UserID,
		Limit:      in.Limit,
	}

	if in.UpcomingOnly {
		now := uc.sched.Now()
		q.UpcomingFrom = &now
		q.Statuses = domain.OccupyingStatuses()
		if q.Limit <= 0 {
			q.Limit = DefaultUpcomingLimit
		}
	}

	if q.Limit > MaxListLimit {
		q.Limit = MaxListLimit
	}

	return uc.repo.ListForCustomer(ctx, q)
}
