package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/scheduler"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type GetAvailabilityInput struct {
	BarberID uint
	Date     string // YYYY-MM-DD
}

type GetAvailability struct {
	catalog Catalog
	sched   *scheduler.Scheduler
}

func NewGetAvailability(
	catalog Catalog,
	sched *scheduler.Scheduler,
) *GetAvailability {
	return &GetAvailability{
		catalog: catalog,
		sched:   sched,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in GetAvailabilityInput,
) ([]scheduler.Slot, error) {

	day, err := timezone.ParseDate(uc.sched.Location(), in.Date)
	if err != nil {
		return nil, httperr.ErrInvalid("invalid_date")
	}

	barber, err := uc.catalog.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}
	if !barber.IsActive {
		return nil, httperr.ErrBusiness("barber_inactive")
	}

	return uc.sched.ListAvailableSlots(ctx, barber.ID, day)
}
