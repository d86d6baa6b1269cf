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

// Catalog is the service/barber lookup the booking flows depend on.
type Catalog interface {
	GetService(ctx context.Context, id uint) (*models.Service, error)
	GetServiceDuration(ctx context.Context, id uint) (int, error)
	GetBarber(ctx context.Context, id uint) (*models.Barber, error)
}

func verdictErr(v scheduler.Verdict) error {
	switch v {
	case scheduler.Available:
		return nil
	case scheduler.InPast:
		return httperr.ErrBusiness("slot_in_past")
	case scheduler.OutsideHours:
		return httperr.ErrBusiness("outside_business_hours")
	}
	return httperr.ErrBusiness("slot_unavailable")
}

// loadVisible fetches an appointment the caller is allowed to see. Other
// customers' appointments are reported as not found.
func loadVisible(
	ctx context.Context,
	repo domain.Repository,
	caller auth.Context,
	id uint,
) (*models.Appointment, error) {

	ap, err := repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanViewAppointment(caller, ap) {
		return nil, httperr.ErrEntityNotFound("appointment")
	}
	return ap, nil
}

func actorEvent(caller auth.Context, action string, id uint, metadata any) audit.Event {
	return audit.Event{
		ActorID:   audit.Ref(caller.UserID),
		ActorRole: caller.Role,
		Action:    action,
		Entity:    "appointment",
		EntityID:  audit.Ref(id),
		Metadata:  metadata,
	}
}
