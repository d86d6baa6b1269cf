package rating

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/rating"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/scheduler"
)

type SubmitRatingInput struct {
	Caller        auth.Context
	AppointmentID uint
	Rating        int
	Review        string
}

type SubmitRating struct {
	appointments appointment.Repository
	ratings      domain.Repository
	sched        *scheduler.Scheduler
	audit        *audit.Dispatcher
}

func NewSubmitRating(
	appointments appointment.Repository,
	ratings domain.Repository,
	sched *scheduler.Scheduler,
	audit *audit.Dispatcher,
) *SubmitRating {
	return &SubmitRating{
		appointments: appointments,
		ratings:      ratings,
		sched:        sched,
		audit:        audit,
	}
}

func (uc *SubmitRating) Execute(
	ctx context.Context,
	in SubmitRatingInput,
) (*models.Rating, error) {

	review := strings.TrimSpace(in.Review)
	if err := domain.Validate(in.Rating, review); err != nil {
		return nil, err
	}

	ap, err := uc.appointments.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}
	if !auth.OwnsAppointment(in.Caller, ap) {
		return nil, httperr.ErrEntityNotFound("appointment")
	}

	if err := domain.CanRate(ap, uc.sched.Now()); err != nil {
		return nil, err
	}

	rated, err := uc.ratings.HasRating(ctx, ap.ID)
	if err != nil {
		return nil, err
	}
	if rated {
		return nil, httperr.ErrBusiness("already_rated")
	}

	r := &models.Rating{
		AppointmentID: ap.ID,
		BarberID:      ap.BarberID,
		CustomerID:    ap.CustomerID,
		Score:         in.Rating,
		Review:        review,
		IsApproved:    true,
	}

	// the unique index on appointment_id settles concurrent submissions
	if err := uc.ratings.CreateRating(ctx, r); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:   audit.Ref(in.Caller.UserID),
		ActorRole: in.Caller.Role,
		Action:    audit.ActionRatingCreated,
		Entity:    "rating",
		EntityID:  audit.Ref(r.ID),
		Metadata:  map[string]any{"appointment_id": ap.ID, "rating": r.Score},
	})

	return r, nil
}
