package catalog

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/domain/rating"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type BarberLookup interface {
	GetBarber(ctx context.Context, id uint) (*models.Barber, error)
}

type ShowBarber struct {
	barbers BarberLookup
	ratings rating.Repository
}

func NewShowBarber(
	barbers BarberLookup,
	ratings rating.Repository,
) *ShowBarber {
	return &ShowBarber{
		barbers: barbers,
		ratings: ratings,
	}
}

// Execute returns an active barber's profile with the latest approved ratings.
func (uc *ShowBarber) Execute(ctx context.Context, id uint) (*dto.BarberProfileDTO, error) {
	barber, err := uc.barbers.GetBarber(ctx, id)
	if err != nil {
		return nil, err
	}
	if !barber.IsActive {
		return nil, httperr.ErrEntityNotFound("barber")
	}

	ratings, err := uc.ratings.ListApprovedForBarber(ctx, barber.ID, rating.RecentLimit)
	if err != nil {
		return nil, err
	}

	out := dto.NewBarberProfile(barber, rating.Average(ratings), ratings)
	return &out, nil
}
