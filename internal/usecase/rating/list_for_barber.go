package rating

import (
	"context"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/rating"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type BarberLookup interface {
	GetBarber(ctx context.Context, id uint) (*models.Barber, error)
}

type ListForBarber struct {
	barbers BarberLookup
	ratings domain.Repository
}

func NewListForBarber(
	barbers BarberLookup,
	ratings domain.Repository,
) *ListForBarber {
	return &ListForBarber{
		barbers: barbers,
		ratings: ratings,
	}
}

// Execute returns the barber's latest approved ratings and their average.
func (uc *ListForBarber) Execute(
	ctx context.Context,
	barberID uint,
) (*dto.BarberRatingsDTO, error) {

	barber, err := uc.barbers.GetBarber(ctx, barberID)
	if err != nil {
		return nil, err
	}

	ratings, err := uc.ratings.ListApprovedForBarber(ctx, barber.ID, domain.RecentLimit)
	if err != nil {
		return nil, err
	}

	out := &dto.BarberRatingsDTO{
		BarberID: barber.ID,
		Average:  domain.Average(ratings),
		Count:    len(ratings),
		Ratings:  make([]dto.RatingDTO, 0, len(ratings)),
	}
	for _, r := range ratings {
		out.Ratings = append(out.Ratings, dto.NewRating(r))
	}
	return out, nil
}
