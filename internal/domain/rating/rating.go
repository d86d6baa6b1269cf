package rating

import (
	"context"
	"math"
	"time"
	"unicode/utf8"

	"github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const (
	MinScore        = 1
	MaxScore        = 5
	MaxReviewLength = 1000

	// Window is how long after completion an appointment can be rated.
	Window = 7 * 24 * time.Hour

	// RecentLimit bounds the ratings shown on a barber profile.
	RecentLimit = 10
)

type Repository interface {
	HasRating(ctx context.Context, appointmentID uint) (bool, error)
	CreateRating(ctx context.Context, r *models.Rating) error
	ListApprovedForBarber(ctx context.Context, barberID uint, limit int) ([]models.Rating, error)
}

func Validate(score int, review string) error {
	if score < MinScore || score > MaxScore {
		return httperr.ErrInvalid("invalid_rating")
	}
	if utf8.RuneCountInString(review) > MaxReviewLength {
		return httperr.ErrInvalid("review_too_long")
	}
	return nil
}

// CanRate checks the appointment side of a rating. Rows completed before
// completed_at was tracked fall back to their last update.
func CanRate(ap *models.Appointment, now time.Time) error {
	if appointment.Status(ap.Status) != appointment.StatusCompleted {
		return httperr.ErrBusiness("not_rateable")
	}

	completedAt := ap.UpdatedAt
	if ap.CompletedAt != nil {
		completedAt = *ap.CompletedAt
	}

	if now.Sub(completedAt) > Window {
		return httperr.ErrBusiness("rating_window_closed")
	}
	return nil
}

// Average is the mean score rounded to one decimal, 0 when empty.
func Average(ratings []models.Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}

	sum := 0
	for _, r := range ratings {
		sum += r.Score
	}

	avg := float64(sum) / float64(len(ratings))
	return math.Round(avg*10) / 10
}
