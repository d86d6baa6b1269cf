package dto

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type RatingDTO struct {
	ID           uint      `json:"id"`
	Rating       int       `json:"rating"`
	Review       string    `json:"review,omitempty"`
	CustomerName string    `json:"customer_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type BarberRatingsDTO struct {
	BarberID uint        `json:"barber_id"`
	Average  float64     `json:"average"`
	Count    int         `json:"count"`
	Ratings  []RatingDTO `json:"ratings"`
}

func NewRating(r models.Rating) RatingDTO {
	out := RatingDTO{
		ID:        r.ID,
		Rating:    r.Score,
		Review:    r.Review,
		CreatedAt: r.CreatedAt,
	}
	if r.Customer != nil {
		out.CustomerName = r.Customer.Name
	}
	return out
}
