package dto

import "github.com/BruksfildServices01/barber-booking/internal/models"

// BarberProfileDTO is the public barber page: contact details stay private.
type BarberProfileDTO struct {
	ID              uint        `json:"id"`
	Name            string      `json:"name"`
	Specialty       string      `json:"specialty"`
	Bio             string      `json:"bio"`
	ExperienceYears int         `json:"experience_years"`
	AverageRating   float64     `json:"average_rating"`
	TotalRatings    int         `json:"total_ratings"`
	Ratings         []RatingDTO `json:"ratings"`
}

func NewBarberProfile(b *models.Barber, average float64, ratings []models.Rating) BarberProfileDTO {
	out := BarberProfileDTO{
		ID:              b.ID,
		Name:            b.Name,
		Specialty:       b.Specialty,
		Bio:             b.Bio,
		ExperienceYears: b.ExperienceYears,
		AverageRating:   average,
		TotalRatings:    len(ratings),
		Ratings:         make([]RatingDTO, 0, len(ratings)),
	}
	for _, r := range ratings {
		out.Ratings = append(out.Ratings, NewRating(r))
	}
	return out
}
