package rating_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barber-booking/internal/domain/rating"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func TestValidate(t *testing.T) {
	assert.NoError(t, rating.Validate(1, ""))
	assert.NoError(t, rating.Validate(5, strings.Repeat("a", 1000)))

	err := rating.Validate(0, "")
	assert.True(t, httperr.IsBusiness(err, "invalid_rating"))
	assert.ErrorIs(t, err, httperr.ErrInvalidInput)

	assert.True(t, httperr.IsBusiness(rating.Validate(6, ""), "invalid_rating"))
	assert.True(t, httperr.IsBusiness(rating.Validate(3, strings.Repeat("a", 1001)), "review_too_long"))

	// multi-byte characters count once
	assert.NoError(t, rating.Validate(4, strings.Repeat("é", 1000)))
}

func TestCanRate(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	daysAgo := func(d int) *time.Time {
		t := now.Add(-time.Duration(d) * 24 * time.Hour)
		return &t
	}

	assert.NoError(t, rating.CanRate(&models.Appointment{Status: "completed", CompletedAt: daysAgo(1)}, now))
	assert.NoError(t, rating.CanRate(&models.Appointment{Status: "completed", CompletedAt: daysAgo(7)}, now))

	err := rating.CanRate(&models.Appointment{Status: "completed", CompletedAt: daysAgo(8)}, now)
	assert.True(t, httperr.IsBusiness(err, "rating_window_closed"))

	err = rating.CanRate(&models.Appointment{Status: "confirmed"}, now)
	assert.True(t, httperr.IsBusiness(err, "not_rateable"))

	legacy := &models.Appointment{Status: "completed", UpdatedAt: *daysAgo(10)}
	assert.True(t, httperr.IsBusiness(rating.CanRate(legacy, now), "rating_window_closed"))
}

func TestAverage(t *testing.T) {
	assert.Zero(t, rating.Average(nil))

	rs := []models.Rating{{Score: 5}, {Score: 4}, {Score: 4}}
	assert.Equal(t, 4.3, rating.Average(rs))

	rs = []models.Rating{{Score: 5}, {Score: 4}}
	assert.Equal(t, 4.5, rating.Average(rs))
}
