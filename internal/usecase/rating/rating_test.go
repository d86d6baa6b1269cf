package rating_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/memory"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/scheduler"
	uc "github.com/BruksfildServices01/barber-booking/internal/usecase/rating"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func daysAgo(d int) *time.Time {
	t := now.Add(-time.Duration(d) * 24 * time.Hour)
	return &t
}

func setup() (*memory.Store, *uc.SubmitRating, auth.Context) {
	store := memory.NewStore()
	store.AddBarber(models.Barber{ID: 1, Name: "Rafa", IsActive: true})
	store.AddCustomer(models.Customer{ID: 2, Name: "Ana", Email: "ana@example.com"})
	store.AddCustomer(models.Customer{ID: 3, Name: "Bruno", Email: "bruno@example.com"})

	sched := scheduler.New(store, scheduler.DefaultPolicy(), time.UTC, scheduler.WithClock(func() time.Time { return now }))
	return store, uc.NewSubmitRating(store, store, sched, nil), auth.Context{UserID: 2, Role: "customer"}
}

func TestSubmitRating(t *testing.T) {
	store, submit, ana := setup()
	ap := store.AddAppointment(models.Appointment{CustomerID: 2, BarberID: 1, Status: "completed", CompletedAt: daysAgo(2)})
	ctx := context.Background()

	r, err := submit.Execute(ctx, uc.SubmitRatingInput{Caller: ana, AppointmentID: ap.ID, Rating: 5, Review: "  Great fade  "})
	require.NoError(t, err)
	assert.Equal(t, 5, r.Score)
	assert.Equal(t, "Great fade", r.Review)
	assert.True(t, r.IsApproved)
	assert.Equal(t, uint(1), r.BarberID)

	_, err = submit.Execute(ctx, uc.SubmitRatingInput{Caller: ana, AppointmentID: ap.ID, Rating: 4})
	assert.True(t, httperr.IsBusiness(err, "already_rated"))
	assert.Len(t, store.Ratings(), 1)
}

func TestSubmitRating_Rejections(t *testing.T) {
	store, submit, ana := setup()
	old := store.AddAppointment(models.Appointment{CustomerID: 2, BarberID: 1, Status: "completed", CompletedAt: daysAgo(8)})
	open := store.AddAppointment(models.Appointment{CustomerID: 2, BarberID: 1, Status: "confirmed"})
	done := store.AddAppointment(models.Appointment{CustomerID: 2, BarberID: 1, Status: "completed", CompletedAt: daysAgo(1)})
	ctx := context.Background()

	cases := []struct {
		in   uc.SubmitRatingInput
		code string
	}{
		{uc.SubmitRatingInput{Caller: ana, AppointmentID: old.ID, Rating: 4}, "rating_window_closed"},
		{uc.SubmitRatingInput{Caller: ana, AppointmentID: open.ID, Rating: 4}, "not_rateable"},
		{uc.SubmitRatingInput{Caller: ana, AppointmentID: done.ID, Rating: 0}, "invalid_rating"},
		{uc.SubmitRatingInput{Caller: ana, AppointmentID: done.ID, Rating: 6}, "invalid_rating"},
		{uc.SubmitRatingInput{Caller: ana, AppointmentID: done.ID, Rating: 3, Review: strings.Repeat("x", 1001)}, "review_too_long"},
		{uc.SubmitRatingInput{Caller: auth.Context{UserID: 3, Role: "customer"}, AppointmentID: done.ID, Rating: 3}, "appointment_not_found"},
		{uc.SubmitRatingInput{Caller: ana, AppointmentID: 999, Rating: 3}, "appointment_not_found"},
	}

	for _, tc := range cases {
		_, err := submit.Execute(ctx, tc.in)
		assert.True(t, httperr.IsBusiness(err, tc.code), "want %s, got %v", tc.code, err)
	}
	assert.Empty(t, store.Ratings())
}

func TestSubmitRating_Concurrent(t *testing.T) {
	store, submit, ana := setup()
	ap := store.AddAppointment(models.Appointment{CustomerID: 2, BarberID: 1, Status: "completed", CompletedAt: daysAgo(1)})

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = submit.Execute(context.Background(), uc.SubmitRatingInput{Caller: ana, AppointmentID: ap.ID, Rating: 5})
		}()
	}
	wg.Wait()

	assert.Len(t, store.Ratings(), 1)
}

func TestListForBarber(t *testing.T) {
	store, _, _ := setup()
	for i := range 12 {
		store.AddRating(models.Rating{
			AppointmentID: uint(100 + i),
			BarberID:      1,
			CustomerID:    2,
			Score:         4 + i%2,
			IsApproved:    true,
			CreatedAt:     now.Add(time.Duration(i) * time.Hour),
		})
	}
	store.AddRating(models.Rating{AppointmentID: 200, BarberID: 1, CustomerID: 3, Score: 1, IsApproved: false, CreatedAt: now.Add(48 * time.Hour)})

	list := uc.NewListForBarber(store, store)

	got, err := list.Execute(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Count)
	require.Len(t, got.Ratings, 10)
	assert.Equal(t, 5, got.Ratings[0].Rating, "newest first")
	assert.Equal(t, "Ana", got.Ratings[0].CustomerName)
	assert.Equal(t, 4.5, got.Average)

	_, err = list.Execute(context.Background(), 42)
	assert.ErrorIs(t, err, httperr.ErrNotFound)

	store.AddBarber(models.Barber{ID: 50, Name: "New", IsActive: true})
	empty, err := list.Execute(context.Background(), 50)
	require.NoError(t, err)
	assert.Zero(t, empty.Average)
	assert.Empty(t, empty.Ratings)
}
