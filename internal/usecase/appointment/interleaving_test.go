package appointment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/memory"
	uc "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// interleavingRepo runs before once, right before the first transaction
// starts, to land a concurrent write between a request's arrival and its
// transaction.
type interleavingRepo struct {
	*memory.Store
	before func()
}

func (r *interleavingRepo) WithinTransaction(ctx context.Context, fn func(tx domain.Repository) error) error {
	if r.before != nil {
		before := r.before
		r.before = nil
		before()
	}
	return r.Store.WithinTransaction(ctx, fn)
}

func TestReschedule_DoesNotReviveStaffCancellation(t *testing.T) {
	f := newFixture(t)
	ap := f.seed(f.customer.UserID, at(11, 10, 0), "confirmed")
	ctx := context.Background()

	repo := &interleavingRepo{Store: f.store, before: func() {
		_, err := uc.NewChangeStatus(f.store, f.sched, f.audit).Execute(ctx, uc.ChangeStatusInput{
			Caller: f.staff, AppointmentID: ap.ID, Status: "cancelled", Reason: "barber sick",
		})
		require.NoError(t, err)
	}}

	_, err := uc.NewRescheduleAppointment(repo, f.catalog, f.sched, f.audit).Execute(ctx, uc.RescheduleAppointmentInput{
		Caller: f.customer, AppointmentID: ap.ID, Date: "2025-03-12", Time: "10:00",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	stored, _ := f.store.Appointment(ap.ID)
	assert.Equal(t, "cancelled", stored.Status)
	assert.Equal(t, "barber sick", stored.CancellationReason)
	assert.True(t, stored.AppointmentStart.Equal(at(11, 10, 0)))
}

func TestCancel_DoesNotOverwriteCompletion(t *testing.T) {
	f := newFixture(t)
	ap := f.seed(f.customer.UserID, at(11, 10, 0), "confirmed")
	ctx := context.Background()

	repo := &interleavingRepo{Store: f.store, before: func() {
		_, err := uc.NewChangeStatus(f.store, f.sched, f.audit).Execute(ctx, uc.ChangeStatusInput{
			Caller: f.staff, AppointmentID: ap.ID, Status: "completed",
		})
		require.NoError(t, err)
	}}

	_, err := uc.NewCancelAppointment(repo, f.sched, f.audit).Execute(ctx, uc.CancelAppointmentInput{
		Caller: f.customer, AppointmentID: ap.ID,
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	stored, _ := f.store.Appointment(ap.ID)
	assert.Equal(t, "completed", stored.Status)
	assert.Nil(t, stored.CancelledAt)
}

func TestChangeStatus_DoesNotOverwriteCustomerCancellation(t *testing.T) {
	f := newFixture(t)
	ap := f.seed(f.customer.UserID, at(11, 10, 0), "pending")
	ctx := context.Background()

	repo := &interleavingRepo{Store: f.store, before: func() {
		_, err := uc.NewCancelAppointment(f.store, f.sched, f.audit).Execute(ctx, uc.CancelAppointmentInput{
			Caller: f.customer, AppointmentID: ap.ID,
		})
		require.NoError(t, err)
	}}

	_, err := uc.NewChangeStatus(repo, f.sched, f.audit).Execute(ctx, uc.ChangeStatusInput{
		Caller: f.staff, AppointmentID: ap.ID, Status: "confirmed",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	stored, _ := f.store.Appointment(ap.ID)
	assert.Equal(t, "cancelled", stored.Status)
	assert.Nil(t, stored.ConfirmedAt)
}
