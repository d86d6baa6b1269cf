package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const (
	// CancellationLeadTime is the minimum notice a customer must give to cancel.
	CancellationLeadTime = 2 * time.Hour

	DefaultCancellationReason = "Cancelled by customer"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(ap *models.Appointment, now time.Time) error {
	if err := CanTransition(Status(ap.Status), StatusConfirmed); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	ap.ConfirmedAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanTransition(Status(ap.Status), StatusCompleted); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

func MarkNoShow(ap *models.Appointment) error {
	if err := CanTransition(Status(ap.Status), StatusNoShow); err != nil {
		return err
	}

	ap.Status = string(StatusNoShow)
	return nil
}

// Cancel is the staff cancellation; it ignores the lead-time rule.
func Cancel(ap *models.Appointment, now time.Time, reason string) error {
	if err := CanTransition(Status(ap.Status), StatusCancelled); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	ap.CancellationReason = reason
	return nil
}

func CanCustomerCancel(ap *models.Appointment, now time.Time) error {
	if err := CanTransition(Status(ap.Status), StatusCancelled); err != nil {
		return err
	}
	if ap.AppointmentStart.Sub(now) < CancellationLeadTime {
		return httperr.ErrBusiness("cancellation_window_closed")
	}
	return nil
}

func CancelByCustomer(ap *models.Appointment, now time.Time, reason string) error {
	if err := CanCustomerCancel(ap, now); err != nil {
		return err
	}
	if reason == "" {
		reason = DefaultCancellationReason
	}
	return Cancel(ap, now, reason)
}

// Reschedule moves an active appointment and sends it back to pending for
// reconfirmation.
func Reschedule(ap *models.Appointment, start time.Time, duration time.Duration) error {
	if !Status(ap.Status).IsOccupying() {
		return httperr.ErrBusiness("invalid_state")
	}

	ap.AppointmentStart = start
	ap.AppointmentEnd = start.Add(duration)
	ap.Status = string(StatusPending)
	ap.ConfirmedAt = nil
	return nil
}
