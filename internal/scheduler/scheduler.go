package scheduler

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// Store is the part of the appointment store the scheduler reads from.
type Store interface {
	FindAppointments(ctx context.Context, q appointment.Query) ([]appointment.Booked, error)
}

type Verdict int

const (
	Available Verdict = iota
	InPast
	OutsideHours
	Conflict
)

func (v Verdict) String() string {
	switch v {
	case Available:
		return "available"
	case InPast:
		return "in_past"
	case OutsideHours:
		return "outside_hours"
	case Conflict:
		return "conflict"
	}
	return "unknown"
}

// Proposal is a candidate booking. ExcludeID, when non-zero, is left out of
// the conflict check (rescheduling an appointment onto its own slot).
type Proposal struct {
	BarberID  uint
	Start     time.Time
	Duration  time.Duration
	ExcludeID uint
}

// Scheduler computes slot availability for barbers. It keeps no state between
// calls; every answer is derived from the store at call time.
type Scheduler struct {
	store  Store
	policy Policy
	loc    *time.Location
	now    func() time.Time
}

type Option func(*Scheduler)

func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
	}
}

func New(store Store, policy Policy, loc *time.Location, opts ...Option) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}

	s := &Scheduler{
		store:  store,
		policy: policy.normalized(),
		loc:    loc,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithStore returns a copy reading from store, typically a transaction.
func (s *Scheduler) WithStore(store Store) *Scheduler {
	cp := *s
	cp.store = store
	return &cp
}

func (s *Scheduler) Location() *time.Location {
	return s.loc
}

func (s *Scheduler) Policy() Policy {
	return s.policy
}

func (s *Scheduler) Now() time.Time {
	return s.now().In(s.loc)
}

// ListAvailableSlots returns the free slots of barberID on date's calendar day
// (in the shop location). An empty slice means nothing is bookable.
func (s *Scheduler) ListAvailableSlots(
	ctx context.Context,
	barberID uint,
	date time.Time,
) ([]Slot, error) {

	day := timezone.StartOfDay(date, s.loc)
	now := s.Now()

	last := time.Date(day.Year(), day.Month(), day.Day(), ClosingHour, 0, 0, 0, s.loc).Add(-SlotLength)
	if !last.After(now) {
		return []Slot{}, nil
	}

	busy, err := s.store.FindAppointments(ctx, appointment.Query{
		BarberID: barberID,
		From:     day,
		To:       timezone.EndOfDay(day, s.loc),
		Statuses: appointment.OccupyingStatuses(),
	})
	if err != nil {
		return nil, fmt.Errorf("list available slots: %w", err)
	}

	return collect(s.policy.Slots(day, now, busy)), nil
}

func (s *Scheduler) IsSlotAvailable(
	ctx context.Context,
	barberID uint,
	start time.Time,
	durationMinutes int,
) (bool, error) {

	v, err := s.Check(ctx, Proposal{
		BarberID: barberID,
		Start:    start,
		Duration: time.Duration(durationMinutes) * time.Minute,
	})
	return v == Available, err
}

// IsRescheduleAvailable is IsSlotAvailable ignoring appointmentID's own record.
func (s *Scheduler) IsRescheduleAvailable(
	ctx context.Context,
	barberID uint,
	appointmentID uint,
	start time.Time,
	durationMinutes int,
) (bool, error) {

	v, err := s.Check(ctx, Proposal{
		BarberID:  barberID,
		Start:     start,
		Duration:  time.Duration(durationMinutes) * time.Minute,
		ExcludeID: appointmentID,
	})
	return v == Available, err
}

// Check validates p and reports why it is not bookable. The store is only
// consulted once the time itself is acceptable.
func (s *Scheduler) Check(ctx context.Context, p Proposal) (Verdict, error) {
	if p.Duration <= 0 {
		p.Duration = SlotLength
	}

	if !p.Start.After(s.now()) {
		return InPast, nil
	}
	if !s.policy.WithinBusinessHours(p.Start, p.Duration, s.loc) {
		return OutsideHours, nil
	}

	from, to := s.policy.window(p.Start, p.Duration)
	busy, err := s.store.FindAppointments(ctx, appointment.Query{
		BarberID:  p.BarberID,
		From:      from,
		To:        to,
		Statuses:  appointment.OccupyingStatuses(),
		ExcludeID: p.ExcludeID,
	})
	if err != nil {
		return Conflict, fmt.Errorf("check slot: %w", err)
	}

	if p.ExcludeID != 0 {
		busy = slices.DeleteFunc(busy, func(b appointment.Booked) bool {
			return b.ID == p.ExcludeID
		})
	}

	if s.policy.Conflicts(p.Start, p.Duration, busy) {
		return Conflict, nil
	}
	return Available, nil
}
