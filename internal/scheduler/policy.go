package scheduler

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
)

const (
	OpeningHour = 9
	ClosingHour = 19

	SlotLength  = 30 * time.Minute
	SlotsPerDay = int((ClosingHour - OpeningHour) * time.Hour / SlotLength)

	DefaultConflictBuffer = 29 * time.Minute

	// MaxServiceDuration bounds how early an overlapping appointment may start.
	MaxServiceDuration = 180 * time.Minute
)

type ConflictMode string

const (
	// ConflictBuffer treats two appointments as colliding when their starts are
	// within Policy.Buffer of each other, whatever their durations.
	ConflictBuffer ConflictMode = "buffer"
	// ConflictOverlap uses real half-open interval overlap of [start, end).
	ConflictOverlap ConflictMode = "overlap"
)

func ParseConflictMode(s string) (ConflictMode, error) {
	switch m := ConflictMode(s); m {
	case ConflictBuffer, ConflictOverlap:
		return m, nil
	case "":
		return ConflictBuffer, nil
	}
	return "", fmt.Errorf("unknown conflict mode %q", s)
}

type Policy struct {
	Mode   ConflictMode
	Buffer time.Duration

	// RequireEndWithinHours additionally rejects bookings ending after closing.
	RequireEndWithinHours bool
}

func DefaultPolicy() Policy {
	return Policy{
		Mode:   ConflictBuffer,
		Buffer: DefaultConflictBuffer,
	}
}

func (p Policy) normalized() Policy {
	if p.Mode == "" {
		p.Mode = ConflictBuffer
	}
	if p.Buffer <= 0 {
		p.Buffer = DefaultConflictBuffer
	}
	return p
}

// Conflicts reports whether a booking at start for duration collides with any
// of busy.
func (p Policy) Conflicts(start time.Time, duration time.Duration, busy []appointment.Booked) bool {
	for _, b := range busy {
		if p.conflictsWith(start, duration, b) {
			return true
		}
	}
	return false
}

func (p Policy) conflictsWith(start time.Time, duration time.Duration, b appointment.Booked) bool {
	if p.Mode == ConflictOverlap {
		end := b.End
		if !end.After(b.Start) {
			end = b.Start.Add(SlotLength)
		}
		return start.Before(end) && b.Start.Before(start.Add(duration))
	}

	d := start.Sub(b.Start)
	if d < 0 {
		d = -d
	}
	return d <= p.Buffer
}

// WithinBusinessHours checks the local start hour against [OpeningHour, ClosingHour).
func (p Policy) WithinBusinessHours(start time.Time, duration time.Duration, loc *time.Location) bool {
	local := start.In(loc)
	if h := local.Hour(); h < OpeningHour || h >= ClosingHour {
		return false
	}

	if p.RequireEndWithinHours {
		closing := time.Date(local.Year(), local.Month(), local.Day(), ClosingHour, 0, 0, 0, loc)
		return !local.Add(duration).After(closing)
	}

	return true
}

// window is the range of appointment starts that can possibly collide with a
// booking at start.
func (p Policy) window(start time.Time, duration time.Duration) (time.Time, time.Time) {
	if p.Mode == ConflictOverlap {
		return start.Add(-MaxServiceDuration), start.Add(duration)
	}
	return start.Add(-p.Buffer), start.Add(p.Buffer)
}
