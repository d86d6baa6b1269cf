package scheduler

import (
	"iter"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
)

const SlotLabelLayout = "3:04 PM"

type Slot struct {
	Start     time.Time `json:"time"`
	Label     string    `json:"display"`
	Available bool      `json:"available"`
}

// Candidates yields every slot start of day's calendar date, 09:00 through
// 18:30, in day's location.
func Candidates(day time.Time) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		y, m, d := day.Date()
		step := int(SlotLength / time.Minute)

		for i := range SlotsPerDay {
			t := time.Date(y, m, d, OpeningHour, i*step, 0, 0, day.Location())
			if !yield(t) {
				return
			}
		}
	}
}

// Slots yields the free slots of day in ascending order. The sequence is pure
// and can be ranged over any number of times.
func (p Policy) Slots(day, now time.Time, busy []appointment.Booked) iter.Seq[Slot] {
	return func(yield func(Slot) bool) {
		for t := range Candidates(day) {
			if !t.After(now) {
				continue
			}
			if p.Conflicts(t, SlotLength, busy) {
				continue
			}

			slot := Slot{
				Start:     t,
				Label:     t.Format(SlotLabelLayout),
				Available: true,
			}
			if !yield(slot) {
				return
			}
		}
	}
}

func collect(seq iter.Seq[Slot]) []Slot {
	out := make([]Slot, 0, SlotsPerDay)
	for s := range seq {
		out = append(out, s)
	}
	return out
}
