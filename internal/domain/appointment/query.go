package appointment

import "time"

// Query selects appointments of one barber whose start lies in [From, To].
type Query struct {
	BarberID  uint
	From      time.Time
	To        time.Time
	Statuses  []Status
	ExcludeID uint
}

// Booked is the slice of an appointment the scheduler needs.
type Booked struct {
	ID    uint
	Start time.Time
	End   time.Time
}

type ListQuery struct {
	CustomerID   uint
	UpcomingFrom *time.Time
	Statuses     []Status
	Limit        int
}

type DayQuery struct {
	From   time.Time
	To     time.Time
	Status Status
}
