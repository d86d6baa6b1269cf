package audit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	ActionAppointmentCreated     = "appointment.created"
	ActionAppointmentCancelled   = "appointment.cancelled"
	ActionAppointmentRescheduled = "appointment.rescheduled"
	ActionAppointmentStatus      = "appointment.status_changed"
	ActionRatingCreated          = "rating.created"
	ActionCustomerRegistered     = "customer.registered"
	ActionCustomerUpdated        = "customer.profile_updated"
	ActionPasswordChanged        = "customer.password_changed"
)

const DefaultQueueSize = 100

// recordTimeout bounds a single sink write from the worker.
const recordTimeout = 5 * time.Second

type Event struct {
	ActorID   *uint
	ActorRole string
	Action    string
	Entity    string
	EntityID  *uint
	Metadata  any
}

type Sink interface {
	Record(ctx context.Context, ev Event) error
}

// Dispatcher hands events to a Sink on a background worker. Dispatch never
// blocks: when the queue is full the event is dropped and logged. A nil
// *Dispatcher is valid and discards everything.
type Dispatcher struct {
	sink  Sink
	queue chan Event
	done  chan struct{}

	mu     sync.RWMutex
	closed bool

	dropped atomic.Int64
}

func NewDispatcher(sink Sink, size int) *Dispatcher {
	if size <= 0 {
		size = DefaultQueueSize
	}

	d := &Dispatcher{
		sink:  sink,
		queue: make(chan Event, size),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		if err := d.sink.Record(ctx, ev); err != nil {
			log.Error().Err(err).Str("action", ev.Action).Msg("audit record failed")
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.dropped.Add(1)
		log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}

// Dropped reports how many events were discarded because the queue was full.
func (d *Dispatcher) Dropped() int64 {
	if d == nil {
		return 0
	}
	return d.dropped.Load()
}

// Close stops accepting events and waits for the queue to drain.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.done
}

// Ref returns a pointer to a copy of id, for the optional Event fields.
func Ref(id uint) *uint {
	return &id
}
