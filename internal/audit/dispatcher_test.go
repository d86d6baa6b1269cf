package audit_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
)

type recordingSink struct {
	mu     sync.Mutex
	events []audit.Event
	err    error

	// gate, when set, blocks Record until it is closed.
	gate chan struct{}
}

func (s *recordingSink) Record(_ context.Context, ev audit.Event) error {
	if s.gate != nil {
		<-s.gate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.err
}

func (s *recordingSink) Events() []audit.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]audit.Event(nil), s.events...)
}

func TestDispatcher_DeliversInOrder(t *testing.T) {
	sink := &recordingSink{}
	d := audit.NewDispatcher(sink, 10)

	d.Dispatch(audit.Event{Action: audit.ActionAppointmentCreated, EntityID: audit.Ref(1)})
	d.Dispatch(audit.Event{Action: audit.ActionAppointmentCancelled, EntityID: audit.Ref(1)})
	d.Close()

	events := sink.Events()
	require.Len(t, events, 2)
	assert.Equal(t, audit.ActionAppointmentCreated, events[0].Action)
	assert.Equal(t, audit.ActionAppointmentCancelled, events[1].Action)
	assert.Equal(t, uint(1), *events[1].EntityID)
}

func TestDispatcher_SinkErrorsDoNotStopWorker(t *testing.T) {
	sink := &recordingSink{err: errors.New("db down")}
	d := audit.NewDispatcher(sink, 10)

	d.Dispatch(audit.Event{Action: "a"})
	d.Dispatch(audit.Event{Action: "b"})
	d.Close()

	assert.Len(t, sink.Events(), 2)
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	sink := &recordingSink{gate: make(chan struct{})}
	d := audit.NewDispatcher(sink, 1)

	for range 3 {
		d.Dispatch(audit.Event{Action: "x"})
	}

	assert.GreaterOrEqual(t, d.Dropped(), int64(1))

	close(sink.gate)
	d.Close()
	assert.Equal(t, int64(3), int64(len(sink.Events()))+d.Dropped())
}

func TestDispatcher_AfterCloseAndNil(t *testing.T) {
	sink := &recordingSink{}
	d := audit.NewDispatcher(sink, 1)
	d.Close()
	d.Close()

	assert.NotPanics(t, func() { d.Dispatch(audit.Event{Action: "late"}) })
	assert.Empty(t, sink.Events())

	var nilD *audit.Dispatcher
	assert.NotPanics(t, func() {
		nilD.Dispatch(audit.Event{Action: "x"})
		nilD.Close()
	})
	assert.Zero(t, nilD.Dropped())
}
