package main

import (
	"sort"
	"time"
)

// TimerRegistry tracks every delayed callback scheduled for a room so the
// whole set can be cancelled at once on round reset or teardown. Events do
// not run on their own goroutines: the room loop calls RunDue each tick and
// fires whatever is due, which keeps a single source of ticking truth and
// makes the registry deterministic under an injected clock.
type TimerRegistry struct {
	now    func() time.Time
	nextID int
	events map[int]*timedEvent
}

type timedEvent struct {
	at time.Time
	fn func()
}

// NewTimerRegistry creates a registry using the given clock.
// Pass nil for time.Now.
func NewTimerRegistry(now func() time.Time) *TimerRegistry {
	if now == nil {
		now = time.Now
	}
	return &TimerRegistry{
		now:    now,
		events: make(map[int]*timedEvent),
	}
}

// Now returns the registry's current time.
func (t *TimerRegistry) Now() time.Time {
	return t.now()
}

// After schedules fn to run once d from now and returns its id.
func (t *TimerRegistry) After(d time.Duration, fn func()) int {
	t.nextID++
	id := t.nextID
	t.events[id] = &timedEvent{at: t.now().Add(d), fn: fn}
	return id
}

// Cancel drops a pending event. Unknown ids are ignored.
func (t *TimerRegistry) Cancel(id int) {
	delete(t.events, id)
}

// CancelAll drops every pending event.
func (t *TimerRegistry) CancelAll() {
	t.events = make(map[int]*timedEvent)
}

// Pending returns the number of scheduled events.
func (t *TimerRegistry) Pending() int {
	return len(t.events)
}

// RunDue fires all events whose deadline has passed, in deadline order.
// Callbacks may schedule further events; those run no earlier than the
// next call.
func (t *TimerRegistry) RunDue() {
	if len(t.events) == 0 {
		return
	}
	now := t.now()
	var due []int
	for id, ev := range t.events {
		if !ev.at.After(now) {
			due = append(due, id)
		}
	}
	if len(due) == 0 {
		return
	}
	sort.Slice(due, func(i, j int) bool {
		return t.events[due[i]].at.Before(t.events[due[j]].at)
	})
	fns := make([]func(), 0, len(due))
	for _, id := range due {
		fns = append(fns, t.events[id].fn)
		delete(t.events, id)
	}
	for _, fn := range fns {
		fn()
	}
}
