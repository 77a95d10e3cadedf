package main

import (
	"log"
	"sync"
)

// Event types tracked for operational visibility
const (
	EvtRoomCreated   = "room_created"
	EvtQuickMatched  = "quick_matched"
	EvtMatchStarted  = "match_started"
	EvtMatchFinished = "match_finished"
	EvtDisconnect    = "disconnect"
)

// Telemetry counts operational events off the hot path: Track enqueues on a
// buffered channel and a background goroutine aggregates. Counters live in
// memory only and are surfaced on the health endpoint.
type Telemetry struct {
	events chan string
	stop   chan struct{}
	wg     sync.WaitGroup

	mu       sync.RWMutex
	counters map[string]uint64
}

// NewTelemetry creates and starts the background aggregator.
func NewTelemetry() *Telemetry {
	t := &Telemetry{
		events:   make(chan string, 1024),
		stop:     make(chan struct{}),
		counters: make(map[string]uint64),
	}
	t.wg.Add(1)
	go t.run()
	return t
}

// Track enqueues an event (non-blocking; drops when the buffer is full).
func (t *Telemetry) Track(evtType string) {
	if t == nil {
		return
	}
	select {
	case t.events <- evtType:
	default:
		log.Printf("telemetry buffer full, dropping %s", evtType)
	}
}

// Counters returns a copy of the current counter values.
func (t *Telemetry) Counters() map[string]uint64 {
	if t == nil {
		return nil
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]uint64, len(t.counters))
	for k, v := range t.counters {
		out[k] = v
	}
	return out
}

// Close drains pending events and stops the aggregator.
func (t *Telemetry) Close() {
	close(t.stop)
	t.wg.Wait()
}

func (t *Telemetry) run() {
	defer t.wg.Done()
	for {
		select {
		case evt := <-t.events:
			t.mu.Lock()
			t.counters[evt]++
			t.mu.Unlock()
		case <-t.stop:
			for {
				select {
				case evt := <-t.events:
					t.mu.Lock()
					t.counters[evt]++
					t.mu.Unlock()
				default:
					return
				}
			}
		}
	}
}
