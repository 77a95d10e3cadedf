package main

import (
	"testing"
	"time"
)

func TestTimerFiresAtDeadline(t *testing.T) {
	clock := &testClock{t: time.Unix(0, 0)}
	reg := NewTimerRegistry(clock.Now)

	fired := false
	reg.After(100*time.Millisecond, func() { fired = true })

	reg.RunDue()
	if fired {
		t.Fatal("timer fired before its deadline")
	}

	clock.Advance(99 * time.Millisecond)
	reg.RunDue()
	if fired {
		t.Fatal("timer fired early")
	}

	clock.Advance(time.Millisecond)
	reg.RunDue()
	if !fired {
		t.Fatal("timer did not fire at its deadline")
	}
	if reg.Pending() != 0 {
		t.Errorf("pending = %d after firing, want 0", reg.Pending())
	}
}

func TestRunDueFiresInDeadlineOrder(t *testing.T) {
	clock := &testClock{t: time.Unix(0, 0)}
	reg := NewTimerRegistry(clock.Now)

	var order []int
	reg.After(30*time.Millisecond, func() { order = append(order, 3) })
	reg.After(10*time.Millisecond, func() { order = append(order, 1) })
	reg.After(20*time.Millisecond, func() { order = append(order, 2) })

	clock.Advance(50 * time.Millisecond)
	reg.RunDue()

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("fire order = %v, want [1 2 3]", order)
	}
}

func TestCancelDropsEvent(t *testing.T) {
	clock := &testClock{t: time.Unix(0, 0)}
	reg := NewTimerRegistry(clock.Now)

	fired := false
	id := reg.After(10*time.Millisecond, func() { fired = true })
	other := false
	reg.After(10*time.Millisecond, func() { other = true })

	reg.Cancel(id)
	reg.Cancel(9999) // unknown ids are ignored

	clock.Advance(20 * time.Millisecond)
	reg.RunDue()
	if fired {
		t.Error("cancelled timer fired")
	}
	if !other {
		t.Error("unrelated timer should still fire")
	}
}

func TestCancelAll(t *testing.T) {
	clock := &testClock{t: time.Unix(0, 0)}
	reg := NewTimerRegistry(clock.Now)

	n := 0
	for i := 0; i < 5; i++ {
		reg.After(time.Millisecond, func() { n++ })
	}
	reg.CancelAll()
	if reg.Pending() != 0 {
		t.Fatalf("pending = %d after CancelAll", reg.Pending())
	}

	clock.Advance(time.Second)
	reg.RunDue()
	if n != 0 {
		t.Errorf("%d cancelled timers fired", n)
	}
}

func TestCallbackScheduledEventWaitsForNextRun(t *testing.T) {
	clock := &testClock{t: time.Unix(0, 0)}
	reg := NewTimerRegistry(clock.Now)

	inner := false
	reg.After(0, func() {
		reg.After(0, func() { inner = true })
	})

	clock.Advance(time.Millisecond)
	reg.RunDue()
	if inner {
		t.Fatal("event scheduled by a callback must not run in the same pass")
	}
	reg.RunDue()
	if !inner {
		t.Error("event should run on the following pass")
	}
}

func TestCallbackMayCancelSibling(t *testing.T) {
	clock := &testClock{t: time.Unix(0, 0)}
	reg := NewTimerRegistry(clock.Now)

	fired := false
	var siblingID int
	reg.After(time.Millisecond, func() { reg.Cancel(siblingID) })
	siblingID = reg.After(time.Hour, func() { fired = true })

	clock.Advance(2 * time.Millisecond)
	reg.RunDue()
	clock.Advance(2 * time.Hour)
	reg.RunDue()
	if fired {
		t.Error("sibling cancelled mid-pass still fired")
	}
}

func TestNowUsesInjectedClock(t *testing.T) {
	clock := &testClock{t: time.Unix(42, 0)}
	reg := NewTimerRegistry(clock.Now)
	if !reg.Now().Equal(time.Unix(42, 0)) {
		t.Error("registry should report the injected clock's time")
	}
}
