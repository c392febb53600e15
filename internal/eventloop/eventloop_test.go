package eventloop

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLoopRunsPostedCallbacksInOrder(t *testing.T) {
	loop := New(nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var got []int
	for i := range 3 {
		loop.Post(func() { got = append(got, i) })
	}
	loop.Post(loop.Stop)

	if err := loop.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(got) != 3 || got[0] != 0 || got[1] != 1 || got[2] != 2 {
		t.Errorf("expected [0 1 2], got %v", got)
	}
}

func TestLoopStopsOnContextCancel(t *testing.T) {
	loop := New(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := loop.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if loop.Post(func() {}) {
		t.Error("expected Post to fail after the loop stopped")
	}
}

func TestLoopAfterFuncFiresOnLoop(t *testing.T) {
	loop := New(nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	fired := false
	loop.AfterFunc(10*time.Millisecond, func() {
		fired = true
		loop.Stop()
	})

	if err := loop.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !fired {
		t.Error("expected timer callback to run")
	}
}

func TestLoopTimerStop(t *testing.T) {
	loop := New(nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	fired := false
	timer := loop.AfterFunc(20*time.Millisecond, func() { fired = true })
	if !timer.Stop() {
		t.Error("expected first Stop to report true")
	}
	if timer.Stop() {
		t.Error("expected second Stop to report false")
	}
	loop.AfterFunc(60*time.Millisecond, loop.Stop)

	if err := loop.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if fired {
		t.Error("stopped timer fired")
	}
}

func TestManualAdvance(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewManual(start)

	var order []string
	m.AfterFunc(2*time.Second, func() { order = append(order, "b") })
	m.AfterFunc(time.Second, func() {
		order = append(order, "a")
		m.AfterFunc(500*time.Millisecond, func() { order = append(order, "a2") })
	})
	late := m.AfterFunc(10*time.Second, func() { order = append(order, "late") })

	m.Advance(3 * time.Second)

	expected := []string{"a", "a2", "b"}
	if len(order) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, order)
	}
	for i := range expected {
		if order[i] != expected[i] {
			t.Errorf("expected %v, got %v", expected, order)
			break
		}
	}
	if !m.Now().Equal(start.Add(3 * time.Second)) {
		t.Errorf("expected clock at +3s, got %v", m.Now().Sub(start))
	}
	if m.Pending() != 1 {
		t.Errorf("expected 1 pending timer, got %d", m.Pending())
	}
	if !late.Stop() || m.Pending() != 0 {
		t.Error("expected Stop to remove the pending timer")
	}
}

func TestManualCallbackSeesDeadlineAsNow(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewManual(start)

	var seen time.Duration
	m.AfterFunc(700*time.Millisecond, func() { seen = m.Now().Sub(start) })
	m.Advance(time.Second)

	if seen != 700*time.Millisecond {
		t.Errorf("expected 700ms, got %v", seen)
	}
}
