package playback

import (
	"testing"
	"time"

	"github.com/Urooyo/lylvey/internal/eventloop"
)

func TestSimulatedPlayerTicksAndEnds(t *testing.T) {
	sched := eventloop.NewManual(epoch)
	p := NewSimulatedPlayer(sched, 250*time.Millisecond)
	p.SetDuration(1)

	var ticks []float64
	ended := false
	p.OnTick = func(t float64) { ticks = append(ticks, t) }
	p.OnEnded = func() { ended = true }

	if err := p.Play(); err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	sched.Advance(2 * time.Second)

	if len(ticks) != 4 || ticks[0] != 0.25 || ticks[3] != 1 {
		t.Errorf("expected ticks every 0.25s up to 1, got %v", ticks)
	}
	if !ended || p.Playing() {
		t.Error("expected playback to end at the duration")
	}
	if sched.Pending() != 0 {
		t.Errorf("expected no timers after the end, got %d", sched.Pending())
	}
}

func TestSimulatedPlayerSpeedAndSeek(t *testing.T) {
	sched := eventloop.NewManual(epoch)
	p := NewSimulatedPlayer(sched, time.Second)
	p.Speed = 2

	_ = p.Play()
	sched.Advance(500 * time.Millisecond)
	if got := p.CurrentTime(); got != 1 {
		t.Errorf("expected 1s at double speed, got %v", got)
	}

	p.SetCurrentTime(10)
	sched.Advance(500 * time.Millisecond)
	if got := p.CurrentTime(); got != 11 {
		t.Errorf("expected 11 after seek, got %v", got)
	}

	p.Pause()
	sched.Advance(time.Second)
	if got := p.CurrentTime(); got != 11 {
		t.Errorf("expected position frozen while paused, got %v", got)
	}
	if sched.Pending() != 0 {
		t.Errorf("expected tick timer cancelled on pause, got %d", sched.Pending())
	}
}

func TestSimulatedPlayerDrivesController(t *testing.T) {
	r := newRig(sample())
	player := NewSimulatedPlayer(r.sched, 250*time.Millisecond)
	player.SetDuration(9)
	player.OnTick = r.ctrl.OnClockTick
	player.OnEnded = r.ctrl.OnEnded
	r.ctrl.Attach(player, nil)
	r.ctrl.OnDurationChange(player.Duration())

	r.ctrl.Play()
	r.sched.Advance(10 * time.Second)

	expected := []int{0, 1, 2}
	if len(r.activated) != len(expected) {
		t.Fatalf("expected activations %v, got %v", expected, r.activated)
	}
	if r.ctrl.Playing() {
		t.Error("expected controller paused after the end")
	}
}
