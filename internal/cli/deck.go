package cli

import (
	"context"
	"time"

	"github.com/Urooyo/lylvey/internal/eventloop"
	"github.com/Urooyo/lylvey/internal/media"
	"github.com/Urooyo/lylvey/internal/playback"
)

const durationTimeout = 10 * time.Second

// deck stands in for the media elements: one simulated player, plus a paired
// one when the media is a video.
type deck struct {
	sched    eventloop.Scheduler
	ctrl     *playback.Controller
	interval time.Duration
	speed    float64

	primary   *playback.SimulatedPlayer
	secondary *playback.SimulatedPlayer
	// media whose duration lookup is still running
	pending *media.Reference

	// hands work back to the loop goroutine; nil measures inline
	post     func(func()) bool
	onLoaded func()
	onEnded  func()
}

func newDeck(sched eventloop.Scheduler, ctrl *playback.Controller, interval time.Duration, speed float64) *deck {
	if speed <= 0 {
		speed = 1
	}
	return &deck{sched: sched, ctrl: ctrl, interval: interval, speed: speed}
}

// load attaches players for ref. duration is read with ffprobe; fallback is
// used when that fails. With post set the lookup runs off the loop and the
// players are attached by a posted callback, unless another load or unload
// came first.
func (d *deck) load(ctx context.Context, ref *media.Reference, fallback float64) {
	d.unload()
	if ref == nil {
		return
	}
	d.pending = ref

	if d.post == nil {
		d.attach(ref, measureDuration(ctx, ref, fallback))
		return
	}
	go func() {
		duration := measureDuration(ctx, ref, fallback)
		d.post(func() {
			if d.pending != ref {
				logger.Debugw("Dropped stale media duration", "media", ref.Name())
				return
			}
			d.attach(ref, duration)
		})
	}()
}

func measureDuration(ctx context.Context, ref *media.Reference, fallback float64) float64 {
	lookupCtx, cancel := context.WithTimeout(ctx, durationTimeout)
	defer cancel()
	measured, err := media.ProbeDuration(lookupCtx, ref)
	if err != nil {
		logger.Warnw("Could not read media duration", "media", ref.Name(), "error", err)
		return fallback
	}
	return measured.Seconds()
}

func (d *deck) attach(ref *media.Reference, duration float64) {
	d.pending = nil
	d.primary = d.newPlayer(duration)
	d.primary.OnTick = d.ctrl.OnClockTick
	d.primary.OnEnded = d.ended

	var secondary playback.Player
	if ref.IsVideo() {
		d.secondary = d.newPlayer(duration)
		secondary = d.secondary
	}

	d.ctrl.Attach(d.primary, secondary)
	d.ctrl.OnDurationChange(duration)
	logger.Debugw("Attached players", "media", ref.Name(), "duration", duration, "paired", ref.IsVideo())
	if d.onLoaded != nil {
		d.onLoaded()
	}
}

func (d *deck) ended() {
	d.ctrl.OnEnded()
	if d.onEnded != nil {
		d.onEnded()
	}
}

// loadClock attaches a bare clock for previews without a media file.
func (d *deck) loadClock(duration float64) {
	d.unload()
	d.primary = d.newPlayer(duration)
	d.primary.OnTick = d.ctrl.OnClockTick
	d.primary.OnEnded = d.ended
	d.ctrl.Attach(d.primary, nil)
	d.ctrl.OnDurationChange(duration)
	if d.onLoaded != nil {
		d.onLoaded()
	}
}

func (d *deck) unload() {
	if d.primary != nil {
		d.primary.Pause()
	}
	if d.secondary != nil {
		d.secondary.Pause()
	}
	d.primary, d.secondary, d.pending = nil, nil, nil
	d.ctrl.Detach()
}

func (d *deck) newPlayer(duration float64) *playback.SimulatedPlayer {
	p := playback.NewSimulatedPlayer(d.sched, d.interval)
	p.Speed = d.speed
	p.SetDuration(duration)
	return p
}
