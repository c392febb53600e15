package playback

import (
	"time"

	"github.com/Urooyo/lylvey/internal/eventloop"
)

// SimulatedPlayer is a Player driven by a Scheduler instead of a decoder. It
// advances at Speed times real time and reports its position every Interval
// through OnTick, the way a media element fires time updates.
type SimulatedPlayer struct {
	sched    eventloop.Scheduler
	Interval time.Duration
	Speed    float64

	// 0 means unbounded
	duration float64
	pos      float64
	since    time.Time
	playing  bool
	tick     eventloop.Timer

	OnTick  func(t float64)
	OnEnded func()
}

func NewSimulatedPlayer(sched eventloop.Scheduler, interval time.Duration) *SimulatedPlayer {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	return &SimulatedPlayer{sched: sched, Interval: interval, Speed: 1}
}

func (p *SimulatedPlayer) SetDuration(d float64) {
	p.duration = d
	p.pos = p.clamp(p.pos)
}

func (p *SimulatedPlayer) Duration() float64 { return p.duration }

func (p *SimulatedPlayer) Playing() bool { return p.playing }

func (p *SimulatedPlayer) CurrentTime() float64 {
	if !p.playing {
		return p.pos
	}
	elapsed := p.sched.Now().Sub(p.since).Seconds() * p.Speed
	return p.clamp(p.pos + elapsed)
}

func (p *SimulatedPlayer) SetCurrentTime(t float64) {
	p.pos = p.clamp(t)
	p.since = p.sched.Now()
}

// Play restarts from the beginning when the end was already reached.
func (p *SimulatedPlayer) Play() error {
	if p.playing {
		return nil
	}
	if p.duration > 0 && p.pos >= p.duration {
		p.pos = 0
	}
	p.playing = true
	p.since = p.sched.Now()
	p.schedule()
	return nil
}

func (p *SimulatedPlayer) Pause() {
	if !p.playing {
		return
	}
	p.pos = p.CurrentTime()
	p.playing = false
	if p.tick != nil {
		p.tick.Stop()
		p.tick = nil
	}
}

func (p *SimulatedPlayer) schedule() {
	p.tick = p.sched.AfterFunc(p.Interval, p.onTick)
}

func (p *SimulatedPlayer) onTick() {
	p.tick = nil
	if !p.playing {
		return
	}
	t := p.CurrentTime()
	if p.OnTick != nil {
		p.OnTick(t)
	}
	if p.duration > 0 && t >= p.duration {
		p.pos = p.duration
		p.playing = false
		if p.OnEnded != nil {
			p.OnEnded()
		}
		return
	}
	p.schedule()
}

func (p *SimulatedPlayer) clamp(t float64) float64 {
	if t < 0 {
		return 0
	}
	if p.duration > 0 && t > p.duration {
		return p.duration
	}
	return t
}
