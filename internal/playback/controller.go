package playback

import (
	"math"

	"github.com/Urooyo/lylvey/internal/logging"
	"github.com/Urooyo/lylvey/internal/lyrics"
)

// Controller bridges the media clock and the lyric timeline. It must only be
// used from the event loop goroutine.
type Controller struct {
	src      Source
	scroller *Scroller
	log      *logging.Logger

	primary Player
	// paired audio when the primary is a video; may be nil
	secondary Player

	clock    float64
	duration float64
	playing  bool
	active   int

	// OnActivate runs once per change of the active line, with the new index
	// (-1 when nothing is active).
	OnActivate func(index int)
}

func NewController(src Source, scroller *Scroller, log *logging.Logger) *Controller {
	if log == nil {
		log = logging.Nop()
	}
	return &Controller{
		src:      src,
		scroller: scroller,
		log:      log,
		active:   -1,
	}
}

// Attach wires the players in. secondary is the audio track that follows a
// video primary and is nil for plain audio.
func (c *Controller) Attach(primary, secondary Player) {
	c.primary = primary
	c.secondary = secondary
}

// Detach forgets the players and stops playback state.
func (c *Controller) Detach() {
	c.primary = nil
	c.secondary = nil
	c.playing = false
	c.duration = 0
}

// OnClockTick handles a time update from the primary player.
func (c *Controller) OnClockTick(t float64) {
	c.clock = t
	if c.secondary != nil {
		if math.Abs(c.secondary.CurrentTime()-t) > DriftTolerance {
			c.log.Debugw("resyncing paired audio", "video", t, "audio", c.secondary.CurrentTime())
			c.secondary.SetCurrentTime(t)
		}
	}
	if c.recompute() && c.active >= 0 && c.scroller != nil {
		c.scroller.ScrollTo(c.active)
	}
}

// SeekTo moves playback to t and brings the resulting line into view without
// animation. It is a no-op while no player is attached.
func (c *Controller) SeekTo(t float64) {
	if c.primary == nil {
		return
	}
	if t < 0 {
		t = 0
	}
	if c.duration > 0 && t > c.duration {
		t = c.duration
	}

	c.primary.SetCurrentTime(t)
	if c.secondary != nil {
		c.secondary.SetCurrentTime(t)
	}
	c.clock = t

	c.recompute()
	if c.active >= 0 && c.scroller != nil {
		c.scroller.JumpTo(c.active)
	}
}

// ActivateLine seeks to the start of the line at index in the current order.
func (c *Controller) ActivateLine(index int) error {
	line, err := lyrics.NewTimeline(c.src.Lines()).At(index)
	if err != nil {
		return err
	}
	c.SeekTo(line.Start)
	return nil
}

// Refresh re-evaluates the active line after the timeline changed.
func (c *Controller) Refresh() {
	if c.recompute() && c.active >= 0 && c.scroller != nil {
		c.scroller.ScrollTo(c.active)
	}
}

func (c *Controller) OnDurationChange(d float64) {
	c.duration = d
}

func (c *Controller) OnPlay() {
	c.playing = true
}

func (c *Controller) OnPause() {
	c.playing = false
}

func (c *Controller) OnEnded() {
	c.playing = false
	if c.secondary != nil {
		c.secondary.Pause()
	}
}

// Play starts both players. A refused start is logged and leaves the
// controller paused.
func (c *Controller) Play() {
	if c.primary == nil {
		return
	}
	if err := c.primary.Play(); err != nil {
		c.log.Warnw("playback start rejected", "error", err)
		c.playing = false
		return
	}
	if c.secondary != nil {
		if err := c.secondary.Play(); err != nil {
			c.log.Warnw("paired audio start rejected", "error", err)
			c.primary.Pause()
			c.playing = false
			return
		}
	}
	c.playing = true
}

func (c *Controller) Pause() {
	if c.primary == nil {
		return
	}
	c.primary.Pause()
	if c.secondary != nil {
		c.secondary.Pause()
	}
	c.playing = false
}

func (c *Controller) TogglePlay() {
	if c.playing {
		c.Pause()
	} else {
		c.Play()
	}
}

func (c *Controller) Clock() float64    { return c.clock }
func (c *Controller) Duration() float64 { return c.duration }
func (c *Controller) Playing() bool     { return c.playing }
func (c *Controller) Active() int       { return c.active }
func (c *Controller) Attached() bool    { return c.primary != nil }

// Close stops pending scroll work.
func (c *Controller) Close() {
	if c.scroller != nil {
		c.scroller.Close()
	}
}

// recompute refreshes the active index from a freshly sorted view and
// reports whether it changed.
func (c *Controller) recompute() bool {
	index := lyrics.ActiveIndex(c.clock, lyrics.Sort(c.src.Lines()))
	if index == c.active {
		return false
	}
	c.active = index
	if c.OnActivate != nil {
		c.OnActivate(index)
	}
	return true
}
