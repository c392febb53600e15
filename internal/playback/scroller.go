package playback

import (
	"math"
	"time"

	"github.com/Urooyo/lylvey/internal/eventloop"
	"github.com/Urooyo/lylvey/internal/logging"
)

const (
	ScrollDuration     = 800 * time.Millisecond
	FrameInterval      = time.Second / 30
	MinScrollDistance  = 10.0
	UserScrollCooldown = 5 * time.Second
)

// Scroller owns the viewport's scroll offset. At most one animation and one
// resume timer exist at any time.
type Scroller struct {
	view  Viewport
	sched eventloop.Scheduler
	log   *logging.Logger

	frame  eventloop.Timer
	resume eventloop.Timer
	// manual browsing in progress; automatic scrolling waits for the cooldown
	userScrolling bool
	disabled      bool
	instant       bool
}

func NewScroller(view Viewport, sched eventloop.Scheduler, log *logging.Logger) *Scroller {
	if log == nil {
		log = logging.Nop()
	}
	return &Scroller{view: view, sched: sched, log: log}
}

// ScrollTo animates the viewport towards the line at index. It does nothing
// while the user is browsing, when auto-scroll is off, or when the line is
// already within MinScrollDistance of the target.
func (s *Scroller) ScrollTo(index int) {
	if s.disabled || s.userScrolling {
		return
	}
	target, ok := s.view.OffsetOf(index)
	if !ok {
		return
	}

	s.cancelAnimation()

	from := s.view.ScrollOffset()
	distance := target - from
	if math.Abs(distance) < MinScrollDistance {
		return
	}

	if s.instant {
		s.view.SetScrollOffset(target)
		return
	}

	started := s.sched.Now()
	var step func()
	step = func() {
		progress := float64(s.sched.Now().Sub(started)) / float64(ScrollDuration)
		if progress > 1 {
			progress = 1
		}
		s.view.SetScrollOffset(from + distance*easeOutQuint(progress))
		if progress < 1 {
			s.frame = s.sched.AfterFunc(FrameInterval, step)
		} else {
			s.frame = nil
		}
	}
	s.frame = s.sched.AfterFunc(FrameInterval, step)
}

// JumpTo moves the viewport to the line at once, cancelling any animation.
// It ignores the user-scroll cooldown since it always follows a user action.
func (s *Scroller) JumpTo(index int) {
	s.cancelAnimation()
	if target, ok := s.view.OffsetOf(index); ok {
		s.view.SetScrollOffset(target)
	}
}

// UserScrolled records manual scrolling: the running animation stops and
// automatic scrolling pauses until UserScrollCooldown passes without further
// manual scrolling.
func (s *Scroller) UserScrolled() {
	s.cancelAnimation()
	s.userScrolling = true
	if s.resume != nil {
		s.resume.Stop()
	}
	s.resume = s.sched.AfterFunc(UserScrollCooldown, func() {
		s.userScrolling = false
		s.resume = nil
		s.log.Debugw("auto scroll resumed")
	})
}

// Resume ends the cooldown early.
func (s *Scroller) Resume() {
	if s.resume != nil {
		s.resume.Stop()
		s.resume = nil
	}
	s.userScrolling = false
	s.disabled = false
}

func (s *Scroller) SetAutoScroll(enabled bool) {
	s.disabled = !enabled
	if !enabled {
		s.cancelAnimation()
	}
}

// SetAnimated chooses between the eased animation and a plain jump.
func (s *Scroller) SetAnimated(animated bool) {
	s.instant = !animated
}

func (s *Scroller) Animating() bool  { return s.frame != nil }
func (s *Scroller) Suppressed() bool { return s.userScrolling || s.disabled }

// Close cancels the animation and the resume timer.
func (s *Scroller) Close() {
	s.cancelAnimation()
	if s.resume != nil {
		s.resume.Stop()
		s.resume = nil
	}
}

func (s *Scroller) cancelAnimation() {
	if s.frame != nil {
		s.frame.Stop()
		s.frame = nil
	}
}

func easeOutQuint(t float64) float64 {
	return 1 - math.Pow(1-t, 5)
}
