// Package eventloop runs callbacks one at a time on a single goroutine.
//
// Everything that touches session or playback state (clock ticks, timer
// expiry, animation frames, user commands) is posted here, so that state
// needs no locking. Other goroutines only ever call Post.
package eventloop

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Urooyo/lylvey/internal/logging"
)

// Timer is a pending callback that can be cancelled.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped it, false if it already ran or was stopped.
	Stop() bool
}

// Scheduler is the clock and timer source used by playback code.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

const queueSize = 64

type Loop struct {
	tasks chan func()
	done  chan struct{}
	once  sync.Once
	log   *logging.Logger
}

func New(log *logging.Logger) *Loop {
	if log == nil {
		log = logging.Nop()
	}
	return &Loop{
		tasks: make(chan func(), queueSize),
		done:  make(chan struct{}),
		log:   log,
	}
}

// Post queues f to run on the loop goroutine. It returns false once the
// loop has stopped; f is dropped in that case.
func (l *Loop) Post(f func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}

	select {
	case l.tasks <- f:
		return true
	case <-l.done:
		return false
	}
}

// Run executes posted callbacks until ctx is cancelled or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	defer l.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return nil
		case f := <-l.tasks:
			f()
		}
	}
}

// Stop ends Run. Pending callbacks are discarded.
func (l *Loop) Stop() {
	l.once.Do(func() {
		close(l.done)
		l.log.Debugw("event loop stopped")
	})
}

func (l *Loop) Now() time.Time {
	return time.Now()
}

// AfterFunc runs f on the loop goroutine once d has elapsed.
func (l *Loop) AfterFunc(d time.Duration, f func()) Timer {
	t := &loopTimer{}
	t.inner = time.AfterFunc(d, func() {
		l.Post(func() {
			if t.fired.CompareAndSwap(false, true) {
				f()
			}
		})
	})
	return t
}

type loopTimer struct {
	inner *time.Timer
	// set when the callback ran or the timer was stopped
	fired atomic.Bool
}

func (t *loopTimer) Stop() bool {
	t.inner.Stop()
	return t.fired.CompareAndSwap(false, true)
}
