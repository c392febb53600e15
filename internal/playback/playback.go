// Package playback keeps the highlighted lyric line in step with an
// external media clock and scrolls the lyric list to follow it.
package playback

import "github.com/Urooyo/lylvey/internal/lyrics"

// drift between the paired players that triggers a resync, in seconds
const DriftTolerance = 0.5

// Player is the external media element. Times are in seconds.
type Player interface {
	CurrentTime() float64
	SetCurrentTime(t float64)
	// Play may be refused by the platform.
	Play() error
	Pause()
}

// Viewport is the scrollable lyric list.
type Viewport interface {
	ScrollOffset() float64
	SetScrollOffset(offset float64)
	// OffsetOf returns the scroll offset that centres the line at index.
	// ok is false when the line is not laid out.
	OffsetOf(index int) (offset float64, ok bool)
}

// Source hands out the current lines of the editing session.
type Source interface {
	Lines() []lyrics.Line
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func() []lyrics.Line

func (f SourceFunc) Lines() []lyrics.Line { return f() }
