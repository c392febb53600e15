// Package subtitle reads and writes the SubRip (.srt) interchange format.
package subtitle

import (
	"errors"

	"github.com/Urooyo/lylvey/internal/lyrics"
)

const (
	// file name offered when exporting
	DefaultFilename = "lyrics.srt"

	// DefaultLineDuration is the length, in seconds, given on export to a
	// line that has no end time. It is a fixed policy: an open line in the
	// editor means "until the next line", which SubRip cannot express.
	DefaultLineDuration = 5.0
)

// MaxSeconds is the first time the HH:MM:SS,mmm timing line cannot hold.
const MaxSeconds = 100 * 3600

var (
	// returned when a line's text would split its block in two
	ErrBlankLineInText = lyrics.ErrBlankLineInText
	// returned for a line whose block would be dropped on reading
	ErrEmptyText = lyrics.ErrEmptyText
	// returned for a negative time or one of 100 hours or more
	ErrTimeOutOfRange = errors.New("time outside 00:00:00,000 to 99:59:59,999")
)

// describes a block that Scan dropped
type SkippedBlock struct {
	Number int // 1-based position of the block in the document
	Reason string
}
