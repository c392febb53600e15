// Package timecode converts between seconds and the two clock notations used
// by the editor: its own HH:MM:SS.mmm and the SubRip HH:MM:SS,mmm.
package timecode

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var ErrInvalidFormat = errors.New("time must be HH:MM:SS.mmm")

var editorPattern = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{3}$`)

// float error tolerated when truncating to whole milliseconds
const msEpsilon = 1e-6

// Format renders seconds as HH:MM:SS.mmm, truncating below the millisecond.
// Negative input is not sanitized.
func Format(seconds float64) string {
	return format(seconds, '.')
}

// FormatInterchange renders seconds as HH:MM:SS,mmm. Hours do not wrap at 24.
func FormatInterchange(seconds float64) string {
	return format(seconds, ',')
}

func format(seconds float64, sep byte) string {
	total := int64(math.Floor(seconds*1000 + msEpsilon))
	hours := total / 3_600_000
	minutes := (total % 3_600_000) / 60_000
	secs := (total % 60_000) / 1000
	millis := total % 1000

	return fmt.Sprintf("%02d:%02d:%02d%c%03d", hours, minutes, secs, sep, millis)
}

// Valid reports whether s has exactly the HH:MM:SS.mmm shape.
func Valid(s string) bool {
	return editorPattern.MatchString(s)
}

// Parse computes H*3600+M*60+S+ms/1000 from HH:MM:SS.mmm without checking
// the shape; unreadable fields count as zero. Use ParseStrict at input
// boundaries.
func Parse(s string) float64 {
	clock, millis, _ := strings.Cut(s, ".")
	return compute(strings.Split(clock, ":"), millis)
}

// ParseInterchange is Parse for the comma-separated SubRip notation.
func ParseInterchange(s string) float64 {
	clock, millis, _ := strings.Cut(s, ",")
	return compute(strings.Split(clock, ":"), millis)
}

// ParseStrict validates the editor shape before parsing.
func ParseStrict(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if !Valid(s) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	return Parse(s), nil
}

func compute(clock []string, millis string) float64 {
	var h, m, sec float64
	if len(clock) > 0 {
		h = field(clock[0])
	}
	if len(clock) > 1 {
		m = field(clock[1])
	}
	if len(clock) > 2 {
		sec = field(clock[2])
	}
	return h*3600 + m*60 + sec + field(millis)/1000
}

func field(s string) float64 {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return float64(v)
}
