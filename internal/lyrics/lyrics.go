package lyrics

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrIndexOutOfRange = errors.New("line index out of range")
	ErrEmptyText       = errors.New("line text is empty")
	ErrBlankLineInText = errors.New("line text contains a blank line")
	ErrNegativeStart   = errors.New("line start is negative")
)

// single timed lyric line; times are in seconds
type Line struct {
	Start float64
	End   float64 // only meaningful when HasEnd
	// false means the line stays open until the next one begins
	HasEnd bool
	Text   string
}

// returns a closed line
func NewLine(start, end float64, text string) Line {
	return Line{Start: start, End: end, HasEnd: true, Text: text}
}

// returns a line without an end time
func OpenLine(start float64, text string) Line {
	return Line{Start: start, Text: text}
}

// checks that the line can be persisted
func (l Line) Validate() error {
	if l.Start < 0 {
		return ErrNegativeStart
	}
	if strings.TrimSpace(l.Text) == "" {
		return ErrEmptyText
	}
	if HasBlankLine(l.Text) {
		return ErrBlankLineInText
	}
	return nil
}

// reports whether text holds an empty (or whitespace-only) line between
// two non-empty ones; such text cannot be represented in a subtitle block
func HasBlankLine(text string) bool {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if text == "" {
		return false
	}
	for _, part := range strings.Split(text, "\n") {
		if strings.TrimSpace(part) == "" {
			return true
		}
	}
	return false
}

// Timeline is the ordered set of lines of one editing session. The zero
// value is an empty timeline. Mutators return a new Timeline and never
// touch the receiver's backing array.
type Timeline struct {
	lines []Line
}

// builds a timeline from arbitrary lines, sorting them by start
func NewTimeline(lines []Line) Timeline {
	return Timeline{lines: sorted(lines)}
}

func (t Timeline) Len() int {
	return len(t.lines)
}

// copy of the lines in start order
func (t Timeline) Lines() []Line {
	return clone(t.lines)
}

func (t Timeline) At(index int) (Line, error) {
	if index < 0 || index >= len(t.lines) {
		return Line{}, indexError(index, len(t.lines))
	}
	return t.lines[index], nil
}

// appends the line and re-sorts; duplicates by start are kept
func (t Timeline) Insert(line Line) Timeline {
	lines := append(clone(t.lines), line)
	return Timeline{lines: sorted(lines)}
}

// replaces the line at index (resolved against the current order) and re-sorts
func (t Timeline) Update(index int, line Line) (Timeline, error) {
	if index < 0 || index >= len(t.lines) {
		return t, indexError(index, len(t.lines))
	}
	lines := clone(t.lines)
	lines[index] = line
	return Timeline{lines: sorted(lines)}, nil
}

// drops the line at index keeping the order of the rest
func (t Timeline) Remove(index int) (Timeline, error) {
	if index < 0 || index >= len(t.lines) {
		return t, indexError(index, len(t.lines))
	}
	lines := make([]Line, 0, len(t.lines)-1)
	lines = append(lines, t.lines[:index]...)
	lines = append(lines, t.lines[index+1:]...)
	return Timeline{lines: lines}, nil
}

func (t Timeline) ReplaceAll(lines []Line) Timeline {
	return NewTimeline(lines)
}

func (t Timeline) ActiveIndex(at float64) int {
	return ActiveIndex(at, t.lines)
}

func (t Timeline) StateAt(index int, at float64) State {
	return StateAt(index, at, t.lines)
}

// Sort returns a start-ordered copy of lines. Lines with equal starts keep
// their relative order.
func Sort(lines []Line) []Line {
	return sorted(lines)
}

func sorted(lines []Line) []Line {
	out := clone(lines)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	return out
}

func clone(lines []Line) []Line {
	if lines == nil {
		return nil
	}
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}

func indexError(index, n int) error {
	return fmt.Errorf("%w: %d (have %d lines)", ErrIndexOutOfRange, index, n)
}
