// Package preview draws the lyric preview in a terminal.
package preview

import (
	"fmt"
	"strings"

	"golang.org/x/text/width"

	"github.com/Urooyo/lylvey/internal/lyrics"
)

type Mode string

const (
	// scrolling list with the active line highlighted
	ModeKaraoke Mode = "karaoke"
	// only the active line, like a caption
	ModeSubtitle Mode = "subtitle"
)

type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeKaraoke, ModeSubtitle:
		return m, nil
	}
	return "", fmt.Errorf("unknown preview mode %q: use karaoke or subtitle", s)
}

func ParseAlignment(s string) (Alignment, error) {
	switch a := Alignment(strings.ToLower(strings.TrimSpace(s))); a {
	case AlignLeft, AlignCenter, AlignRight:
		return a, nil
	}
	return "", fmt.Errorf("unknown alignment %q: use left, center or right", s)
}

// Renderer turns the timeline at one instant into a frame of text.
type Renderer interface {
	Render(lines []lyrics.Line, at float64, active int) string
}

// New builds the renderer for mode. view is only used by the karaoke mode.
func New(mode Mode, view *Viewport, cols int, align Alignment) Renderer {
	if mode == ModeSubtitle {
		return &Subtitle{Width: cols, Align: align}
	}
	return &Karaoke{View: view, Width: cols, Align: align}
}

// Karaoke shows a window of lines around the viewport's scroll position.
// With more than lyrics.WindowThreshold lines, rows outside the active
// line's window are left blank instead of being evaluated.
type Karaoke struct {
	View  *Viewport
	Width int
	Align Alignment
}

func (k *Karaoke) Render(lines []lyrics.Line, at float64, active int) string {
	n := len(lines)
	if n == 0 {
		return ""
	}
	windowStart, windowEnd := lyrics.VisibleRange(active, n)

	first, rows := 0, n
	if k.View != nil {
		first, rows = k.View.FirstRow(), k.View.Rows
	}

	var out []string
	for row := first; row < first+rows && row < n; row++ {
		if row < windowStart || row >= windowEnd {
			out = append(out, "")
			continue
		}
		state := lyrics.StateAt(row, at, lines)
		text := marker(state, row == active) + " " + oneLine(lines[row].Text)
		out = append(out, align(text, k.Width, k.Align))
	}
	return strings.Join(out, "\n")
}

// Subtitle shows the active line's text and nothing else.
type Subtitle struct {
	Width int
	Align Alignment
}

func (s *Subtitle) Render(lines []lyrics.Line, at float64, active int) string {
	if active < 0 || active >= len(lines) {
		return ""
	}
	var out []string
	for _, part := range strings.Split(lines[active].Text, "\n") {
		out = append(out, align(strings.TrimSpace(part), s.Width, s.Align))
	}
	return strings.Join(out, "\n")
}

func marker(state lyrics.State, active bool) string {
	switch {
	case state == lyrics.StatePast:
		return "·"
	case state == lyrics.StateFuture:
		return " "
	case active:
		return "▶"
	default:
		// current but shadowed by an earlier overlapping line
		return "›"
	}
}

func oneLine(text string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(text, "\n", " / ")), " ")
}

// align pads text to cols display columns. East Asian wide runes count as two.
func align(text string, cols int, a Alignment) string {
	w := displayWidth(text)
	if cols <= 0 || w >= cols || a == AlignLeft || a == "" {
		return text
	}
	pad := cols - w
	if a == AlignCenter {
		pad /= 2
	}
	return strings.Repeat(" ", pad) + text
}

func displayWidth(text string) int {
	n := 0
	for _, r := range text {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}
