package preview

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Urooyo/lylvey/internal/lyrics"
)

func song(n int) []lyrics.Line {
	lines := make([]lyrics.Line, n)
	for i := range lines {
		lines[i] = lyrics.NewLine(float64(i*2), float64(i*2+2), fmt.Sprintf("line %d", i))
	}
	return lines
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in       string
		expected Mode
		wantErr  bool
	}{
		{"karaoke", ModeKaraoke, false},
		{" Subtitle ", ModeSubtitle, false},
		{"apple", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.expected {
			t.Errorf("ParseMode(%q): expected %q (err=%v), got %q (%v)", tt.in, tt.expected, tt.wantErr, got, err)
		}
	}
	if _, err := ParseAlignment("middle"); err == nil {
		t.Error("expected error for unknown alignment")
	}
}

func TestKaraokeMarksStates(t *testing.T) {
	lines := song(3)
	r := &Karaoke{}

	frame := r.Render(lines, 2.5, 1)
	rows := strings.Split(frame, "\n")
	expected := []string{"· line 0", "▶ line 1", "  line 2"}
	if len(rows) != len(expected) {
		t.Fatalf("expected %d rows, got %d: %q", len(expected), len(rows), frame)
	}
	for i := range expected {
		if rows[i] != expected[i] {
			t.Errorf("row %d: expected %q, got %q", i, expected[i], rows[i])
		}
	}
}

func TestKaraokeShadowedOverlap(t *testing.T) {
	lines := []lyrics.Line{
		lyrics.NewLine(0, 4, "a"),
		lyrics.NewLine(1, 3, "b"),
	}
	frame := (&Karaoke{}).Render(lines, 2, lyrics.ActiveIndex(2, lines))
	if frame != "▶ a\n› b" {
		t.Errorf("expected first match active and overlap shadowed, got %q", frame)
	}
}

func TestKaraokeWindowBlanksFarRows(t *testing.T) {
	lines := song(100)
	view := NewViewport(100, func() int { return len(lines) })

	frame := (&Karaoke{View: view}).Render(lines, 0, 0)
	rows := strings.Split(frame, "\n")
	if len(rows) != 100 {
		t.Fatalf("expected 100 rows, got %d", len(rows))
	}
	if rows[20] == "" {
		t.Error("expected row 20 inside the window")
	}
	if rows[21] != "" || rows[99] != "" {
		t.Error("expected rows outside the window to stay blank")
	}
}

func TestKaraokeFollowsViewport(t *testing.T) {
	lines := song(10)
	view := NewViewport(3, func() int { return len(lines) })
	offset, ok := view.OffsetOf(5)
	if !ok {
		t.Fatal("expected offset for row 5")
	}
	view.SetScrollOffset(offset)

	frame := (&Karaoke{View: view}).Render(lines, 10.5, 5)
	rows := strings.Split(frame, "\n")
	if len(rows) != 3 || rows[1] != "▶ line 5" {
		t.Errorf("expected active row centred, got %q", frame)
	}
}

func TestViewportClamps(t *testing.T) {
	view := NewViewport(4, func() int { return 10 })

	if off, _ := view.OffsetOf(0); off != 0 {
		t.Errorf("expected 0 for the first row, got %v", off)
	}
	if off, _ := view.OffsetOf(9); off != 6*RowHeight {
		t.Errorf("expected offset clamped to %v, got %v", 6*RowHeight, off)
	}
	if _, ok := view.OffsetOf(10); ok {
		t.Error("expected no offset past the end")
	}
	view.SetScrollOffset(-50)
	if view.ScrollOffset() != 0 {
		t.Errorf("expected negative offset clamped, got %v", view.ScrollOffset())
	}
}

func TestSubtitle(t *testing.T) {
	lines := []lyrics.Line{lyrics.NewLine(0, 2, "first\nsecond half")}
	r := &Subtitle{}

	if got := r.Render(lines, 1, 0); got != "first\nsecond half" {
		t.Errorf("expected both text rows, got %q", got)
	}
	if got := r.Render(lines, 1, -1); got != "" {
		t.Errorf("expected empty frame, got %q", got)
	}
}

func TestAlign(t *testing.T) {
	tests := []struct {
		text     string
		cols     int
		a        Alignment
		expected string
	}{
		{"abc", 7, AlignLeft, "abc"},
		{"abc", 7, AlignCenter, "  abc"},
		{"abc", 7, AlignRight, "    abc"},
		{"가나", 8, AlignRight, "    가나"},
		{"toolong", 3, AlignRight, "toolong"},
	}
	for _, tt := range tests {
		if got := align(tt.text, tt.cols, tt.a); got != tt.expected {
			t.Errorf("align(%q, %d, %s): expected %q, got %q", tt.text, tt.cols, tt.a, tt.expected, got)
		}
	}
}
