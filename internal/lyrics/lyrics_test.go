package lyrics

import (
	"errors"
	"testing"
)

func TestInsertKeepsStartOrder(t *testing.T) {
	var tl Timeline
	tl = tl.Insert(NewLine(10, 12, "c"))
	tl = tl.Insert(NewLine(0, 2, "a"))
	tl = tl.Insert(NewLine(5, 7, "b"))
	tl = tl.Insert(NewLine(5, 6, "b2"))

	got := tl.Lines()
	want := []string{"a", "b", "b2", "c"}
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(got))
	}
	for i, text := range want {
		if got[i].Text != text {
			t.Errorf("line %d: expected %q, got %q", i, text, got[i].Text)
		}
	}
}

func TestUpdateResorts(t *testing.T) {
	tl := NewTimeline([]Line{
		NewLine(0, 1, "a"),
		NewLine(2, 3, "b"),
		NewLine(4, 5, "c"),
	})

	updated, err := tl.Update(0, NewLine(6, 7, "a moved"))
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	lines := updated.Lines()
	if lines[2].Text != "a moved" {
		t.Errorf("expected moved line last, got %q", lines[2].Text)
	}
	if first, _ := tl.At(0); first.Text != "a" {
		t.Errorf("original timeline was modified: %q", first.Text)
	}
}

func TestUpdateRejectsBadIndex(t *testing.T) {
	tl := NewTimeline([]Line{NewLine(0, 1, "a")})
	if _, err := tl.Update(3, NewLine(0, 1, "x")); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
	if _, err := tl.Remove(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestRemovePreservesOrder(t *testing.T) {
	tl := NewTimeline([]Line{
		NewLine(0, 1, "a"),
		NewLine(2, 3, "b"),
		NewLine(4, 5, "c"),
	})

	removed, err := tl.Remove(1)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	lines := removed.Lines()
	if len(lines) != 2 || lines[0].Text != "a" || lines[1].Text != "c" {
		t.Errorf("unexpected lines after remove: %+v", lines)
	}
	if tl.Len() != 3 {
		t.Errorf("original timeline changed length to %d", tl.Len())
	}
}

func TestLinesReturnsCopy(t *testing.T) {
	tl := NewTimeline([]Line{NewLine(0, 1, "a")})
	lines := tl.Lines()
	lines[0].Text = "mutated"
	if line, _ := tl.At(0); line.Text != "a" {
		t.Errorf("timeline aliased its lines: %q", line.Text)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		line Line
		want error
	}{
		{"ok", NewLine(1, 2, "hello"), nil},
		{"multi line", NewLine(1, 2, "hello\nworld"), nil},
		{"open", OpenLine(0, "x"), nil},
		{"empty", NewLine(1, 2, "   "), ErrEmptyText},
		{"negative", NewLine(-1, 2, "x"), ErrNegativeStart},
		{"blank inside", NewLine(1, 2, "a\n\nb"), ErrBlankLineInText},
		{"whitespace line inside", NewLine(1, 2, "a\n  \nb"), ErrBlankLineInText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.line.Validate()
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestNextSlot(t *testing.T) {
	lines := []Line{NewLine(0, 4, "a"), NewLine(10, 13, "b")}

	tests := []struct {
		name      string
		lines     []Line
		now       float64
		mode      SlotMode
		wantStart float64
		wantEnd   float64
	}{
		{"current", lines, 42, SlotCurrent, 42, 47},
		{"last closed", lines, 0, SlotLast, 13, 18},
		{"last open", []Line{OpenLine(8, "x")}, 0, SlotLast, 13, 18},
		{"last empty", nil, 30, SlotLast, 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := NextSlot(tt.lines, tt.now, tt.mode)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("expected [%v, %v], got [%v, %v]", tt.wantStart, tt.wantEnd, start, end)
			}
		})
	}
}
