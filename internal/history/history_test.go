package history

import (
	"testing"
	"time"

	"github.com/Urooyo/lylvey/internal/lyrics"
	"github.com/Urooyo/lylvey/internal/media"
)

func lines(texts ...string) []lyrics.Line {
	out := make([]lyrics.Line, len(texts))
	for i, text := range texts {
		out[i] = lyrics.NewLine(float64(i), float64(i)+1, text)
	}
	return out
}

func texts(s Snapshot) []string {
	out := make([]string, len(s.Lines))
	for i, line := range s.Lines {
		out[i] = line.Text
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewStartsWithEmptySnapshot(t *testing.T) {
	m := New()
	if m.Len() != 1 || m.Index() != 0 {
		t.Fatalf("expected one snapshot at index 0, got len=%d index=%d", m.Len(), m.Index())
	}
	if len(m.Current().Lines) != 0 || m.Current().Media != nil {
		t.Error("initial snapshot is not empty")
	}
	if _, ok := m.Undo(); ok {
		t.Error("undo on a fresh log must be a no-op")
	}
	if _, ok := m.Redo(); ok {
		t.Error("redo on a fresh log must be a no-op")
	}
}

func TestLinearity(t *testing.T) {
	m := New()
	m.Record(lines("s1"), nil)
	m.Record(lines("s1", "s2"), nil)

	snap, ok := m.Undo()
	if !ok || !equal(texts(snap), []string{"s1"}) {
		t.Fatalf("expected S1 after first undo, got %v", texts(snap))
	}
	snap, ok = m.Undo()
	if !ok || len(snap.Lines) != 0 {
		t.Fatalf("expected S0 after second undo, got %v", texts(snap))
	}
	if _, ok := m.Undo(); ok {
		t.Fatal("undo past S0 must be a no-op")
	}
	if m.Index() != 0 {
		t.Fatalf("expected cursor 0, got %d", m.Index())
	}

	snap, ok = m.Redo()
	if !ok || !equal(texts(snap), []string{"s1"}) {
		t.Fatalf("expected S1 after redo, got %v", texts(snap))
	}

	m.Record(lines("s1", "s3"), nil)
	if m.CanRedo() {
		t.Error("recording after undo must discard the redo branch")
	}
	if _, ok := m.Redo(); ok {
		t.Error("redo after discarding S2 must be a no-op")
	}
	if m.Len() != 3 {
		t.Errorf("expected S0, S1, S3; got %d snapshots", m.Len())
	}
	if !equal(texts(m.Current()), []string{"s1", "s3"}) {
		t.Errorf("expected S3 current, got %v", texts(m.Current()))
	}
}

func TestRecordCopiesLines(t *testing.T) {
	m := New()
	src := lines("a")
	m.Record(src, nil)
	src[0].Text = "changed"

	if m.Current().Lines[0].Text != "a" {
		t.Error("snapshot aliases the caller's slice")
	}

	cur := m.Current()
	cur.Lines[0].Text = "changed again"
	if m.Current().Lines[0].Text != "a" {
		t.Error("Current exposes internal storage")
	}
}

func TestMediaIsVersioned(t *testing.T) {
	m := New()
	song := &media.Reference{Path: "song.mp3", MIMEType: "audio/mpeg"}

	m.Record(nil, song)
	m.Record(lines("a"), song)

	snap, _ := m.Undo()
	if snap.Media != song {
		t.Error("expected media to survive undo of a line edit")
	}
	snap, _ = m.Undo()
	if snap.Media != nil {
		t.Error("expected undo past the load to clear the media")
	}
}

func TestRecordAfterUndoDoesNotClobberSharedArray(t *testing.T) {
	m := New()
	m.Record(lines("a"), nil)
	m.Record(lines("b"), nil)
	m.Undo()
	m.Record(lines("c"), nil)

	m.Undo()
	snap, _ := m.Redo()
	if !equal(texts(snap), []string{"c"}) {
		t.Errorf("expected c, got %v", texts(snap))
	}
}

func TestTimestamps(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	m := newManager(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	})

	snap := m.Record(lines("a"), nil)
	if !snap.TakenAt.After(base.Add(time.Second)) {
		t.Errorf("expected record timestamp after the initial one, got %v", snap.TakenAt)
	}

	m.Reset()
	if m.Len() != 1 || m.CanUndo() {
		t.Error("Reset must leave exactly one snapshot")
	}
}
