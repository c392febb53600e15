// Package history keeps the linear undo/redo log of an editing session.
package history

import (
	"time"

	"github.com/Urooyo/lylvey/internal/lyrics"
	"github.com/Urooyo/lylvey/internal/media"
)

// full copy of the session state at one point
type Snapshot struct {
	Lines   []lyrics.Line
	Media   *media.Reference
	TakenAt time.Time
}

// Manager is a snapshot sequence plus a cursor. It always holds at least one
// snapshot, and 0 <= Index() < Len().
type Manager struct {
	snapshots []Snapshot
	index     int
	now       func() time.Time
}

// New starts a log holding only the empty state.
func New() *Manager {
	return newManager(time.Now)
}

func newManager(now func() time.Time) *Manager {
	m := &Manager{now: now}
	m.Reset()
	return m
}

// Record drops any redo branch past the cursor and appends the new state.
func (m *Manager) Record(lines []lyrics.Line, ref *media.Reference) Snapshot {
	snap := Snapshot{
		Lines:   cloneLines(lines),
		Media:   ref,
		TakenAt: m.now(),
	}
	m.snapshots = append(m.snapshots[:m.index+1:m.index+1], snap)
	m.index = len(m.snapshots) - 1
	return m.copyOf(snap)
}

// Undo steps back one snapshot. It is a no-op at the first one.
func (m *Manager) Undo() (Snapshot, bool) {
	if m.index == 0 {
		return Snapshot{}, false
	}
	m.index--
	return m.copyOf(m.snapshots[m.index]), true
}

// Redo steps forward one snapshot. It is a no-op at the last one.
func (m *Manager) Redo() (Snapshot, bool) {
	if m.index >= len(m.snapshots)-1 {
		return Snapshot{}, false
	}
	m.index++
	return m.copyOf(m.snapshots[m.index]), true
}

// Reset discards everything and starts over from the empty state.
func (m *Manager) Reset() {
	m.snapshots = []Snapshot{{TakenAt: m.now()}}
	m.index = 0
}

func (m *Manager) Current() Snapshot {
	return m.copyOf(m.snapshots[m.index])
}

func (m *Manager) Index() int    { return m.index }
func (m *Manager) Len() int      { return len(m.snapshots) }
func (m *Manager) CanUndo() bool { return m.index > 0 }
func (m *Manager) CanRedo() bool { return m.index < len(m.snapshots)-1 }

func (m *Manager) copyOf(s Snapshot) Snapshot {
	s.Lines = cloneLines(s.Lines)
	return s
}

func cloneLines(lines []lyrics.Line) []lyrics.Line {
	out := make([]lyrics.Line, len(lines))
	copy(out, lines)
	return out
}
