package lyrics

// where a line sits relative to the playback clock
type State string

const (
	StatePast    State = "past"
	StateCurrent State = "current"
	StateFuture  State = "future"
)

// ActiveIndex picks the line shown at time at from start-ordered lines.
// Precedence: the first line whose [Start, End) covers at; otherwise the line
// whose end passed most recently, so it stays lit through a gap; otherwise 0
// when at precedes the first line (pre-roll); otherwise -1.
func ActiveIndex(at float64, lines []Line) int {
	if len(lines) == 0 {
		return -1
	}

	for i, line := range lines {
		if at >= line.Start && (!line.HasEnd || at < line.End) {
			return i
		}
	}

	lastEnded := -1
	for i, line := range lines {
		if !line.HasEnd || at < line.End {
			continue
		}
		if lastEnded == -1 || line.End > lines[lastEnded].End {
			lastEnded = i
		}
	}
	if lastEnded != -1 {
		return lastEnded
	}

	if at < lines[0].Start {
		return 0
	}
	return -1
}

// StateAt classifies one line independently of ActiveIndex, so several
// overlapping lines can be current at once. Out-of-range indices are future.
func StateAt(index int, at float64, lines []Line) State {
	if index < 0 || index >= len(lines) {
		return StateFuture
	}
	line := lines[index]
	if at < line.Start {
		return StateFuture
	}
	if line.HasEnd && at >= line.End {
		return StatePast
	}
	return StateCurrent
}

const (
	// below this many lines every line is rendered
	WindowThreshold = 50
	// lines kept on each side of the active one above the threshold
	WindowRadius = 20
)

// VisibleRange returns the half-open [start, end) slice of n lines worth
// recomputing around the active line.
func VisibleRange(active, n int) (start, end int) {
	if n <= WindowThreshold {
		return 0, n
	}
	if active < 0 {
		active = 0
	}
	start = max(0, active-WindowRadius)
	end = min(n, active+WindowRadius+1)
	return start, end
}
