package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Urooyo/lylvey/internal/lyrics"
	"github.com/Urooyo/lylvey/internal/timecode"
)

// parseSeconds accepts HH:MM:SS.mmm or a plain number of seconds.
func parseSeconds(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if timecode.Valid(s) {
		return timecode.Parse(s), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %q", timecode.ErrInvalidFormat, s)
	}
	return v, nil
}

// writeLines prints a numbered table of lines, marking active.
func writeLines(w io.Writer, lines []lyrics.Line, active int) {
	if len(lines) == 0 {
		fmt.Fprintln(w, msg("empty"))
		return
	}
	for i, line := range lines {
		mark := " "
		if i == active {
			mark = "▶"
		}
		end := msg("until_end")
		if line.HasEnd {
			end = timecode.Format(line.End)
		}
		fmt.Fprintf(w, "%s %3d  %s  %-12s  %s\n",
			mark, i+1, timecode.Format(line.Start), end,
			strings.ReplaceAll(line.Text, "\n", " / "))
	}
}

// writeStates prints every line with its state at the given time.
func writeStates(w io.Writer, lines []lyrics.Line, at float64) {
	active := lyrics.ActiveIndex(at, lines)
	fmt.Fprintf(w, "time %s  active %d\n", timecode.Format(at), active+1)
	for i, line := range lines {
		fmt.Fprintf(w, "%3d  %-7s  %s\n", i+1, lyrics.StateAt(i, at, lines),
			strings.ReplaceAll(line.Text, "\n", " / "))
	}
}
