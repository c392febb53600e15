package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Urooyo/lylvey/internal/lyrics"
	"github.com/Urooyo/lylvey/internal/timecode"
)

// Serialize renders lines as SubRip, sorted by start and numbered from 1.
// Lines without an end get DefaultLineDuration.
func Serialize(lines []lyrics.Line) (string, error) {
	var sb strings.Builder
	for i, line := range lyrics.Sort(lines) {
		text := strings.TrimSpace(line.Text)
		if text == "" {
			return "", fmt.Errorf("line %d: %w", i+1, ErrEmptyText)
		}
		if lyrics.HasBlankLine(text) {
			return "", fmt.Errorf("line %d: %w", i+1, ErrBlankLineInText)
		}

		end := line.Start + DefaultLineDuration
		if line.HasEnd {
			end = line.End
		}
		if !inRange(line.Start) || !inRange(end) {
			return "", fmt.Errorf("line %d: %w", i+1, ErrTimeOutOfRange)
		}

		if i > 0 {
			sb.WriteString("\n")
		}
		// index (1-based)
		sb.WriteString(fmt.Sprintf("%d\n", i+1))
		// timestamps: 00:00:00,000 --> 00:00:00,000
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			timecode.FormatInterchange(line.Start),
			timecode.FormatInterchange(end)))
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// writes lines to an SRT file, creating parent directories
func WriteFile(path string, lines []lyrics.Line) error {
	content, err := Serialize(lines)
	if err != nil {
		return err
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

// two hour digits
func inRange(seconds float64) bool {
	return seconds >= 0 && seconds < MaxSeconds
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}
