package subtitle

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/Urooyo/lylvey/internal/lyrics"
	"github.com/Urooyo/lylvey/internal/timecode"
)

var timingRegex = regexp.MustCompile(
	`^(\d{2}:\d{2}:\d{2},\d{3})\s*-->\s*(\d{2}:\d{2}:\d{2},\d{3})$`,
)

// Parse extracts every well-formed block of document. Malformed blocks are
// dropped; it never fails.
func Parse(document string) []lyrics.Line {
	lines, _ := Scan(document)
	return lines
}

// Scan is Parse that also reports which blocks were dropped and why.
func Scan(document string) ([]lyrics.Line, []SkippedBlock) {
	document = strings.TrimPrefix(document, "\ufeff")
	document = strings.ReplaceAll(document, "\r\n", "\n")
	document = strings.ReplaceAll(document, "\r", "\n")

	var (
		lines   []lyrics.Line
		skipped []SkippedBlock
		block   []string
		number  int
	)

	flush := func() {
		if len(block) == 0 {
			return
		}
		number++
		line, reason := parseBlock(block)
		if reason != "" {
			skipped = append(skipped, SkippedBlock{Number: number, Reason: reason})
		} else {
			lines = append(lines, line)
		}
		block = nil
	}

	for _, raw := range strings.Split(document, "\n") {
		if strings.TrimSpace(raw) == "" {
			flush()
			continue
		}
		block = append(block, raw)
	}
	flush()

	return lines, skipped
}

func parseBlock(block []string) (lyrics.Line, string) {
	if _, err := strconv.Atoi(strings.TrimSpace(block[0])); err != nil {
		return lyrics.Line{}, fmt.Sprintf("invalid index line %q", block[0])
	}
	if len(block) < 2 {
		return lyrics.Line{}, "missing timing line"
	}

	matches := timingRegex.FindStringSubmatch(strings.TrimSpace(block[1]))
	if len(matches) != 3 {
		return lyrics.Line{}, fmt.Sprintf("invalid timing line %q", block[1])
	}

	text := strings.TrimSpace(strings.Join(block[2:], "\n"))
	if text == "" {
		return lyrics.Line{}, "missing text"
	}

	return lyrics.NewLine(
		timecode.ParseInterchange(matches[1]),
		timecode.ParseInterchange(matches[2]),
		text,
	), ""
}

// reads and parses an SRT file
func ReadFile(path string) ([]lyrics.Line, []SkippedBlock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read SRT file: %w", err)
	}
	lines, skipped := Scan(string(data))
	return lines, skipped, nil
}
