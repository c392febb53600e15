package translate

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"
)

var (
	errNoTranslations = errors.New("no translated lines found in response")

	codeFence = regexp.MustCompile("```(?:json)?")
)

// parseResponse reads a provider's answer for items. Every item must come
// back exactly once with non-empty text.
func parseResponse(provider, text string, items []Item) ([]Result, error) {
	text = strings.TrimSpace(codeFence.ReplaceAllString(text, ""))
	if text == "" {
		return nil, fmt.Errorf("empty %s response", provider)
	}

	results, err := decodeAnswer(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w (response: %s)", provider, err, clip(text, 200))
	}
	if err := checkCoverage(items, results); err != nil {
		return nil, fmt.Errorf("%s: %w", provider, err)
	}
	return results, nil
}

// decodeAnswer returns the translations held by the first JSON value in text
// that has any. Models like to wrap the array in prose or in an object.
func decodeAnswer(text string) ([]Result, error) {
	text = repairEscapes(text)
	for offset := 0; offset < len(text); offset++ {
		next := strings.IndexAny(text[offset:], "[{")
		if next < 0 {
			break
		}
		offset += next

		var raw json.RawMessage
		if err := json.NewDecoder(strings.NewReader(text[offset:])).Decode(&raw); err != nil {
			continue
		}
		if results := resultsIn(raw); len(results) > 0 {
			return results, nil
		}
	}
	return nil, errNoTranslations
}

// resultsIn accepts a bare array or an object with one array field, such as
// {"lines": [...]}.
func resultsIn(raw json.RawMessage) []Result {
	var results []Result
	if err := json.Unmarshal(raw, &results); err == nil {
		return results
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil
	}
	for _, key := range slices.Sorted(maps.Keys(wrapper)) {
		if err := json.Unmarshal(wrapper[key], &results); err == nil && len(results) > 0 {
			return results
		}
	}
	return nil
}

// repairEscapes turns the subtitle line break \N into a JSON newline and
// doubles any other backslash JSON would reject.
func repairEscapes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch c := s[i]; c {
		case 'N':
			b.WriteString(`\n`)
		case '"', '\\', '/', 'b', 'f', 'n', 'r', 't', 'u':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteString(`\\`)
			b.WriteByte(c)
		}
	}
	return b.String()
}

// checkCoverage reports the first item the results miss, repeat or leave
// empty, and any result for a line that was never asked for.
func checkCoverage(items []Item, results []Result) error {
	want := make(map[int]bool, len(items))
	for _, item := range items {
		want[item.Index] = false
	}
	for _, r := range results {
		done, ok := want[r.Index]
		switch {
		case !ok:
			return fmt.Errorf("translation for unknown line %d", r.Index+1)
		case done:
			return fmt.Errorf("line %d translated twice", r.Index+1)
		case normalizeText(r.Text) == "":
			return fmt.Errorf("line %d translated to empty text", r.Index+1)
		}
		want[r.Index] = true
	}
	for _, item := range items {
		if !want[item.Index] {
			return fmt.Errorf("no translation for line %d", item.Index+1)
		}
	}
	return nil
}

// clip shortens s to at most n runes for error messages.
func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
