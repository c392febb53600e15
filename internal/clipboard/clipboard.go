// Package clipboard moves subtitle documents through the system clipboard.
package clipboard

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/Urooyo/lylvey/internal/lyrics"
	"github.com/Urooyo/lylvey/internal/subtitle"
)

var (
	ErrEmpty      = errors.New("clipboard is empty")
	ErrNoSubtitle = errors.New("clipboard does not hold a subtitle document")
)

// Board is a text clipboard.
type Board interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type system struct{}

func (system) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (system) WriteAll(text string) error { return clipboard.WriteAll(text) }

// System is the OS clipboard.
func System() Board {
	return system{}
}

// Available reports whether the OS clipboard can be used at all.
func Available() bool {
	return !clipboard.Unsupported
}

// Copy writes lines to b as a subtitle document.
func Copy(b Board, lines []lyrics.Line) error {
	if len(lines) == 0 {
		return ErrEmpty
	}
	doc, err := subtitle.Serialize(lines)
	if err != nil {
		return err
	}
	return b.WriteAll(doc)
}

// Paste reads a subtitle document from b. The text must contain at least one
// readable block.
func Paste(b Board) (string, error) {
	text, err := b.ReadAll()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmpty
	}
	if len(subtitle.Parse(text)) == 0 {
		return "", ErrNoSubtitle
	}
	return text, nil
}
