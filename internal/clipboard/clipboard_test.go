package clipboard

import (
	"errors"
	"testing"

	"github.com/Urooyo/lylvey/internal/lyrics"
)

type memoryBoard struct {
	text string
	err  error
}

func (m *memoryBoard) ReadAll() (string, error) { return m.text, m.err }

func (m *memoryBoard) WriteAll(text string) error {
	if m.err != nil {
		return m.err
	}
	m.text = text
	return nil
}

func TestCopyPaste(t *testing.T) {
	board := &memoryBoard{}
	lines := []lyrics.Line{lyrics.NewLine(1, 2, "hello")}

	if err := Copy(board, lines); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	expected := "1\n00:00:01,000 --> 00:00:02,000\nhello\n"
	if board.text != expected {
		t.Errorf("expected %q, got %q", expected, board.text)
	}

	doc, err := Paste(board)
	if err != nil {
		t.Fatalf("Paste failed: %v", err)
	}
	if doc != expected {
		t.Errorf("expected pasted document unchanged, got %q", doc)
	}
}

func TestCopyRejects(t *testing.T) {
	board := &memoryBoard{}
	if err := Copy(board, nil); !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
	if err := Copy(board, []lyrics.Line{lyrics.NewLine(0, 1, "a\n\nb")}); !errors.Is(err, lyrics.ErrBlankLineInText) {
		t.Errorf("expected ErrBlankLineInText, got %v", err)
	}
}

func TestPasteRejects(t *testing.T) {
	tests := []struct {
		name  string
		board *memoryBoard
		err   error
	}{
		{"empty", &memoryBoard{text: "  \n"}, ErrEmpty},
		{"prose", &memoryBoard{text: "just some words"}, ErrNoSubtitle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Paste(tt.board); !errors.Is(err, tt.err) {
				t.Errorf("expected %v, got %v", tt.err, err)
			}
		})
	}

	failing := &memoryBoard{err: errors.New("no display")}
	if _, err := Paste(failing); err == nil {
		t.Error("expected read error to propagate")
	}
}
