package editor

import (
	"fmt"
	"strings"
)

// Action is an operation reachable from a keyboard shortcut.
type Action string

const (
	ActionUndo   Action = "undo"
	ActionRedo   Action = "redo"
	ActionNew    Action = "new"
	ActionImport Action = "import"
	ActionExport Action = "export"
)

// Key is a chord made of the primary modifier (ctrl or cmd), optional shift
// and one letter.
type Key struct {
	Primary bool
	Shift   bool
	Letter  rune
}

func (k Key) String() string {
	var b strings.Builder
	if k.Primary {
		b.WriteString("ctrl+")
	}
	if k.Shift {
		b.WriteString("shift+")
	}
	b.WriteRune(k.Letter)
	return b.String()
}

// ParseKey reads chords such as "ctrl+z", "cmd+shift+z" or "Ctrl+S".
func ParseKey(s string) (Key, error) {
	var key Key
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	for i, part := range parts {
		last := i == len(parts)-1
		switch {
		case part == "ctrl" || part == "cmd" || part == "meta":
			key.Primary = true
		case part == "shift":
			key.Shift = true
		case last && len(part) == 1:
			key.Letter = rune(part[0])
		default:
			return Key{}, fmt.Errorf("unrecognized key %q", s)
		}
	}
	if key.Letter == 0 {
		return Key{}, fmt.Errorf("key %q has no letter", s)
	}
	return key, nil
}

// Keymap maps chords to actions.
type Keymap map[Key]Action

func DefaultKeymap() Keymap {
	return Keymap{
		{Primary: true, Letter: 'z'}:              ActionUndo,
		{Primary: true, Shift: true, Letter: 'z'}: ActionRedo,
		{Primary: true, Letter: 'n'}:              ActionNew,
		{Primary: true, Letter: 'o'}:              ActionImport,
		{Primary: true, Letter: 's'}:              ActionExport,
	}
}

// Lookup ignores chords without the primary modifier.
func (m Keymap) Lookup(key Key) (Action, bool) {
	if !key.Primary {
		return "", false
	}
	action, ok := m[key]
	return action, ok
}

// Resolve parses and looks up a chord in one step.
func (m Keymap) Resolve(chord string) (Action, bool) {
	key, err := ParseKey(chord)
	if err != nil {
		return "", false
	}
	return m.Lookup(key)
}
