// Package editor binds the lyric timeline, its undo history and the loaded
// media into one editing session.
package editor

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Urooyo/lylvey/internal/history"
	"github.com/Urooyo/lylvey/internal/logging"
	"github.com/Urooyo/lylvey/internal/lyrics"
	"github.com/Urooyo/lylvey/internal/media"
	"github.com/Urooyo/lylvey/internal/subtitle"
	"github.com/Urooyo/lylvey/internal/timecode"
)

var (
	// starting over would discard lines or media
	ErrConfirmationRequired = errors.New("session has lines or media; confirmation required")
	ErrNoLines              = errors.New("session has no lines")
	ErrTextCountMismatch    = errors.New("text count does not match line count")
)

// Session is one editing session. Every mutation records exactly one history
// snapshot before returning. It is not safe for concurrent use.
type Session struct {
	timeline lyrics.Timeline
	history  *history.Manager
	registry *media.Registry
	log      *logging.Logger

	media    *media.Reference
	mediaURL string

	// OnChange runs after every successful mutation, undo and redo.
	OnChange func()
	// OnMediaChange runs whenever the loaded media (and its URL) changes.
	OnMediaChange func(ref *media.Reference, url string)
}

func NewSession(registry *media.Registry, log *logging.Logger) *Session {
	if log == nil {
		log = logging.Nop()
	}
	if registry == nil {
		registry = media.NewRegistry(log)
	}
	return &Session{
		history:  history.New(),
		registry: registry,
		log:      log,
	}
}

// copy of the lines in start order
func (s *Session) Lines() []lyrics.Line {
	return s.timeline.Lines()
}

func (s *Session) Len() int {
	return s.timeline.Len()
}

func (s *Session) Line(index int) (lyrics.Line, error) {
	return s.timeline.At(index)
}

func (s *Session) Media() *media.Reference {
	return s.media
}

// playable URL of the loaded media, empty when none is loaded
func (s *Session) MediaURL() string {
	return s.mediaURL
}

// Dirty reports whether starting over would lose anything.
func (s *Session) Dirty() bool {
	return s.timeline.Len() > 0 || s.media != nil
}

func (s *Session) CanUndo() bool { return s.history.CanUndo() }
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// Add inserts a new line; text is trimmed.
func (s *Session) Add(line lyrics.Line) error {
	line.Text = strings.TrimSpace(line.Text)
	if err := line.Validate(); err != nil {
		return fmt.Errorf("add line: %w", err)
	}
	s.commit(s.timeline.Insert(line))
	return nil
}

// Edit replaces the line at index in the current order.
func (s *Session) Edit(index int, line lyrics.Line) error {
	line.Text = strings.TrimSpace(line.Text)
	if err := line.Validate(); err != nil {
		return fmt.Errorf("edit line %d: %w", index, err)
	}
	next, err := s.timeline.Update(index, line)
	if err != nil {
		return err
	}
	s.commit(next)
	return nil
}

func (s *Session) Delete(index int) error {
	next, err := s.timeline.Remove(index)
	if err != nil {
		return err
	}
	s.commit(next)
	return nil
}

// SetStart parses a manual HH:MM:SS.mmm entry. On a bad entry the session is
// left untouched.
func (s *Session) SetStart(index int, value string) error {
	line, err := s.timeline.At(index)
	if err != nil {
		return err
	}
	start, err := timecode.ParseStrict(value)
	if err != nil {
		return err
	}
	line.Start = start
	return s.Edit(index, line)
}

// SetEnd is SetStart for the end time. "-" or an empty value clears the end.
func (s *Session) SetEnd(index int, value string) error {
	line, err := s.timeline.At(index)
	if err != nil {
		return err
	}
	value = strings.TrimSpace(value)
	if value == "" || value == "-" {
		line.End, line.HasEnd = 0, false
		return s.Edit(index, line)
	}
	end, err := timecode.ParseStrict(value)
	if err != nil {
		return err
	}
	line.End, line.HasEnd = end, true
	return s.Edit(index, line)
}

// Import replaces every line with the parsed document and keeps the media.
// Unreadable blocks are skipped and returned for diagnostics.
func (s *Session) Import(document string) []subtitle.SkippedBlock {
	lines, skipped := subtitle.Scan(document)
	for _, block := range skipped {
		s.log.Debugw("skipped subtitle block", "block", block.Number, "reason", block.Reason)
	}
	s.commit(s.timeline.ReplaceAll(lines))
	s.log.Infow("imported lyrics", "lines", len(lines), "skipped", len(skipped))
	return skipped
}

func (s *Session) ImportFile(path string) ([]subtitle.SkippedBlock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lyrics file: %w", err)
	}
	return s.Import(string(data)), nil
}

// LoadMedia opens the file at path and makes it the session's media.
func (s *Session) LoadMedia(path string) (*media.Reference, error) {
	ref, err := media.Open(path)
	if err != nil {
		return nil, err
	}
	s.setMedia(ref)
	s.history.Record(s.timeline.Lines(), s.media)
	s.changed()
	s.log.Infow("loaded media", "file", ref.Name(), "type", ref.MIMEType, "video", ref.IsVideo())
	return ref, nil
}

// Undo restores the previous snapshot, media included. It reports false when
// there is nothing to undo.
func (s *Session) Undo() bool {
	snap, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.restore(snap)
	return true
}

func (s *Session) Redo() bool {
	snap, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.restore(snap)
	return true
}

// New discards the session. When it holds lines or media the call must be
// confirmed, otherwise ErrConfirmationRequired is returned and nothing
// changes.
func (s *Session) New(confirmed bool) error {
	if s.Dirty() && !confirmed {
		return ErrConfirmationRequired
	}
	s.setMedia(nil)
	s.timeline = lyrics.Timeline{}
	s.history.Reset()
	s.changed()
	return nil
}

// Export renders the session as a subtitle document.
func (s *Session) Export() (string, error) {
	if s.timeline.Len() == 0 {
		return "", ErrNoLines
	}
	return subtitle.Serialize(s.timeline.Lines())
}

// ExportFile writes the document to path, or subtitle.DefaultFilename when
// path is empty. It returns the path written.
func (s *Session) ExportFile(path string) (string, error) {
	if path == "" {
		path = subtitle.DefaultFilename
	}
	if s.timeline.Len() == 0 {
		return "", ErrNoLines
	}
	if err := subtitle.WriteFile(path, s.timeline.Lines()); err != nil {
		return "", err
	}
	s.log.Infow("exported lyrics", "path", path, "lines", s.timeline.Len())
	return path, nil
}

// ApplyTexts swaps in new texts for every line in current order, keeping the
// timing. It records a single snapshot.
func (s *Session) ApplyTexts(texts []string) error {
	lines := s.timeline.Lines()
	if len(texts) != len(lines) {
		return fmt.Errorf("%w: %d texts for %d lines", ErrTextCountMismatch, len(texts), len(lines))
	}
	for i := range lines {
		lines[i].Text = strings.TrimSpace(texts[i])
		if err := lines[i].Validate(); err != nil {
			return fmt.Errorf("line %d: %w", i, err)
		}
	}
	s.commit(s.timeline.ReplaceAll(lines))
	return nil
}

// Close releases the media URL.
func (s *Session) Close() {
	s.setMedia(nil)
}

func (s *Session) commit(next lyrics.Timeline) {
	s.timeline = next
	s.history.Record(next.Lines(), s.media)
	s.changed()
}

func (s *Session) restore(snap history.Snapshot) {
	s.timeline = lyrics.NewTimeline(snap.Lines)
	s.setMedia(snap.Media)
	s.changed()
}

// setMedia swaps the loaded media, releasing the old URL exactly once and
// leasing a fresh one for the new reference.
func (s *Session) setMedia(ref *media.Reference) {
	if ref == s.media {
		return
	}
	if s.mediaURL != "" {
		s.registry.Release(s.mediaURL)
	}
	s.media = ref
	s.mediaURL = ""
	if ref != nil {
		s.mediaURL = s.registry.Acquire(ref)
	}
	if s.OnMediaChange != nil {
		s.OnMediaChange(s.media, s.mediaURL)
	}
}

func (s *Session) changed() {
	if s.OnChange != nil {
		s.OnChange()
	}
}
