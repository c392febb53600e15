// Package media models the audio or video file loaded into an editing
// session and the playable URLs leased for it.
package media

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var ErrNotMedia = errors.New("not an audio or video file")

// Reference is an opaque handle to a loaded media file. It is never mutated
// after Open, so snapshots may share it.
type Reference struct {
	ID       uuid.UUID
	Path     string
	MIMEType string
	Size     int64
}

// Open inspects path and returns a handle for it. The media type is sniffed
// from content, falling back to the file extension.
func Open(path string) (*Reference, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("media file not found: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotMedia, path)
	}

	mimeType, err := detectType(path)
	if err != nil {
		return nil, err
	}
	if !isMediaType(mimeType) {
		return nil, fmt.Errorf("%w: %s (%s)", ErrNotMedia, filepath.Base(path), mimeType)
	}

	return &Reference{
		ID:       uuid.New(),
		Path:     path,
		MIMEType: mimeType,
		Size:     info.Size(),
	}, nil
}

// Name is the file's base name.
func (r *Reference) Name() string {
	return filepath.Base(r.Path)
}

// IsVideo reports a video/* media type; video switches playback into paired
// audio+video mode.
func (r *Reference) IsVideo() bool {
	return r != nil && strings.HasPrefix(r.MIMEType, "video/")
}

func (r *Reference) String() string {
	if r == nil {
		return "<none>"
	}
	return fmt.Sprintf("%s (%s)", r.Name(), r.MIMEType)
}

func detectType(path string) (string, error) {
	detected, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to detect media type: %w", err)
	}
	mimeType := detected.String()
	if isMediaType(mimeType) {
		return stripParams(mimeType), nil
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); isMediaType(byExt) {
		return stripParams(byExt), nil
	}
	if IsVideoFile(path) {
		return "video/" + strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."), nil
	}
	if IsAudioFile(path) {
		return "audio/" + strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."), nil
	}
	return stripParams(mimeType), nil
}

func isMediaType(mimeType string) bool {
	return strings.HasPrefix(mimeType, "audio/") || strings.HasPrefix(mimeType, "video/")
}

func stripParams(mimeType string) string {
	base, _, _ := strings.Cut(mimeType, ";")
	return strings.TrimSpace(base)
}

var videoExts = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".avi":  true,
	".mov":  true,
	".webm": true,
	".m4v":  true,
	".mpeg": true,
	".mpg":  true,
}

var audioExts = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".aac":  true,
	".flac": true,
	".ogg":  true,
	".m4a":  true,
	".opus": true,
}

// checks if the file is a video based on extension
func IsVideoFile(path string) bool {
	return videoExts[strings.ToLower(filepath.Ext(path))]
}

// checks if the file is an audio file based on extension
func IsAudioFile(path string) bool {
	return audioExts[strings.ToLower(filepath.Ext(path))]
}
