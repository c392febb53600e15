// Package ffmpeg locates the ffmpeg and ffprobe executables.
package ffmpeg

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
)

const (
	ffmpegEnv  = "LYLVEY_FFMPEG_PATH"
	ffprobeEnv = "LYLVEY_FFPROBE_PATH"
)

var ErrNotFound = errors.New("executable not found")

type BinaryPaths struct {
	FFmpeg  string
	FFprobe string
}

var (
	resolveOnce sync.Once
	resolved    BinaryPaths
	resolveErr  error
)

// Resolve finds both binaries once per process. Environment overrides win
// over PATH lookup.
func Resolve() (BinaryPaths, error) {
	resolveOnce.Do(func() {
		resolved, resolveErr = resolve(os.Getenv, exec.LookPath)
	})
	return resolved, resolveErr
}

func FFmpegPath() (string, error) {
	paths, err := Resolve()
	if err != nil {
		return "", err
	}
	return paths.FFmpeg, nil
}

func FFprobePath() (string, error) {
	paths, err := Resolve()
	if err != nil {
		return "", err
	}
	return paths.FFprobe, nil
}

func resolve(
	getenv func(string) string,
	lookPath func(string) (string, error),
) (BinaryPaths, error) {
	ffmpegPath, err := locate("ffmpeg", getenv(ffmpegEnv), lookPath)
	if err != nil {
		return BinaryPaths{}, err
	}
	ffprobePath, err := locate("ffprobe", getenv(ffprobeEnv), lookPath)
	if err != nil {
		return BinaryPaths{}, err
	}
	return BinaryPaths{FFmpeg: ffmpegPath, FFprobe: ffprobePath}, nil
}

func locate(
	name, override string,
	lookPath func(string) (string, error),
) (string, error) {
	if override != "" {
		return override, nil
	}
	found, err := lookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s (install it or set %s)", ErrNotFound, name, envFor(name))
	}
	return found, nil
}

func envFor(name string) string {
	if name == "ffprobe" {
		return ffprobeEnv
	}
	return ffmpegEnv
}
