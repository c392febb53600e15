package ffmpeg

import (
	"errors"
	"testing"
)

func TestResolvePrefersEnvironment(t *testing.T) {
	env := map[string]string{
		ffmpegEnv:  "/opt/ffmpeg",
		ffprobeEnv: "/opt/ffprobe",
	}
	lookPath := func(name string) (string, error) {
		t.Errorf("unexpected PATH lookup for %s", name)
		return "", errors.New("unexpected")
	}

	paths, err := resolve(func(k string) string { return env[k] }, lookPath)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if paths.FFmpeg != "/opt/ffmpeg" || paths.FFprobe != "/opt/ffprobe" {
		t.Errorf("unexpected paths: %+v", paths)
	}
}

func TestResolveFallsBackToPath(t *testing.T) {
	lookPath := func(name string) (string, error) {
		if name == "ffprobe" {
			return "", errors.New("not on PATH")
		}
		return "/usr/bin/" + name, nil
	}

	_, err := resolve(func(string) string { return "" }, lookPath)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	lookPath = func(name string) (string, error) { return "/usr/bin/" + name, nil }
	paths, err := resolve(func(string) string { return "" }, lookPath)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if paths.FFprobe != "/usr/bin/ffprobe" {
		t.Errorf("expected /usr/bin/ffprobe, got %s", paths.FFprobe)
	}
}
