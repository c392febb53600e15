package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Urooyo/lylvey/internal/media"
)

var extractCmd = &cobra.Command{
	Use:   "extract [video_file]",
	Short: "Extract the audio track of a music video",
	Long: `Extract the audio track from a video file so its lyrics can be timed
in audio-only mode.

Supports multiple output formats: mp3, aac, flac, wav.

Examples:
  lylvey extract clip.mp4
  lylvey extract clip.mp4 -o song.flac -f flac
  lylvey extract clip.mp4 --format wav --sample-rate 44100 --channels 2`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	defaults := media.DefaultExtractAudioOptions()
	extractCmd.Flags().
		StringP("format", "f", defaults.Format, "Output audio format (mp3, aac, flac, wav)")
	extractCmd.Flags().
		IntP("sample-rate", "r", 0, "Sample rate in Hz, 0 keeps the source rate")
	extractCmd.Flags().
		IntP("channels", "c", 0, "Number of audio channels, 0 keeps the source layout")
	extractCmd.Flags().
		StringP("bitrate", "b", defaults.Bitrate, "Bitrate for lossy formats (e.g., 128k, 320k)")
}

var validAudioFormats = map[string]bool{
	"mp3":  true,
	"aac":  true,
	"flac": true,
	"wav":  true,
}

func runExtract(cmd *cobra.Command, args []string) error {
	videoPath := args[0]

	format, _ := cmd.Flags().GetString("format")
	sampleRate, _ := cmd.Flags().GetInt("sample-rate")
	channels, _ := cmd.Flags().GetInt("channels")
	bitrate, _ := cmd.Flags().GetString("bitrate")
	outputPath, _ := cmd.Flags().GetString("output")

	format = strings.ToLower(format)
	if !validAudioFormats[format] {
		return fmt.Errorf(
			"invalid format %q: supported formats are mp3, aac, flac, wav",
			format,
		)
	}
	if !media.IsVideoFile(videoPath) {
		logger.Warnw("Input does not look like a video file", "path", videoPath)
	}

	if outputPath == "" {
		outputPath = strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + "." + format
	}

	logger.Infow("Extracting audio",
		"video", videoPath,
		"output", outputPath,
		"format", format,
		"sample_rate", sampleRate,
		"channels", channels,
	)

	opts := media.ExtractAudioOptions{
		Format:     format,
		SampleRate: sampleRate,
		Channels:   channels,
		Bitrate:    bitrate,
	}
	if err := media.ExtractAudio(context.Background(), videoPath, outputPath, opts); err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Audio extracted successfully: %s\n", absOutput)

	return nil
}
