package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Urooyo/lylvey/internal/lyrics"
	"github.com/Urooyo/lylvey/internal/subtitle"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [lyrics_file]",
	Short: "Show which lines are past, active or upcoming at a time",
	Long: `Read an SRT lyrics file and print every line in start order. With --at,
each line is labelled with its state at that moment.

Examples:
  lylvey inspect song.srt
  lylvey inspect song.srt --at 00:01:05.300
  lylvey inspect song.srt --at 65.3`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize [lyrics_file]",
	Short: "Rewrite an SRT file sorted, renumbered and cleaned up",
	Long: `Read an SRT lyrics file, drop the blocks that cannot be read, and write it
back sorted by start time with fresh numbering. Lines without an end time
get the default duration.

The result goes to stdout unless -o is given.

Examples:
  lylvey normalize messy.srt
  lylvey normalize messy.srt -o clean.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runNormalize,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(normalizeCmd)

	inspectCmd.Flags().String("at", "", "Time to evaluate line states at (HH:MM:SS.mmm or seconds)")
}

func readLyrics(path string) ([]lyrics.Line, error) {
	lines, skipped, err := subtitle.ReadFile(path)
	if err != nil {
		return nil, err
	}
	for _, block := range skipped {
		logger.Warnw("Skipped block", "file", path, "block", block.Number, "reason", block.Reason)
	}
	return lyrics.Sort(lines), nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	atStr, _ := cmd.Flags().GetString("at")

	lines, err := readLyrics(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if atStr == "" {
		writeLines(out, lines, -1)
		return nil
	}
	at, err := parseSeconds(atStr)
	if err != nil {
		return err
	}
	writeStates(out, lines, at)
	return nil
}

func runNormalize(cmd *cobra.Command, args []string) error {
	outputPath, _ := cmd.Flags().GetString("output")

	lines, err := readLyrics(args[0])
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return fmt.Errorf("lyrics file contains no lines")
	}

	if outputPath == "" {
		content, err := subtitle.Serialize(lines)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	}

	if err := subtitle.WriteFile(outputPath, lines); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	logger.Infow("Wrote normalized lyrics", "output", outputPath, "lines", len(lines))
	return nil
}
