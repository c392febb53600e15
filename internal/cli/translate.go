package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Urooyo/lylvey/internal/lyrics"
	"github.com/Urooyo/lylvey/internal/subtitle"
	"github.com/Urooyo/lylvey/internal/translate"
)

var translateCmd = &cobra.Command{
	Use:   "translate [lyrics_file]",
	Short: "Translate timed lyrics to another language using AI",
	Long: `Translate the text of an SRT lyrics file, keeping every timing.

The --overlay flag writes bilingual lyrics with the translated line first,
followed by the original on the next line.

Examples:
  lylvey translate song.srt --target-language japanese
  lylvey translate song.srt -t ko --overlay
  lylvey translate song.srt -l english -t spanish --provider openai -o song.es.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().
		StringP("target-language", "t", "", "Target language for translation (required)")
	translateCmd.Flags().
		Bool("overlay", false, "Overlay translated text with original (bilingual lyrics)")
	translateCmd.Flags().
		StringP("api-key", "k", "", "API key (or set GEMINI_API_KEY/OPENAI_API_KEY/ANTHROPIC_API_KEY)")
	translateCmd.Flags().
		String("model", "", "Model to use (provider-specific, defaults from config)")
	translateCmd.Flags().
		String("provider", "", "Translation provider (gemini, openai, anthropic)")
	translateCmd.Flags().
		Int("concurrency", 0, "Number of parallel translation workers")
	translateCmd.Flags().
		Int("batch-size", 0, "Number of lines per API request")

	_ = translateCmd.MarkFlagRequired("target-language")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	lyricsPath := args[0]
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	targetLang, _ := cmd.Flags().GetString("target-language")
	overlay, _ := cmd.Flags().GetBool("overlay")
	apiKey, _ := cmd.Flags().GetString("api-key")
	model, _ := cmd.Flags().GetString("model")
	providerStr, _ := cmd.Flags().GetString("provider")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	batchSize, _ := cmd.Flags().GetInt("batch-size")
	outputPath, _ := cmd.Flags().GetString("output")
	inputLang, _ := cmd.Flags().GetString("language")

	// flags win over lylvey.yaml
	if providerStr == "" {
		providerStr = cfg.Translate.Provider
	}
	if model == "" {
		model = cfg.Translate.Model
	}
	if !cmd.Flags().Changed("concurrency") {
		concurrency = cfg.Translate.Concurrency
	}
	if !cmd.Flags().Changed("batch-size") {
		batchSize = cfg.Translate.BatchSize
	}

	if _, err := os.Stat(lyricsPath); os.IsNotExist(err) {
		return fmt.Errorf("lyrics file not found: %s", lyricsPath)
	}
	ext := strings.ToLower(filepath.Ext(lyricsPath))
	if ext != ".srt" {
		return fmt.Errorf("unsupported lyrics format %q: use .srt", ext)
	}

	if strings.TrimSpace(targetLang) == "" {
		return fmt.Errorf("target language is required")
	}
	if inputLang != "" && strings.EqualFold(strings.TrimSpace(inputLang), strings.TrimSpace(targetLang)) {
		return fmt.Errorf(
			"input language %q and target language %q cannot be the same",
			inputLang,
			targetLang,
		)
	}

	provider := translate.Provider(providerStr)
	if apiKey == "" {
		apiKey = os.Getenv(translate.APIKeyEnv(provider))
	}
	if apiKey == "" {
		return fmt.Errorf(
			"API key is required: use --api-key flag or set %s environment variable",
			translate.APIKeyEnv(provider),
		)
	}

	if concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", concurrency)
	}
	if batchSize <= 0 {
		return fmt.Errorf("batch-size must be positive, got %d", batchSize)
	}

	if outputPath == "" {
		outputPath = translatedPath(lyricsPath, targetLang, overlay)
	}

	logger.Infow("Starting lyrics translation",
		"input", lyricsPath,
		"output", outputPath,
		"provider", provider,
		"target_language", targetLang,
		"input_language", inputLang,
		"overlay", overlay,
		"model", model,
	)

	lines, skipped, err := subtitle.ReadFile(lyricsPath)
	if err != nil {
		return fmt.Errorf("failed to read lyrics file: %w", err)
	}
	if len(skipped) > 0 {
		logger.Warnw("Skipped unreadable blocks", "count", len(skipped))
	}
	if len(lines) == 0 {
		return fmt.Errorf("lyrics file contains no lines")
	}
	lines = lyrics.Sort(lines)

	translator, err := translate.Factory(ctx, provider, apiKey, translate.Options{
		InputLanguage:  inputLang,
		TargetLanguage: targetLang,
		Model:          model,
		BatchSize:      batchSize,
		Concurrency:    concurrency,
	})
	if err != nil {
		return fmt.Errorf("failed to create translator: %w", err)
	}

	logger.Infow("Translating lyrics", "lines", len(lines), "concurrency", concurrency)
	texts, err := translate.Lines(ctx, translator, lines)
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}

	for i := range lines {
		if overlay {
			lines[i].Text = translate.Overlay(lines[i].Text, texts[i])
		} else {
			lines[i].Text = texts[i]
		}
	}

	logger.Infow("Writing output file")
	if err := subtitle.WriteFile(outputPath, lines); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Lyrics translated successfully: %s\n", absOutput)
	fmt.Printf("  Lines: %d\n", len(lines))
	fmt.Printf("  Target language: %s\n", targetLang)
	if overlay {
		fmt.Printf("  Mode: bilingual overlay\n")
	}

	return nil
}

// translatedPath derives song.ja.srt or song.ja.overlay.srt from song.srt.
func translatedPath(path, targetLang string, overlay bool) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	if overlay {
		return fmt.Sprintf("%s.%s.overlay%s", base, targetLang, ext)
	}
	return fmt.Sprintf("%s.%s%s", base, targetLang, ext)
}
