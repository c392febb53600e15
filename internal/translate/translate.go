// Package translate rewrites lyric texts into another language through an
// LLM provider.
package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/Urooyo/lylvey/internal/lyrics"
)

// one lyric text sent for translation
type Item struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// translated text for the item with the same index
type Result struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// interface for text translation
type Translator interface {
	Translate(ctx context.Context, items []Item) ([]Result, error)
}

// translation service provider
type Provider string

const (
	ProviderGemini    Provider = "gemini"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

const (
	DefaultBatchSize   = 50
	DefaultConcurrency = 3
)

type Options struct {
	InputLanguage  string
	TargetLanguage string
	Model          string
	Prompt         string
	BatchSize      int // items per API request (default 50)
	Concurrency    int // parallel requests (default 3)
}

func (o Options) batchSize() int {
	if o.BatchSize > 0 {
		return o.BatchSize
	}
	return DefaultBatchSize
}

func (o Options) concurrency() int {
	if o.Concurrency > 0 {
		return o.Concurrency
	}
	return DefaultConcurrency
}

// APIKeyEnv names the environment variable holding the provider's key.
func APIKeyEnv(provider Provider) string {
	switch provider {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return "GEMINI_API_KEY"
	}
}

// creates Translator based on provider
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
) (Translator, error) {
	if opts.TargetLanguage == "" {
		return nil, fmt.Errorf("target language is required")
	}

	switch provider {
	case ProviderGemini:
		return NewGeminiTranslator(ctx, apiKey, opts)
	case ProviderOpenAI:
		return NewOpenAITranslator(ctx, apiKey, opts)
	case ProviderAnthropic:
		return NewAnthropicTranslator(ctx, apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported translation provider: %s", provider)
	}
}

// Lines translates every line text and returns the new texts in line order.
// A line the provider skipped, repeated or left empty is an error.
func Lines(ctx context.Context, t Translator, lines []lyrics.Line) ([]string, error) {
	items := make([]Item, len(lines))
	for i, line := range lines {
		items[i] = Item{Index: i, Text: line.Text}
	}

	results, err := t.Translate(ctx, items)
	if err != nil {
		return nil, err
	}

	if err := checkCoverage(items, results); err != nil {
		return nil, err
	}

	texts := make([]string, len(lines))
	for _, r := range results {
		texts[r.Index] = normalizeText(r.Text)
	}
	return texts, nil
}

// Overlay puts the translation above the original text.
func Overlay(original, translated string) string {
	if translated == "" || translated == original {
		return original
	}
	return translated + "\n" + original
}

// trims every row of a translated line and drops empty rows, which would
// otherwise split the SRT block
func normalizeText(s string) string {
	var kept []string
	for _, part := range strings.Split(s, "\n") {
		if part = strings.TrimSpace(part); part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, "\n")
}
