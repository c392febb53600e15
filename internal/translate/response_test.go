package translate

import (
	"strings"
	"testing"
)

func TestDecodeAnswer(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{
			name:  "bare array",
			input: `[{"index": 0, "text": "夜空に光る"}, {"index": 1, "text": "君の声"}]`,
			want:  []string{"夜空に光る", "君の声"},
		},
		{
			name: "chatty preamble and sign-off",
			input: `Sure! Here are the lyrics in Korean:
			[{"index": 0, "text": "별이 빛나는 밤"}]
			Enjoy the song!`,
			want: []string{"별이 빛나는 밤"},
		},
		{
			name:  "bracketed aside before the array",
			input: `[Chorus kept as one line] [{"index": 0, "text": "Canta conmigo"}]`,
			want:  []string{"Canta conmigo"},
		},
		{
			name:  "wrapped in an object",
			input: `{"lines": [{"index": 3, "text": "Dans la nuit"}]}`,
			want:  []string{"Dans la nuit"},
		},
		{
			name:  "subtitle line break becomes newline",
			input: `[{"index": 0, "text": "Hold me close\Ndon't let go"}]`,
			want:  []string{"Hold me close\ndon't let go"},
		},
		{
			name:  "stray backslash survives",
			input: `[{"index": 0, "text": "rock \m/ roll"}]`,
			want:  []string{`rock \m/ roll`},
		},
		{
			name:    "empty array",
			input:   `[]`,
			wantErr: true,
		},
		{
			name:    "prose only",
			input:   `I cannot translate these lyrics.`,
			wantErr: true,
		},
		{
			name:    "truncated answer",
			input:   `[{"index": 0, "text": "Under the moon`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := decodeAnswer(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %+v", results)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(results) != len(tt.want) {
				t.Fatalf("expected %d results, got %d", len(tt.want), len(results))
			}
			for i, want := range tt.want {
				if results[i].Text != want {
					t.Errorf("result %d: expected %q, got %q", i, want, results[i].Text)
				}
			}
		})
	}
}

func TestCheckCoverage(t *testing.T) {
	items := []Item{{Index: 4, Text: "la la la"}, {Index: 5, Text: "oh oh"}}

	tests := []struct {
		name    string
		results []Result
		wantErr string
	}{
		{"every line once", []Result{{5, "오 오"}, {4, "라 라 라"}}, ""},
		{"line missing", []Result{{4, "라 라 라"}}, "no translation for line 6"},
		{"line repeated", []Result{{4, "라"}, {4, "라 라"}, {5, "오"}}, "line 5 translated twice"},
		{"blank text", []Result{{4, "라 라 라"}, {5, " \n "}}, "line 6 translated to empty text"},
		{"unknown line", []Result{{4, "라"}, {5, "오"}, {9, "?"}}, "unknown line 10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkCoverage(items, tt.results)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRepairEscapes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`a\Nb`, `a\nb`},
		{`a\\Nb`, `a\\Nb`},
		{`say \"hi\"`, `say \"hi\"`},
		{`\q`, `\\q`},
		{`end\`, `end\`},
	}
	for _, tt := range tests {
		if got := repairEscapes(tt.in); got != tt.want {
			t.Errorf("repairEscapes(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestClipCountsRunes(t *testing.T) {
	if got := clip("사랑해요", 2); got != "사랑..." {
		t.Errorf("expected %q, got %q", "사랑...", got)
	}
	if got := clip("short", 10); got != "short" {
		t.Errorf("expected short to stay, got %q", got)
	}
}

func TestBuildPrompt(t *testing.T) {
	opts := Options{
		InputLanguage:  "English",
		TargetLanguage: "Japanese",
	}

	items := []Item{
		{Index: 0, Text: "Hello world"},
		{Index: 1, Text: "Goodbye"},
	}

	prompt := BuildPrompt(opts, items)

	if !strings.Contains(prompt, "English song lyrics") {
		t.Error("prompt should contain input language")
	}
	if !strings.Contains(prompt, "to Japanese") {
		t.Error("prompt should contain target language")
	}
	if !strings.Contains(prompt, "Hello world") {
		t.Error("prompt should contain input text")
	}
	if !strings.Contains(prompt, `"index": 0`) {
		t.Error("prompt should contain index")
	}
}

func TestBuildPromptWithoutInputLanguage(t *testing.T) {
	opts := Options{TargetLanguage: "Spanish"}

	items := []Item{
		{Index: 0, Text: "Hello"},
	}

	prompt := BuildPrompt(opts, items)

	if strings.Contains(prompt, "English") || strings.Contains(prompt, "from ") {
		t.Error("prompt should not contain input language when not specified")
	}
	if !strings.Contains(prompt, "to Spanish") {
		t.Error("prompt should contain target language")
	}
}

func TestParseResponse(t *testing.T) {
	items := []Item{{Index: 0, Text: "first verse"}, {Index: 1, Text: "second verse"}}

	if _, err := parseResponse("Gemini", "  ", items); err == nil || !strings.Contains(err.Error(), "empty Gemini response") {
		t.Errorf("expected empty response error, got %v", err)
	}

	fenced := "```json\n[{\"index\": 1, \"text\": \"두 번째\"}, {\"index\": 0, \"text\": \"첫 번째\"}]\n```"
	results, err := parseResponse("OpenAI", fenced, items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 || results[0].Index != 1 || results[0].Text != "두 번째" {
		t.Errorf("unexpected results %+v", results)
	}

	_, err = parseResponse("Anthropic", `[{"index": 0, "text": "첫 번째"}]`, items)
	if err == nil || !strings.Contains(err.Error(), "Anthropic: no translation for line 2") {
		t.Errorf("expected missing line error, got %v", err)
	}
}
