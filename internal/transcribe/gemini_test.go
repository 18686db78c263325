package transcribe

import (
	"encoding/json"
	"strings"
	"testing"

	"google.golang.org/genai"
)

func geminiResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: content}},
	}
}

// shapes Gemini has returned for the same prompt
func TestGeminiResponseShapes(t *testing.T) {
	tests := []struct {
		name     string
		reply    string
		wantText []string
	}{
		{
			name:     "bare list",
			reply:    `[{"start": 0, "end": 1.5, "text": "one"}, {"start": 1.5, "end": 3, "text": "two"}]`,
			wantText: []string{"one", "two"},
		},
		{
			name:     "fenced list",
			reply:    "```json\n[{\"start\": 0, \"end\": 1.5, \"text\": \"one\"}]\n```",
			wantText: []string{"one"},
		},
		{
			name:     "prose around the list",
			reply:    "Sure! Here is the transcript:\n[{\"start\": 0, \"end\": 2, \"text\": \"one\"}]\nLet me know if you need more.",
			wantText: []string{"one"},
		},
		{
			name:     "wrapped in segments",
			reply:    `{"language": "en", "segments": [{"start": 0, "end": 2, "text": "one"}]}`,
			wantText: []string{"one"},
		},
		{
			name:     "wrapped under an unexpected key",
			reply:    `{"result": {"items": [{"start": 4, "end": 5, "text": "four"}]}}`,
			wantText: []string{"four"},
		},
		{
			name:     "bracketed aside before the list",
			reply:    "[inaudible intro skipped]\n[{\"start\": 9, \"end\": 10, \"text\": \"late start\"}]",
			wantText: []string{"late start"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments, err := parseTranscriptionResponse(geminiResponse(tt.reply))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(segments) != len(tt.wantText) {
				t.Fatalf("got %d segments, want %d: %+v", len(segments), len(tt.wantText), segments)
			}
			for i, want := range tt.wantText {
				if segments[i].Text != want {
					t.Errorf("segment %d text = %q, want %q", i, segments[i].Text, want)
				}
			}
		})
	}
}

func TestGeminiSegmentsAreSeconds(t *testing.T) {
	resp := geminiResponse(
		"```json\n[{\"start\": 61.25, \"end\": 3600.5, \"text\": \"  spans the hour  \"},",
		" {\"start\": 3600.5, \"end\": 3601, \"text\": \"after\"}]\n```",
	)

	segments, err := parseTranscriptionResponse(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(segments))
	}
	if segments[0].Start != 61.25 || segments[0].End != 3600.5 {
		t.Errorf("timing should be passed through as seconds, got %+v", segments[0])
	}
	if segments[0].Text != "spans the hour" {
		t.Errorf("text should be trimmed, got %q", segments[0].Text)
	}
}

func TestGeminiResponseFailures(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
	}{
		{"nil response", nil},
		{"no candidates", &genai.GenerateContentResponse{}},
		{"no text", geminiResponse("")},
		{"prose only", geminiResponse("I could not hear any speech in this file.")},
		{"empty list", geminiResponse("[]")},
		{"timestamps as strings", geminiResponse(`[{"start": "00:00:01", "end": "00:00:02", "text": "x"}]`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if segments, err := parseTranscriptionResponse(tt.resp); err == nil {
				t.Errorf("expected error, got %+v", segments)
			}
		})
	}
}

func TestFindSegmentsDepth(t *testing.T) {
	list := `[{"start": 1, "end": 2, "text": "deep"}]`
	nest := func(levels int) string {
		doc := list
		for i := 0; i < levels; i++ {
			doc = `{"level": ` + doc + `}`
		}
		return doc
	}

	if _, ok := findSegments(json.RawMessage(nest(4)), 0); !ok {
		t.Error("a list four objects deep should be found")
	}
	if _, ok := findSegments(json.RawMessage(nest(5)), 0); ok {
		t.Error("a list five objects deep is past the search limit")
	}

	// the scan restarts at every bracket, so deeper lists are still reached
	// from an inner object
	segments, err := extractTranscriptSegments(nest(8))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segments) != 1 || segments[0].Text != "deep" {
		t.Errorf("unexpected segments: %+v", segments)
	}
}

func TestFindSegmentsPrefersKnownKeys(t *testing.T) {
	doc := `{
		"alternatives": [{"start": 0, "end": 1, "text": "alternative"}],
		"segments": [{"start": 0, "end": 1, "text": "primary"}]
	}`

	segments, ok := findSegments(json.RawMessage(doc), 0)
	if !ok {
		t.Fatal("expected segments")
	}
	if segments[0].Text != "primary" {
		t.Errorf("the segments key should win over other keys, got %q", segments[0].Text)
	}
}

func TestValidateSegments(t *testing.T) {
	if validateSegments(nil) {
		t.Error("no segments is not a transcript")
	}
	if validateSegments([]transcriptSegment{{}, {}}) {
		t.Error("objects without text or timing are not a transcript")
	}
	if !validateSegments([]transcriptSegment{{}, {Start: 2}}) {
		t.Error("timing alone is enough")
	}
}

func TestTranscriptionPrompt(t *testing.T) {
	tr := &GeminiTranscriber{options: Options{Language: "German", Prompt: "Speakers: Ada, Linus."}}
	prompt := tr.buildTranscriptionPrompt()

	for _, want := range []string{"'start'", "seconds", "The audio is in German.", "Speakers: Ada, Linus.", "ONLY the JSON array"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt is missing %q:\n%s", want, prompt)
		}
	}

	if strings.Contains((&GeminiTranscriber{}).buildTranscriptionPrompt(), "The audio is in") {
		t.Error("no language hint expected without a language")
	}
}

func TestTruncateString(t *testing.T) {
	if got := truncateString("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := truncateString(strings.Repeat("x", 12), 10); got != strings.Repeat("x", 10)+"..." {
		t.Errorf("got %q", got)
	}
}
