package transcribe

import (
	"context"
	"testing"
)

func TestParseProvider(t *testing.T) {
	tests := []struct {
		in      string
		want    Provider
		wantErr bool
	}{
		{"", ProviderWhisper, false},
		{"whisper", ProviderWhisper, false},
		{" OpenAI ", ProviderOpenAI, false},
		{"gemini", ProviderGemini, false},
		{"deepgram", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseProvider(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFactory(t *testing.T) {
	ctx := context.Background()

	tr, err := Factory(ctx, ProviderWhisper, "", Options{}, Dependencies{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := tr.(*WhisperTranscriber); !ok {
		t.Errorf("whisper provider returned %T", tr)
	}

	tr, err = Factory(ctx, ProviderOpenAI, "sk-test", Options{}, Dependencies{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := tr.(*ChunkedTranscriber); !ok {
		t.Errorf("openai provider returned %T", tr)
	}

	if _, err := Factory(ctx, ProviderOpenAI, "", Options{}, Dependencies{}); err == nil {
		t.Error("expected error without credentials")
	}
	if _, err := Factory(ctx, Provider("nope"), "", Options{}, Dependencies{}); err == nil {
		t.Error("expected error for unknown provider")
	}
}
