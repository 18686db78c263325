package summarize

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// prefix of the user message; the transcript follows it
const UserPrompt = "Please summarize the following transcript:\n\n"

const DefaultTemperature = 0.7

// ErrEmptyTranscript is returned when there is nothing to summarize.
var ErrEmptyTranscript = errors.New("transcript text is empty")

// interface for transcript summarization
type Summarizer interface {
	Summarize(ctx context.Context, req Request) (string, error)
}

// one summarization call
type Request struct {
	SystemPrompt string
	Text         string
}

// summarization service provider
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGemini    Provider = "gemini"
)

type Options struct {
	Model       string
	BaseURL     string   // OpenAI-compatible or proxy endpoint
	MaxTokens   int      // 0 leaves the provider default
	Temperature *float64 // nil means DefaultTemperature; 0 is a valid setting
}

func (o Options) temperature() float64 {
	if o.Temperature == nil {
		return DefaultTemperature
	}
	return *o.Temperature
}

func ParseProvider(name string) (Provider, error) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(name))); p {
	case "":
		return ProviderOpenAI, nil
	case ProviderOpenAI, ProviderAnthropic, ProviderGemini:
		return p, nil
	default:
		return "", fmt.Errorf("unsupported summarization provider: %s", name)
	}
}

// creates Summarizer based on provider
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
) (Summarizer, error) {
	switch provider {
	case ProviderOpenAI, "":
		return NewOpenAISummarizer(apiKey, opts)
	case ProviderAnthropic:
		return NewAnthropicSummarizer(apiKey, opts)
	case ProviderGemini:
		return NewGeminiSummarizer(ctx, apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported summarization provider: %s", provider)
	}
}

// Summarize validates the request and sends it through s.
func Summarize(ctx context.Context, s Summarizer, systemPrompt, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyTranscript
	}

	summary, err := s.Summarize(ctx, Request{
		SystemPrompt: strings.TrimSpace(systemPrompt),
		Text:         text,
	})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(summary), nil
}

// LoadSystemPrompt reads the system prompt file. An empty path yields no
// system prompt.
func LoadSystemPrompt(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read system prompt: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// BuildPrompt creates the user message for a transcript
func BuildPrompt(text string) string {
	return UserPrompt + text
}
