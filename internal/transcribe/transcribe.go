package transcribe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mgpai22/ytscript/internal/audio"
	"github.com/mgpai22/ytscript/internal/executor"
	"github.com/mgpai22/ytscript/internal/logging"
	"github.com/mgpai22/ytscript/internal/subtitle"
	"github.com/mgpai22/ytscript/internal/tools"
)

// transcription result
type Result struct {
	Segments []subtitle.Segment
	Language string
	Duration time.Duration
}

// interface for audio transcription
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (*Result, error)
}

// transcription service provider
type Provider string

const (
	ProviderWhisper Provider = "whisper"
	ProviderOpenAI  Provider = "openai"
	ProviderGemini  Provider = "gemini"
)

// default length of audio sent to an API in one request
const DefaultChunkDuration = 10 * time.Minute

// transcription options
type Options struct {
	Language      string // Source language of audio, empty for auto-detect
	Model         string
	Prompt        string
	BaseURL       string // OpenAI-compatible endpoint
	ChunkDuration time.Duration
}

// collaborators shared by the providers
type Dependencies struct {
	Exec   executor.Executor
	Paths  *tools.Paths
	Audio  *audio.Processor
	Logger *logging.Logger
}

func ParseProvider(name string) (Provider, error) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(name))); p {
	case "":
		return ProviderWhisper, nil
	case ProviderWhisper, ProviderOpenAI, ProviderGemini:
		return p, nil
	default:
		return "", fmt.Errorf("unsupported provider: %s", name)
	}
}

// creates transcriber based on provider. API providers get compressed,
// chunked audio; the local engine reads the downloaded file as is.
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
	deps Dependencies,
) (Transcriber, error) {
	if deps.Logger == nil {
		deps.Logger = logging.NewNop()
	}

	switch provider {
	case ProviderWhisper, "":
		return NewWhisperTranscriber(deps.Exec, deps.Paths, opts, deps.Logger), nil
	case ProviderGemini:
		inner, err := NewGeminiTranscriber(ctx, apiKey, opts, deps.Audio)
		if err != nil {
			return nil, err
		}
		return NewChunkedTranscriber(inner, deps.Audio, opts.ChunkDuration, deps.Logger), nil
	case ProviderOpenAI:
		inner, err := NewOpenAITranscriber(apiKey, opts, deps.Audio)
		if err != nil {
			return nil, err
		}
		return NewChunkedTranscriber(inner, deps.Audio, opts.ChunkDuration, deps.Logger), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}
