package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgpai22/ytscript/internal/logging"
	"github.com/mgpai22/ytscript/internal/tools"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func float(v float64) *float64 { return &v }

func TestValidateDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "output", cfg.Output.Dir)
	assert.Equal(t, "en", cfg.Captions.Language)
	assert.Equal(t, 10, cfg.Captions.MinLength)
	assert.Equal(t, "whisper", cfg.Transcription.Provider)
	assert.Equal(t, 10, cfg.Transcription.ChunkMinutes)
	assert.Equal(t, "openai", cfg.Summarization.Provider)
	assert.Empty(t, cfg.Summarization.Model, "each provider picks its own default model")
	require.NotNil(t, cfg.Summarization.Temperature)
	assert.Equal(t, 0.7, *cfg.Summarization.Temperature)
	assert.Equal(t, "system_prompt.txt", cfg.Summarization.SystemPromptFile)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"empty config", Config{}, false},
		{"known providers", Config{
			Transcription: TranscriptionConfig{Provider: "Gemini"},
			Summarization: SummarizationConfig{Provider: "anthropic"},
		}, false},
		{"unknown transcription provider", Config{Transcription: TranscriptionConfig{Provider: "deepgram"}}, true},
		{"unknown summarization provider", Config{Summarization: SummarizationConfig{Provider: "cohere"}}, true},
		{"negative chunk", Config{Transcription: TranscriptionConfig{ChunkMinutes: -1}}, true},
		{"negative max tokens", Config{Summarization: SummarizationConfig{MaxTokens: -5}}, true},
		{"temperature too high", Config{Summarization: SummarizationConfig{Temperature: float(3)}}, true},
		{"zero temperature", Config{Summarization: SummarizationConfig{Temperature: float(0)}}, false},
		{"negative min length", Config{Captions: CaptionsConfig{MinLength: -1}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "ytscript.yaml", `
output:
  dir: transcripts
  formats: [txt, srt]
captions:
  language: de
transcription:
  provider: openai
  base_url: http://localhost:8080/v1
  chunk_minutes: 5
summarization:
  provider: anthropic
  model: claude-haiku-4-5
  max_tokens: 1024
  temperature: 0
  system_prompt_file: prompts/summary.md
tools:
  ytdlp: /opt/bin/yt-dlp
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "transcripts", cfg.Output.Dir)
	assert.Equal(t, []string{"txt", "srt"}, cfg.Output.Formats)
	assert.Equal(t, "de", cfg.Captions.Language)
	assert.Equal(t, "openai", cfg.Transcription.Provider)
	assert.Equal(t, 5, cfg.Transcription.ChunkMinutes)
	assert.Equal(t, "anthropic", cfg.Summarization.Provider)
	assert.Equal(t, "claude-haiku-4-5", cfg.Summarization.Model)
	assert.Equal(t, 1024, cfg.Summarization.MaxTokens)
	require.NotNil(t, cfg.Summarization.Temperature)
	assert.Zero(t, *cfg.Summarization.Temperature, "an explicit zero is kept")
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/opt/bin/yt-dlp", cfg.ToolPaths()[tools.YTDLP])
	assert.Empty(t, cfg.ToolPaths()[tools.FFmpeg])
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.yaml", "output: [unclosed"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "invalid.yaml", "transcription:\n  provider: nope\n"))
	assert.Error(t, err)
}

func TestLoadOrDefault(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "ytscript.yaml")

	cfg, err := LoadOrDefault(missing, false)
	require.NoError(t, err)
	assert.Equal(t, "output", cfg.Output.Dir)

	_, err = LoadOrDefault(missing, true)
	assert.Error(t, err, "an explicitly named config must exist")
}

func TestLoadEnvDoesNotOverride(t *testing.T) {
	t.Setenv("YTSCRIPT_TEST_KEEP", "from-process")
	envFile := writeFile(t, ".env", "YTSCRIPT_TEST_KEEP=from-file\nYTSCRIPT_TEST_NEW=loaded\n")
	t.Cleanup(func() { os.Unsetenv("YTSCRIPT_TEST_NEW") })

	LoadEnv(logging.NewNop(), envFile, filepath.Join(t.TempDir(), "absent.env"))

	assert.Equal(t, "from-process", os.Getenv("YTSCRIPT_TEST_KEEP"))
	assert.Equal(t, "loaded", os.Getenv("YTSCRIPT_TEST_NEW"))
}

func TestResolve(t *testing.T) {
	t.Setenv("YTSCRIPT_TEST_KEY", "env-value")

	assert.Equal(t, "flag-value", Resolve("flag-value", "YTSCRIPT_TEST_KEY", "cfg"))
	assert.Equal(t, "env-value", Resolve("", "YTSCRIPT_TEST_KEY", "cfg"))
	assert.Equal(t, "cfg", Resolve("", "YTSCRIPT_TEST_UNSET_KEY", "cfg"))
	assert.Equal(t, "cfg", Resolve("", "", "cfg"))
}

func TestAPIKeyEnv(t *testing.T) {
	assert.Equal(t, "OPENAI_API_KEY", APIKeyEnv("openai"))
	assert.Equal(t, "ANTHROPIC_API_KEY", APIKeyEnv("anthropic"))
	assert.Equal(t, "GEMINI_API_KEY", APIKeyEnv("gemini"))
}
