package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mgpai22/ytscript/internal/tools"
)

const DefaultPath = "ytscript.yaml"

type Config struct {
	Output        OutputConfig        `yaml:"output"`
	Captions      CaptionsConfig      `yaml:"captions"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	Summarization SummarizationConfig `yaml:"summarization"`
	Tools         ToolsConfig         `yaml:"tools"`
	Logging       LoggingConfig       `yaml:"logging"`
}

type OutputConfig struct {
	Dir     string   `yaml:"dir"`
	Formats []string `yaml:"formats"`
}

type CaptionsConfig struct {
	Language  string `yaml:"language"`
	MinLength int    `yaml:"min_length"`
}

type TranscriptionConfig struct {
	Provider         string   `yaml:"provider"`
	Model            string   `yaml:"model"`
	Language     string `yaml:"language"`
	BaseURL          string   `yaml:"base_url"`
	APIKey           string   `yaml:"api_key"`
	ChunkMinutes int    `yaml:"chunk_minutes"`
}

type SummarizationConfig struct {
	Provider         string   `yaml:"provider"`
	BaseURL          string   `yaml:"base_url"`
	APIKey           string   `yaml:"api_key"`
	Model            string   `yaml:"model"`
	MaxTokens        int      `yaml:"max_tokens"`
	Temperature      *float64 `yaml:"temperature"`
	SystemPromptFile string   `yaml:"system_prompt_file"`
}

type ToolsConfig struct {
	YTDLP   string `yaml:"ytdlp"`
	FFmpeg  string `yaml:"ffmpeg"`
	FFprobe string `yaml:"ffprobe"`
	Whisper string `yaml:"whisper"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads a YAML config file and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadOrDefault loads path when it exists. A missing file is only an error
// when the caller named it explicitly.
func LoadOrDefault(path string, explicit bool) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if !explicit && errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return nil, err
}

func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

// Validate fills defaults and rejects values no component accepts.
func (c *Config) Validate() error {
	if c.Output.Dir == "" {
		c.Output.Dir = "output"
	}

	if c.Captions.Language == "" {
		c.Captions.Language = "en"
	}
	if c.Captions.MinLength < 0 {
		return fmt.Errorf("captions.min_length must not be negative")
	}
	if c.Captions.MinLength == 0 {
		c.Captions.MinLength = 10
	}

	c.Transcription.Provider = strings.ToLower(c.Transcription.Provider)
	switch c.Transcription.Provider {
	case "":
		c.Transcription.Provider = "whisper"
	case "whisper", "openai", "gemini":
	default:
		return fmt.Errorf("transcription.provider %q is not one of whisper, openai, gemini", c.Transcription.Provider)
	}
	if c.Transcription.ChunkMinutes < 0 {
		return fmt.Errorf("transcription.chunk_minutes must not be negative")
	}
	if c.Transcription.ChunkMinutes == 0 {
		c.Transcription.ChunkMinutes = 10
	}

	c.Summarization.Provider = strings.ToLower(c.Summarization.Provider)
	switch c.Summarization.Provider {
	case "":
		c.Summarization.Provider = "openai"
	case "openai", "anthropic", "gemini":
	default:
		return fmt.Errorf("summarization.provider %q is not one of openai, anthropic, gemini", c.Summarization.Provider)
	}
	if c.Summarization.MaxTokens < 0 {
		return fmt.Errorf("summarization.max_tokens must not be negative")
	}
	if t := c.Summarization.Temperature; t == nil {
		def := 0.7
		c.Summarization.Temperature = &def
	} else if *t < 0 || *t > 2 {
		return fmt.Errorf("summarization.temperature must be between 0 and 2")
	}
	if c.Summarization.SystemPromptFile == "" {
		c.Summarization.SystemPromptFile = "system_prompt.txt"
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}

// configured executables, empty entries left to env/PATH resolution
func (c *Config) ToolPaths() map[tools.Tool]string {
	return map[tools.Tool]string{
		tools.YTDLP:   c.Tools.YTDLP,
		tools.FFmpeg:  c.Tools.FFmpeg,
		tools.FFprobe: c.Tools.FFprobe,
		tools.Whisper: c.Tools.Whisper,
	}
}

// dotenv files read at startup, in order; earlier files win
func EnvFiles() []string {
	files := []string{".env"}
	if home, err := os.UserHomeDir(); err == nil {
		files = append(files, filepath.Join(home, ".config", "ytscript.env"))
	}
	return files
}
