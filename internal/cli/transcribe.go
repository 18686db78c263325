package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mgpai22/ytscript/internal/acquire"
	"github.com/mgpai22/ytscript/internal/audio"
	"github.com/mgpai22/ytscript/internal/config"
	"github.com/mgpai22/ytscript/internal/executor"
	"github.com/mgpai22/ytscript/internal/subtitle"
	"github.com/mgpai22/ytscript/internal/tools"
	"github.com/mgpai22/ytscript/internal/transcribe"
	"github.com/mgpai22/ytscript/internal/ytdlp"
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <url>",
	Short: "Get a transcript for a video",
	Long: `Get a timestamped transcript for the video at url.

Uploaded captions in --language are tried first, then any captions including
auto-generated ones. When neither is usable the audio is downloaded and
transcribed locally with whisper, or with the OpenAI or Gemini API.

A VTT file is always written. Add other formats with -f (repeatable) or
--txt; -f all writes every format.

Examples:
  ytscript transcribe "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
  ytscript transcribe URL -f srt -f json
  ytscript transcribe URL --txt -o talk
  ytscript transcribe URL --provider openai --base-url http://localhost:8080/v1`,
	Args: cobra.ExactArgs(1),
	RunE: runTranscribe,
}

func init() {
	rootCmd.AddCommand(transcribeCmd)

	transcribeCmd.Flags().
		StringSliceP("format", "f", nil, "Extra output format(s): txt, srt, json, all (vtt is always written)")
	transcribeCmd.Flags().
		Bool("txt", false, "Also write a plain text transcript")
	transcribeCmd.Flags().
		StringP("language", "l", "", "Caption language to try first (default from config, \"en\")")
	transcribeCmd.Flags().
		String("provider", "", "Transcription provider: whisper, openai, gemini")
	transcribeCmd.Flags().
		String("model", "", "Transcription model")
	transcribeCmd.Flags().
		String("api-key", "", "API key for the transcription provider")
	transcribeCmd.Flags().
		String("base-url", "", "OpenAI-compatible transcription endpoint")
	transcribeCmd.Flags().
		Int("chunk-minutes", 0, "Audio chunk length in minutes for API providers")
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	url := args[0]
	ctx := cmd.Context()
	cfg := appConfig

	formatNames, _ := cmd.Flags().GetStringSlice("format")
	if !cmd.Flags().Changed("format") {
		formatNames = cfg.Output.Formats
	}
	includeTxt, _ := cmd.Flags().GetBool("txt")
	formats, err := subtitle.SelectFormats(formatNames, includeTxt)
	if err != nil {
		return err
	}

	language, _ := cmd.Flags().GetString("language")
	if language == "" {
		language = cfg.Captions.Language
	}

	providerFlag, _ := cmd.Flags().GetString("provider")
	provider, err := transcribe.ParseProvider(config.Resolve(providerFlag, "", cfg.Transcription.Provider))
	if err != nil {
		return err
	}

	model, _ := cmd.Flags().GetString("model")
	apiKeyFlag, _ := cmd.Flags().GetString("api-key")
	baseURLFlag, _ := cmd.Flags().GetString("base-url")
	chunkMinutes, _ := cmd.Flags().GetInt("chunk-minutes")
	if chunkMinutes <= 0 {
		chunkMinutes = cfg.Transcription.ChunkMinutes
	}

	baseURLEnv := ""
	if provider == transcribe.ProviderOpenAI {
		baseURLEnv = "OPENAI_BASE_URL"
	}

	opts := transcribe.Options{
		Language:      cfg.Transcription.Language,
		Model:         config.Resolve(model, "", cfg.Transcription.Model),
		BaseURL:       config.Resolve(baseURLFlag, baseURLEnv, cfg.Transcription.BaseURL),
		ChunkDuration: time.Duration(chunkMinutes) * time.Minute,
	}
	apiKey := config.Resolve(apiKeyFlag, config.APIKeyEnv(string(provider)), cfg.Transcription.APIKey)

	exec := executor.New()
	paths := tools.NewPaths(cfg.ToolPaths())
	downloader := ytdlp.New(exec, paths, logger)
	deps := transcribe.Dependencies{
		Exec:   exec,
		Paths:  paths,
		Audio:  audio.NewProcessor(exec, paths, logger),
		Logger: logger,
	}

	engine := deferredEngine(func(ctx context.Context) (transcribe.Transcriber, error) {
		return transcribe.Factory(ctx, provider, apiKey, opts, deps)
	})

	logger.Infow("Getting video information", "url", url)
	info := downloader.VideoInfo(ctx, url)
	fmt.Fprintf(cmd.OutOrStdout(), "Video: %s (%s)\n", info.Title, info.ID)

	orchestrator := acquire.New(downloader, downloader, engine, acquire.Config{
		Language:  language,
		MinLength: cfg.Captions.MinLength,
	}, logger)

	result, err := orchestrator.Run(ctx, url)
	if err != nil {
		return err
	}

	logger.Infow("Transcript acquired",
		"source", string(result.Source),
		"segments", len(result.Segments),
	)

	output, _ := cmd.Flags().GetString("output")
	basePath := filepath.Join(outputDir(cmd), resolveBaseName(output, info))

	written, err := subtitle.WriteAll(result.Segments, basePath, formats)
	if err != nil {
		return fmt.Errorf("failed to save transcript: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved %d segments from %s:\n", len(result.Segments), result.Source)
	for _, path := range written {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", path)
	}

	return nil
}

func resolveBaseName(output string, info ytdlp.VideoInfo) string {
	if output != "" {
		return output
	}
	return info.BaseName()
}

// Transcriber built on first use
type deferredEngine func(ctx context.Context) (transcribe.Transcriber, error)

func (f deferredEngine) Transcribe(ctx context.Context, audioPath string) (*transcribe.Result, error) {
	engine, err := f(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create transcriber: %w", err)
	}
	return engine.Transcribe(ctx, audioPath)
}
