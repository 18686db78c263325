package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mgpai22/ytscript/internal/config"
	"github.com/mgpai22/ytscript/internal/subtitle"
	"github.com/mgpai22/ytscript/internal/summarize"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [file]",
	Short: "Summarize a saved transcript",
	Long: `Summarize a transcript file with a language model.

Without a file argument the transcripts in the output directory are listed
and one is picked interactively. --base picks one by base name instead,
preferring .txt, then .vtt, .srt and .json.

The OpenAI provider works with any OpenAI-compatible server through
--base-url (or OPENAI_BASE_URL); a key is not needed for local servers.

Examples:
  ytscript summarize
  ytscript summarize output/talk_abc123.vtt -o summary.md
  ytscript summarize --base talk_abc123 --base-url http://localhost:1234/v1
  ytscript summarize talk.txt --provider anthropic --model claude-haiku-4-5`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)

	summarizeCmd.Flags().
		String("base", "", "Pick the transcript in the output directory with this base name")
	summarizeCmd.Flags().
		String("system-prompt", "", "System prompt file (default from config, \"system_prompt.txt\")")
	summarizeCmd.Flags().
		String("provider", "", "Summarization provider: openai, anthropic, gemini")
	summarizeCmd.Flags().
		String("base-url", "", "API base URL, e.g. http://localhost:1234/v1")
	summarizeCmd.Flags().
		String("api-key", "", "API key (not needed for local OpenAI-compatible servers)")
	summarizeCmd.Flags().
		String("model", "", "Model name (default gpt-3.5-turbo for openai)")
	summarizeCmd.Flags().
		Int("max-tokens", 0, "Maximum tokens in the summary")
	summarizeCmd.Flags().
		Float64("temperature", 0, "Sampling temperature (default 0.7)")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := appConfig.Summarization

	path, err := pickTranscript(cmd, args)
	if err != nil {
		if errors.Is(err, errNoSelection) {
			fmt.Fprintln(cmd.OutOrStdout(), "No file selected.")
			return nil
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Processing: %s\n", filepath.Base(path))

	promptFlag, _ := cmd.Flags().GetString("system-prompt")
	systemPrompt, err := summarize.LoadSystemPrompt(config.Resolve(promptFlag, "", cfg.SystemPromptFile))
	if err != nil {
		if cmd.Flags().Changed("system-prompt") || !errors.Is(err, os.ErrNotExist) {
			return err
		}
		logger.Warnw("System prompt file not found, continuing without one", "file", cfg.SystemPromptFile)
	}

	text, err := subtitle.ExtractTextFile(path)
	if err != nil {
		return err
	}
	if text == "" {
		return fmt.Errorf("transcript file appears to be empty: %s", path)
	}
	logger.Infow("Read transcript", "characters", len(text))

	providerFlag, _ := cmd.Flags().GetString("provider")
	provider, err := summarize.ParseProvider(config.Resolve(providerFlag, "", cfg.Provider))
	if err != nil {
		return err
	}

	apiKeyFlag, _ := cmd.Flags().GetString("api-key")
	baseURLFlag, _ := cmd.Flags().GetString("base-url")
	model, _ := cmd.Flags().GetString("model")
	maxTokens, _ := cmd.Flags().GetInt("max-tokens")
	if !cmd.Flags().Changed("max-tokens") {
		maxTokens = cfg.MaxTokens
	}
	temperature, err := resolveTemperature(cmd, cfg.Temperature)
	if err != nil {
		return err
	}

	baseURLEnv := ""
	if provider == summarize.ProviderOpenAI {
		baseURLEnv = "OPENAI_BASE_URL"
	}
	opts := summarize.Options{
		Model:       config.Resolve(model, "", cfg.Model),
		BaseURL:     config.Resolve(baseURLFlag, baseURLEnv, cfg.BaseURL),
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
	apiKey := config.Resolve(apiKeyFlag, config.APIKeyEnv(string(provider)), cfg.APIKey)

	summarizer, err := summarize.Factory(ctx, provider, apiKey, opts)
	if err != nil {
		return fmt.Errorf("failed to create summarizer: %w", err)
	}

	logger.Infow("Summarizing", "provider", string(provider), "model", opts.Model, "base_url", opts.BaseURL)

	summary, err := summarize.Summarize(ctx, summarizer, systemPrompt, text)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output != "" {
		if err := os.WriteFile(output, []byte(summary+"\n"), 0644); err != nil {
			return fmt.Errorf("failed to save summary: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Summary saved to: %s\n", output)
		return nil
	}

	printSummary(cmd.OutOrStdout(), summary)
	return nil
}

// an unset flag defers to the config value, so an explicit 0 survives
func resolveTemperature(cmd *cobra.Command, fromConfig *float64) (*float64, error) {
	if !cmd.Flags().Changed("temperature") {
		return fromConfig, nil
	}
	t, err := cmd.Flags().GetFloat64("temperature")
	if err != nil {
		return nil, err
	}
	if t < 0 || t > 2 {
		return nil, fmt.Errorf("--temperature must be between 0 and 2, got %v", t)
	}
	return &t, nil
}

// file argument, then --base, then interactive selection
func pickTranscript(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		if _, err := os.Stat(args[0]); err != nil {
			return "", fmt.Errorf("file not found: %s", args[0])
		}
		return args[0], nil
	}

	dir := outputDir(cmd)
	if base, _ := cmd.Flags().GetString("base"); base != "" {
		return subtitle.FindTranscript(dir, base)
	}

	files, err := subtitle.ListTranscripts(dir)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no transcript files found in %s", dir)
	}

	return selectTranscript(cmd.InOrStdin(), cmd.OutOrStdout(), files)
}
