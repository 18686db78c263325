package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mgpai22/ytscript/internal/config"
	"github.com/mgpai22/ytscript/internal/logging"
)

var (
	verbose    bool
	configPath string
	logger     *logging.Logger
	appConfig  *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "ytscript",
	Short: "Fetch, convert and summarize video transcripts",
	Long: `ytscript gets a timestamped transcript for a video. It prefers the
captions published with the video, falls back to auto-generated captions
and finally transcribes the audio itself.

Transcripts are written as VTT, SRT, plain text or JSON, and can be
summarized with an OpenAI-compatible, Anthropic or Gemini model.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose)
		config.LoadEnv(logger, config.EnvFiles()...)

		cfg, err := config.LoadOrDefault(configPath, cmd.Flags().Changed("config"))
		if err != nil {
			return err
		}
		appConfig = cfg

		if !verbose {
			logger = logging.NewLevelLogger(cfg.Logging.Level)
		}
		return nil
	},
}

// Execute runs the root command. Interrupts cancel the command context so
// scratch files are still removed.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", config.DefaultPath, "Config file")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output path")
	rootCmd.PersistentFlags().
		String("output-dir", "", "Directory holding transcripts (default from config, \"output\")")
}

func outputDir(cmd *cobra.Command) string {
	if dir, _ := cmd.Flags().GetString("output-dir"); dir != "" {
		return dir
	}
	return appConfig.Output.Dir
}
