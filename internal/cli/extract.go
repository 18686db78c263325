package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mgpai22/ytscript/internal/subtitle"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Print the plain text of a transcript",
	Long: `Print the spoken text of a transcript file without timestamps,
cue numbers or markup.

Files with an unknown extension are printed as they are.

Examples:
  ytscript extract output/talk.vtt
  ytscript extract talk.json -o talk.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	text, err := subtitle.ExtractTextFile(args[0])
	if err != nil {
		return err
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	}

	if err := os.WriteFile(outputPath, []byte(text+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	logger.Infow("Extracted text", "input", args[0], "output", outputPath)
	return nil
}
