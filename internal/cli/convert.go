package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgpai22/ytscript/internal/subtitle"
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Convert a saved transcript to other formats",
	Long: `Read a transcript file and write it in other formats next to it.

Without -f every format other than the source's is written.

Examples:
  ytscript convert output/talk.vtt -f srt
  ytscript convert talk.srt -f json -f txt -o exports/talk`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().
		StringSliceP("format", "f", nil, "Target format(s): vtt, srt, txt, json, all")
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	segments, source, err := subtitle.Open(inputPath)
	if err != nil {
		return err
	}

	names, _ := cmd.Flags().GetStringSlice("format")
	targets, err := convertTargets(names, source)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return fmt.Errorf("nothing to convert: %s is already in every requested format", inputPath)
	}

	basePath, _ := cmd.Flags().GetString("output")
	if basePath == "" {
		basePath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	}

	logger.Infow("Converting transcript",
		"input", inputPath,
		"segments", len(segments),
		"formats", targets,
	)

	written, err := subtitle.WriteAll(segments, basePath, targets)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	for _, path := range written {
		fmt.Fprintf(cmd.OutOrStdout(), "Saved: %s\n", path)
	}
	return nil
}

// requested formats minus the source format, which would overwrite the input
func convertTargets(names []string, source subtitle.Format) ([]subtitle.Format, error) {
	var requested []subtitle.Format
	if len(names) == 0 {
		requested = subtitle.AllFormats
	}
	for _, name := range names {
		if strings.EqualFold(strings.TrimSpace(name), "all") {
			requested = subtitle.AllFormats
			break
		}
		format, err := subtitle.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		requested = append(requested, format)
	}

	seen := map[subtitle.Format]bool{source: true}
	var targets []subtitle.Format
	for _, format := range requested {
		if !seen[format] {
			seen[format] = true
			targets = append(targets, format)
		}
	}
	return targets, nil
}
