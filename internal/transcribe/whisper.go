package transcribe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgpai22/ytscript/internal/executor"
	"github.com/mgpai22/ytscript/internal/logging"
	"github.com/mgpai22/ytscript/internal/tools"
)

const defaultWhisperModel = "base"

// WhisperTranscriber runs the openai-whisper command line tool locally.
type WhisperTranscriber struct {
	exec    executor.Executor
	paths   *tools.Paths
	model   string
	options Options
	logger  *logging.Logger
}

func NewWhisperTranscriber(
	exec executor.Executor,
	paths *tools.Paths,
	opts Options,
	logger *logging.Logger,
) *WhisperTranscriber {
	model := opts.Model
	if model == "" {
		model = defaultWhisperModel
	}
	if exec == nil {
		exec = executor.New()
	}
	if paths == nil {
		paths = tools.NewPaths(nil)
	}
	return &WhisperTranscriber{
		exec:    exec,
		paths:   paths,
		model:   model,
		options: opts,
		logger:  logger,
	}
}

func (t *WhisperTranscriber) Transcribe(ctx context.Context, audioPath string) (*Result, error) {
	if _, err := os.Stat(audioPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("audio file not found: %s", audioPath)
	}

	bin, err := t.paths.Path(tools.Whisper)
	if err != nil {
		return nil, err
	}

	outDir, err := os.MkdirTemp(filepath.Dir(audioPath), "whisper-")
	if err != nil {
		return nil, fmt.Errorf("failed to create whisper output directory: %w", err)
	}
	defer os.RemoveAll(outDir)

	t.logger.Infow("Transcribing audio with Whisper", "model", t.model)

	if _, err := t.exec.Execute(ctx, bin, t.args(audioPath, outDir)...); err != nil {
		return nil, executor.Wrap("whisper", err)
	}

	stem := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	data, err := os.ReadFile(filepath.Join(outDir, stem+".json"))
	if err != nil {
		return nil, fmt.Errorf("whisper produced no output: %w", err)
	}

	segments, err := parseVerboseJSONResponse(string(data), 0)
	if err != nil {
		return nil, fmt.Errorf("failed to parse whisper output: %w", err)
	}

	return &Result{
		Segments: segments,
		Language: t.options.Language,
	}, nil
}

func (t *WhisperTranscriber) args(audioPath, outDir string) []string {
	args := []string{
		audioPath,
		"--model", t.model,
		"--output_format", "json",
		"--output_dir", outDir,
		"--verbose", "False",
	}
	if t.options.Language != "" {
		args = append(args, "--language", t.options.Language)
	}
	if t.options.Prompt != "" {
		args = append(args, "--initial_prompt", t.options.Prompt)
	}
	return args
}
