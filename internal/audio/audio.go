package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/mgpai22/ytscript/internal/executor"
	"github.com/mgpai22/ytscript/internal/logging"
	"github.com/mgpai22/ytscript/internal/tools"
)

// audio chunk info
type ChunkInfo struct {
	Path      string
	Index     int
	StartTime time.Duration
	EndTime   time.Duration
}

// settings for audio compression
type CompressionOptions struct {
	Format     string // Output format (mp3, aac, etc.)
	SampleRate int    // Sample rate in Hz
	Channels   int    // Number of channels (1=mono, 2=stereo)
	Bitrate    string // Bitrate (e.g., "64k", "128k")
}

// defaults for transcription
func DefaultCompressionOptions() CompressionOptions {
	return CompressionOptions{
		Format:     "mp3",
		SampleRate: 16000,
		Channels:   1,
		Bitrate:    "64k",
	}
}

// JSON output from ffprobe
type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Processor prepares downloaded audio for a transcription engine
type Processor struct {
	exec   executor.Executor
	paths  *tools.Paths
	logger *logging.Logger
}

func NewProcessor(runner executor.Executor, paths *tools.Paths, logger *logging.Logger) *Processor {
	return &Processor{exec: runner, paths: paths, logger: logger}
}

// duration of an audio/video file
func (p *Processor) GetDuration(ctx context.Context, filePath string) (time.Duration, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return 0, fmt.Errorf("file not found: %s", filePath)
	}

	ffprobePath, err := p.paths.Path(tools.FFprobe)
	if err != nil {
		return 0, err
	}

	out, err := p.exec.Execute(ctx, ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		filePath,
	)
	if err != nil {
		return 0, err
	}

	return parseProbeDuration(out)
}

func parseProbeDuration(out string) (time.Duration, error) {
	var probe ffprobeOutput
	if err := json.Unmarshal([]byte(out), &probe); err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(probe.Format.Duration), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}

	return time.Duration(seconds * float64(time.Second)), nil
}

// compresses an audio file with the given options
func (p *Processor) CompressAudio(
	ctx context.Context,
	inputPath, outputPath string,
	opts CompressionOptions,
) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ffmpegPath, err := p.paths.Path(tools.FFmpeg)
	if err != nil {
		return err
	}

	p.logger.Debugw("Compressing audio",
		"input", inputPath,
		"output", outputPath,
		"sample_rate", opts.SampleRate,
		"bitrate", opts.Bitrate,
	)

	return runFFmpeg(ctx, ffmpegPath, inputPath, outputPath, compressionArgs(opts))
}

func compressionArgs(opts CompressionOptions) ffmpeg.KwArgs {
	kwargs := ffmpeg.KwArgs{
		"vn": "",              // No video
		"ar": opts.SampleRate, // Sample rate
		"ac": opts.Channels,   // Channels
	}

	switch opts.Format {
	case "aac":
		kwargs["acodec"] = "aac"
	case "wav":
		kwargs["acodec"] = "pcm_s16le"
	default:
		kwargs["acodec"] = "libmp3lame"
	}
	if opts.Bitrate != "" && opts.Format != "wav" {
		kwargs["b:a"] = opts.Bitrate
	}

	return kwargs
}

// splits an audio file into chunks of specified duration, one ffmpeg run at
// a time
func (p *Processor) ChunkAudio(
	ctx context.Context,
	audioPath string,
	chunkDuration time.Duration,
	outputDir string,
) ([]ChunkInfo, error) {
	if chunkDuration <= 0 {
		return nil, fmt.Errorf(
			"chunk duration must be positive, got %v",
			chunkDuration,
		)
	}

	totalDuration, err := p.GetDuration(ctx, audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get audio duration: %w", err)
	}

	plan := planChunks(audioPath, totalDuration, chunkDuration, outputDir)
	if len(plan) == 1 {
		plan[0].Path = audioPath
		return plan, nil
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	ffmpegPath, err := p.paths.Path(tools.FFmpeg)
	if err != nil {
		return nil, err
	}

	for _, chunk := range plan {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		kwargs := ffmpeg.KwArgs{
			"ss": chunk.StartTime.Seconds(),
			"t":  (chunk.EndTime - chunk.StartTime).Seconds(),
			"c":  "copy", // Copy codec for speed
		}

		if err := runFFmpeg(ctx, ffmpegPath, audioPath, chunk.Path, kwargs); err != nil {
			return nil, fmt.Errorf("failed to create chunk %d: %w", chunk.Index, err)
		}
	}

	p.logger.Debugw("Split audio", "chunks", len(plan), "duration", totalDuration.String())

	return plan, nil
}

func planChunks(
	audioPath string,
	total, chunkDuration time.Duration,
	outputDir string,
) []ChunkInfo {
	baseName := strings.TrimSuffix(
		filepath.Base(audioPath),
		filepath.Ext(audioPath),
	)
	ext := filepath.Ext(audioPath)

	var chunks []ChunkInfo
	for i := 0; ; i++ {
		start := time.Duration(i) * chunkDuration
		if start >= total && i > 0 {
			break
		}

		end := start + chunkDuration
		if end > total {
			end = total
		}

		chunks = append(chunks, ChunkInfo{
			Path:      filepath.Join(outputDir, fmt.Sprintf("%s_chunk_%03d%s", baseName, i, ext)),
			Index:     i,
			StartTime: start,
			EndTime:   end,
		})

		if end >= total {
			break
		}
	}

	return chunks
}

func runFFmpeg(ctx context.Context, ffmpegPath, inputPath, outputPath string, kwargs ffmpeg.KwArgs) error {
	var stderr bytes.Buffer
	cmd := ffmpeg.Input(inputPath).
		Output(outputPath, kwargs).
		OverWriteOutput().
		SetFfmpegPath(ffmpegPath).
		WithErrorOutput(&stderr).
		Silent(true).
		Compile()

	if err := runWithContext(ctx, cmd); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &executor.ToolError{
			Tool:   "ffmpeg",
			Stderr: lastLines(stderr.String(), 5),
			Err:    err,
		}
	}
	return nil
}

// ffmpeg-go builds the command without a caller context, so the process is
// killed here when ctx is cancelled
func runWithContext(ctx context.Context, cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		return ctx.Err()
	}
}

// ffmpeg prints its banner first; the useful diagnostic is at the end
func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
