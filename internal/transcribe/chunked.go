package transcribe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mgpai22/ytscript/internal/audio"
	"github.com/mgpai22/ytscript/internal/logging"
	"github.com/mgpai22/ytscript/internal/subtitle"
)

// ChunkedTranscriber compresses the audio, splits it and feeds the chunks to
// an API transcriber one at a time, shifting each chunk's segments by its
// offset in the source.
type ChunkedTranscriber struct {
	inner         Transcriber
	audio         *audio.Processor
	chunkDuration time.Duration
	compression   audio.CompressionOptions
	logger        *logging.Logger
}

func NewChunkedTranscriber(
	inner Transcriber,
	proc *audio.Processor,
	chunkDuration time.Duration,
	logger *logging.Logger,
) *ChunkedTranscriber {
	if chunkDuration <= 0 {
		chunkDuration = DefaultChunkDuration
	}
	return &ChunkedTranscriber{
		inner:         inner,
		audio:         proc,
		chunkDuration: chunkDuration,
		compression:   audio.DefaultCompressionOptions(),
		logger:        logger,
	}
}

func (t *ChunkedTranscriber) Transcribe(ctx context.Context, audioPath string) (*Result, error) {
	if t.audio == nil {
		return t.inner.Transcribe(ctx, audioPath)
	}

	workDir, err := os.MkdirTemp(filepath.Dir(audioPath), "chunks-")
	if err != nil {
		return nil, fmt.Errorf("failed to create chunk directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	compressed := filepath.Join(workDir, "audio."+t.compression.Format)
	if err := t.audio.CompressAudio(ctx, audioPath, compressed, t.compression); err != nil {
		return nil, fmt.Errorf("failed to compress audio: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	chunks, err := t.audio.ChunkAudio(ctx, compressed, t.chunkDuration, workDir)
	if err != nil {
		return nil, fmt.Errorf("failed to split audio: %w", err)
	}

	t.logger.Infow("Transcribing audio", "chunks", len(chunks))

	return transcribeChunks(ctx, t.inner, chunks)
}

// chunks are transcribed in order; the first failure aborts the run
func transcribeChunks(
	ctx context.Context,
	inner Transcriber,
	chunks []audio.ChunkInfo,
) (*Result, error) {
	if len(chunks) == 0 {
		return &Result{}, nil
	}

	var (
		allSegments []subtitle.Segment
		language    string
	)
	for _, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := inner.Transcribe(ctx, chunk.Path)
		if err != nil {
			return nil, fmt.Errorf("chunk %d failed: %w", chunk.Index, err)
		}
		if language == "" {
			language = result.Language
		}

		// adjust timestamps based on chunk offset
		offset := chunk.StartTime.Seconds()
		for _, seg := range result.Segments {
			allSegments = append(allSegments, subtitle.Segment{
				Start: seg.Start + offset,
				End:   seg.End + offset,
				Text:  seg.Text,
			})
		}
	}

	return &Result{
		Segments: allSegments,
		Language: language,
		Duration: chunks[len(chunks)-1].EndTime,
	}, nil
}
