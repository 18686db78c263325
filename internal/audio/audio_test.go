package audio

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"
)

func TestParseProbeDuration(t *testing.T) {
	got, err := parseProbeDuration(`{"format": {"duration": "125.500000"}}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 125500*time.Millisecond {
		t.Errorf("got %v, want 2m5.5s", got)
	}

	if _, err := parseProbeDuration(`{"format": {}}`); err == nil {
		t.Error("expected error for missing duration")
	}
	if _, err := parseProbeDuration(`not json`); err == nil {
		t.Error("expected error for invalid output")
	}
}

func TestPlanChunks(t *testing.T) {
	tests := []struct {
		name      string
		total     time.Duration
		chunk     time.Duration
		wantCount int
		wantLast  time.Duration
	}{
		{"shorter than one chunk", 90 * time.Second, 10 * time.Minute, 1, 90 * time.Second},
		{"exact multiple", 20 * time.Minute, 10 * time.Minute, 2, 20 * time.Minute},
		{"remainder", 25 * time.Minute, 10 * time.Minute, 3, 25 * time.Minute},
		{"zero length", 0, 10 * time.Minute, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := planChunks("/tmp/x/audio.mp3", tt.total, tt.chunk, "/tmp/x/chunks")
			if len(chunks) != tt.wantCount {
				t.Fatalf("got %d chunks, want %d", len(chunks), tt.wantCount)
			}
			last := chunks[len(chunks)-1]
			if last.EndTime != tt.wantLast {
				t.Errorf("last chunk ends at %v, want %v", last.EndTime, tt.wantLast)
			}
			for i, c := range chunks {
				if c.Index != i {
					t.Errorf("chunk %d has index %d", i, c.Index)
				}
				if i > 0 && c.StartTime != chunks[i-1].EndTime {
					t.Errorf("chunk %d does not start where chunk %d ends", i, i-1)
				}
			}
			if filepath.Base(chunks[0].Path) != "audio_chunk_000.mp3" {
				t.Errorf("unexpected chunk path %s", chunks[0].Path)
			}
		})
	}
}

func TestCompressionArgs(t *testing.T) {
	args := compressionArgs(DefaultCompressionOptions())
	if args["acodec"] != "libmp3lame" || args["b:a"] != "64k" || args["ar"] != 16000 || args["ac"] != 1 {
		t.Errorf("unexpected mp3 args: %v", args)
	}

	wav := compressionArgs(CompressionOptions{Format: "wav", SampleRate: 16000, Channels: 1, Bitrate: "64k"})
	if wav["acodec"] != "pcm_s16le" {
		t.Errorf("unexpected wav codec: %v", wav["acodec"])
	}
	if _, ok := wav["b:a"]; ok {
		t.Error("wav output should not set a bitrate")
	}
}

func TestLastLines(t *testing.T) {
	if got := lastLines("a\nb\nc\n", 2); got != "b\nc" {
		t.Errorf("got %q", got)
	}
}

func TestRunWithContextKillsOnCancel(t *testing.T) {
	sleep, err := exec.LookPath("sleep")
	if err != nil {
		t.Skip("sleep not available")
	}

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	started := time.Now()
	err = runWithContext(ctx, exec.Command(sleep, "10"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if elapsed := time.Since(started); elapsed > 5*time.Second {
		t.Errorf("process was not killed promptly, took %v", elapsed)
	}
}

func TestRunWithContextReturnsExitError(t *testing.T) {
	falseBin, err := exec.LookPath("false")
	if err != nil {
		t.Skip("false not available")
	}

	err = runWithContext(context.Background(), exec.Command(falseBin))
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected exit error, got %v", err)
	}
}

func TestCompressAudioHonoursCancelledContext(t *testing.T) {
	input := filepath.Join(t.TempDir(), "in.wav")
	if err := os.WriteFile(input, []byte("RIFF"), 0644); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewProcessor(nil, nil, nil)
	err := p.CompressAudio(ctx, input, filepath.Join(t.TempDir(), "out.mp3"), DefaultCompressionOptions())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
