package transcribe

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mgpai22/ytscript/internal/audio"
	"github.com/mgpai22/ytscript/internal/subtitle"
)

type fakeTranscriber struct {
	results map[string]*Result
	failOn  string
	calls   []string
}

func (f *fakeTranscriber) Transcribe(_ context.Context, audioPath string) (*Result, error) {
	f.calls = append(f.calls, audioPath)
	if audioPath == f.failOn {
		return nil, errors.New("boom")
	}
	return f.results[audioPath], nil
}

func TestTranscribeChunksAppliesOffsets(t *testing.T) {
	fake := &fakeTranscriber{results: map[string]*Result{
		"a.mp3": {Language: "en", Segments: []subtitle.Segment{{Start: 1, End: 2, Text: "first"}}},
		"b.mp3": {Segments: []subtitle.Segment{{Start: 0.5, End: 3, Text: "second"}}},
	}}
	chunks := []audio.ChunkInfo{
		{Path: "a.mp3", Index: 0, StartTime: 0, EndTime: 10 * time.Minute},
		{Path: "b.mp3", Index: 1, StartTime: 10 * time.Minute, EndTime: 12 * time.Minute},
	}

	result, err := transcribeChunks(context.Background(), fake, chunks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []subtitle.Segment{
		{Start: 1, End: 2, Text: "first"},
		{Start: 600.5, End: 603, Text: "second"},
	}
	if len(result.Segments) != len(want) {
		t.Fatalf("got %d segments, want %d", len(result.Segments), len(want))
	}
	for i := range want {
		if result.Segments[i] != want[i] {
			t.Errorf("segment %d: got %+v, want %+v", i, result.Segments[i], want[i])
		}
	}
	if result.Duration != 12*time.Minute {
		t.Errorf("duration = %v, want 12m", result.Duration)
	}
	if result.Language != "en" {
		t.Errorf("language = %q, want en", result.Language)
	}
}

func TestTranscribeChunksStopsOnFailure(t *testing.T) {
	fake := &fakeTranscriber{failOn: "a.mp3"}
	chunks := []audio.ChunkInfo{
		{Path: "a.mp3", Index: 0},
		{Path: "b.mp3", Index: 1},
	}

	if _, err := transcribeChunks(context.Background(), fake, chunks); err == nil {
		t.Fatal("expected error")
	}
	if len(fake.calls) != 1 {
		t.Errorf("transcriber called %d times after failure, want 1", len(fake.calls))
	}
}

func TestTranscribeChunksEmpty(t *testing.T) {
	result, err := transcribeChunks(context.Background(), &fakeTranscriber{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Segments) != 0 {
		t.Errorf("expected no segments, got %d", len(result.Segments))
	}
}

func TestChunkedTranscriberWithoutProcessor(t *testing.T) {
	fake := &fakeTranscriber{results: map[string]*Result{
		"x.wav": {Segments: []subtitle.Segment{{Start: 0, End: 1, Text: "direct"}}},
	}}
	tr := NewChunkedTranscriber(fake, nil, 0, nil)
	if tr.chunkDuration != DefaultChunkDuration {
		t.Errorf("chunk duration = %v, want default", tr.chunkDuration)
	}

	result, err := tr.Transcribe(context.Background(), "x.wav")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Segments) != 1 || result.Segments[0].Text != "direct" {
		t.Errorf("unexpected result: %+v", result.Segments)
	}
}
