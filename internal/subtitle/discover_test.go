package subtitle

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestListTranscripts(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"b_2.vtt", "b_2.srt", "a_1.txt", "a_1.json", "c_3.json", "notes.md"} {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	files, err := ListTranscripts(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"a_1.json", "b_2.srt", "c_3.json"}
	if len(files) != len(want) {
		t.Fatalf("got %v, want %v", files, want)
	}
	for i, f := range files {
		if filepath.Base(f) != want[i] {
			t.Errorf("file %d: got %s, want %s", i, filepath.Base(f), want[i])
		}
	}
}

func TestFindTranscript(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"talk.json", "talk.vtt"} {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	path, err := FindTranscript(tmpDir, "talk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(path) != "talk.vtt" {
		t.Errorf("expected talk.vtt, got %s", path)
	}

	_, err = FindTranscript(tmpDir, "missing")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}
