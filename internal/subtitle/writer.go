package subtitle

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WebVTT format
type VTTWriter struct{}

// SubRip format
type SRTWriter struct{}

// one line of text per segment, no timing
type TextWriter struct{}

// list of {start, end, text} records with vtt timecodes
type JSONWriter struct{}

func NewWriter(format Format) (Writer, error) {
	switch format {
	case FormatVTT:
		return VTTWriter{}, nil
	case FormatSRT:
		return SRTWriter{}, nil
	case FormatTXT:
		return TextWriter{}, nil
	case FormatJSON:
		return JSONWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %q", format)
	}
}

func (VTTWriter) Render(segments []Segment) ([]byte, error) {
	var sb strings.Builder

	// VTT header
	sb.WriteString("WEBVTT\n\n")

	for _, seg := range segments {
		// timestamps: 00:00:00.000 --> 00:00:00.000
		fmt.Fprintf(&sb, "%s --> %s\n",
			FormatTimecode(seg.Start, FormatVTT),
			FormatTimecode(seg.End, FormatVTT))

		sb.WriteString(seg.Text)
		sb.WriteString("\n\n")
	}

	return []byte(sb.String()), nil
}

func (SRTWriter) Render(segments []Segment) ([]byte, error) {
	var sb strings.Builder
	for i, seg := range segments {
		// index (1-based)
		fmt.Fprintf(&sb, "%d\n", i+1)

		// timestamps: 00:00:00,000 --> 00:00:00,000
		fmt.Fprintf(&sb, "%s --> %s\n",
			FormatTimecode(seg.Start, FormatSRT),
			FormatTimecode(seg.End, FormatSRT))

		sb.WriteString(seg.Text)
		sb.WriteString("\n\n")
	}

	return []byte(sb.String()), nil
}

func (TextWriter) Render(segments []Segment) ([]byte, error) {
	var sb strings.Builder
	for _, seg := range segments {
		sb.WriteString(seg.Text)
		sb.WriteString("\n")
	}
	return []byte(sb.String()), nil
}

func (JSONWriter) Render(segments []Segment) ([]byte, error) {
	records := make([]jsonSegment, len(segments))
	for i, seg := range segments {
		records[i] = jsonSegment{
			Start: FormatTimecode(seg.Start, FormatVTT),
			End:   FormatTimecode(seg.End, FormatVTT),
			Text:  seg.Text,
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("failed to encode segments: %w", err)
	}
	return buf.Bytes(), nil
}

// Render serializes segments into the given dialect.
func Render(segments []Segment, format Format) ([]byte, error) {
	writer, err := NewWriter(format)
	if err != nil {
		return nil, err
	}
	return writer.Render(segments)
}

// WriteAll writes one sibling file per format next to basePath
// (basePath + ".vtt", ...). Either every file is written or none is:
// all documents are rendered up front and staged as temp files. Existing
// destinations are moved aside before each rename and put back if a later
// rename fails.
func WriteAll(segments []Segment, basePath string, formats []Format) ([]string, error) {
	if err := ensureDir(basePath); err != nil {
		return nil, err
	}

	type staged struct {
		tmp    string
		dest   string
		backup string
	}

	var pending []*staged
	cleanupTemps := func() {
		for _, s := range pending {
			_ = os.Remove(s.tmp)
		}
	}

	for _, format := range formats {
		data, err := Render(segments, format)
		if err != nil {
			cleanupTemps()
			return nil, err
		}

		dest := basePath + GetExtensionForFormat(format)
		tmp, err := writeTemp(dest, data)
		if err != nil {
			cleanupTemps()
			return nil, fmt.Errorf("failed to write %s: %w", filepath.Base(dest), err)
		}
		pending = append(pending, &staged{tmp: tmp, dest: dest})
	}

	// undo renames done so far, newest first
	rollback := func(upTo int, cause error) error {
		errs := []error{cause}
		for j := upTo; j >= 0; j-- {
			s := pending[j]
			if j < upTo {
				if err := os.Remove(s.dest); err != nil && !os.IsNotExist(err) {
					errs = append(errs, err)
				}
			}
			if s.backup != "" {
				if err := os.Rename(s.backup, s.dest); err != nil {
					errs = append(errs, fmt.Errorf("failed to restore %s: %w", filepath.Base(s.dest), err))
				}
			}
		}
		for _, s := range pending[upTo:] {
			_ = os.Remove(s.tmp)
		}
		return errors.Join(errs...)
	}

	for i, s := range pending {
		if info, err := os.Lstat(s.dest); err == nil && info.Mode().IsRegular() {
			s.backup = s.tmp + ".bak"
			if err := os.Rename(s.dest, s.backup); err != nil {
				s.backup = ""
				return nil, rollback(i, fmt.Errorf("failed to move aside %s: %w", filepath.Base(s.dest), err))
			}
		}
		if err := os.Rename(s.tmp, s.dest); err != nil {
			return nil, rollback(i, fmt.Errorf("failed to write %s: %w", filepath.Base(s.dest), err))
		}
	}

	written := make([]string, 0, len(pending))
	for _, s := range pending {
		if s.backup != "" {
			_ = os.Remove(s.backup)
		}
		written = append(written, s.dest)
	}
	return written, nil
}

func writeTemp(dest string, data []byte) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*.tmp")
	if err != nil {
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}
	if err := os.Chmod(f.Name(), 0644); err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}
