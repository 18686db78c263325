package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func NewParser(format Format) Parser {
	switch format {
	case FormatVTT:
		return VTTParser{}
	case FormatSRT:
		return SRTParser{}
	case FormatJSON:
		return JSONParser{}
	default:
		return TextParser{}
	}
}

// Parse converts a caption document of the given dialect into segments.
func Parse(content string, format Format) ([]Segment, error) {
	return NewParser(format).Parse(content)
}

// Open reads and parses a caption file, choosing the dialect by extension.
// Unknown extensions are read as plain text.
func Open(path string) ([]Segment, Format, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, FormatUnknown, fmt.Errorf("failed to read caption file: %w", err)
	}

	format := GetFormatFromExtension(path)
	segments, err := Parse(string(data), format)
	if err != nil {
		return nil, format, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return segments, format, nil
}

// subtitle format based on file extension
func GetFormatFromExtension(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vtt":
		return FormatVTT
	case ".srt":
		return FormatSRT
	case ".txt":
		return FormatTXT
	case ".json":
		return FormatJSON
	default:
		return FormatUnknown
	}
}

// file extension for a format
func GetExtensionForFormat(format Format) string {
	switch format {
	case FormatVTT:
		return ".vtt"
	case FormatSRT:
		return ".srt"
	case FormatJSON:
		return ".json"
	default:
		return ".txt"
	}
}

// ParseFormat maps a user supplied name ("srt", ".vtt", "JSON") to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), ".") {
	case "vtt":
		return FormatVTT, nil
	case "srt":
		return FormatSRT, nil
	case "txt":
		return FormatTXT, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatUnknown, fmt.Errorf("unsupported format %q: use vtt, srt, txt, or json", name)
	}
}

// SelectFormats turns requested format names into the set to write, in
// AllFormats order. VTT is always included; "all" selects every format.
func SelectFormats(names []string, includeTxt bool) ([]Format, error) {
	want := map[Format]bool{FormatVTT: true}
	if includeTxt {
		want[FormatTXT] = true
	}

	for _, name := range names {
		if strings.EqualFold(strings.TrimSpace(name), "all") {
			return append([]Format(nil), AllFormats...), nil
		}
		format, err := ParseFormat(name)
		if err != nil {
			return nil, err
		}
		want[format] = true
	}

	formats := make([]Format, 0, len(want))
	for _, format := range AllFormats {
		if want[format] {
			formats = append(formats, format)
		}
	}
	return formats, nil
}
