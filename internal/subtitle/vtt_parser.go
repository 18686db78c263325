package subtitle

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	vttBoundaryRegex = regexp.MustCompile(
		`^\s*(\d{2,}:\d{2}:\d{2}\.\d{3})\s*-->\s*(\d{2,}:\d{2}:\d{2}\.\d{3})`,
	)
	vttShortBoundaryRegex = regexp.MustCompile(
		`^\s*(\d{2}:\d{2}\.\d{3})\s*-->\s*(\d{2}:\d{2}\.\d{3})`,
	)
	markupRegex = regexp.MustCompile(`<[^>]*>`)
	digitsRegex = regexp.MustCompile(`^\d+$`)
)

// WebVTT parser
type VTTParser struct{}

func (VTTParser) Parse(content string) ([]Segment, error) {
	var segments []Segment
	var current *Segment
	var textLines []string

	flush := func() {
		if current != nil && len(textLines) > 0 {
			current.Text = strings.Join(textLines, "\n")
			segments = append(segments, *current)
		}
		current = nil
		textLines = nil
	}

	lines := splitLines(content)

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		lineNum := i + 1

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
			if strings.HasPrefix(strings.TrimSpace(line), "WEBVTT") {
				continue
			}
		}

		trimmed := strings.TrimSpace(line)

		if current == nil &&
			(strings.HasPrefix(trimmed, "NOTE") || strings.HasPrefix(trimmed, "STYLE")) {
			for i+1 < len(lines) && strings.TrimSpace(lines[i+1]) != "" {
				i++
			}
			continue
		}

		if trimmed == "" {
			flush()
			continue
		}

		if start, end, ok, err := matchVTTBoundary(line); ok {
			if err != nil {
				return nil, fmt.Errorf("invalid timestamp at line %d: %w", lineNum, err)
			}
			flush()
			current = &Segment{Start: start, End: end}
			continue
		}

		// cue identifiers only appear before the boundary line
		if current == nil && digitsRegex.MatchString(trimmed) {
			continue
		}

		if current != nil {
			if text := stripMarkup(trimmed); text != "" {
				textLines = append(textLines, text)
			}
		}
	}
	flush()

	return segments, nil
}

// boundary line "start --> end", optionally followed by cue settings.
// MM:SS.mmm cues are read with a zero hour field.
func matchVTTBoundary(line string) (start, end float64, ok bool, err error) {
	var startText, endText string
	if m := vttBoundaryRegex.FindStringSubmatch(line); len(m) == 3 {
		startText, endText = m[1], m[2]
	} else if m := vttShortBoundaryRegex.FindStringSubmatch(line); len(m) == 3 {
		startText, endText = "00:"+m[1], "00:"+m[2]
	} else {
		return 0, 0, false, nil
	}

	start, err = ParseTimecode(startText, FormatVTT)
	if err != nil {
		return 0, 0, true, err
	}
	end, err = ParseTimecode(endText, FormatVTT)
	if err != nil {
		return 0, 0, true, err
	}
	return start, end, true, nil
}

func stripMarkup(s string) string {
	return strings.TrimSpace(markupRegex.ReplaceAllString(s, ""))
}

// lines without a length cap, CRLF tolerant
func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
