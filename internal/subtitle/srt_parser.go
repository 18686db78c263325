package subtitle

import (
	"fmt"
	"regexp"
	"strings"
)

var srtBoundaryRegex = regexp.MustCompile(
	`^\s*(\d{2,}:\d{2}:\d{2},\d{3})\s*-->\s*(\d{2,}:\d{2}:\d{2},\d{3})`,
)

// SubRip parser
type SRTParser struct{}

func (SRTParser) Parse(content string) ([]Segment, error) {
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

	for i, line := range splitLines(content) {
		lineNum := i + 1

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}

		if m := srtBoundaryRegex.FindStringSubmatch(line); len(m) == 3 {
			start, err := ParseTimecode(m[1], FormatSRT)
			if err != nil {
				return nil, fmt.Errorf("invalid start timestamp at line %d: %w", lineNum, err)
			}
			end, err := ParseTimecode(m[2], FormatSRT)
			if err != nil {
				return nil, fmt.Errorf("invalid end timestamp at line %d: %w", lineNum, err)
			}
			flush()
			current = &Segment{Start: start, End: end}
			continue
		}

		// sequence numbers only appear before the boundary line
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
