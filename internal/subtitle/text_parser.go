package subtitle

import "strings"

// plain text has no timing; the whole document is one segment
type TextParser struct{}

func (TextParser) Parse(content string) ([]Segment, error) {
	text := strings.TrimSpace(content)
	if text == "" {
		return nil, nil
	}
	return []Segment{{Text: text}}, nil
}
