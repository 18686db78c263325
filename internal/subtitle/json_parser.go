package subtitle

import (
	"encoding/json"
	"strconv"
	"strings"
)

// one record of the structured dialect
type jsonSegment struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Text  string `json:"text"`
}

// structured (list of objects) parser. Content that is not a JSON list
// comes back as a single opaque text segment instead of an error.
type JSONParser struct{}

func (JSONParser) Parse(content string) ([]Segment, error) {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(content), &items); err != nil {
		return TextParser{}.Parse(content)
	}

	segments := make([]Segment, 0, len(items))
	for _, raw := range items {
		var item struct {
			Start json.RawMessage `json:"start"`
			End   json.RawMessage `json:"end"`
			Text  json.RawMessage `json:"text"`
		}
		if err := json.Unmarshal(raw, &item); err != nil {
			continue
		}

		var text string
		if err := json.Unmarshal(item.Text, &text); err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		segments = append(segments, Segment{
			Start: looseSeconds(item.Start),
			End:   looseSeconds(item.End),
			Text:  text,
		})
	}

	return segments, nil
}

// accepts either timecode dialect or a bare number of seconds; anything
// else reads as zero since timing is optional in this dialect
func looseSeconds(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		if v, err := ParseTimecode(s, FormatVTT); err == nil {
			return v
		}
		if v, err := ParseTimecode(s, FormatSRT); err == nil {
			return v
		}
		if v, err := strconv.ParseFloat(s, 64); err == nil && v >= 0 {
			return v
		}
		return 0
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil && f >= 0 {
		return f
	}
	return 0
}
