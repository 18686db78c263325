package subtitle

import "strings"

// Normalize prepares engine output for storage: text is trimmed, empty
// segments are dropped and timestamps are truncated to the millisecond
// through the vtt timecode, so that engine segments compare equal to ones
// read back from a caption file.
func Normalize(segments []Segment) []Segment {
	out := make([]Segment, 0, len(segments))
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}

		start := viaTimecode(seg.Start)
		end := viaTimecode(seg.End)
		if end < start {
			end = start
		}

		out = append(out, Segment{Start: start, End: end, Text: text})
	}
	return out
}

func viaTimecode(seconds float64) float64 {
	v, err := ParseTimecode(FormatTimecode(seconds, FormatVTT), FormatVTT)
	if err != nil {
		return quantize(seconds)
	}
	return v
}
