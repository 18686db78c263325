package subtitle

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

var ErrMalformedTimecode = errors.New("malformed timecode")

// Minute and second fields are two digits but not range checked, so
// "00:75:00.000" reads as 4500s. Existing caption files rely on this.
var (
	vttTimecodeRegex = regexp.MustCompile(`^(\d{2,}):(\d{2}):(\d{2})\.(\d{3})$`)
	srtTimecodeRegex = regexp.MustCompile(`^(\d{2,}):(\d{2}):(\d{2}),(\d{3})$`)
)

// ParseTimecode reads HH:MM:SS.mmm (vtt) or HH:MM:SS,mmm (srt) into seconds.
func ParseTimecode(text string, format Format) (float64, error) {
	var re *regexp.Regexp
	switch format {
	case FormatVTT:
		re = vttTimecodeRegex
	case FormatSRT:
		re = srtTimecodeRegex
	default:
		return 0, fmt.Errorf("%w: no timecode dialect for %q", ErrMalformedTimecode, format)
	}

	matches := re.FindStringSubmatch(text)
	if len(matches) != 5 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTimecode, text)
	}

	fields := make([]int64, 4)
	for i, m := range matches[1:] {
		v, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrMalformedTimecode, text, err)
		}
		fields[i] = v
	}

	whole := fields[0]*3600 + fields[1]*60 + fields[2]
	return float64(whole) + float64(fields[3])/1000, nil
}

// FormatTimecode renders seconds as zero padded HH:MM:SS plus milliseconds,
// using '.' for vtt and ',' for srt. Sub-millisecond residue is truncated.
func FormatTimecode(seconds float64, format Format) string {
	sep := '.'
	if format == FormatSRT {
		sep = ','
	}

	ms := toMillis(seconds)
	hours := ms / 3600000
	minutes := (ms % 3600000) / 60000
	secs := (ms % 60000) / 1000

	return fmt.Sprintf("%02d:%02d:%02d%c%03d", hours, minutes, secs, sep, ms%1000)
}

// truncates to whole milliseconds; the epsilon absorbs float error so that
// 2.003 does not come out as 2002
func toMillis(seconds float64) int64 {
	if seconds <= 0 || math.IsNaN(seconds) {
		return 0
	}
	return int64(math.Floor(seconds*1000 + 1e-6))
}

// quantize drops sub-millisecond residue the same way FormatTimecode does
func quantize(seconds float64) float64 {
	return float64(toMillis(seconds)) / 1000
}
