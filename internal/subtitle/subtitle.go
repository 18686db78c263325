package subtitle

// single spoken unit; Start/End are seconds offsets with millisecond precision
type Segment struct {
	Start float64
	End   float64
	Text  string
}

// represents supported caption dialects
type Format string

const (
	FormatVTT  Format = "vtt"
	FormatSRT  Format = "srt"
	FormatTXT  Format = "txt"
	FormatJSON Format = "json"

	// unrecognized extension, handled as opaque text
	FormatUnknown Format = ""
)

// every dialect, in the order output files are written
var AllFormats = []Format{FormatVTT, FormatTXT, FormatSRT, FormatJSON}

// interface for parsing caption documents
type Parser interface {
	Parse(content string) ([]Segment, error)
}

// interface for rendering caption documents
type Writer interface {
	Render(segments []Segment) ([]byte, error)
}
