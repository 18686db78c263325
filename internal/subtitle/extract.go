package subtitle

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
)

var leadingTimecodeRegex = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}`)

// ExtractText derives bare spoken text from a document for summarization.
// It never interprets timing and never fails: whatever cannot be understood
// is handed back as text.
func ExtractText(content string, format Format) string {
	switch format {
	case FormatVTT:
		return extractCaptionLines(content, true)
	case FormatSRT:
		return extractCaptionLines(content, false)
	case FormatJSON:
		return extractJSONText(content)
	default:
		return strings.TrimSpace(content)
	}
}

// ExtractTextFile reads path and extracts its text by extension.
func ExtractTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read transcript: %w", err)
	}
	return ExtractText(string(data), GetFormatFromExtension(path)), nil
}

func extractCaptionLines(content string, vtt bool) string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(line, "\ufeff"))
		if line == "" ||
			digitsRegex.MatchString(line) ||
			leadingTimecodeRegex.MatchString(line) ||
			strings.Contains(line, "-->") {
			continue
		}
		if vtt && strings.HasPrefix(line, "WEBVTT") {
			continue
		}
		if line = stripMarkup(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func extractJSONText(content string) string {
	var data any
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return content
	}

	list, ok := data.([]any)
	if !ok {
		if s, isString := data.(string); isString {
			return s
		}
		out, err := json.Marshal(data)
		if err != nil {
			return content
		}
		return string(out)
	}

	texts := make([]string, 0, len(list))
	for _, item := range list {
		obj, isObj := item.(map[string]any)
		if !isObj {
			continue
		}
		switch v := obj["text"].(type) {
		case nil:
			texts = append(texts, "")
		case string:
			texts = append(texts, v)
		default:
			texts = append(texts, fmt.Sprint(v))
		}
	}
	return strings.Join(texts, "\n")
}
