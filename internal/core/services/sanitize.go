package services

import "strings"

// fenceMarkers open or close a fenced code block in model output.
var fenceMarkers = []string{"```", "~~~"}

// Sanitize strips surrounding whitespace and any fence lines that wrap
// the output. Fences in the middle of the body are left alone.
// Sanitize is idempotent.
func Sanitize(raw string) string {
	out := strings.TrimSpace(raw)
	for {
		next := stripFences(out)
		if next == out {
			return out
		}
		out = next
	}
}

// stripFences removes one leading and one trailing fence line from
// trimmed text.
func stripFences(text string) string {
	if text == "" {
		return text
	}

	lines := strings.Split(text, "\n")
	if isFence(lines[0]) {
		lines = lines[1:]
	}
	if n := len(lines); n > 0 && isFence(lines[n-1]) {
		lines = lines[:n-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func isFence(line string) bool {
	line = strings.TrimSpace(line)
	for _, marker := range fenceMarkers {
		if strings.HasPrefix(line, marker) {
			return true
		}
	}
	return false
}
