package utils

import "strings"

// SplitLines splits text on '\n'. A single trailing newline does not produce
// an empty last line, and empty text yields no lines.
//
// Examples:
//   - "a\nb" -> ["a", "b"]
//   - "a\nb\n" -> ["a", "b"]
//   - "a\n\nb" -> ["a", "", "b"]
//   - "" -> []
func SplitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
