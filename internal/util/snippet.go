package util

import "strings"

// Preview returns the first maxRunes runes of s as a clean single-spaced
// snippet, with "..." appended when the text was truncated. Used for the
// bounded document text preview the API exposes instead of the full text.
func Preview(s string, maxRunes int) string {
	if maxRunes <= 0 {
		maxRunes = 200
	}
	s = SanitizeText(s)
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) > maxRunes {
		return strings.TrimSpace(string(runes[:maxRunes])) + "..."
	}
	return s
}
