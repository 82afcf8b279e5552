package validation

import "strings"

// maxFieldLen caps every free-text field before validation runs.
const maxFieldLen = 10000

// Clean normalizes free-text input: trims surrounding whitespace, strips
// literal angle brackets, and truncates to maxFieldLen characters.
// Clean(Clean(s)) == Clean(s) for any input.
func Clean(s string) string {
	s = strings.ReplaceAll(s, "<", "")
	s = strings.ReplaceAll(s, ">", "")
	s = strings.TrimSpace(s)
	if runes := []rune(s); len(runes) > maxFieldLen {
		s = strings.TrimSpace(string(runes[:maxFieldLen]))
	}
	return s
}

// CleanPtr applies Clean in place to an optional field, leaving nil alone.
func CleanPtr(p *string) {
	if p != nil {
		*p = Clean(*p)
	}
}
