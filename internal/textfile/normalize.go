package textfile

import (
	"strings"
	"unicode"
)

// Normalize collapses whitespace runs into single spaces and drops control
// characters, so every remaining rune can be typed on one line.
func Normalize(text string) string {
	var b strings.Builder
	pendingSpace := false
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = b.Len() > 0
		case unicode.IsControl(r):
			continue
		default:
			if pendingSpace {
				b.WriteByte(' ')
				pendingSpace = false
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}
