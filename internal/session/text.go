package session

import (
	"fmt"
	"strings"
)

// Truncate returns s unchanged when it has at most maxLen characters,
// otherwise its first maxLen characters followed by "...".
// A negative maxLen counts as zero.
func Truncate(s string, maxLen int) string {
	maxLen = max(maxLen, 0)
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}

func TruncateName(name string) string {
	return Truncate(name, NameDisplayLimit)
}

// MockFileName builds the fabricated file name for a creation. Blank inputs
// fall back to DefaultTrackName and DefaultGenre.
func MockFileName(fileName, genre string) string {
	return fmt.Sprintf("%s_%s.txt", orDefault(fileName, DefaultTrackName), orDefault(genre, DefaultGenre))
}

func orDefault(s, def string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	return s
}
