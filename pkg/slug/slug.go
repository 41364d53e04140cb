package slug

import (
	"regexp"
	"strings"
)

const (
	// MaxLength caps a sanitized name, counted in runes
	MaxLength = 100

	// DefaultName is used when nothing survives sanitizing
	DefaultName = "untitled"
)

var (
	disallowedRegex         = regexp.MustCompile(`[^A-Za-z0-9 _.\-]+`)
	multipleUnderscoreRegex = regexp.MustCompile(`_+`)
)

// Sanitize turns a card title into something safe to use as a file or
// directory name on every platform.
func Sanitize(s string) string {
	// Replace disallowed runs with a single underscore
	name := disallowedRegex.ReplaceAllString(s, "_")
	name = multipleUnderscoreRegex.ReplaceAllString(name, "_")

	// Leading/trailing dots and spaces are not portable
	name = strings.Trim(name, ". ")

	if runes := []rune(name); len(runes) > MaxLength {
		name = strings.TrimRight(string(runes[:MaxLength]), ". ")
	}

	if name == "" || strings.Trim(name, "_") == "" {
		return DefaultName
	}

	return name
}
