package navtree

import (
	"regexp"
	"strings"
)

var (
	slugInvalid  = regexp.MustCompile(`[^a-z0-9_-]`)
	slugCollapse = regexp.MustCompile(`-+`)
	stemPrefix   = regexp.MustCompile(`^\d+[-_.]`)
)

// Slugify converts a string to a path-safe key: lowercase, with runs of
// disallowed characters collapsed to single hyphens.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugInvalid.ReplaceAllString(s, "-")
	s = slugCollapse.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > 80 {
		s = s[:80]
	}
	return s
}

// Humanize turns a key like "02-variables-and-types" into "Variables And
// Types" for display when no better title is available. Leading numeric
// ordering prefixes are stripped.
func Humanize(key string) string {
	s := stemPrefix.ReplaceAllString(key, "")
	if s == "" {
		s = key
	}
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
