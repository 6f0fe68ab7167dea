package helpers

import "strings"

// CollapseWhitespace replaces runs of whitespace with a single space and
// trims leading and trailing space.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
