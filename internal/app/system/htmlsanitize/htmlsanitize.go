// Package htmlsanitize strips markup from user-supplied text before it is
// stored. The API stores plain text only; clients render it escaped.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// PlainText removes every tag (and the contents of script/style elements)
// and returns the remaining text, unescaped and trimmed.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// PlainTextAll applies PlainText to each element and drops entries that
// end up empty.
func PlainTextAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if c := PlainText(s); c != "" {
			out = append(out, c)
		}
	}
	return out
}
