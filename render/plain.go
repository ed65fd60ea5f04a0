package render

import (
	"html"
	"regexp"
	"strings"
)

var tagRE = regexp.MustCompile(`<[^>]*>`)

// PlainText turns converter output back into terminal text: link markup is
// dropped, entities are decoded and non-breaking spaces become spaces.
func PlainText(s string) string {
	s = tagRE.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.ReplaceAll(s, "\u00a0", " ")
}
