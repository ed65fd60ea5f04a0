package core

import (
	"regexp"
	"strings"
)

// formatRE matches mIRC formatting: colour codes with optional foreground and
// background numbers, and the bold, italic, underline, strike, monospace,
// reverse and reset toggles.
var formatRE = regexp.MustCompile("\x03(?:\\d{1,2}(?:,\\d{1,2})?)?|\x04(?:[0-9a-fA-F]{6}(?:,[0-9a-fA-F]{6})?)?|[\x02\x0f\x11\x16\x1d\x1e\x1f]")

// StripFormatting removes mIRC formatting codes from s.
func StripFormatting(s string) string {
	if !strings.ContainsAny(s, "\x02\x03\x04\x0f\x11\x16\x1d\x1e\x1f") {
		return s
	}
	return formatRE.ReplaceAllString(s, "")
}

// Plain is a Transformer that strips mIRC formatting from every event.
type Plain struct{}

// Transform implements Transformer. It never drops events.
func (Plain) Transform(e *Event) bool {
	e.Text = StripFormatting(e.Text)
	e.Nick = StripFormatting(e.Nick)
	return true
}
