package reader

import (
	"regexp"
	"strings"

	"github.com/sonnes/irclog/core"
)

// timeRE matches a leading "[12:04]", "12:04:05 " or "2005-01-09T12:04 "
// timestamp together with the whitespace that must follow it.
var timeRE = regexp.MustCompile(`^\[?((?:\d{4}-\d{2}-\d{2}T)?\d{2}:\d{2}(?::\d{2})?)\]?[ \t]+`)

// nickRE matches "<nick> " at the start of a comment.
var nickRE = regexp.MustCompile(`^<(.*?)>\s`)

// nickChangeRE matches "*** old is now known as new" (or "are", or "---").
var nickChangeRE = regexp.MustCompile(`^(?:\*\*\*|---) (.*?) (?:are|is) now known as (.*)`)

// Classify turns one non-empty, terminator-stripped line into an Event. The
// first matching rule wins:
//
//	<nick> text                     comment
//	* nick does something           action
//	*** / -->  ... joined ...       join
//	*** / --> / <--  ... left|quit  part
//	*** old is now known as new     nick change
//	*** ... / --- ...               server
//	anything else                   other
//
// Join and part both require the keyword: a "*** " prefix alone does not
// make a line a join. This corrects the historical precedence where every
// "*** " line was reported as a join.
func Classify(line string) core.Event {
	t, rest := splitTime(line)
	return classify(t, rest)
}

func splitTime(line string) (string, string) {
	m := timeRE.FindStringSubmatch(line)
	if m == nil {
		return "", line
	}
	return m[1], line[len(m[0]):]
}

func classify(t, line string) core.Event {
	if m := nickRE.FindStringSubmatch(line); m != nil {
		return core.Event{
			Time: t,
			Kind: core.KindComment,
			Nick: m[1],
			Text: line[len(m[0]):],
		}
	}

	e := core.Event{Time: t, Text: line}
	switch {
	case strings.HasPrefix(line, "* "):
		e.Kind = core.KindAction
	case hasAnyPrefix(line, "*** ", "--> ") && strings.Contains(line, "joined"):
		e.Kind = core.KindJoin
	case hasAnyPrefix(line, "*** ", "--> ", "<-- ") &&
		(strings.Contains(line, "left") || strings.Contains(line, "quit")):
		e.Kind = core.KindPart
	default:
		if m := nickChangeRE.FindStringSubmatch(line); m != nil {
			e.Kind = core.KindNickChange
			e.OldNick = m[1]
			e.NewNick = m[2]
		} else if hasAnyPrefix(line, "*** ", "--- ") {
			e.Kind = core.KindServer
		} else {
			e.Kind = core.KindOther
		}
	}
	return e
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
