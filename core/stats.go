package core

import "strings"

// Stats summarises one day of a transcript for archive listings.
type Stats struct {
	Lines    int `json:"lines"`
	Comments int `json:"comments"`
	Nicks    int `json:"nicks"` // distinct speakers
}

// ComputeStats counts events. It returns nil for an empty transcript.
func ComputeStats(events []Event) *Stats {
	if len(events) == 0 {
		return nil
	}
	speakers := make(map[string]bool)
	s := &Stats{Lines: len(events)}
	for _, e := range events {
		switch e.Kind {
		case KindComment:
			s.Comments++
			speakers[e.Nick] = true
		case KindAction:
			if nick := actionNick(e.Text); nick != "" {
				speakers[nick] = true
			}
		}
	}
	s.Nicks = len(speakers)
	return s
}

// actionNick returns the nick of "* nick does something".
func actionNick(text string) string {
	rest, ok := strings.CutPrefix(text, "* ")
	if !ok {
		return ""
	}
	nick, _, _ := strings.Cut(rest, " ")
	return nick
}
