// Package core defines the data model shared by every stage of the pipeline:
// classified transcript events, archive log files and the errors the core
// raises. Readers produce Events, the converter consumes them and renderers
// never see raw lines.
package core

// Event is one classified line of a chat transcript.
type Event struct {
	Time string `json:"time,omitempty"` // raw timestamp as it appeared, e.g. "12:04" or "2005-01-09T12:04:05"
	Kind Kind   `json:"kind"`

	// Nick is set for comments only.
	Nick string `json:"nick,omitempty"`
	// Text is the comment body for KindComment and the whole remaining line
	// (timestamp stripped) for every other kind.
	Text string `json:"text"`

	OldNick string `json:"old_nick,omitempty"` // set for KindNickChange
	NewNick string `json:"new_nick,omitempty"` // set for KindNickChange
}

// Kind enumerates the classes a transcript line can fall into.
type Kind string

const (
	KindComment    Kind = "comment"
	KindAction     Kind = "action"
	KindJoin       Kind = "join"
	KindPart       Kind = "part"
	KindNickChange Kind = "nickchange"
	KindServer     Kind = "server"
	KindOther      Kind = "other"
)

// Kinds lists every kind in classification order.
var Kinds = []Kind{
	KindComment,
	KindAction,
	KindJoin,
	KindPart,
	KindNickChange,
	KindServer,
	KindOther,
}

// ParseKind maps a kind name back to a Kind.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}
