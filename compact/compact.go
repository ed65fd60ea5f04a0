// Package compact provides a Transformer that hides channel noise (joins,
// parts and server notices) for a compact reading of a log.
package compact

import (
	"fmt"
	"slices"

	"github.com/sonnes/irclog/core"
)

// DefaultHide is what --compact hides when no kinds are named.
var DefaultHide = []core.Kind{core.KindJoin, core.KindPart, core.KindServer}

// Kinds that are never hidden: the conversation itself, and nick changes,
// which move a nick's colour to its new name.
var kept = []core.Kind{core.KindComment, core.KindAction, core.KindNickChange}

// Config controls the compact transformer behavior.
type Config struct {
	// Hide lists the kinds to drop. Kinds that are never hidden are ignored.
	Hide []core.Kind
}

// ParseKinds turns kind names such as "join" or "other" into kinds to hide.
// An empty list means DefaultHide.
func ParseKinds(names []string) ([]core.Kind, error) {
	if len(names) == 0 {
		return DefaultHide, nil
	}
	kinds := make([]core.Kind, 0, len(names))
	for _, n := range names {
		k, ok := core.ParseKind(n)
		if !ok {
			return nil, fmt.Errorf("unknown line kind %q", n)
		}
		if slices.Contains(kept, k) {
			return nil, fmt.Errorf("%s lines cannot be hidden", k)
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// Compactor drops events of the configured kinds.
type Compactor struct {
	hide map[core.Kind]bool
}

// New creates a Compactor from the given config.
func New(cfg Config) *Compactor {
	hide := make(map[core.Kind]bool, len(cfg.Hide))
	for _, k := range cfg.Hide {
		if !slices.Contains(kept, k) {
			hide[k] = true
		}
	}
	return &Compactor{hide: hide}
}

// Transform implements core.Transformer.
func (c *Compactor) Transform(e *core.Event) bool {
	return !c.hide[e.Kind]
}
