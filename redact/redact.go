package redact

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/sonnes/irclog/core"
)

// Config controls which rules the Redactor applies.
type Config struct {
	Secrets bool
	PII     bool
	// Hostmasks masks the user@host that join, part and quit notices carry.
	Hostmasks  bool
	ExtraRules []Rule
	// Allowlist holds regexps; a detected value matching one is kept.
	Allowlist []string
}

// Redactor masks sensitive values in event text. Nicknames are left intact so
// colours and renames still line up.
type Redactor struct {
	rules       []Rule
	noticeRules []Rule // rules plus hostmask masking, for joins and parts
	allowlist   []*regexp.Regexp
}

// New creates a Redactor from the given config. An allowlist entry that is
// not a valid regexp is an error.
func New(cfg Config) (*Redactor, error) {
	var rules []Rule
	if cfg.Secrets {
		rules = append(rules, SecretRules()...)
	}
	if cfg.PII {
		rules = append(rules, PIIRules()...)
	}
	rules = append(rules, cfg.ExtraRules...)

	r := &Redactor{rules: rules, noticeRules: rules}
	if cfg.Hostmasks {
		r.noticeRules = append([]Rule{hostmaskRule()}, rules...)
	}
	for _, pattern := range cfg.Allowlist {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("redact allowlist %q: %w", pattern, err)
		}
		r.allowlist = append(r.allowlist, re)
	}
	return r, nil
}

// Transform implements core.Transformer. It never drops an event.
func (r *Redactor) Transform(e *core.Event) bool {
	rules := r.rules
	if e.Kind == core.KindJoin || e.Kind == core.KindPart {
		rules = r.noticeRules
	}
	e.Text = r.redact(e.Text, rules)
	return true
}

type span struct {
	start, end int
	text       string
}

// redact replaces every detected value in s. Overlaps resolve to the earliest
// start, then the longest match, then rule order.
func (r *Redactor) redact(s string, rules []Rule) string {
	if s == "" {
		return s
	}
	var spans []span
	for _, rule := range rules {
		for _, m := range rule.Detect(s) {
			if !r.allowed(m.Value) {
				spans = append(spans, span{m.Start, m.End, rule.Replacement(m)})
			}
		}
	}
	if len(spans) == 0 {
		return s
	}
	slices.SortStableFunc(spans, func(a, b span) int {
		if a.start != b.start {
			return a.start - b.start
		}
		return b.end - a.end
	})

	var sb strings.Builder
	pos := 0
	for _, sp := range spans {
		if sp.start < pos {
			continue
		}
		sb.WriteString(s[pos:sp.start])
		sb.WriteString(sp.text)
		pos = sp.end
	}
	sb.WriteString(s[pos:])
	return sb.String()
}

func (r *Redactor) allowed(value string) bool {
	return slices.ContainsFunc(r.allowlist, func(re *regexp.Regexp) bool {
		return re.MatchString(value)
	})
}
