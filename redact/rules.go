// Package redact masks secrets and personal data in chat lines before they
// are published: pasted API keys, NickServ passwords, e-mail addresses and
// the user@host hostmasks that join and quit notices expose.
package redact

import (
	"fmt"
	"regexp"
)

// Rule detects sensitive data in a string and provides a replacement.
type Rule interface {
	Name() string
	Kind() string
	Detect(s string) []Match
	Replacement(m Match) string
}

// Match represents a detected occurrence within a string.
type Match struct {
	Start int
	End   int
	Value string
}

// regexRule masks each match of pattern, or only submatch group when it is
// set.
type regexRule struct {
	name    string
	kind    string
	pattern *regexp.Regexp
	group   int
}

func (r *regexRule) Name() string { return r.name }
func (r *regexRule) Kind() string { return r.kind }

func (r *regexRule) Detect(s string) []Match {
	locs := r.pattern.FindAllStringSubmatchIndex(s, -1)
	matches := make([]Match, 0, len(locs))
	for _, loc := range locs {
		start, end := loc[2*r.group], loc[2*r.group+1]
		if start < 0 {
			continue
		}
		matches = append(matches, Match{Start: start, End: end, Value: s[start:end]})
	}
	return matches
}

func (r *regexRule) Replacement(_ Match) string {
	return fmt.Sprintf("[REDACTED:%s]", r.name)
}

// SecretRules returns the built-in secret detection rules.
func SecretRules() []Rule {
	return []Rule{
		&regexRule{
			name:    "aws_key",
			kind:    "secret",
			pattern: regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
		},
		&regexRule{
			name:    "api_key",
			kind:    "secret",
			pattern: regexp.MustCompile(`(?:sk-[a-zA-Z0-9]{32,}|ghp_[a-zA-Z0-9]{36,}|gho_[a-zA-Z0-9]{36,}|glpat-[a-zA-Z0-9\-]{20,})`),
		},
		&regexRule{
			name:    "private_key",
			kind:    "secret",
			pattern: regexp.MustCompile(`-----BEGIN [A-Z ]+PRIVATE KEY-----`),
		},
		&regexRule{
			name:    "connection_string",
			kind:    "secret",
			pattern: regexp.MustCompile(`(?:postgres|mongodb|mysql|redis)://[^\s"'` + "`" + `]+`),
		},
		&regexRule{
			name:    "nickserv_password",
			kind:    "secret",
			pattern: regexp.MustCompile(`(?i)\bnickserv\W*\s*(?:identify|register|ghost|recover)\s+(?:\S+\s+)??(\S+)\s*$`),
			group:   1,
		},
		&regexRule{
			name:    "jwt",
			kind:    "secret",
			pattern: regexp.MustCompile(`eyJ[A-Za-z0-9\-_]+\.eyJ[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_.+/=]+`),
		},
	}
}

// PIIRules returns the built-in PII detection rules.
func PIIRules() []Rule {
	return []Rule{
		&regexRule{
			name:    "email",
			kind:    "pii",
			pattern: regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`),
		},
		&regexRule{
			name:    "ipv4",
			kind:    "pii",
			pattern: regexp.MustCompile(`\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`),
		},
		&regexRule{
			name: "phone",
			kind: "pii",
			// Needs a +country prefix or separators, so revision numbers and
			// other bare digit runs in chat are left alone.
			pattern: regexp.MustCompile(`\+\d{1,3}[\s\-]?\(?\d{2,4}\)?[\s\-]?\d{3}[\s\-]?\d{3,4}\b|\(\d{3}\)\s?\d{3}[\s\-]\d{4}\b|\b\d{3}[\-.]\d{3}[\-.]\d{4}\b`),
		},
	}
}

// hostmaskRule masks the user@host in "*** nick (user@host) has joined" and
// the "-->"/"<--" and bracketed variants other clients write.
func hostmaskRule() Rule {
	return &regexRule{
		name:    "hostmask",
		kind:    "pii",
		pattern: regexp.MustCompile(`^(?:\*\*\*|-->|<--)\s+\S+\s+[(\[]([^\s()\[\]]+@[^\s()\[\]]+)[)\]]`),
		group:   1,
	}
}

// NewRule builds a rule masking every match of pattern as [REDACTED:name].
func NewRule(name, pattern string) (Rule, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("redact rule %s: %w", name, err)
	}
	return &regexRule{name: name, kind: "custom", pattern: re}, nil
}
