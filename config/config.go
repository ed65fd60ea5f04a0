// Package config loads irclog settings from a YAML, TOML or JSON file and
// IRCLOG_* environment variables. Command-line flags override both.
package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/gookit/validate"
	"github.com/spf13/viper"

	"github.com/sonnes/irclog/compact"
	"github.com/sonnes/irclog/core"
	"github.com/sonnes/irclog/redact"
)

var colourRE = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// IsColour reports whether s is an HTML colour of the form "#rrggbb".
func IsColour(s string) bool { return colourRE.MatchString(s) }

// Colours overrides the colours of non-comment lines.
type Colours struct {
	Part       string `mapstructure:"part" validate:"isColour"`
	Join       string `mapstructure:"join" validate:"isColour"`
	Server     string `mapstructure:"server" validate:"isColour"`
	NickChange string `mapstructure:"nickchange" validate:"isColour"`
	Action     string `mapstructure:"action" validate:"isColour"`
}

// Nick presets the colour of one participant.
type Nick struct {
	Nick   string `mapstructure:"nick"`
	Colour string `mapstructure:"colour"`
}

// Redaction extends --redact with site-specific rules.
type Redaction struct {
	// Allowlist holds regexps for values that are never masked, e.g. the
	// project's own contact address.
	Allowlist []string     `mapstructure:"allowlist"`
	Rules     []RedactRule `mapstructure:"rules"`
}

// RedactRule masks each match of Pattern as [REDACTED:Name].
type RedactRule struct {
	Name    string `mapstructure:"name"`
	Pattern string `mapstructure:"pattern"`
}

// Server configures `irclog serve`.
type Server struct {
	Port       int           `mapstructure:"port" validate:"min:0|max:65535"`
	Dir        string        `mapstructure:"dir"`
	ChannelDir string        `mapstructure:"channel_dir"`
	CacheMB    int           `mapstructure:"cache_mb" validate:"min:0"`
	MaxSize    int64         `mapstructure:"max_size" validate:"min:0"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Metrics    bool          `mapstructure:"metrics"`
}

// File is the on-disk configuration. Zero values mean "not set".
type File struct {
	Style           string `mapstructure:"style" validate:"isStyle"`
	Title           string `mapstructure:"title"`
	Prefix          string `mapstructure:"prefix"`
	Pattern         string `mapstructure:"pattern"`
	SearchBox       bool   `mapstructure:"searchbox"`
	Dircproxy       bool   `mapstructure:"dircproxy"`
	Force           bool   `mapstructure:"force"`
	Redact          bool   `mapstructure:"redact"`
	StripFormatting bool   `mapstructure:"strip_formatting"`
	Compact         bool   `mapstructure:"compact"`
	// CompactKinds names the line kinds --compact hides, e.g. [join, part].
	CompactKinds []string  `mapstructure:"compact_kinds"`
	Redaction    Redaction `mapstructure:"redaction"`
	Colours      Colours   `mapstructure:"colours"`
	Nicks        []Nick    `mapstructure:"nicks"`
	Server       Server    `mapstructure:"server"`
}

// Load reads path (which may be empty to use the environment only) and
// validates the result. styles lists the accepted style names.
func Load(path string, styles []string) (*File, error) {
	v := viper.New()
	v.SetEnvPrefix("IRCLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Names used by earlier deployments of the log server.
	_ = v.BindEnv("pattern", "IRCLOG_GLOB")
	_ = v.BindEnv("server.dir", "IRCLOG_LOCATION")
	_ = v.BindEnv("server.channel_dir", "IRCLOG_CHAN_DIR")
	for _, k := range []string{"style", "title", "prefix", "searchbox", "dircproxy", "server.port", "server.metrics"} {
		_ = v.BindEnv(k)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var f File
	if err := v.Unmarshal(&f); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := f.Validate(styles); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks colours, ranges and the style name.
func (f *File) Validate(styles []string) error {
	v := validate.Struct(f)
	v.AddValidator("isColour", func(val any) bool {
		s, ok := val.(string)
		return ok && (s == "" || colourRE.MatchString(s))
	})
	v.AddValidator("isStyle", func(val any) bool {
		s, ok := val.(string)
		return ok && (s == "" || slices.Contains(styles, s))
	})
	if !v.Validate() {
		return fmt.Errorf("invalid config: %w", v.Errors)
	}

	for i, n := range f.Nicks {
		if n.Nick == "" {
			return fmt.Errorf("invalid config: nicks[%d]: nick is required", i)
		}
		if !colourRE.MatchString(n.Colour) {
			return fmt.Errorf("invalid config: nicks[%d]: colour %q is not #rrggbb", i, n.Colour)
		}
	}
	if _, err := f.HiddenKinds(); err != nil {
		return fmt.Errorf("invalid config: compact_kinds: %w", err)
	}
	rc, err := f.RedactConfig()
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := redact.New(rc); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// HiddenKinds returns the kinds --compact hides.
func (f *File) HiddenKinds() ([]core.Kind, error) {
	return compact.ParseKinds(f.CompactKinds)
}

// RedactConfig returns the redactor settings used by --redact: every
// built-in rule plus the configured rules and allowlist.
func (f *File) RedactConfig() (redact.Config, error) {
	cfg := redact.Config{
		Secrets:   true,
		PII:       true,
		Hostmasks: true,
		Allowlist: f.Redaction.Allowlist,
	}
	for i, r := range f.Redaction.Rules {
		if r.Name == "" {
			return cfg, fmt.Errorf("redaction.rules[%d]: name is required", i)
		}
		rule, err := redact.NewRule(r.Name, r.Pattern)
		if err != nil {
			return cfg, err
		}
		cfg.ExtraRules = append(cfg.ExtraRules, rule)
	}
	return cfg, nil
}

// NickColours returns the nick presets as a map with lower-case colours.
func (f *File) NickColours() map[string]string {
	if len(f.Nicks) == 0 {
		return nil
	}
	m := make(map[string]string, len(f.Nicks))
	for _, n := range f.Nicks {
		m[n.Nick] = strings.ToLower(n.Colour)
	}
	return m
}
