// Package colour picks distinguishable HTML colours for chat participants.
//
// A Chooser maps an index within a set of n colours to a "#rrggbb" string by
// cycling through six hues while the brightness moves from RGBMax towards
// RGBMin. A Table assigns those colours to nicknames lazily, keeping each
// nickname's colour stable for the lifetime of one rendered document.
package colour

import (
	"errors"
	"fmt"
)

// Hue is an RGB direction with each component in [0, 1].
type Hue struct {
	R, G, B float64
}

// ChooserConfig defines the range of colours available for choosing. Start
// from DefaultChooserConfig; every field, zero included, is taken as given.
type ChooserConfig struct {
	// RGBMin and RGBMax bound the colour depth, each in [0, 255]. RGBMin may
	// exceed RGBMax.
	RGBMin, RGBMax int
	// Hues overrides the hue cycle. When empty it is built from A and B as
	// (a,b,b) (b,a,b) (b,b,a) (a,a,b) (a,b,a) (b,a,a).
	Hues []Hue
	// A and B tune the starting and ending concentration of each channel.
	A, B float64
}

// DefaultChooserConfig returns the default palette: depth 240 down to 125,
// a=0.95, b=0.5.
func DefaultChooserConfig() ChooserConfig {
	return ChooserConfig{RGBMin: 240, RGBMax: 125, A: 0.95, B: 0.5}
}

// Chooser chooses colours from a fixed palette.
type Chooser struct {
	rgbMin, rgbMax float64
	hues           []Hue
}

var errRange = errors.New("out of range")

// NewChooser validates cfg and builds a Chooser.
func NewChooser(cfg ChooserConfig) (*Chooser, error) {
	if cfg.RGBMin < 0 || cfg.RGBMin > 255 {
		return nil, fmt.Errorf("rgbmin %d: %w", cfg.RGBMin, errRange)
	}
	if cfg.RGBMax < 0 || cfg.RGBMax > 255 {
		return nil, fmt.Errorf("rgbmax %d: %w", cfg.RGBMax, errRange)
	}

	hues := cfg.Hues
	if len(hues) == 0 {
		if !unit(cfg.A) || !unit(cfg.B) {
			return nil, fmt.Errorf("hue concentration a=%g b=%g: %w", cfg.A, cfg.B, errRange)
		}
		a, b := cfg.A, cfg.B
		hues = []Hue{{a, b, b}, {b, a, b}, {b, b, a}, {a, a, b}, {a, b, a}, {b, a, a}}
	}
	for _, h := range hues {
		if !unit(h.R) || !unit(h.G) || !unit(h.B) {
			return nil, fmt.Errorf("hue %v: %w", h, errRange)
		}
	}

	return &Chooser{
		rgbMin: float64(cfg.RGBMin),
		rgbMax: float64(cfg.RGBMax),
		hues:   hues,
	}, nil
}

// DefaultChooser returns a Chooser with the default palette.
func DefaultChooser() *Chooser {
	c, _ := NewChooser(DefaultChooserConfig())
	return c
}

func unit(f float64) bool { return f >= 0 && f <= 1 }

// Choose returns colour i of n distinguishable colours as "#rrggbb".
// n <= 0 is treated as 1.
func (c *Chooser) Choose(i, n int) string {
	if n <= 0 {
		n = 1
	}
	h := c.hues[mod(i, len(c.hues))]
	m := c.rgbMin + (c.rgbMax-c.rgbMin)*float64(n-i)/float64(n)
	return fmt.Sprintf("#%02x%02x%02x", channel(h.R*m), channel(h.G*m), channel(h.B*m))
}

func mod(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// channel truncates v to an int in [0, 255].
func channel(v float64) int {
	n := int(v)
	switch {
	case n < 0:
		return 0
	case n > 255:
		return 255
	default:
		return n
	}
}
