package terminal

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sonnes/irclog/core"
)

var (
	colorBright = lipgloss.AdaptiveColor{Light: "#0f172a", Dark: "#f1f5f9"}
	colorDim    = lipgloss.AdaptiveColor{Light: "#94a3b8", Dark: "#64748b"}

	// Event colors: green for arrivals and server notices, blue for
	// departures, magenta for actions.
	colorJoin   = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34d399"}
	colorPart   = lipgloss.AdaptiveColor{Light: "#2563eb", Dark: "#60a5fa"}
	colorAction = lipgloss.AdaptiveColor{Light: "#c026d3", Dark: "#e879f9"}
)

var (
	styleTitle     = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleMeta      = lipgloss.NewStyle().Foreground(colorDim)
	styleTime      = lipgloss.NewStyle().Foreground(colorDim)
	styleSeparator = lipgloss.NewStyle().Foreground(colorDim)
	styleOther     = lipgloss.NewStyle().Foreground(colorDim).Italic(true)
)

var kindStyles = map[core.Kind]lipgloss.Style{
	core.KindJoin:       lipgloss.NewStyle().Foreground(colorJoin),
	core.KindServer:     lipgloss.NewStyle().Foreground(colorJoin),
	core.KindNickChange: lipgloss.NewStyle().Foreground(colorJoin),
	core.KindPart:       lipgloss.NewStyle().Foreground(colorPart),
	core.KindAction:     lipgloss.NewStyle().Foreground(colorAction).Bold(true),
}

func kindStyle(k core.Kind) lipgloss.Style {
	if s, ok := kindStyles[k]; ok {
		return s
	}
	return styleOther
}

// nickStyle colours a nick with its assigned "#rrggbb".
func nickStyle(colour string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(colour)).Bold(true)
}
