package terminal

import "github.com/charmbracelet/lipgloss"

var (
	ColorBorder  = lipgloss.Color("39")  // blue
	ColorText    = lipgloss.Color("15")  // bright white
	ColorAccent  = lipgloss.Color("226") // bright yellow
	ColorTextDim = lipgloss.Color("241") // gray
	ColorError   = lipgloss.Color("196") // red
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			MarginBottom(1)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	NameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	HintStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim).
			Italic(true)
)
