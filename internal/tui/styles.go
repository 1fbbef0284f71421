package tui

import "github.com/charmbracelet/lipgloss"

// Shared color palette.
const (
	ColorActive  = "170"
	ColorDim     = "241"
	ColorVeryDim = "237"
	ColorError   = "196"
	ColorWarning = "214"
	ColorOK      = "78"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorActive))

	statsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDim))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorActive))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorVeryDim))

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorWarning)).
			Padding(1, 2)

	popupStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorActive)).
			Padding(1, 2)
)
