package ui

import "github.com/charmbracelet/lipgloss"

// Color palette - muted green garden theme.
const (
	ColorGreen    = "114" // Primary accent
	ColorGreenDim = "65"  // Dimmed green for secondary accents
	ColorWhite    = "255" // Headers, important text
	ColorGray     = "245" // Secondary text, labels
	ColorDarkGray = "238" // Separators
	ColorRed      = "196" // Errors
)

// Styles holds the output styles for terminal rendering.
type Styles struct {
	Header lipgloss.Style
	Title  lipgloss.Style
	Path   lipgloss.Style
	Topic  lipgloss.Style
	Label  lipgloss.Style
	Error  lipgloss.Style
	Dim    lipgloss.Style
}

// DefaultStyles returns styled components for color terminals.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorGreen)),
		Title:  lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWhite)),
		Path:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Topic:  lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGreenDim)),
		Label:  lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed)),
		Dim:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
	}
}

// NoColorStyles returns unstyled components for plain output.
func NoColorStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle(),
		Title:  lipgloss.NewStyle(),
		Path:   lipgloss.NewStyle(),
		Topic:  lipgloss.NewStyle(),
		Label:  lipgloss.NewStyle(),
		Error:  lipgloss.NewStyle(),
		Dim:    lipgloss.NewStyle(),
	}
}
