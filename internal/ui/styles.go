package ui

import "github.com/charmbracelet/lipgloss"

// IOTA palette for dark terminal backgrounds.
const (
	ColorGray400 = "#9FA7B2"
	ColorGray500 = "#6C7585"
	ColorGray600 = "#4E5560"

	ColorBlue300 = "#8EC5FF"
	ColorBlue400 = "#5BA8FF"
	ColorBlue500 = "#298DFF"

	ColorGreen400  = "#63D78E"
	ColorRed400    = "#F87171"
	ColorYellow300 = "#F8D34C"
	ColorYellow400 = "#F9C424"
	ColorTeal400   = "#3DDBD9"
)

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

var (
	TitleStyle     = fg(ColorBlue500).Bold(true)
	SuccessStyle   = fg(ColorGreen400).Bold(true)
	ErrorStyle     = fg(ColorRed400).Bold(true)
	WarningStyle   = fg(ColorYellow400).Bold(true)
	HighlightStyle = fg(ColorYellow300).Bold(true)

	// DimStyle is for secondary text such as download progress and causes.
	DimStyle  = fg(ColorGray500)
	StepStyle = fg(ColorBlue400)
	BoldStyle = lipgloss.NewStyle().Bold(true)

	// CommandStyle marks shell commands the user should run next.
	CommandStyle = fg(ColorBlue300).Bold(true)
	URLStyle     = fg(ColorTeal400).Underline(true)
)
