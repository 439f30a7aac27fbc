package ui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// IotaTheme colors the project name and template prompts with the IOTA palette.
func IotaTheme() *huh.Theme {
	var (
		accent  = lipgloss.Color(ColorBlue500)
		title   = lipgloss.Color(ColorBlue400)
		picked  = lipgloss.Color(ColorBlue300)
		muted   = lipgloss.Color(ColorGray500)
		faint   = lipgloss.Color(ColorGray600)
		problem = lipgloss.Color(ColorRed400)
	)

	t := huh.ThemeBase()

	f := &t.Focused
	f.Base = f.Base.BorderForeground(accent)
	f.Title = f.Title.Foreground(title).Bold(true)
	f.Description = f.Description.Foreground(muted)
	f.SelectSelector = f.SelectSelector.Foreground(accent)
	f.SelectedOption = f.SelectedOption.Foreground(picked)
	f.UnselectedOption = f.UnselectedOption.Foreground(lipgloss.Color(ColorGray400))
	f.ErrorIndicator = f.ErrorIndicator.Foreground(problem)
	f.ErrorMessage = f.ErrorMessage.Foreground(problem)
	f.TextInput.Cursor = f.TextInput.Cursor.Foreground(accent)
	f.TextInput.Prompt = f.TextInput.Prompt.Foreground(accent)
	f.TextInput.Placeholder = f.TextInput.Placeholder.Foreground(muted)

	b := &t.Blurred
	b.Base = b.Base.BorderForeground(faint)
	b.Title = b.Title.Foreground(muted)
	b.Description = b.Description.Foreground(faint)
	b.SelectSelector = b.SelectSelector.Foreground(faint)
	b.SelectedOption = b.SelectedOption.Foreground(muted)
	b.UnselectedOption = b.UnselectedOption.Foreground(faint)

	return t
}
