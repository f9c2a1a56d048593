// Package tui is the full-screen docchat application: a view router guarded
// by session policies, with sign-in, upload, and chat views.
package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds the color scheme for the application.
type Theme struct {
	Accent  lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Hint    lipgloss.Color
	User    lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Accent:  lipgloss.Color("#5FAFD7"), // light blue
	Success: lipgloss.Color("#00D787"), // green
	Error:   lipgloss.Color("#FF005F"), // red
	Hint:    lipgloss.Color("#6C6C6C"), // dim gray
	User:    lipgloss.Color("#D7AF5F"), // warm yellow
}

func (t Theme) titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
}

func (t Theme) successStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success).Bold(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

func (t Theme) userStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.User).Bold(true)
}

func (t Theme) assistantStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
}

func (t Theme) bannerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Hint).
		Padding(0, 1)
}
