package tui

import "github.com/charmbracelet/lipgloss"

// Palette shared by the estimate views.
const (
	ColorHeader  = lipgloss.Color("#F5A623")
	ColorLabel   = lipgloss.Color("#8A8A8A")
	ColorValue   = lipgloss.Color("#FFFFFF")
	ColorMuted   = lipgloss.Color("#5C5C5C")
	ColorError   = lipgloss.Color("#E5534B")
	ColorFocus   = lipgloss.Color("#57AB5A")
	ColorSpinner = lipgloss.Color("#F5A623")
)

//nolint:gochecknoglobals // Immutable styles.
var (
	headerStyle  = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	sectionStyle = lipgloss.NewStyle().Foreground(ColorHeader).Underline(true)
	labelStyle   = lipgloss.NewStyle().Foreground(ColorLabel)
	valueStyle   = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	focusStyle   = lipgloss.NewStyle().Foreground(ColorFocus).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	errorStyle   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
)
