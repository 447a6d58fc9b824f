package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors - subtle, terminal-default-friendly palette
var (
	ColorPrimary   = lipgloss.Color("4")   // Blue
	ColorSuccess   = lipgloss.Color("2")   // Green
	ColorDanger    = lipgloss.Color("1")   // Red
	ColorMuted     = lipgloss.Color("245") // Light gray
	ColorHighlight = lipgloss.Color("6")   // Cyan
	ColorText      = lipgloss.Color("252") // Light text
)

// Styles
var (
	// Title style
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// Selected item style
	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true)

	// Normal item style
	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	// Issue number style
	NumberStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	// Label / secondary info style
	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// Focused field label style
	FocusedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHighlight)

	// Unfocused field label style
	BlurredStyle = lipgloss.NewStyle().
			Bold(true)

	// Help style
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// Success message style
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// Error message style
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger)
)

// Symbols
const (
	SymbolCursor  = "❯"
	SymbolSuccess = "✔"
	SymbolError   = "✖"
)
