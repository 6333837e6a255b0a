package render

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary   = lipgloss.Color("39")
	colorSecondary = lipgloss.Color("86")
	colorSuccess   = lipgloss.Color("42")
	colorWarning   = lipgloss.Color("220")
	colorError     = lipgloss.Color("203")
	colorDim       = lipgloss.Color("241")

	errorHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorError)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Underline(true)

	gutterStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	currentLineStyle = lipgloss.NewStyle().
				Underline(true)

	nodeNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSuccess)

	nodeIDStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	relationStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	standInStyle = lipgloss.NewStyle().
			Foreground(colorWarning).
			Italic(true)

	okStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorSuccess)
)
