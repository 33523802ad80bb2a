package render

import "charm.land/lipgloss/v2"

// Catppuccin Mocha palette.
var (
	colorOverlay0  = lipgloss.Color("#6c7086")
	colorText      = lipgloss.Color("#cdd6f4")
	colorPrimary   = lipgloss.Color("#cba6f7") // Mauve
	colorSecondary = lipgloss.Color("#89b4fa") // Blue
	colorSuccess   = lipgloss.Color("#a6e3a1") // Green
	colorWarning   = lipgloss.Color("#f9e2af") // Yellow
	colorError     = lipgloss.Color("#f38ba8") // Red
	colorInfo      = lipgloss.Color("#89dceb") // Sky
)

// Exported styles are shared with the one-shot reports.
var (
	StyleTitle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	styleCurrent = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	StyleDim = lipgloss.NewStyle().
			Foreground(colorOverlay0)

	styleDescription = lipgloss.NewStyle().
				Foreground(colorInfo)

	styleProgressFill = lipgloss.NewStyle().
				Foreground(colorSuccess)

	StyleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	StyleError = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	StyleModule = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleKey = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleJump = lipgloss.NewStyle().
			Foreground(colorInfo)

	StyleHint = styleWarning.Bold(true)

	StyleBold = lipgloss.NewStyle().Bold(true)

	StyleLogo = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)
)
