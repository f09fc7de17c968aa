package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette — deep-space, high contrast on dark terminals
var (
	Primary   = lipgloss.Color("#38BDF8") // Sky
	Secondary = lipgloss.Color("#A78BFA") // Violet
	Accent    = lipgloss.Color("#FBBF24") // Amber
	Success   = lipgloss.Color("#34D399") // Emerald
	Error     = lipgloss.Color("#FB7185") // Rose
	Text      = lipgloss.Color("#E2E8F0") // Light Slate
	TextDim   = lipgloss.Color("#64748B") // Slate
	BgCard    = lipgloss.Color("#111827") // Near Black
	Border    = lipgloss.Color("#1E3A5F") // Deep Blue
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Queued = lipgloss.NewStyle().
		Foreground(Accent)
)

// Layout
var (
	Header = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(Border)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.NormalBorder(), true, false, false, false).
		BorderForeground(Border)

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)
