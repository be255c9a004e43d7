package tui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.Color("#5B8DEF")
	mutedColor  = lipgloss.Color("#888888")
	bodyColor   = lipgloss.Color("#CCCCCC")
	borderColor = lipgloss.Color("#444444")
	okColor     = lipgloss.Color("#4CAF50")
	warnColor   = lipgloss.Color("#F7B801")
	errColor    = lipgloss.Color("#FF6B6B")

	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	taglineStyle = lipgloss.NewStyle().Foreground(mutedColor)
	eyebrowStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
	bodyStyle    = lipgloss.NewStyle().Foreground(bodyColor)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	linkStyle    = lipgloss.NewStyle().Foreground(accentColor).Underline(true)
	badgeStyle   = lipgloss.NewStyle().Bold(true).Foreground(warnColor)
	warningStyle = lipgloss.NewStyle().Foreground(errColor)
	hintStyle    = lipgloss.NewStyle().Foreground(errColor).Italic(true)
	checkStyle   = lipgloss.NewStyle().Foreground(okColor)

	sectionStyle = lipgloss.NewStyle().Padding(1, 2, 0, 2)
	cardStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)
	highlightCardStyle = cardStyle.BorderForeground(accentColor)
	panelStyle         = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(accentColor).
				Padding(0, 1)

	focusedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#000000")).Background(accentColor)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	buttonStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(accentColor).Padding(0, 2)
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(okColor).Padding(0, 2)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
)
