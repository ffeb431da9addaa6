package article

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("#b4befe")
	colorLink   = lipgloss.Color("#89b4fa")
	colorCode   = lipgloss.Color("#fab387")
	colorQuote  = lipgloss.Color("#a6adc8")
	colorMuted  = lipgloss.Color("#6c7086")
	colorImage  = lipgloss.Color("#cba6f7")

	headingStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	linkStyle       = lipgloss.NewStyle().Foreground(colorLink).Faint(true)
	codeStyle       = lipgloss.NewStyle().Foreground(colorCode)
	strongStyle     = lipgloss.NewStyle().Bold(true)
	emphasisStyle   = lipgloss.NewStyle().Italic(true)
	quotePrefix     = lipgloss.NewStyle().Foreground(colorMuted).Render("│ ")
	quoteStyle      = lipgloss.NewStyle().Italic(true).Foreground(colorQuote)
	captionStyle    = lipgloss.NewStyle().Italic(true).Foreground(colorMuted)
	ruleStyle       = lipgloss.NewStyle().Foreground(colorMuted)
	imageLabelStyle = lipgloss.NewStyle().Foreground(colorImage).Italic(true)
	imageTextStyle  = lipgloss.NewStyle().Foreground(colorQuote).Italic(true)
)
