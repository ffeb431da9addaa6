package theme

import (
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Title      lipgloss.Style
	ModePill   lipgloss.Style
	Category   lipgloss.Style
	Tag        lipgloss.Style
	Byline     lipgloss.Style
	Summary    lipgloss.Style
	MetaLabel  lipgloss.Style
	MetaValue  lipgloss.Style
	StateIdle  lipgloss.Style
	StateWarn  lipgloss.Style
	FlagOn     lipgloss.Style
	FlagOff    lipgloss.Style
	Liked      lipgloss.Style
	Author     lipgloss.Style
	Selected   lipgloss.Style
	Card       lipgloss.Style
	ActiveCard lipgloss.Style
	Overlay    lipgloss.Style
}

func Default() Theme {
	cpRosewater := lipgloss.Color("#f5e0dc")
	cpMauve := lipgloss.Color("#cba6f7")
	cpRed := lipgloss.Color("#f38ba8")
	cpPeach := lipgloss.Color("#fab387")
	cpYellow := lipgloss.Color("#f9e2af")
	cpGreen := lipgloss.Color("#a6e3a1")
	cpTeal := lipgloss.Color("#94e2d5")
	cpLavender := lipgloss.Color("#b4befe")
	cpText := lipgloss.Color("#cdd6f4")
	cpSubtext0 := lipgloss.Color("#a6adc8")
	cpSubtext1 := lipgloss.Color("#bac2de")
	cpOverlay1 := lipgloss.Color("#7f849c")
	cpSurface0 := lipgloss.Color("#313244")
	cpSurface2 := lipgloss.Color("#585b70")

	return Theme{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(cpText),
		ModePill:  lipgloss.NewStyle().Foreground(cpLavender).Background(cpSurface0).Padding(0, 1),
		Category:  lipgloss.NewStyle().Bold(true).Foreground(cpTeal),
		Tag:       lipgloss.NewStyle().Foreground(cpMauve).Background(cpSurface0).Padding(0, 1),
		Byline:    lipgloss.NewStyle().Foreground(cpSubtext1),
		Summary:   lipgloss.NewStyle().Foreground(cpSubtext0),
		MetaLabel: lipgloss.NewStyle().Foreground(cpOverlay1),
		MetaValue: lipgloss.NewStyle().Foreground(cpSubtext1),
		StateIdle: lipgloss.NewStyle().Foreground(cpGreen),
		StateWarn: lipgloss.NewStyle().Foreground(cpRed),
		FlagOn:    lipgloss.NewStyle().Bold(true).Foreground(cpYellow),
		FlagOff:   lipgloss.NewStyle().Foreground(cpOverlay1),
		Liked:     lipgloss.NewStyle().Bold(true).Foreground(cpRed),
		Author:    lipgloss.NewStyle().Bold(true).Foreground(cpPeach),
		Selected:  lipgloss.NewStyle().Background(cpSurface0).Foreground(cpRosewater),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(cpSurface2).
			Padding(0, 1),
		ActiveCard: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(cpLavender).
			Padding(0, 1),
		Overlay: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(cpMauve).
			Padding(0, 2),
	}
}

// Flag renders an action marker, highlighted when on.
func (t Theme) Flag(on bool, label string) string {
	if on {
		return t.FlagOn.Render(label)
	}
	return t.FlagOff.Render(label)
}

// LikeMarker renders the like counter, filled when the viewer liked it.
func (t Theme) LikeMarker(liked bool, count string) string {
	if liked {
		return t.Liked.Render("♥ " + count)
	}
	return t.FlagOff.Render("♡ " + count)
}

func (t Theme) CardFrame(active bool) lipgloss.Style {
	if active {
		return t.ActiveCard
	}
	return t.Card
}

func (t Theme) RenderSelected(selected bool, line string) string {
	if !selected {
		return line
	}
	return t.Selected.Render(line)
}
