package view

import (
	"fmt"
	"strings"

	tuitheme "github.com/glabrego/cardfeed/internal/tui/theme"
)

func Header(mode string, th tuitheme.Theme) string {
	return th.Title.Render("cardfeed") + " " + th.ModePill.Render(mode)
}

// StatusLine shows the transient status, a warning, or the idle hint.
func StatusLine(status string, warning error, th tuitheme.Theme) string {
	switch {
	case warning != nil:
		return th.StateWarn.Render("! ") + th.MetaValue.Render(warning.Error())
	case status != "":
		return th.StateIdle.Render("• ") + th.MetaValue.Render(status)
	}
	return th.StateIdle.Render("• ") + th.MetaLabel.Render("Ready")
}

func Footer(position, shown int, viewer string, th tuitheme.Theme) string {
	parts := []string{
		th.MetaLabel.Render("article") + " " + th.MetaValue.Render(fmt.Sprintf("%d/%d", position+1, shown)),
		th.MetaLabel.Render("viewer") + " " + th.MetaValue.Render(viewer),
	}
	if shown == 0 {
		parts[0] = th.MetaValue.Render("no articles")
	}
	return strings.Join(parts, " • ")
}

func HelpLines(sections map[string]string, order []string) []string {
	lines := make([]string, 0, len(order)*2)
	for _, name := range order {
		lines = append(lines, name+":", "  "+sections[name])
	}
	return lines
}
