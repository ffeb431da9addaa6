package view

import (
	"strings"

	"github.com/glabrego/cardfeed/internal/comments"
	article "github.com/glabrego/cardfeed/internal/render/article"
	tuitheme "github.com/glabrego/cardfeed/internal/tui/theme"
)

const emptyThread = "No comments yet. Press a to add one."

// ThreadLines renders root comments with their replies indented beneath.
// The root comment whose id equals selected is highlighted.
func ThreadLines(thread []comments.Comment, selected int64, width int, th tuitheme.Theme) []string {
	if len(thread) == 0 {
		return []string{th.MetaLabel.Render(emptyThread)}
	}
	var lines []string
	for i, c := range thread {
		if i > 0 {
			lines = append(lines, "")
		}
		marker := "  "
		if c.ID == selected {
			marker = "> "
		}
		header := marker + th.Author.Render(c.Author) + th.MetaLabel.Render(" · "+c.Time)
		lines = append(lines, th.RenderSelected(c.ID == selected, header))
		for _, l := range article.WrapText(c.Content, max(1, width-2)) {
			lines = append(lines, "  "+l)
		}
		for _, r := range c.Replies {
			lines = append(lines, "    ↳ "+th.Author.Render(r.Author)+th.MetaLabel.Render(" · "+r.Time))
			for _, l := range article.WrapText(r.Content, max(1, width-6)) {
				lines = append(lines, "      "+l)
			}
		}
	}
	return lines
}

func threadHeading(n int, th tuitheme.Theme) string {
	return th.Category.Render(strings.ToUpper(plural(n, "comment", "comments")))
}
