package view

import (
	"fmt"
	"strings"
	"time"

	article "github.com/glabrego/cardfeed/internal/render/article"
	tuitheme "github.com/glabrego/cardfeed/internal/tui/theme"
)

type OverlayParams struct {
	State           ArticleState
	Position        int
	Total           int
	SelectedComment int64
	Width           int
	Now             time.Time
	// Body holds pre-rendered body lines. When nil the body is rendered
	// with RenderOptions.
	Body          []string
	RenderOptions article.Options
}

// OverlayWidth is the text width the overlay lays out for an inner width.
func OverlayWidth(inner int) int {
	return max(10, inner)
}

// OverlayLines lays out the full article followed by its comment thread.
func OverlayLines(p OverlayParams, th tuitheme.Theme) []string {
	width := OverlayWidth(p.Width)
	a := p.State.Article

	lines := []string{
		CategoryLine(a, th) + th.MetaLabel.Render(fmt.Sprintf("   %d/%d", p.Position+1, p.Total)),
		"",
	}
	for _, l := range article.WrapText(strings.TrimSpace(a.Title), width) {
		lines = append(lines, th.Title.Render(l))
	}
	lines = append(lines, th.Byline.Render(truncate(Byline(a, p.Now), width)))
	if link := strings.TrimSpace(a.Link); link != "" {
		lines = append(lines, th.MetaLabel.Render("link ")+th.MetaValue.Render(truncate(link, width-5)))
	}
	if tags := TagChips(a.Tags, th); tags != "" {
		lines = append(lines, tags)
	}
	lines = append(lines, "", ActionBar(p.State, th), rule(width, th), "")

	body := p.Body
	if body == nil {
		body = article.ContentLinesWithOptions(a, width, p.RenderOptions)
	}
	lines = append(lines, body...)

	lines = append(lines, "", rule(width, th), threadHeading(p.State.CommentCount, th), "")
	lines = append(lines, ThreadLines(p.State.Thread, p.SelectedComment, width, th)...)
	return lines
}

// RenderWindow returns at most height lines starting at top.
func RenderWindow(lines []string, top, height int) string {
	if len(lines) == 0 {
		return ""
	}
	top = min(max(top, 0), len(lines)-1)
	end := len(lines)
	if height > 0 && top+height < end {
		end = top + height
	}
	return strings.Join(lines[top:end], "\n")
}

func rule(width int, th tuitheme.Theme) string {
	return th.MetaLabel.Render(strings.Repeat("─", max(3, width)))
}
