package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/glabrego/cardfeed/internal/catalog"
	"github.com/glabrego/cardfeed/internal/comments"
	"github.com/glabrego/cardfeed/internal/engagement"
	article "github.com/glabrego/cardfeed/internal/render/article"
	tuitheme "github.com/glabrego/cardfeed/internal/tui/theme"
)

const summaryLines = 3

// ArticleState is what a presenter needs from the shared engagement record
// of one article.
type ArticleState struct {
	Article      catalog.Article
	Flags        engagement.Flags
	LikeCount    int
	CommentCount int
	Thread       []comments.Comment
}

func NewArticleState(a catalog.Article, e *engagement.Engagement) ArticleState {
	return ArticleState{
		Article:      a,
		Flags:        e.Flags.Snapshot(),
		LikeCount:    e.DisplayedLikeCount(a),
		CommentCount: e.DisplayedCommentCount(),
		Thread:       e.Comments.Comments(),
	}
}

type CardParams struct {
	State           ArticleState
	Active          bool
	ShowThread      bool
	SelectedComment int64
	Width           int
	Now             time.Time
}

// RenderCard draws one framed card of the feed.
func RenderCard(p CardParams, th tuitheme.Theme) string {
	frame := th.CardFrame(p.Active)
	inner := max(10, p.Width-frame.GetHorizontalFrameSize())
	a := p.State.Article

	lines := []string{CategoryLine(a, th)}
	for _, l := range article.WrapText(strings.TrimSpace(a.Title), inner) {
		lines = append(lines, th.Title.Render(l))
	}
	lines = append(lines, th.Byline.Render(truncate(Byline(a, p.Now), inner)))

	if summary := strings.TrimSpace(a.Summary); summary != "" {
		wrapped := article.WrapText(summary, inner)
		if len(wrapped) > summaryLines {
			wrapped = wrapped[:summaryLines]
			wrapped[summaryLines-1] = truncate(wrapped[summaryLines-1]+" ...", inner)
		}
		for _, l := range wrapped {
			lines = append(lines, th.Summary.Render(l))
		}
	}
	if tags := TagChips(a.Tags, th); tags != "" {
		lines = append(lines, tags)
	}
	lines = append(lines, "", ActionBar(p.State, th))

	if p.ShowThread {
		lines = append(lines, "", threadHeading(p.State.CommentCount, th))
		lines = append(lines, ThreadLines(p.State.Thread, p.SelectedComment, inner, th)...)
	}

	return frame.Width(max(1, p.Width-frame.GetHorizontalBorderSize())).Render(strings.Join(lines, "\n"))
}

// Byline joins author, time label and reading time.
func Byline(a catalog.Article, now time.Time) string {
	minutes := catalog.ReadingTime(a.ReadingText())
	return joinNonEmpty(" · ",
		strings.TrimSpace(a.Author),
		TimeLabel(a, now),
		fmt.Sprintf("%d min read", minutes),
	)
}

func CategoryLine(a catalog.Article, th tuitheme.Theme) string {
	labels := a.Categories
	if len(labels) == 0 && a.Category != "" {
		labels = []string{a.Category}
	}
	parts := make([]string, 0, len(labels))
	for _, c := range labels {
		parts = append(parts, th.Category.Render(strings.ToUpper(c)))
	}
	return strings.Join(parts, th.MetaLabel.Render(" · "))
}

func TagChips(tags []string, th tuitheme.Theme) string {
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		parts = append(parts, th.Tag.Render("#"+tag))
	}
	return strings.Join(parts, " ")
}

// ActionBar shows the displayed counters and the viewer's flags.
func ActionBar(s ArticleState, th tuitheme.Theme) string {
	favorite := th.Flag(false, "☆ favorite")
	if s.Flags.Favorited {
		favorite = th.Flag(true, "★ favorite")
	}
	bookmark := th.Flag(false, "□ bookmark")
	if s.Flags.Bookmarked {
		bookmark = th.Flag(true, "▣ bookmarked")
	}
	return strings.Join([]string{
		th.LikeMarker(s.Flags.Liked, Count(s.LikeCount)),
		th.MetaValue.Render("✎ " + plural(s.CommentCount, "comment", "comments")),
		favorite,
		bookmark,
	}, "   ")
}
