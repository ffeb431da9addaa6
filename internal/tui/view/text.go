package view

import (
	"regexp"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/glabrego/cardfeed/internal/catalog"
)

var reANSICodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// TimeLabel prefers the seeded label and falls back to a relative publish
// time.
func TimeLabel(a catalog.Article, now time.Time) string {
	if label := strings.TrimSpace(a.TimeLabel); label != "" {
		return label
	}
	if a.PublishedAt.IsZero() {
		return ""
	}
	if now.IsZero() {
		now = time.Now()
	}
	return humanize.RelTime(a.PublishedAt, now, "ago", "from now")
}

func Count(n int) string {
	return humanize.Comma(int64(n))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return Count(n) + " " + one
	}
	return Count(n) + " " + many
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "...")
}

func stripANSIText(s string) string {
	return reANSICodes.ReplaceAllString(s, "")
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(stripANSIText(p)) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
