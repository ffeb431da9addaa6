// Package catalog defines the article model shown in the feed and the
// sources that seed it.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// WordsPerMinute is the reading speed used for reading-time estimates.
const WordsPerMinute = 200

// BodyFormat tells the renderer how to interpret Article.Body.
type BodyFormat string

const (
	FormatText     BodyFormat = "text"
	FormatHTML     BodyFormat = "html"
	FormatMarkdown BodyFormat = "markdown"
)

func (f BodyFormat) IsValid() bool {
	switch f {
	case FormatText, FormatHTML, FormatMarkdown:
		return true
	}
	return false
}

// Article is one entry of the feed. Likes and CommentCount are baselines
// from the seed and are never mutated by the client.
type Article struct {
	ID           string        `yaml:"id"`
	Title        string        `yaml:"title"`
	Author       string        `yaml:"author"`
	Category     string        `yaml:"category"`
	Categories   []string      `yaml:"categories"`
	Tags         []string      `yaml:"tags"`
	Summary      string        `yaml:"summary"`
	Body         string        `yaml:"body"`
	BodyFormat   BodyFormat    `yaml:"body_format"`
	Link         string        `yaml:"link"`
	Image        string        `yaml:"image"`
	PublishedAt  time.Time     `yaml:"published_at"`
	TimeLabel    string        `yaml:"time"`
	Likes        int           `yaml:"likes"`
	CommentCount int           `yaml:"comment_count"`
	Comments     []SeedComment `yaml:"comments"`
}

// SeedComment is a root comment shipped with the seed content.
type SeedComment struct {
	ID      int64       `yaml:"id"`
	Author  string      `yaml:"author"`
	Content string      `yaml:"content"`
	Time    string      `yaml:"time"`
	Replies []SeedReply `yaml:"replies"`
}

type SeedReply struct {
	ID      int64  `yaml:"id"`
	Author  string `yaml:"author"`
	Content string `yaml:"content"`
	Time    string `yaml:"time"`
}

// Source produces the articles of one feed.
type Source interface {
	Load(ctx context.Context) ([]Article, error)
}

// ReadingTime estimates minutes needed to read text, rounded up. It never
// reports less than one minute.
func ReadingTime(text string) int {
	words := len(strings.Fields(text))
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// ReadingText is the text the reading-time estimate is computed from.
func (a Article) ReadingText() string {
	if strings.TrimSpace(a.Body) != "" {
		return a.Body
	}
	return a.Summary
}

// Normalize fills defaults and checks the invariants every source must
// satisfy: unique non-empty ids, titles, known body formats and unique
// seed comment ids per article.
func Normalize(articles []Article) error {
	seen := make(map[string]struct{}, len(articles))
	for i := range articles {
		a := &articles[i]
		a.ID = strings.TrimSpace(a.ID)
		a.Title = strings.TrimSpace(a.Title)
		if a.ID == "" {
			return fmt.Errorf("article %d: id is required", i)
		}
		if _, dup := seen[a.ID]; dup {
			return fmt.Errorf("article %q: duplicate id", a.ID)
		}
		seen[a.ID] = struct{}{}
		if a.Title == "" {
			return fmt.Errorf("article %q: title is required", a.ID)
		}
		if a.BodyFormat == "" {
			a.BodyFormat = FormatText
		}
		if !a.BodyFormat.IsValid() {
			return fmt.Errorf("article %q: unknown body format %q", a.ID, a.BodyFormat)
		}
		if a.Category == "" {
			a.Category = "General"
		}
		if len(a.Categories) == 0 {
			a.Categories = []string{a.Category}
		}
		if a.Likes < 0 || a.CommentCount < 0 {
			return fmt.Errorf("article %q: counters must not be negative", a.ID)
		}
		if err := normalizeComments(a); err != nil {
			return err
		}
	}
	return nil
}

func normalizeComments(a *Article) error {
	var maxID int64
	for _, c := range a.Comments {
		maxID = max(maxID, c.ID)
		for _, r := range c.Replies {
			maxID = max(maxID, r.ID)
		}
	}
	ids := make(map[int64]struct{})
	claim := func(id *int64) error {
		if *id == 0 {
			maxID++
			*id = maxID
		}
		if _, dup := ids[*id]; dup {
			return fmt.Errorf("article %q: duplicate comment id %d", a.ID, *id)
		}
		ids[*id] = struct{}{}
		return nil
	}
	for i := range a.Comments {
		c := &a.Comments[i]
		if err := claim(&c.ID); err != nil {
			return err
		}
		for j := range c.Replies {
			if err := claim(&c.Replies[j].ID); err != nil {
				return err
			}
		}
	}
	return nil
}
