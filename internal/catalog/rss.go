package catalog

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"
)

// RSSSource imports the items of a local RSS or Atom file as articles.
// Imported items carry no counters or comments.
type RSSSource struct {
	Path string
}

func (s RSSSource) Load(ctx context.Context) ([]Article, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open feed file: %w", err)
	}
	defer f.Close()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	parsed, err := gofeed.NewParser().Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", s.Path, err)
	}

	articles := make([]Article, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		articles = append(articles, articleFromItem(parsed.Title, item))
	}
	if err := Normalize(articles); err != nil {
		return nil, fmt.Errorf("invalid feed %s: %w", s.Path, err)
	}
	return articles, nil
}

func articleFromItem(feedTitle string, item *gofeed.Item) Article {
	a := Article{
		ID:      itemID(item),
		Title:   strings.TrimSpace(item.Title),
		Summary: strings.TrimSpace(item.Description),
		Link:    strings.TrimSpace(item.Link),
	}
	if a.Title == "" {
		a.Title = "(untitled)"
	}

	body := strings.TrimSpace(item.Content)
	if body == "" {
		body = a.Summary
	}
	a.Body = body
	a.BodyFormat = FormatHTML

	switch {
	case item.Author != nil && item.Author.Name != "":
		a.Author = item.Author.Name
	case len(item.Authors) > 0 && item.Authors[0] != nil:
		a.Author = item.Authors[0].Name
	default:
		a.Author = feedTitle
	}

	if len(item.Categories) > 0 {
		a.Category = item.Categories[0]
		a.Categories = append([]string(nil), item.Categories[1:]...)
	} else if feedTitle != "" {
		a.Category = feedTitle
	}

	if item.PublishedParsed != nil {
		a.PublishedAt = item.PublishedParsed.UTC()
	} else if item.UpdatedParsed != nil {
		a.PublishedAt = item.UpdatedParsed.UTC()
	}
	if item.Image != nil {
		a.Image = item.Image.URL
	}
	return a
}

func itemID(item *gofeed.Item) string {
	if id := strings.TrimSpace(item.GUID); id != "" {
		return id
	}
	key := strings.TrimSpace(item.Link)
	if key == "" {
		key = item.Title
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String()
}
