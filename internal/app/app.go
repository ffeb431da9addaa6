package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/glabrego/cardfeed/internal/catalog"
)

// DefaultLimit caps how many articles are shown in the feed.
const DefaultLimit = 50

type Repository interface {
	SaveArticles(ctx context.Context, articles []catalog.Article) error
	ListArticles(ctx context.Context, limit int) ([]catalog.Article, error)
	CountArticles(ctx context.Context) (int, error)
}

type Service struct {
	source catalog.Source
	repo   Repository
	log    zerolog.Logger
}

func NewService(source catalog.Source, repo Repository, log zerolog.Logger) *Service {
	return &Service{source: source, repo: repo, log: log}
}

// Load reads the seed source into the repository and returns the feed.
func (s *Service) Load(ctx context.Context, limit int) ([]catalog.Article, error) {
	start := time.Now()
	articles, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load seed articles: %w", err)
	}
	if err := s.repo.SaveArticles(ctx, articles); err != nil {
		return nil, fmt.Errorf("save articles to catalog: %w", err)
	}

	feed, err := s.ListCached(ctx, limit)
	if err != nil {
		return nil, err
	}
	stored, err := s.repo.CountArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("count catalog: %w", err)
	}
	if stored > len(feed) {
		s.log.Debug().Int("hidden", stored-len(feed)).Int("limit", limit).Msg("feed truncated by limit")
	}
	s.log.Info().
		Int("seeded", len(articles)).
		Int("stored", stored).
		Int("shown", len(feed)).
		Dur("took", time.Since(start)).
		Msg("catalog loaded")
	return feed, nil
}

func (s *Service) ListCached(ctx context.Context, limit int) ([]catalog.Article, error) {
	if limit < 1 {
		limit = DefaultLimit
	}
	articles, err := s.repo.ListArticles(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("load articles from catalog: %w", err)
	}
	return articles, nil
}
