package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/glabrego/cardfeed/internal/catalog"
)

// MemoryDSN keeps the catalog in process memory only.
const MemoryDSN = ":memory:"

const (
	labelCategory = "category"
	labelTag      = "tag"
)

// Repository holds the loaded article catalog in sqlite.
type Repository struct {
	db *sql.DB
}

func NewRepository(path string) (*Repository, error) {
	if path == "" {
		path = MemoryDSN
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// every pooled connection to :memory: would see its own empty database
	db.SetMaxOpenConns(1)
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Repository) Init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS articles (
  id TEXT PRIMARY KEY,
  position INTEGER NOT NULL,
  title TEXT NOT NULL,
  author TEXT,
  category TEXT,
  summary TEXT,
  body TEXT,
  body_format TEXT NOT NULL,
  link TEXT,
  image TEXT,
  published_at TEXT,
  time_label TEXT,
  likes INTEGER NOT NULL DEFAULT 0,
  comment_count INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS article_labels (
  article_id TEXT NOT NULL,
  kind TEXT NOT NULL,
  position INTEGER NOT NULL,
  value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS seed_comments (
  article_id TEXT NOT NULL,
  id INTEGER NOT NULL,
  parent_id INTEGER NOT NULL DEFAULT 0,
  position INTEGER NOT NULL,
  author TEXT,
  content TEXT,
  time_label TEXT,
  PRIMARY KEY (article_id, id)
);
CREATE INDEX IF NOT EXISTS idx_articles_position ON articles(position);
`
	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// CheckWritable verifies the database accepts writes without keeping any.
func (r *Repository) CheckWritable(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `CREATE TABLE write_check (id INTEGER)`); err != nil {
		return fmt.Errorf("write check: %w", err)
	}
	return nil
}

// SaveArticles replaces the catalog with articles in feed order. Rows left
// over from an earlier load are removed in the same transaction.
func (r *Repository) SaveArticles(ctx context.Context, articles []catalog.Article) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := pruneStale(ctx, tx, articles); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO articles (id, position, title, author, category, summary, body, body_format, link, image, published_at, time_label, likes, comment_count)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  position=excluded.position,
  title=excluded.title,
  author=excluded.author,
  category=excluded.category,
  summary=excluded.summary,
  body=excluded.body,
  body_format=excluded.body_format,
  link=excluded.link,
  image=excluded.image,
  published_at=excluded.published_at,
  time_label=excluded.time_label,
  likes=excluded.likes,
  comment_count=excluded.comment_count
`)
	if err != nil {
		return fmt.Errorf("prepare save statement: %w", err)
	}
	defer stmt.Close()

	for i, a := range articles {
		published := ""
		if !a.PublishedAt.IsZero() {
			published = a.PublishedAt.UTC().Format(time.RFC3339Nano)
		}
		_, err := stmt.ExecContext(
			ctx,
			a.ID,
			i,
			a.Title,
			a.Author,
			a.Category,
			a.Summary,
			a.Body,
			string(a.BodyFormat),
			a.Link,
			a.Image,
			published,
			a.TimeLabel,
			a.Likes,
			a.CommentCount,
		)
		if err != nil {
			return fmt.Errorf("save article %s: %w", a.ID, err)
		}
		if err := saveLabels(ctx, tx, a); err != nil {
			return err
		}
		if err := saveSeedComments(ctx, tx, a); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func pruneStale(ctx context.Context, tx *sql.Tx, articles []catalog.Article) error {
	filter := ""
	args := make([]any, 0, len(articles))
	if len(articles) > 0 {
		filter = " WHERE " + "%s NOT IN (" + strings.TrimSuffix(strings.Repeat("?,", len(articles)), ",") + ")"
		for _, a := range articles {
			args = append(args, a.ID)
		}
	}
	for _, table := range []struct{ name, column string }{
		{"articles", "id"},
		{"article_labels", "article_id"},
		{"seed_comments", "article_id"},
	} {
		query := "DELETE FROM " + table.name
		if filter != "" {
			query += fmt.Sprintf(filter, table.column)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("prune stale %s: %w", table.name, err)
		}
	}
	return nil
}

func saveLabels(ctx context.Context, tx *sql.Tx, a catalog.Article) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM article_labels WHERE article_id = ?`, a.ID); err != nil {
		return fmt.Errorf("clear labels of %s: %w", a.ID, err)
	}
	insert := func(kind string, values []string) error {
		for pos, v := range values {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO article_labels (article_id, kind, position, value) VALUES (?, ?, ?, ?)`,
				a.ID, kind, pos, v,
			); err != nil {
				return fmt.Errorf("save %s label of %s: %w", kind, a.ID, err)
			}
		}
		return nil
	}
	if err := insert(labelCategory, a.Categories); err != nil {
		return err
	}
	return insert(labelTag, a.Tags)
}

func saveSeedComments(ctx context.Context, tx *sql.Tx, a catalog.Article) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM seed_comments WHERE article_id = ?`, a.ID); err != nil {
		return fmt.Errorf("clear seed comments of %s: %w", a.ID, err)
	}
	const insert = `INSERT INTO seed_comments (article_id, id, parent_id, position, author, content, time_label) VALUES (?, ?, ?, ?, ?, ?, ?)`
	for pos, c := range a.Comments {
		if _, err := tx.ExecContext(ctx, insert, a.ID, c.ID, 0, pos, c.Author, c.Content, c.Time); err != nil {
			return fmt.Errorf("save comment %d of %s: %w", c.ID, a.ID, err)
		}
		for rpos, reply := range c.Replies {
			if _, err := tx.ExecContext(ctx, insert, a.ID, reply.ID, c.ID, rpos, reply.Author, reply.Content, reply.Time); err != nil {
				return fmt.Errorf("save reply %d of %s: %w", reply.ID, a.ID, err)
			}
		}
	}
	return nil
}

// ListArticles returns up to limit articles in feed order.
func (r *Repository) ListArticles(ctx context.Context, limit int) ([]catalog.Article, error) {
	if limit < 1 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, author, category, summary, body, body_format, link, image, published_at, time_label, likes, comment_count
FROM articles
ORDER BY position ASC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	articles := make([]catalog.Article, 0, limit)
	index := make(map[string]int)
	for rows.Next() {
		var a catalog.Article
		var format, publishedAt string
		if err := rows.Scan(
			&a.ID,
			&a.Title,
			&a.Author,
			&a.Category,
			&a.Summary,
			&a.Body,
			&format,
			&a.Link,
			&a.Image,
			&publishedAt,
			&a.TimeLabel,
			&a.Likes,
			&a.CommentCount,
		); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		a.BodyFormat = catalog.BodyFormat(format)
		if publishedAt != "" {
			a.PublishedAt, err = time.Parse(time.RFC3339Nano, publishedAt)
			if err != nil {
				return nil, fmt.Errorf("parse article published_at %q: %w", publishedAt, err)
			}
		}
		index[a.ID] = len(articles)
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	if err := r.attachLabels(ctx, articles, index); err != nil {
		return nil, err
	}
	if err := r.attachSeedComments(ctx, articles, index); err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *Repository) attachLabels(ctx context.Context, articles []catalog.Article, index map[string]int) error {
	rows, err := r.db.QueryContext(ctx, `SELECT article_id, kind, value FROM article_labels ORDER BY article_id, kind, position`)
	if err != nil {
		return fmt.Errorf("query labels: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var articleID, kind, value string
		if err := rows.Scan(&articleID, &kind, &value); err != nil {
			return fmt.Errorf("scan label: %w", err)
		}
		i, ok := index[articleID]
		if !ok {
			continue
		}
		switch kind {
		case labelCategory:
			articles[i].Categories = append(articles[i].Categories, value)
		case labelTag:
			articles[i].Tags = append(articles[i].Tags, value)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows iteration: %w", err)
	}
	return nil
}

func (r *Repository) attachSeedComments(ctx context.Context, articles []catalog.Article, index map[string]int) error {
	rows, err := r.db.QueryContext(ctx, `
SELECT article_id, id, parent_id, author, content, time_label
FROM seed_comments
ORDER BY article_id, parent_id, position
`)
	if err != nil {
		return fmt.Errorf("query seed comments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			articleID string
			id        int64
			parentID  int64
			author    string
			content   string
			timeLabel string
		)
		if err := rows.Scan(&articleID, &id, &parentID, &author, &content, &timeLabel); err != nil {
			return fmt.Errorf("scan seed comment: %w", err)
		}
		i, ok := index[articleID]
		if !ok {
			continue
		}
		a := &articles[i]
		if parentID == 0 {
			a.Comments = append(a.Comments, catalog.SeedComment{ID: id, Author: author, Content: content, Time: timeLabel})
			continue
		}
		for j := range a.Comments {
			if a.Comments[j].ID == parentID {
				a.Comments[j].Replies = append(a.Comments[j].Replies, catalog.SeedReply{ID: id, Author: author, Content: content, Time: timeLabel})
				break
			}
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows iteration: %w", err)
	}
	return nil
}

// CountArticles reports how many articles the catalog holds.
func (r *Repository) CountArticles(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return n, nil
}
