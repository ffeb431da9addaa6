// Package engagement owns the per-article interaction state shared by every
// view: the like/bookmark/favorite flags and the comment thread.
package engagement

import (
	"github.com/glabrego/cardfeed/internal/catalog"
	"github.com/glabrego/cardfeed/internal/comments"
)

// Flags are the three independent booleans of one article.
type Flags struct {
	Liked      bool
	Bookmarked bool
	Favorited  bool
}

func (f *Flags) ToggleLiked() bool {
	f.Liked = !f.Liked
	return f.Liked
}

func (f *Flags) ToggleBookmarked() bool {
	f.Bookmarked = !f.Bookmarked
	return f.Bookmarked
}

func (f *Flags) ToggleFavorited() bool {
	f.Favorited = !f.Favorited
	return f.Favorited
}

func (f *Flags) Snapshot() Flags {
	return *f
}

// Engagement is the interaction record of one article.
type Engagement struct {
	ArticleID string
	Flags     *Flags
	Comments  *comments.Store
}

// DisplayedLikeCount is the seeded like count plus the viewer's own like.
func (e *Engagement) DisplayedLikeCount(a catalog.Article) int {
	return LikeCount(a.Likes, e.Flags.Liked)
}

// DisplayedCommentCount is the live number of root comments. Replies are not
// counted.
func (e *Engagement) DisplayedCommentCount() int {
	return e.Comments.Len()
}

func LikeCount(raw int, liked bool) int {
	if liked {
		return raw + 1
	}
	return raw
}

// Registry maps article ids to their single Engagement record. Views must
// fetch records from here and never copy them.
type Registry struct {
	viewer  string
	records map[string]*Engagement
}

func NewRegistry(viewer string) *Registry {
	return &Registry{
		viewer:  viewer,
		records: make(map[string]*Engagement),
	}
}

// For returns the record of a, creating it on first use with cleared flags
// and the article's seeded comments.
func (r *Registry) For(a catalog.Article) *Engagement {
	if e, ok := r.records[a.ID]; ok {
		return e
	}
	e := &Engagement{
		ArticleID: a.ID,
		Flags:     &Flags{},
		Comments:  comments.NewStore(r.viewer, seedComments(a.Comments)),
	}
	r.records[a.ID] = e
	return e
}

func (r *Registry) Lookup(articleID string) (*Engagement, bool) {
	e, ok := r.records[articleID]
	return e, ok
}

func (r *Registry) Len() int {
	return len(r.records)
}

func (r *Registry) Viewer() string {
	return r.viewer
}

func seedComments(seed []catalog.SeedComment) []comments.Comment {
	out := make([]comments.Comment, 0, len(seed))
	for _, c := range seed {
		replies := make([]comments.Reply, 0, len(c.Replies))
		for _, r := range c.Replies {
			replies = append(replies, comments.Reply{ID: r.ID, Author: r.Author, Content: r.Content, Time: r.Time})
		}
		out = append(out, comments.Comment{
			ID:      c.ID,
			Author:  c.Author,
			Content: c.Content,
			Time:    c.Time,
			Replies: replies,
		})
	}
	return out
}
