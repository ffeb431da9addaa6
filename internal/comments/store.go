// Package comments holds the two-level comment thread of a single article:
// root comments, each with an ordered list of replies. Replies cannot be
// replied to.
package comments

import (
	"errors"
	"fmt"
	"strings"
)

// JustNow is the time label given to comments created in this session.
const JustNow = "just now"

var (
	// ErrEmptyContent is returned when comment or reply text is blank.
	ErrEmptyContent = errors.New("comment content is empty")
	// ErrCommentNotFound is returned when a reply targets an unknown comment.
	ErrCommentNotFound = errors.New("comment not found")
)

type Comment struct {
	ID      int64
	Author  string
	Content string
	Time    string
	Replies []Reply
}

type Reply struct {
	ID      int64
	Author  string
	Content string
	Time    string
}

// Store owns the comment tree of one article. Ids come from a counter that
// only moves forward, so a deleted id is never handed out again.
type Store struct {
	viewer   string
	comments []Comment
	lastID   int64
}

// NewStore returns a store seeded with comments. Seed ids are kept; zero ids
// are assigned from the counter, which starts above the largest seed id.
func NewStore(viewer string, seed []Comment) *Store {
	s := &Store{viewer: viewer}
	for _, c := range seed {
		s.lastID = max(s.lastID, c.ID)
		for _, r := range c.Replies {
			s.lastID = max(s.lastID, r.ID)
		}
	}
	s.comments = make([]Comment, 0, len(seed))
	for _, c := range seed {
		c.Replies = append([]Reply(nil), c.Replies...)
		if c.ID == 0 {
			c.ID = s.nextID()
		}
		for i := range c.Replies {
			if c.Replies[i].ID == 0 {
				c.Replies[i].ID = s.nextID()
			}
		}
		s.comments = append(s.comments, c)
	}
	return s
}

func (s *Store) Viewer() string {
	return s.viewer
}

// AddComment appends a root comment. An empty author falls back to the
// viewer label.
func (s *Store) AddComment(author, content string) (Comment, error) {
	content, err := validContent(content)
	if err != nil {
		return Comment{}, err
	}
	if strings.TrimSpace(author) == "" {
		author = s.viewer
	}
	c := Comment{
		ID:      s.nextID(),
		Author:  author,
		Content: content,
		Time:    JustNow,
	}
	s.comments = append(s.comments, c)
	return c, nil
}

// AddReply appends a reply by the viewer to the root comment commentID.
func (s *Store) AddReply(commentID int64, content string) (Reply, error) {
	content, err := validContent(content)
	if err != nil {
		return Reply{}, err
	}
	idx := s.index(commentID)
	if idx < 0 {
		return Reply{}, fmt.Errorf("reply to comment %d: %w", commentID, ErrCommentNotFound)
	}
	r := Reply{
		ID:      s.nextID(),
		Author:  s.viewer,
		Content: content,
		Time:    JustNow,
	}
	s.comments[idx].Replies = append(s.comments[idx].Replies, r)
	return r, nil
}

// DeleteComment removes a root comment and its replies. It reports whether
// anything was removed; deleting an absent id is not an error.
func (s *Store) DeleteComment(commentID int64) bool {
	idx := s.index(commentID)
	if idx < 0 {
		return false
	}
	s.comments = append(s.comments[:idx], s.comments[idx+1:]...)
	return true
}

// Comments returns a copy of the thread in display order.
func (s *Store) Comments() []Comment {
	out := make([]Comment, len(s.comments))
	for i, c := range s.comments {
		c.Replies = append([]Reply(nil), c.Replies...)
		out[i] = c
	}
	return out
}

func (s *Store) Comment(id int64) (Comment, bool) {
	idx := s.index(id)
	if idx < 0 {
		return Comment{}, false
	}
	c := s.comments[idx]
	c.Replies = append([]Reply(nil), c.Replies...)
	return c, true
}

// Len is the number of root comments.
func (s *Store) Len() int {
	return len(s.comments)
}

func (s *Store) ReplyCount() int {
	n := 0
	for _, c := range s.comments {
		n += len(c.Replies)
	}
	return n
}

func (s *Store) index(id int64) int {
	for i := range s.comments {
		if s.comments[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) nextID() int64 {
	s.lastID++
	return s.lastID
}

func validContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", ErrEmptyContent
	}
	return trimmed, nil
}
