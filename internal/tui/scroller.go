package tui

import (
	"github.com/glabrego/cardfeed/internal/nav"
	"github.com/glabrego/cardfeed/internal/tui/state"
)

var _ nav.ScrollLock = (*cardScroller)(nil)

// cardScroller owns the card cursor of the feed. It is the scroll lock the
// navigation controller holds while the overlay is open: every feed scroll
// goes through it and is dropped while suspended.
type cardScroller struct {
	cursor    int
	suspended bool
}

func (s *cardScroller) Suspend() { s.suspended = true }

func (s *cardScroller) Resume() { s.suspended = false }

func (s *cardScroller) Suspended() bool { return s.suspended }

func (s *cardScroller) Cursor() int { return s.cursor }

// ScrollBy moves the cursor by delta cards and reports whether it moved.
func (s *cardScroller) ScrollBy(delta, count int) bool {
	return s.ScrollTo(s.cursor+delta, count)
}

func (s *cardScroller) ScrollTo(index, count int) bool {
	if s.suspended || count <= 0 {
		return false
	}
	next := state.ClampCursor(index, count)
	moved := next != s.cursor
	s.cursor = next
	return moved
}

// Place moves the cursor after the catalog changed underneath it. It is not a
// scroll, so it applies while suspended.
func (s *cardScroller) Place(index, count int) {
	s.cursor = state.ClampCursor(index, count)
}
