// Package nav implements the detail overlay lifecycle: which article is
// shown, stepping between articles, and suspending the scrolling of the
// feed behind the overlay while it is open.
package nav

import (
	"errors"
	"fmt"
)

// ErrInvalidIndex is returned when Open is asked for an article outside the
// feed.
var ErrInvalidIndex = errors.New("article index out of range")

// ScrollLock suspends scrolling of the view behind the overlay. Only the
// Controller calls it, and never twice in a row in the same direction.
type ScrollLock interface {
	Suspend()
	Resume()
}

// State is a snapshot of the controller. Index is -1 while closed.
type State struct {
	Open  bool
	Index int
}

// Controller is the overlay state machine over {Closed, Open(index)}. The
// scroll lock is held exactly while the state is Open.
type Controller struct {
	count int
	lock  ScrollLock
	open  bool
	index int
	held  bool
}

func NewController(count int, lock ScrollLock) *Controller {
	return &Controller{count: max(count, 0), lock: lock, index: -1}
}

// Open shows the article at index. Opening while already open replaces the
// active article and keeps the lock held.
func (c *Controller) Open(index int) error {
	if index < 0 || index >= c.count {
		return fmt.Errorf("open article %d of %d: %w", index, c.count, ErrInvalidIndex)
	}
	c.acquire()
	c.open = true
	c.index = index
	return nil
}

// Close hides the overlay and restores background scrolling. Closing a
// closed controller does nothing.
func (c *Controller) Close() {
	if !c.open {
		return
	}
	c.open = false
	c.index = -1
	c.release()
}

// Next moves to the following article, wrapping to the first.
func (c *Controller) Next() {
	c.step(1)
}

// Previous moves to the preceding article, wrapping to the last.
func (c *Controller) Previous() {
	c.step(-1)
}

func (c *Controller) step(delta int) {
	if !c.open || c.count == 0 {
		return
	}
	c.index = ((c.index+delta)%c.count + c.count) % c.count
}

// SetCount updates the number of articles. An active index that no longer
// exists closes the overlay.
func (c *Controller) SetCount(count int) {
	c.count = max(count, 0)
	if c.open && c.index >= c.count {
		c.Close()
	}
}

// Shutdown tears the controller down, releasing the scroll lock if the
// overlay is still open. It is safe to call more than once.
func (c *Controller) Shutdown() {
	c.open = false
	c.index = -1
	c.release()
}

func (c *Controller) State() State {
	if !c.open {
		return State{Index: -1}
	}
	return State{Open: true, Index: c.index}
}

func (c *Controller) IsOpen() bool {
	return c.open
}

// Index returns the active article index, or -1 while closed.
func (c *Controller) Index() int {
	if !c.open {
		return -1
	}
	return c.index
}

func (c *Controller) Count() int {
	return c.count
}

func (c *Controller) acquire() {
	if c.held {
		return
	}
	c.held = true
	if c.lock != nil {
		c.lock.Suspend()
	}
}

func (c *Controller) release() {
	if !c.held {
		return
	}
	c.held = false
	if c.lock != nil {
		c.lock.Resume()
	}
}
