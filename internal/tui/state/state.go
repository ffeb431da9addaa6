package state

import (
	"github.com/glabrego/cardfeed/internal/catalog"
)

func ClampCursor(cursor, size int) int {
	if size <= 0 {
		return 0
	}
	if cursor >= size {
		return size - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

func MaxTop(linesLen, bodyHeight int) int {
	maxTop := linesLen - bodyHeight
	if maxTop < 0 {
		return 0
	}
	return maxTop
}

// ClampTop keeps a scroll offset inside [0, MaxTop].
func ClampTop(top, linesLen, bodyHeight int) int {
	if top < 0 {
		return 0
	}
	if maxTop := MaxTop(linesLen, bodyHeight); top > maxTop {
		return maxTop
	}
	return top
}

// CycleSelection moves a selection through size items. -1 means nothing is
// selected; stepping from it lands on the first or last item.
func CycleSelection(current, delta, size int) int {
	if size <= 0 {
		return -1
	}
	if current < 0 || current >= size {
		if delta < 0 {
			return size - 1
		}
		return 0
	}
	return ((current+delta)%size + size) % size
}

func ArticleIndexByID(articles []catalog.Article, id string) int {
	for i, a := range articles {
		if a.ID == id {
			return i
		}
	}
	return -1
}
