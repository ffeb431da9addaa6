package actions

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/cardfeed/internal/catalog"
)

const reloadTimeout = 15 * time.Second

type LinkSuccessMsg struct {
	ArticleID string
	Status    string
	Opened    bool
}

type LinkErrorMsg struct {
	ArticleID string
	Err       error
}

type ClearStatusMsg struct {
	ID int
}

type ReloadSuccessMsg struct {
	Articles []catalog.Article
}

type ReloadErrorMsg struct {
	Err error
}

// ReloadCmd reads the catalog again through loadFn.
func ReloadCmd(loadFn func(context.Context) ([]catalog.Article, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
		defer cancel()
		articles, err := loadFn(ctx)
		if err != nil {
			return ReloadErrorMsg{Err: err}
		}
		return ReloadSuccessMsg{Articles: articles}
	}
}

// OpenURLCmd opens link in the browser, copying it to the clipboard when no
// browser can be started.
func OpenURLCmd(articleID, link string, openFn, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if openFn != nil {
			if err := openFn(link); err == nil {
				return LinkSuccessMsg{ArticleID: articleID, Status: "Opened link in browser", Opened: true}
			}
		}
		if copyFn != nil {
			if err := copyFn(link); err == nil {
				return LinkSuccessMsg{ArticleID: articleID, Status: "Could not open browser, link copied to clipboard"}
			}
		}
		return LinkErrorMsg{ArticleID: articleID, Err: errors.New("could not open link or copy it to clipboard")}
	}
}

// ShareCmd copies link to the clipboard.
func ShareCmd(articleID, link string, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if copyFn != nil {
			if err := copyFn(link); err == nil {
				return LinkSuccessMsg{ArticleID: articleID, Status: "Link copied to clipboard"}
			}
		}
		return LinkErrorMsg{ArticleID: articleID, Err: errors.New("could not copy link to clipboard")}
	}
}

func ClearStatusCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return ClearStatusMsg{ID: id}
	})
}
