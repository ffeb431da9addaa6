package tui

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glabrego/cardfeed/internal/catalog"
	"github.com/glabrego/cardfeed/internal/comments"
	"github.com/glabrego/cardfeed/internal/engagement"
	"github.com/glabrego/cardfeed/internal/nav"
	article "github.com/glabrego/cardfeed/internal/render/article"
	tuiactions "github.com/glabrego/cardfeed/internal/tui/actions"
	"github.com/glabrego/cardfeed/internal/tui/platform"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plainView(m Model) string {
	return ansi.ReplaceAllString(m.View(), "")
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testArticles() []catalog.Article {
	return []catalog.Article{
		{
			ID: "terminal", Title: "The Terminal Renaissance", Author: "Dana Reyes",
			Category: "Technology", Categories: []string{"Technology"},
			Body: "Text interfaces are back.", BodyFormat: catalog.FormatText,
			Link: "https://example.com/terminal", TimeLabel: "2 hours ago",
			Likes: 10, CommentCount: 1,
			Comments: []catalog.SeedComment{{
				ID: 1, Author: "Alice Martin", Content: "Great read!", Time: "1 hour ago",
				Replies: []catalog.SeedReply{{ID: 2, Author: "Bob Wilson", Content: "Agreed.", Time: "30 minutes ago"}},
			}},
		},
		{
			ID: "gardens", Title: "Urban Gardens", Author: "Lee Park",
			Category: "Lifestyle", Categories: []string{"Lifestyle"},
			Body: "<p>Rooftops are growing food.</p>", BodyFormat: catalog.FormatHTML,
			Link: "https://example.com/gardens", Likes: 42,
		},
		{
			ID: "chess", Title: "Chess Engines", Author: "Ivan Petrov",
			Category: "Games", Categories: []string{"Games"},
			Body: "Engines changed the opening book.", BodyFormat: catalog.FormatText,
			Likes: 3,
		},
	}
}

func newTestModel(t *testing.T) (Model, *engagement.Registry) {
	t.Helper()
	registry := engagement.NewRegistry("You")
	m := NewModel(testArticles(), registry)
	m.SetRenderOptions(article.Options{MarkdownStyle: "notty"})
	m.openURLFn = func(string) error { return nil }
	m.copyURLFn = func(string) error { return nil }
	return m, registry
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	var model tea.Model = m
	for _, msg := range msgs {
		model, _ = model.Update(msg)
	}
	return model.(Model)
}

func TestModelView_ShowsCards(t *testing.T) {
	m, _ := newTestModel(t)
	out := plainView(m)

	assert.Contains(t, out, "The Terminal Renaissance")
	assert.Contains(t, out, "Urban Gardens")
	assert.Contains(t, out, "♡ 10")
	assert.Contains(t, out, "1 comment")
	assert.Contains(t, out, "article 1/3")
}

func TestModelUpdate_ScrollsCards(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, runes("j"), runes("j"), runes("j"))
	assert.Equal(t, 2, m.list.Cursor(), "cursor stops at the last card")

	m = press(t, m, runes("k"))
	assert.Equal(t, 1, m.list.Cursor())

	m = press(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	assert.Equal(t, 0, m.list.Cursor())

	m = press(t, m, runes("G"))
	assert.Equal(t, 2, m.list.Cursor())
	m = press(t, m, runes("g"))
	assert.Equal(t, 0, m.list.Cursor())
}

func TestModelUpdate_LikeOnCardShowsInOverlay(t *testing.T) {
	m, registry := newTestModel(t)

	m = press(t, m, runes("l"))
	e, ok := registry.Lookup("terminal")
	require.True(t, ok)
	assert.True(t, e.Flags.Liked)
	assert.Equal(t, "Liked", m.status)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.nav.IsOpen())
	assert.Equal(t, 0, m.nav.Index())

	out := plainView(m)
	assert.Contains(t, out, "reading")
	assert.Contains(t, out, "♥ 11")
	assert.Contains(t, out, "Text interfaces are back.")
	assert.True(t, registry.For(m.articles[0]).Flags.Liked, "overlay reads the same record without a second toggle")
}

func TestModelUpdate_ScrollLockFollowsOverlay(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, tea.WindowSizeMsg{Width: 80, Height: 40})

	m = press(t, m, runes("j"), tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.nav.IsOpen())
	assert.True(t, m.list.Suspended())

	wheelDown := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown}
	m = press(t, m, runes("j"), wheelDown, wheelDown, wheelDown)
	assert.Equal(t, 1, m.list.Cursor(), "feed behind the overlay must not scroll")
	assert.False(t, m.list.ScrollBy(1, len(m.articles)))

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.nav.IsOpen())
	assert.False(t, m.list.Suspended())

	m = press(t, m, wheelDown)
	assert.Equal(t, 2, m.list.Cursor())
}

func TestModelUpdate_OverlayNavigationWraps(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, runes("G"), tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, nav.State{Open: true, Index: 2}, m.nav.State())

	m = press(t, m, runes("]"))
	assert.Equal(t, 0, m.nav.Index())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 2, m.nav.Index())

	m = press(t, m, runes("["))
	assert.Equal(t, 1, m.nav.Index())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, 1, m.list.Cursor(), "closing returns to the last article shown")
}

func TestModelUpdate_QuitReleasesScrollLock(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.list.Suspended())

	updated, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	final := updated.(Model)
	assert.False(t, final.nav.IsOpen())
	assert.False(t, final.list.Suspended())
}

func TestModel_ShutdownReleasesScrollLock(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m.Shutdown()
	assert.False(t, m.list.Suspended())
	m.Shutdown()
	assert.False(t, m.list.Suspended())
}

func TestModelUpdate_AddComment(t *testing.T) {
	m, registry := newTestModel(t)

	m = press(t, m, runes("a"))
	require.Equal(t, composeComment, m.composing)
	assert.True(t, m.expanded["terminal"], "adding from a card opens its thread")

	m = press(t, m, runes("Hello"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, composeNone, m.composing)
	assert.Equal(t, "Comment added", m.status)

	e := registry.For(m.articles[0])
	assert.Equal(t, 2, e.DisplayedCommentCount())
	thread := e.Comments.Comments()
	assert.Equal(t, "Hello", thread[1].Content)
	assert.Equal(t, "You", thread[1].Author)
	assert.Equal(t, comments.JustNow, thread[1].Time)

	out := plainView(m)
	assert.Contains(t, out, "2 comments")
	assert.Contains(t, out, "You · just now")
}

func TestModelUpdate_EmptyCommentRejected(t *testing.T) {
	m, registry := newTestModel(t)

	m = press(t, m, runes("a"), runes("   "), tea.KeyMsg{Type: tea.KeyEnter})
	assert.ErrorIs(t, m.err, comments.ErrEmptyContent)
	assert.Equal(t, composeComment, m.composing, "prompt stays open after a rejected comment")
	assert.Equal(t, 1, registry.For(m.articles[0]).DisplayedCommentCount())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, composeNone, m.composing)
	assert.Equal(t, 1, registry.For(m.articles[0]).DisplayedCommentCount())
}

func TestModelUpdate_ReplyAndDeleteSelectedComment(t *testing.T) {
	m, registry := newTestModel(t)
	store := registry.For(m.articles[0]).Comments

	m = press(t, m, runes("r"))
	assert.Equal(t, composeNone, m.composing, "reply needs a selected comment")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, int64(1), m.selected["terminal"])

	m = press(t, m, runes("r"), runes("Me too"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "Reply added", m.status)
	c, ok := store.Comment(1)
	require.True(t, ok)
	require.Len(t, c.Replies, 2)
	assert.Equal(t, "Me too", c.Replies[1].Content)
	assert.Equal(t, 1, store.Len(), "replies do not change the root count")

	m = press(t, m, runes("x"))
	assert.Equal(t, "Comment deleted", m.status)
	assert.Equal(t, 0, store.Len())
	assert.Zero(t, m.selected["terminal"])
}

func TestModelUpdate_CommentsInOverlayShareStore(t *testing.T) {
	m, registry := newTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}, runes("a"), runes("From overlay"), tea.KeyMsg{Type: tea.KeyEnter})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, 2, registry.For(m.articles[0]).DisplayedCommentCount())
	assert.Contains(t, plainView(m), "2 comments")
}

func TestModelUpdate_ShareCopiesLink(t *testing.T) {
	m, _ := newTestModel(t)
	var copied string
	m.copyURLFn = func(s string) error {
		copied = s
		return nil
	}

	updated, cmd := m.Update(runes("y"))
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, tuiactions.LinkSuccessMsg{}, msg)
	assert.Equal(t, "https://example.com/terminal", copied)

	m = press(t, updated.(Model), msg)
	assert.Equal(t, "Link copied to clipboard", m.status)

	m = press(t, m, runes("G"), runes("y"))
	assert.ErrorIs(t, m.err, platform.ErrNoLink)
}

func TestModelUpdate_OpenLinkFallsBackToCopy(t *testing.T) {
	m, _ := newTestModel(t)
	m.openURLFn = func(string) error { return errors.New("no browser") }
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	_, cmd := m.Update(runes("o"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(tuiactions.LinkSuccessMsg)
	require.True(t, ok)
	assert.False(t, msg.Opened)
}

func TestModelUpdate_ClearStatusMatchesLatest(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, runes("b"))
	require.Equal(t, "Bookmarked", m.status)
	first := m.statusID

	m = press(t, m, runes("f"))
	require.Equal(t, "Added to favorites", m.status)

	m = press(t, m, tuiactions.ClearStatusMsg{ID: first})
	assert.Equal(t, "Added to favorites", m.status, "stale clear is ignored")

	m = press(t, m, tuiactions.ClearStatusMsg{ID: m.statusID})
	assert.Empty(t, m.status)
}

func TestModelUpdate_HelpToggle(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, runes("?"))
	out := plainView(m)
	assert.Contains(t, out, "Feed:")
	assert.Contains(t, out, "Reading:")

	m = press(t, m, runes("l"))
	assert.Empty(t, m.status, "keys are ignored while help is shown")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showHelp)
}

func TestModelUpdate_ToggleThreadOnCard(t *testing.T) {
	m, _ := newTestModel(t)
	assert.NotContains(t, plainView(m), "Great read!")

	m = press(t, m, runes("c"))
	out := plainView(m)
	assert.Contains(t, out, "Great read!")
	assert.Contains(t, out, "↳ Bob Wilson")

	m = press(t, m, runes("c"))
	assert.NotContains(t, plainView(m), "Great read!")
}

func TestModel_EmptyFeed(t *testing.T) {
	m := NewModel(nil, engagement.NewRegistry("You"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}, runes("l"), runes("j"))
	assert.False(t, m.nav.IsOpen())
	assert.True(t, strings.Contains(plainView(m), "No articles available."))
}

func TestModelUpdate_CtrlCQuitsWhileComposing(t *testing.T) {
	m, registry := newTestModel(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}, runes("a"), runes("draft"))
	require.Equal(t, composeComment, m.composing)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	final := updated.(Model)
	assert.False(t, final.list.Suspended())
	assert.Equal(t, 1, registry.For(final.articles[0]).DisplayedCommentCount(), "draft is not posted")
}

func TestModelUpdate_QTypesWhileComposing(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, runes("a"), runes("q"))
	assert.Equal(t, composeComment, m.composing)
	assert.Equal(t, "q", m.compose.Value())
}

func TestModelUpdate_ReloadKeepsOverlayOnSameArticle(t *testing.T) {
	m, registry := newTestModel(t)
	var calls int
	reordered := testArticles()
	reordered[0], reordered[2] = reordered[2], reordered[0]
	m.SetReloader(func(context.Context) ([]catalog.Article, error) {
		calls++
		return reordered, nil
	})
	m = press(t, m, runes("l"), tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, 0, m.nav.Index())

	updated, cmd := m.Update(runes("R"))
	require.NotNil(t, cmd)
	m = updated.(Model)
	assert.Equal(t, "Reloading catalog", m.status)

	m = press(t, m, tuiactions.ReloadSuccessMsg{Articles: reordered})
	assert.Equal(t, "Reloaded 3 articles", m.status)
	require.True(t, m.nav.IsOpen())
	assert.Equal(t, 2, m.nav.Index(), "overlay follows the article to its new position")
	assert.Equal(t, "terminal", m.currentArticle().ID)
	assert.True(t, m.list.Suspended())
	assert.True(t, m.currentRecord().Flags.Liked, "engagement survives a reload")
	assert.Equal(t, 3, registry.Len())
	assert.Zero(t, calls, "the load runs in the command, not in Update")
}

func TestModelUpdate_ReloadClosesOverlayWhenArticleIsGone(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, runes("G"), tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, 2, m.nav.Index())

	m = press(t, m, tuiactions.ReloadSuccessMsg{Articles: testArticles()[:2]})
	assert.False(t, m.nav.IsOpen())
	assert.False(t, m.list.Suspended())
	assert.Equal(t, 1, m.list.Cursor())
	assert.Equal(t, 2, m.nav.Count())
}

func TestModelUpdate_ReloadError(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, tuiactions.ReloadErrorMsg{Err: errors.New("seed missing")})
	require.Error(t, m.err)
	assert.Contains(t, m.err.Error(), "reload: seed missing")
	assert.Len(t, m.articles, 3)
}

func TestModelUpdate_ReloadKeyWithoutReloader(t *testing.T) {
	m, _ := newTestModel(t)
	updated, cmd := m.Update(runes("R"))
	assert.Nil(t, cmd)
	assert.Empty(t, updated.(Model).status)
}

func TestNewModel_CreatesRecordsBeforeRendering(t *testing.T) {
	m, registry := newTestModel(t)
	require.Equal(t, 3, registry.Len())

	_ = m.View()
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	_ = m.View()
	assert.Equal(t, 3, registry.Len())
	for i, a := range m.articles {
		e, ok := registry.Lookup(a.ID)
		require.True(t, ok)
		assert.Same(t, e, m.records[i])
	}
}

func TestModel_OverlayBodyRenderedOncePerWidth(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, tea.WindowSizeMsg{Width: 80, Height: 40}, runes("j"), tea.KeyMsg{Type: tea.KeyEnter})

	m = press(t, m, runes("j"), runes("j"), runes("k"))
	_ = m.View()
	require.Len(t, m.bodies, 1)
	for k, lines := range m.bodies {
		assert.Equal(t, "gardens", k.id)
		lines[0] = "cached body line"
	}
	assert.Contains(t, plainView(m), "cached body line", "the view reuses the cached body")

	m = press(t, m, tea.WindowSizeMsg{Width: 60, Height: 40})
	_ = m.View()
	assert.Len(t, m.bodies, 2)

	m.SetRenderOptions(article.Options{ImageMode: article.ImageModeNone, MarkdownStyle: "notty"})
	assert.Empty(t, m.bodies)
}
