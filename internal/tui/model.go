package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/glabrego/cardfeed/internal/catalog"
	"github.com/glabrego/cardfeed/internal/comments"
	"github.com/glabrego/cardfeed/internal/engagement"
	"github.com/glabrego/cardfeed/internal/nav"
	article "github.com/glabrego/cardfeed/internal/render/article"
	tuiactions "github.com/glabrego/cardfeed/internal/tui/actions"
	"github.com/glabrego/cardfeed/internal/tui/keys"
	"github.com/glabrego/cardfeed/internal/tui/platform"
	"github.com/glabrego/cardfeed/internal/tui/state"
	tuitheme "github.com/glabrego/cardfeed/internal/tui/theme"
	"github.com/glabrego/cardfeed/internal/tui/view"
)

const (
	statusDelay  = 3 * time.Second
	warningDelay = 4 * time.Second
	defaultWidth = 80
)

type composeMode int

const (
	composeNone composeMode = iota
	composeComment
	composeReply
)

// bodyKey identifies a rendered article body.
type bodyKey struct {
	id    string
	width int
}

type Model struct {
	articles   []catalog.Article
	records    []*engagement.Engagement
	registry   *engagement.Registry
	reloadFn   func(context.Context) ([]catalog.Article, error)
	bodies     map[bodyKey][]string
	nav        *nav.Controller
	list       *cardScroller
	keys       keys.KeyMap
	theme      tuitheme.Theme
	renderOpts article.Options
	log        zerolog.Logger

	width      int
	height     int
	showHelp   bool
	expanded   map[string]bool
	selected   map[string]int64
	overlayTop int

	compose    textinput.Model
	composing  composeMode
	composeFor string
	replyTo    int64

	status   string
	statusID int
	err      error

	openURLFn func(string) error
	copyURLFn func(string) error
	nowFn     func() time.Time
}

func NewModel(articles []catalog.Article, registry *engagement.Registry) Model {
	list := &cardScroller{}
	input := textinput.New()
	input.CharLimit = 500
	articles = append([]catalog.Article(nil), articles...)

	return Model{
		articles:   articles,
		records:    recordsFor(registry, articles),
		registry:   registry,
		bodies:     make(map[bodyKey][]string),
		nav:        nav.NewController(len(articles), list),
		list:       list,
		keys:       keys.Default(),
		theme:      tuitheme.Default(),
		renderOpts: article.DefaultOptions,
		log:        zerolog.Nop(),
		expanded:   make(map[string]bool),
		selected:   make(map[string]int64),
		compose:    input,
		openURLFn:  platform.OpenURLInBrowser,
		copyURLFn:  platform.CopyToClipboard,
		nowFn:      time.Now,
	}
}

func (m *Model) SetLogger(l zerolog.Logger) {
	m.log = l
}

func (m *Model) SetRenderOptions(opts article.Options) {
	m.renderOpts = opts
	m.bodies = make(map[bodyKey][]string)
}

// SetReloader enables the reload key. loadFn runs outside the update loop.
func (m *Model) SetReloader(loadFn func(context.Context) ([]catalog.Article, error)) {
	m.reloadFn = loadFn
}

// recordsFor creates the shared engagement record of every article up front
// so rendering never mutates the registry.
func recordsFor(registry *engagement.Registry, articles []catalog.Article) []*engagement.Engagement {
	records := make([]*engagement.Engagement, len(articles))
	for i, a := range articles {
		records[i] = registry.For(a)
	}
	return records
}

// Shutdown releases the scroll lock if the overlay is still open.
func (m Model) Shutdown() {
	m.nav.Shutdown()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.compose.Width = max(10, msg.Width-12)
		m.overlayTop = m.clampOverlayTop(m.overlayTop)
		return m, nil
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return m.wheel(-1), nil
		case tea.MouseButtonWheelDown:
			return m.wheel(1), nil
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tuiactions.LinkSuccessMsg:
		m.log.Debug().Str("article", msg.ArticleID).Bool("opened", msg.Opened).Msg("link action")
		return m.withStatus(msg.Status, statusDelay)
	case tuiactions.LinkErrorMsg:
		return m.withWarning(msg.Err)
	case tuiactions.ReloadSuccessMsg:
		m = m.applyArticles(msg.Articles)
		m.log.Info().Int("articles", len(m.articles)).Msg("catalog reloaded")
		return m.withStatus(fmt.Sprintf("Reloaded %s articles", view.Count(len(m.articles))), statusDelay)
	case tuiactions.ReloadErrorMsg:
		m.log.Error().Err(msg.Err).Msg("reload failed")
		return m.withWarning(fmt.Errorf("reload: %w", msg.Err))
	case tuiactions.ClearStatusMsg:
		if msg.ID == m.statusID {
			m.status = ""
			m.err = nil
		}
		return m, nil
	}

	if m.composing != composeNone {
		var cmd tea.Cmd
		m.compose, cmd = m.compose.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m.quit()
	}
	if m.composing != composeNone {
		return m.handleComposeKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.Reload) && m.reloadFn != nil:
		next, clearCmd := m.withStatus("Reloading catalog", statusDelay)
		return next, tea.Batch(clearCmd, tuiactions.ReloadCmd(m.reloadFn))
	}
	if m.showHelp {
		if key.Matches(msg, m.keys.Close) {
			m.showHelp = false
		}
		return m, nil
	}
	if len(m.articles) == 0 {
		return m, nil
	}

	if m.nav.IsOpen() {
		switch {
		case key.Matches(msg, m.keys.Close):
			m.closeOverlay()
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.nav.Previous()
			m.overlayTop = 0
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.nav.Next()
			m.overlayTop = 0
			return m, nil
		case key.Matches(msg, m.keys.Up):
			m.overlayTop = m.clampOverlayTop(m.overlayTop - 1)
			return m, nil
		case key.Matches(msg, m.keys.Down):
			m.overlayTop = m.clampOverlayTop(m.overlayTop + 1)
			return m, nil
		case key.Matches(msg, m.keys.OpenLink):
			return m.openLink()
		}
		return m.handleArticleKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.list.ScrollBy(-1, len(m.articles))
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.list.ScrollBy(1, len(m.articles))
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.list.ScrollTo(0, len(m.articles))
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.list.ScrollTo(len(m.articles)-1, len(m.articles))
		return m, nil
	case key.Matches(msg, m.keys.Open):
		return m.openOverlay(m.list.Cursor())
	case key.Matches(msg, m.keys.ToggleThread):
		id := m.currentArticle().ID
		m.expanded[id] = !m.expanded[id]
		return m, nil
	}
	return m.handleArticleKey(msg)
}

// handleArticleKey covers the actions shared by the card and the overlay.
// Both act on the same engagement record.
func (m Model) handleArticleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a, e := m.currentArticle(), m.currentRecord()

	switch {
	case key.Matches(msg, m.keys.Like):
		if e.Flags.ToggleLiked() {
			return m.withStatus("Liked", statusDelay)
		}
		return m.withStatus("Like removed", statusDelay)
	case key.Matches(msg, m.keys.Bookmark):
		if e.Flags.ToggleBookmarked() {
			return m.withStatus("Bookmarked", statusDelay)
		}
		return m.withStatus("Bookmark removed", statusDelay)
	case key.Matches(msg, m.keys.Favorite):
		if e.Flags.ToggleFavorited() {
			return m.withStatus("Added to favorites", statusDelay)
		}
		return m.withStatus("Removed from favorites", statusDelay)
	case key.Matches(msg, m.keys.NextComment):
		m.cycleComment(a, e, 1)
		return m, nil
	case key.Matches(msg, m.keys.PrevComment):
		m.cycleComment(a, e, -1)
		return m, nil
	case key.Matches(msg, m.keys.AddComment):
		m.showThread(a)
		return m.startCompose(composeComment, a.ID, 0)
	case key.Matches(msg, m.keys.Reply):
		target := m.selected[a.ID]
		if target == 0 {
			return m.withStatus("Select a comment with tab to reply", statusDelay)
		}
		m.showThread(a)
		return m.startCompose(composeReply, a.ID, target)
	case key.Matches(msg, m.keys.Delete):
		target := m.selected[a.ID]
		if target == 0 {
			return m.withStatus("Select a comment with tab to delete it", statusDelay)
		}
		delete(m.selected, a.ID)
		if !e.Comments.DeleteComment(target) {
			return m, nil
		}
		m.log.Debug().Str("article", a.ID).Int64("comment", target).Msg("comment deleted")
		return m.withStatus("Comment deleted", statusDelay)
	case key.Matches(msg, m.keys.Share):
		link, err := platform.ValidateLinkURL(a.Link)
		if err != nil {
			return m.withWarning(err)
		}
		return m, tuiactions.ShareCmd(a.ID, link, m.copyURLFn)
	}
	return m, nil
}

func (m Model) handleComposeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.endCompose()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		return m.submitCompose()
	}
	var cmd tea.Cmd
	m.compose, cmd = m.compose.Update(msg)
	return m, cmd
}

func (m Model) startCompose(mode composeMode, articleID string, replyTo int64) (Model, tea.Cmd) {
	m.composing = mode
	m.composeFor = articleID
	m.replyTo = replyTo
	m.compose.Reset()
	m.compose.Prompt = "comment> "
	m.compose.Placeholder = "Write a comment"
	if mode == composeReply {
		m.compose.Prompt = "reply> "
		m.compose.Placeholder = "Write a reply"
	}
	return m, m.compose.Focus()
}

func (m *Model) endCompose() {
	m.composing = composeNone
	m.composeFor = ""
	m.replyTo = 0
	m.compose.Reset()
	m.compose.Blur()
}

// submitCompose posts the prompt text. A rejected comment keeps the prompt
// open so the text can be fixed.
func (m Model) submitCompose() (Model, tea.Cmd) {
	idx := state.ArticleIndexByID(m.articles, m.composeFor)
	if idx < 0 {
		m.endCompose()
		return m, nil
	}
	a := m.articles[idx]
	store := m.records[idx].Comments
	content := m.compose.Value()

	status := "Comment added"
	var err error
	if m.composing == composeReply {
		status = "Reply added"
		_, err = store.AddReply(m.replyTo, content)
	} else {
		_, err = store.AddComment("", content)
	}
	if err != nil {
		if errors.Is(err, comments.ErrCommentNotFound) {
			m.endCompose()
		}
		return m.withWarning(err)
	}

	m.log.Debug().Str("article", a.ID).Msg(strings.ToLower(status))
	m.endCompose()
	return m.withStatus(status, statusDelay)
}

func (m Model) quit() (Model, tea.Cmd) {
	m.nav.Shutdown()
	return m, tea.Quit
}

// applyArticles swaps in a reloaded catalog. The overlay and the card cursor
// stay on the article they showed when it is still present.
// A vanished card leaves the cursor at its old position, clamped.
func (m Model) applyArticles(articles []catalog.Article) Model {
	openID := ""
	if m.nav.IsOpen() {
		openID = m.currentArticle().ID
	}
	cursorID := ""
	if len(m.articles) > 0 {
		cursorID = m.articles[state.ClampCursor(m.list.Cursor(), len(m.articles))].ID
	}

	m.articles = append([]catalog.Article(nil), articles...)
	m.records = recordsFor(m.registry, m.articles)
	m.bodies = make(map[bodyKey][]string)
	m.nav.SetCount(len(m.articles))
	if openID != "" {
		if idx := state.ArticleIndexByID(m.articles, openID); idx >= 0 {
			_ = m.nav.Open(idx)
		} else {
			m.nav.Close()
			m.overlayTop = 0
		}
	}
	cursor := m.list.Cursor()
	if idx := state.ArticleIndexByID(m.articles, cursorID); idx >= 0 {
		cursor = idx
	}
	m.list.Place(cursor, len(m.articles))
	m.overlayTop = m.clampOverlayTop(m.overlayTop)
	return m
}

func (m Model) openOverlay(index int) (Model, tea.Cmd) {
	if err := m.nav.Open(index); err != nil {
		return m.withWarning(err)
	}
	m.overlayTop = 0
	return m, nil
}

// closeOverlay returns to the feed with the card cursor on the article that
// was last shown.
func (m *Model) closeOverlay() {
	index := m.nav.Index()
	m.nav.Close()
	m.overlayTop = 0
	m.list.ScrollTo(index, len(m.articles))
}

// wheel scrolls the overlay when it is open. Scrolling past the overlay's
// edge chains to the feed behind it, which the scroll lock holds still.
func (m Model) wheel(delta int) Model {
	if m.nav.IsOpen() {
		if top := m.clampOverlayTop(m.overlayTop + delta); top != m.overlayTop {
			m.overlayTop = top
			return m
		}
	}
	m.list.ScrollBy(delta, len(m.articles))
	return m
}

func (m Model) openLink() (Model, tea.Cmd) {
	a := m.currentArticle()
	link, err := platform.ValidateLinkURL(a.Link)
	if err != nil {
		return m.withWarning(err)
	}
	return m, tuiactions.OpenURLCmd(a.ID, link, m.openURLFn, m.copyURLFn)
}

func (m *Model) cycleComment(a catalog.Article, e *engagement.Engagement, delta int) {
	thread := e.Comments.Comments()
	current := -1
	for i, c := range thread {
		if c.ID == m.selected[a.ID] {
			current = i
			break
		}
	}
	next := state.CycleSelection(current, delta, len(thread))
	if next < 0 {
		delete(m.selected, a.ID)
		return
	}
	m.selected[a.ID] = thread[next].ID
	m.showThread(a)
}

func (m *Model) showThread(a catalog.Article) {
	if !m.nav.IsOpen() {
		m.expanded[a.ID] = true
	}
}

func (m Model) currentIndex() int {
	if m.nav.IsOpen() {
		return m.nav.Index()
	}
	return m.list.Cursor()
}

func (m Model) currentArticle() catalog.Article {
	return m.articles[state.ClampCursor(m.currentIndex(), len(m.articles))]
}

func (m Model) currentRecord() *engagement.Engagement {
	return m.records[state.ClampCursor(m.currentIndex(), len(m.records))]
}

func (m Model) withStatus(status string, after time.Duration) (Model, tea.Cmd) {
	m.status = status
	m.err = nil
	m.statusID++
	return m, tuiactions.ClearStatusCmd(m.statusID, after)
}

func (m Model) withWarning(err error) (Model, tea.Cmd) {
	m.status = ""
	m.err = err
	m.statusID++
	return m, tuiactions.ClearStatusCmd(m.statusID, warningDelay)
}
