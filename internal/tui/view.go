package tui

import (
	"strings"

	"github.com/glabrego/cardfeed/internal/catalog"
	article "github.com/glabrego/cardfeed/internal/render/article"
	"github.com/glabrego/cardfeed/internal/tui/keys"
	"github.com/glabrego/cardfeed/internal/tui/state"
	"github.com/glabrego/cardfeed/internal/tui/view"
)

// chromeLines counts the header, toolbar, spacer, status and footer rows.
const chromeLines = 5

func (m Model) View() string {
	var b strings.Builder
	mode := "feed"
	switch {
	case m.showHelp:
		mode = "help"
	case m.nav.IsOpen():
		mode = "reading"
	}
	b.WriteString(view.Header(mode, m.theme))
	b.WriteString("\n")
	b.WriteString(m.theme.MetaLabel.Render(m.toolbar()))
	b.WriteString("\n\n")

	switch {
	case m.showHelp:
		b.WriteString(m.helpView())
	case len(m.articles) == 0:
		b.WriteString("No articles available.")
	case m.nav.IsOpen():
		b.WriteString(m.overlayView())
	default:
		b.WriteString(m.feedView())
	}
	b.WriteString("\n")

	if m.composing != composeNone {
		b.WriteString(m.compose.View())
		b.WriteString("\n")
	}
	b.WriteString(view.StatusLine(m.status, m.err, m.theme))
	b.WriteString("\n")
	b.WriteString(view.Footer(m.currentIndex(), len(m.articles), m.registry.Viewer(), m.theme))
	b.WriteString("\n")
	return b.String()
}

func (m Model) toolbar() string {
	k := m.keys
	switch {
	case m.composing != composeNone:
		return keys.Short(k.Submit, k.Cancel)
	case m.showHelp:
		return keys.Short(k.Close, k.Quit)
	case m.nav.IsOpen():
		return keys.Short(k.Down, k.Prev, k.Next, k.Like, k.AddComment, k.OpenLink, k.Close, k.Help)
	}
	return keys.Short(k.Down, k.Open, k.Like, k.ToggleThread, k.AddComment, k.Share, k.Help, k.Quit)
}

func (m Model) helpView() string {
	return strings.Join(view.HelpLines(map[string]string{
		"Feed":    keys.Short(m.keys.FeedBindings()...),
		"Reading": keys.Short(m.keys.OverlayBindings()...),
	}, []string{"Feed", "Reading"}), "\n")
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}

func (m Model) bodyHeight() int {
	if m.height <= 0 {
		return 0
	}
	h := m.height - chromeLines
	if m.composing != composeNone {
		h--
	}
	return max(3, h)
}

// feedView renders every card and shows the window that starts at the
// active card.
func (m Model) feedView() string {
	var lines []string
	activeStart := 0
	cursor := m.list.Cursor()
	for i, a := range m.articles {
		if i == cursor {
			activeStart = len(lines)
		}
		card := view.RenderCard(view.CardParams{
			State:           view.NewArticleState(a, m.records[i]),
			Active:          i == cursor,
			ShowThread:      m.expanded[a.ID],
			SelectedComment: m.selected[a.ID],
			Width:           m.contentWidth(),
			Now:             m.nowFn(),
		}, m.theme)
		lines = append(lines, strings.Split(card, "\n")...)
	}
	height := m.bodyHeight()
	if height == 0 {
		return strings.Join(lines, "\n")
	}
	return view.RenderWindow(lines, state.ClampTop(activeStart, len(lines), height), height)
}

func (m Model) overlayLines() []string {
	frame := m.theme.Overlay
	index := m.nav.Index()
	a := m.articles[index]
	width := view.OverlayWidth(m.contentWidth() - frame.GetHorizontalFrameSize())
	return view.OverlayLines(view.OverlayParams{
		State:           view.NewArticleState(a, m.records[index]),
		Position:        index,
		Total:           len(m.articles),
		SelectedComment: m.selected[a.ID],
		Width:           width,
		Now:             m.nowFn(),
		Body:            m.body(a, width),
	}, m.theme)
}

// body returns the rendered article body, rendering it once per width.
func (m Model) body(a catalog.Article, width int) []string {
	k := bodyKey{id: a.ID, width: width}
	if lines, ok := m.bodies[k]; ok {
		return lines
	}
	lines := article.ContentLinesWithOptions(a, width, m.renderOpts)
	m.bodies[k] = lines
	return lines
}

func (m Model) overlayBodyHeight() int {
	h := m.bodyHeight()
	if h == 0 {
		return 0
	}
	return max(1, h-m.theme.Overlay.GetVerticalFrameSize())
}

func (m Model) clampOverlayTop(top int) int {
	if !m.nav.IsOpen() {
		return 0
	}
	height := m.overlayBodyHeight()
	if height == 0 {
		return 0
	}
	return state.ClampTop(top, len(m.overlayLines()), height)
}

func (m Model) overlayView() string {
	frame := m.theme.Overlay
	body := view.RenderWindow(m.overlayLines(), m.overlayTop, m.overlayBodyHeight())
	return frame.Width(max(1, m.contentWidth()-frame.GetHorizontalBorderSize())).Render(body)
}
