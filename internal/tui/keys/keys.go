// Package keys holds the key bindings of the feed viewer.
package keys

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	Open         key.Binding
	Close        key.Binding
	Prev         key.Binding
	Next         key.Binding
	Like         key.Binding
	Bookmark     key.Binding
	Favorite     key.Binding
	ToggleThread key.Binding
	AddComment   key.Binding
	Reply        key.Binding
	Delete       key.Binding
	NextComment  key.Binding
	PrevComment  key.Binding
	Share        key.Binding
	OpenLink     key.Binding
	Reload       key.Binding
	Help         key.Binding
	Quit         key.Binding
	ForceQuit    key.Binding
	Submit       key.Binding
	Cancel       key.Binding
}

func Default() KeyMap {
	return KeyMap{
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k/↑", "scroll up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/↓", "scroll down")),
		Top:          key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Bottom:       key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		Open:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "read article")),
		Close:        key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "close")),
		Prev:         key.NewBinding(key.WithKeys("[", "left"), key.WithHelp("[/←", "previous article")),
		Next:         key.NewBinding(key.WithKeys("]", "right"), key.WithHelp("]/→", "next article")),
		Like:         key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "like")),
		Bookmark:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bookmark")),
		Favorite:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
		ToggleThread: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "show comments")),
		AddComment:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add comment")),
		Reply:        key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reply")),
		Delete:       key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete comment")),
		NextComment:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next comment")),
		PrevComment:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous comment")),
		Share:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "share link")),
		OpenLink:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open in browser")),
		Reload:       key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reload")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		ForceQuit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Submit:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "post")),
		Cancel:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// FeedBindings are shown in the help screen for the card list.
func (k KeyMap) FeedBindings() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Top, k.Bottom, k.Open,
		k.Like, k.Bookmark, k.Favorite, k.ToggleThread,
		k.AddComment, k.Reply, k.Delete, k.NextComment, k.PrevComment,
		k.Share, k.Reload, k.Help, k.Quit,
	}
}

func (k KeyMap) OverlayBindings() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Prev, k.Next, k.Close,
		k.Like, k.Bookmark, k.Favorite,
		k.AddComment, k.Reply, k.Delete, k.NextComment, k.PrevComment,
		k.Share, k.OpenLink, k.Help, k.Quit,
	}
}

// Short renders bindings as a one-line hint.
func Short(bindings ...key.Binding) string {
	out := ""
	for i, b := range bindings {
		if i > 0 {
			out += " | "
		}
		out += b.Help().Key + " " + b.Help().Desc
	}
	return out
}
