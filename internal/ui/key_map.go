package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up         key.Binding
	down       key.Binding
	enter      key.Binding
	back       key.Binding
	yes        key.Binding
	no         key.Binding
	connect    key.Binding
	sync       key.Binding
	disconnect key.Binding
	messages   key.Binding
	posts      key.Binding
	metrics    key.Binding
	refresh    key.Binding
	quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		yes:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:         key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
		connect:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "connect")),
		sync:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sync")),
		disconnect: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "disconnect")),
		messages:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "messages")),
		posts:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "posts")),
		metrics:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit metrics")),
		refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.connect, k.sync, k.disconnect},
		{k.messages, k.posts, k.metrics},
		{k.refresh, k.back, k.quit},
	}
}
