package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	ForceQuit  key.Binding
	Next       key.Binding
	Prev       key.Binding
	Submit     key.Binding
	Up         key.Binding
	Down       key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Close      key.Binding
	ClearDraft key.Binding
	Refetch    key.Binding
}

var keys = keyMap{
	Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Next:       key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	Prev:       key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
	Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Edit:       key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
	Delete:     key.NewBinding(key.WithKeys("d", "x", "delete"), key.WithHelp("d", "delete")),
	Close:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	ClearDraft: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new pet")),
	Refetch:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload")),
}
