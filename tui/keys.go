package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	NextRow  key.Binding
	PrevRow  key.Binding
	Move     key.Binding
	MoveBack key.Binding
	Add      key.Binding
	Delete   key.Binding
	Refresh  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "column left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "column right"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "task up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "task down"),
	),
	NextRow: key.NewBinding(
		key.WithKeys("tab", "J"),
		key.WithHelp("tab/J", "next row"),
	),
	PrevRow: key.NewBinding(
		key.WithKeys("shift+tab", "K"),
		key.WithHelp("shift+tab/K", "previous row"),
	),
	Move: key.NewBinding(
		key.WithKeys("m", "enter"),
		key.WithHelp("m/enter", "move right"),
	),
	MoveBack: key.NewBinding(
		key.WithKeys("M"),
		key.WithHelp("M", "move left"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add task"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d d", "delete task"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more keys"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Add, k.Delete, k.NextRow, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.NextRow, k.PrevRow, k.Move, k.MoveBack},
		{k.Add, k.Delete, k.Refresh, k.Quit},
	}
}
