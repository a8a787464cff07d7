package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the browser key bindings
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Enter   key.Binding
	Back    key.Binding
	Quit    key.Binding
	Help    key.Binding
	Search  key.Binding
	Class   key.Binding
	Sort    key.Binding
	Charts  key.Binding
	Export  key.Binding
	Theme   key.Binding
	Copy    key.Binding
	Reload  key.Binding
	Palette key.Binding
	Agent   key.Binding
}

func bind(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

// DefaultKeyMap returns the browser's bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:      bind("↑/k", "up", "up", "k"),
		Down:    bind("↓/j", "down", "down", "j"),
		Enter:   bind("enter", "correlations", "enter"),
		Back:    bind("esc", "back", "esc", "backspace"),
		Quit:    bind("q", "quit", "q", "ctrl+c"),
		Help:    bind("?", "help", "?"),
		Search:  bind("/", "search", "/"),
		Class:   bind("f", "classification filter", "f"),
		Sort:    bind("s", "sort", "s"),
		Charts:  bind("g", "charts", "g"),
		Export:  bind("x", "export", "x"),
		Theme:   bind("t", "cycle theme", "t"),
		Copy:    bind("c", "copy id", "c"),
		Reload:  bind("r", "reload", "r"),
		Palette: bind("ctrl+p", "commands", "ctrl+p"),
		Agent:   bind("ctrl+k", "assistant", "ctrl+k"),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Search, k.Enter, k.Palette, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Back},
		{k.Search, k.Class, k.Sort, k.Copy},
		{k.Charts, k.Export, k.Theme, k.Reload},
		{k.Palette, k.Agent, k.Help, k.Quit},
	}
}
