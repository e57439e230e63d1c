package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	First       key.Binding
	Last        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	DetailUp    key.Binding
	DetailDown  key.Binding
	ClearFilter key.Binding
	Copy        key.Binding
	Quit        key.Binding
}

func binding(help, desc string, ks ...string) key.Binding {
	return key.NewBinding(key.WithKeys(ks...), key.WithHelp(help, desc))
}

var keys = keyMap{
	Up:          binding("up", "prev", "up", "ctrl+k"),
	Down:        binding("dn", "next", "down", "ctrl+j"),
	First:       binding("home", "first", "home"),
	Last:        binding("end", "last", "end"),
	PageUp:      binding("pgup", "page up", "pgup"),
	PageDown:    binding("pgdn", "page down", "pgdown"),
	DetailUp:    binding("C-u", "detail up", "ctrl+u"),
	DetailDown:  binding("C-d", "detail down", "ctrl+d"),
	ClearFilter: binding("C-l", "clear filter", "ctrl+l"),
	Copy:        binding("enter", "copy row", "enter"),
	Quit:        binding("esc", "quit", "esc", "ctrl+c"),
}

// statusHelp lists the bindings shown in the status bar.
func (k keyMap) statusHelp() []key.Binding {
	return []key.Binding{k.Down, k.DetailDown, k.ClearFilter, k.Copy, k.Quit}
}
