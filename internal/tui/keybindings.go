package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Escape  key.Binding
	Prev    key.Binding
	Next    key.Binding
	Confirm key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("←/→", "select"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("←/→", "select"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "confirm"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

func (k keyMap) helpLine() string {
	return k.Prev.Help().Key + " " + k.Prev.Help().Desc + "  " +
		k.Confirm.Help().Key + " " + k.Confirm.Help().Desc + "  " +
		k.Escape.Help().Key + " " + k.Escape.Help().Desc
}
