package ui

import "github.com/charmbracelet/bubbles/key"

// Printable keys belong to the filter line, so only arrows, enter and
// ctrl+c are bound.
type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous key")),
		Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next key")),
		Enter: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open / back")),
		Quit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}
