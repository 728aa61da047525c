package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines shared key bindings across all views.
type KeyMap struct {
	Quit     key.Binding
	Back     key.Binding
	Refresh  key.Binding
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Search   key.Binding // / — focus the search query field
	NextPage key.Binding
	PrevPage key.Binding
	Comment  key.Binding // c — new top-level comment
	Reply    key.Binding // R — reply to the selected comment
	React    key.Binding // e — open the reaction picker
	Delete   key.Binding // d — delete own comment
	Favorite key.Binding // f — toggle favorite
	Open     key.Binding // o — open the 3D model in the browser
	Account  key.Binding // a — account screen
	Login    key.Binding // L — login screen
	Tab      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "prev page"),
		),
		Comment: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "comment"),
		),
		Reply: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reply"),
		),
		React: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "react"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "favorite"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open 3D model"),
		),
		Account: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "account"),
		),
		Login: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "login"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
	}
}
