package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Enter    key.Binding
	Back     key.Binding

	// Views
	SwitchView key.Binding
	Help       key.Binding

	// Favorites
	AddFavorite    key.Binding
	RemoveFavorite key.Binding
	MoveFavUp      key.Binding
	MoveFavDown    key.Binding

	// Actions
	Refresh key.Binding
	Filter  key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first item"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last item"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open/play"),
		),
		Back: key.NewBinding(
			key.WithKeys("left", "backspace"),
			key.WithHelp("←", "back"),
		),

		SwitchView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "browse/favorites"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h", "help"),
		),

		AddFavorite: key.NewBinding(
			key.WithKeys("insert"),
			key.WithHelp("Ins", "add favorite"),
		),
		RemoveFavorite: key.NewBinding(
			key.WithKeys("delete"),
			key.WithHelp("Del", "remove favorite"),
		),
		MoveFavUp: key.NewBinding(
			key.WithKeys("shift+up"),
			key.WithHelp("S-↑", "move favorite up"),
		),
		MoveFavDown: key.NewBinding(
			key.WithKeys("shift+down"),
			key.WithHelp("S-↓", "move favorite down"),
		),

		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh directory"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()
