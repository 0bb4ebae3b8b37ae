package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application. Printable keys
// always go to the focused input, so every command uses a modifier or a
// navigation key.
type keyMap struct {
	// Global
	Quit          key.Binding
	Help          key.Binding
	CycleTheme    key.Binding
	SwitchInput   key.Binding
	ClearInput    key.Binding
	ToggleHidden  key.Binding
	TogglePreview key.Binding

	// Results
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Open     key.Binding
	Copy     key.Binding

	// Preview
	PreviewUp       key.Binding
	PreviewDown     key.Binding
	PreviewPageUp   key.Binding
	PreviewPageDown key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "Cycle theme"),
		),
		SwitchInput: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "Query/glob field"),
		),
		ClearInput: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Clear field"),
		),
		ToggleHidden: key.NewBinding(
			key.WithKeys("ctrl+h"),
			key.WithHelp("ctrl+h", "Toggle hidden files"),
		),
		TogglePreview: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "Toggle preview"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+k"),
			key.WithHelp("up", "Previous result"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+j"),
			key.WithHelp("down", "Next result"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "Page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("ctrl+home"),
			key.WithHelp("ctrl+home", "First result"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("ctrl+end"),
			key.WithHelp("ctrl+end", "Last result"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open in editor"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "Copy path:line"),
		),

		PreviewUp: key.NewBinding(
			key.WithKeys("shift+up"),
			key.WithHelp("shift+up", "Scroll preview up"),
		),
		PreviewDown: key.NewBinding(
			key.WithKeys("shift+down"),
			key.WithHelp("shift+down", "Scroll preview down"),
		),
		PreviewPageUp: key.NewBinding(
			key.WithKeys("alt+up"),
			key.WithHelp("alt+up", "Preview half page up"),
		),
		PreviewPageDown: key.NewBinding(
			key.WithKeys("alt+down"),
			key.WithHelp("alt+down", "Preview half page down"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.ToggleHidden, k.TogglePreview, k.SwitchInput, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Results
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom, k.Open, k.Copy},
		// Preview
		{k.TogglePreview, k.PreviewUp, k.PreviewDown, k.PreviewPageUp, k.PreviewPageDown},
		// Search
		{k.SwitchInput, k.ClearInput, k.ToggleHidden},
		// General
		{k.CycleTheme, k.Help, k.Quit},
	}
}
