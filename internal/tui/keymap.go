package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Focus   key.Binding
	Select  key.Binding
	Back    key.Binding

	// Spotlights
	Urgent   key.Binding
	Severity key.Binding
	Demand   key.Binding
	Affected key.Binding

	// Output
	Export  key.Binding
	Chart   key.Binding
	Publish key.Binding

	// Application
	Quit        key.Binding
	ForceQuit   key.Binding
	Help        key.Binding
	ClearScreen key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("Tab/→", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-Tab/←", "previous tab"),
		),
		Focus: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "next table"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("Esc", "back to overview"),
		),

		// Spotlights
		Urgent: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "actionable categories"),
		),
		Severity: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "severity issues"),
		),
		Demand: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "very high demand"),
		),
		Affected: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "merchants affected"),
		),

		// Output
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export CSV"),
		),
		Chart: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "export chart"),
		),
		Publish: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "publish to Sheets"),
		),

		// Application
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		ClearScreen: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("Ctrl+L", "clear screen"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.NextTab, k.Select, k.Back, k.Export, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Focus, k.Select, k.Back},
		{k.Urgent, k.Severity, k.Demand, k.Affected},
		{k.Export, k.Chart, k.Publish},
		{k.Help, k.Quit, k.ForceQuit, k.ClearScreen},
	}
}
