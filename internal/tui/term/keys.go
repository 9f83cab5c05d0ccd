package term

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the surface's own navigation bindings. Bindings registered
// through Surface.Bind are matched before these.
type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Next       key.Binding
	Prev       key.Binding
	CycleTheme key.Binding
	Help       key.Binding

	bound []key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "Previous panel"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "Next panel"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "enter"),
			key.WithHelp("tab", "Next panel"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous panel"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "More keys"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	out := append([]key.Binding(nil), k.bound...)
	return append(out, k.Next, k.CycleTheme, k.Help)
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.Prev},
		{k.CycleTheme, k.Help},
		k.bound,
	}
}
