package notify

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap is the keymap for the notification popup. Dismiss works from
// anywhere while the popup is showing and is released with it.
type KeyMap struct {
	Switch   key.Binding
	Open     key.Binding
	OpenDone key.Binding
	Dismiss  key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Switch, k.Open, k.OpenDone, k.Dismiss}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Switch, k.Open, k.OpenDone, k.Dismiss}}
}

// NewKeyMap builds the popup keymap. The open-workspace bindings are only
// enabled when the session label yields a workspace root.
func NewKeyMap(hasRoot bool) KeyMap {
	k := KeyMap{
		Switch: key.NewBinding(
			key.WithKeys("enter", "s"),
			key.WithHelp("enter/s", "switch to session"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open workspace"),
		),
		OpenDone: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "open + mark done"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("esc/q", "dismiss"),
		),
	}
	k.Open.SetEnabled(hasRoot)
	k.OpenDone.SetEnabled(hasRoot)
	return k
}
