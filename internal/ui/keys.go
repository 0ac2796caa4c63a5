package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Quit       key.Binding
	Next       key.Binding
	Prev       key.Binding
	FocusNext  key.Binding
	FocusPrev  key.Binding
	Up         key.Binding
	Down       key.Binding
	Home       key.Binding
	End        key.Binding
	Select     key.Binding
	Clear      key.Binding
	Backspace  key.Binding
	Image      key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Steps      []key.Binding
}

func defaultKeyMap() keyMap {
	km := keyMap{
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Next:       key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "next")),
		Prev:       key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "back")),
		FocusNext:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
		FocusPrev:  key.NewBinding(key.WithKeys("shift+tab")),
		Up:         key.NewBinding(key.WithKeys("up"), key.WithHelp("↑/↓", "move")),
		Down:       key.NewBinding(key.WithKeys("down")),
		Home:       key.NewBinding(key.WithKeys("home")),
		End:        key.NewBinding(key.WithKeys("end")),
		Select:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Clear:      key.NewBinding(key.WithKeys("esc")),
		Backspace:  key.NewBinding(key.WithKeys("backspace")),
		Image:      key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "patches")),
		ScrollUp:   key.NewBinding(key.WithKeys("pgup")),
		ScrollDown: key.NewBinding(key.WithKeys("pgdown")),
	}
	for i := 1; i <= 9; i++ {
		name := fmt.Sprintf("f%d", i)
		km.Steps = append(km.Steps, key.NewBinding(key.WithKeys(name)))
	}
	return km
}

func (k keyMap) footerBindings() []key.Binding {
	return []key.Binding{k.Up, k.FocusNext, k.Select, k.Next, k.Prev, k.Image, k.Quit}
}

// stepIndex returns the nav position bound to msg, or -1.
func (k keyMap) stepIndex(msg fmt.Stringer) int {
	for i, b := range k.Steps {
		if key.Matches(msg, b) {
			return i
		}
	}
	return -1
}
