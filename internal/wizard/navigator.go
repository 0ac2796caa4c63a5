package wizard

import (
	"errors"
	"fmt"
)

// ErrUnknownPanel is returned when a panel key is not part of the navigator.
var ErrUnknownPanel = errors.New("unknown panel")

// PanelKey identifies a wizard step.
type PanelKey string

// Panel describes one step region together with the nav item that selects it.
type Panel struct {
	Key      PanelKey
	Title    string
	Disabled bool
}

// Navigator owns which panel is active and which nav items are locked.
// At most one panel is active at any time; every other panel is hidden.
type Navigator struct {
	panels []Panel
	active int
}

// NewNavigator hides every panel and then clicks the initial one, matching
// the page bootstrap where the nav item marked active receives a synthetic
// click. The initial panel is left enabled regardless of its Disabled flag.
func NewNavigator(panels []Panel, initial PanelKey) *Navigator {
	n := &Navigator{
		panels: append([]Panel(nil), panels...),
		active: -1,
	}
	if idx := n.indexOf(initial); idx >= 0 {
		n.panels[idx].Disabled = false
		n.Click(initial)
	}
	return n
}

// Panels returns a copy of the panel list in display order.
func (n *Navigator) Panels() []Panel {
	return append([]Panel(nil), n.panels...)
}

// Active returns the key of the active panel, or "" before any activation.
func (n *Navigator) Active() PanelKey {
	if n.active < 0 || n.active >= len(n.panels) {
		return ""
	}
	return n.panels[n.active].Key
}

// ActiveIndex returns the position of the active panel or -1.
func (n *Navigator) ActiveIndex() int {
	return n.active
}

// IsActive reports whether key is the active panel.
func (n *Navigator) IsActive(key PanelKey) bool {
	return key != "" && n.Active() == key
}

// Visible reports whether the panel region for key is shown. Only the active
// panel is visible.
func (n *Navigator) Visible(key PanelKey) bool {
	return n.IsActive(key)
}

// IsDisabled reports whether the nav item for key is locked. Unknown keys are
// reported as disabled.
func (n *Navigator) IsDisabled(key PanelKey) bool {
	idx := n.indexOf(key)
	if idx < 0 {
		return true
	}
	return n.panels[idx].Disabled
}

// Activate marks key active and all other panels inactive.
func (n *Navigator) Activate(key PanelKey) error {
	idx := n.indexOf(key)
	if idx < 0 {
		return fmt.Errorf("activate %q: %w", key, ErrUnknownPanel)
	}
	n.active = idx
	return nil
}

// Click activates key unless its nav item is disabled. It returns whether the
// active panel is now key.
func (n *Navigator) Click(key PanelKey) bool {
	idx := n.indexOf(key)
	if idx < 0 || n.panels[idx].Disabled {
		return false
	}
	return n.Activate(key) == nil
}

// ClickIndex clicks the nav item at position idx.
func (n *Navigator) ClickIndex(idx int) bool {
	if idx < 0 || idx >= len(n.panels) {
		return false
	}
	return n.Click(n.panels[idx].Key)
}

// Advance re-enables the nav item for key and clicks it, as the next and
// previous buttons do.
func (n *Navigator) Advance(key PanelKey) bool {
	idx := n.indexOf(key)
	if idx < 0 {
		return false
	}
	n.panels[idx].Disabled = false
	return n.Click(key)
}

// DisableInactive locks every nav item except the active one.
func (n *Navigator) DisableInactive() {
	for i := range n.panels {
		if i == n.active {
			continue
		}
		n.panels[i].Disabled = true
	}
}

// NextKey returns the target of the active panel's "next" button.
func (n *Navigator) NextKey() (PanelKey, bool) {
	if n.active < 0 || n.active+1 >= len(n.panels) {
		return "", false
	}
	return n.panels[n.active+1].Key, true
}

// PrevKey returns the target of the active panel's "previous" button.
func (n *Navigator) PrevKey() (PanelKey, bool) {
	if n.active <= 0 {
		return "", false
	}
	return n.panels[n.active-1].Key, true
}

func (n *Navigator) indexOf(key PanelKey) int {
	if key == "" {
		return -1
	}
	for i, p := range n.panels {
		if p.Key == key {
			return i
		}
	}
	return -1
}
