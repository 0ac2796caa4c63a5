package ui

import (
	"github.com/atomicstack/officer-wizard/internal/department"
	"github.com/atomicstack/officer-wizard/internal/logging/events"
	"github.com/atomicstack/officer-wizard/internal/options"
	"github.com/atomicstack/officer-wizard/internal/wizard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type field int

const (
	fieldDepartment field = iota
	fieldRank
	fieldUnit
	fieldUII
	fieldSubmit
)

func (f field) name() string {
	switch f {
	case fieldDepartment:
		return "department"
	case fieldRank:
		return options.Rank
	case fieldUnit:
		return options.Unit
	case fieldUII:
		return "uii"
	case fieldSubmit:
		return "submit"
	default:
		return ""
	}
}

// fields lists the focusable fields of the active panel in tab order.
func (m *Model) fields() []field {
	switch m.nav.Active() {
	case wizard.StepDepartment:
		return []field{fieldDepartment}
	case wizard.StepOfficer:
		if m.uiiVisible {
			return []field{fieldRank, fieldUnit, fieldUII}
		}
		return []field{fieldRank, fieldUnit}
	case wizard.StepSearch:
		return []field{fieldSubmit}
	default:
		return nil
	}
}

func (m *Model) focusedField() (field, bool) {
	fields := m.fields()
	if len(fields) == 0 {
		return 0, false
	}
	if m.focus < 0 || m.focus >= len(fields) {
		m.focus = 0
	}
	return fields[m.focus], true
}

func (m *Model) setFocus(idx int) {
	fields := m.fields()
	if len(fields) == 0 {
		m.focus = 0
		return
	}
	idx %= len(fields)
	if idx < 0 {
		idx += len(fields)
	}
	m.focus = idx
	if fields[idx] == fieldUII {
		m.uiiInput.Focus()
	} else {
		m.uiiInput.Blur()
	}
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if key.Matches(keyMsg, m.keys.Quit) {
		return tea.Quit
	}
	if m.loaderShown {
		return nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Next):
		if next, ok := m.nav.NextKey(); ok {
			m.advance(next)
		}
		return nil
	case key.Matches(keyMsg, m.keys.Prev):
		if prev, ok := m.nav.PrevKey(); ok {
			m.advance(prev)
		}
		return nil
	case key.Matches(keyMsg, m.keys.Image):
		m.toggleImage()
		return nil
	case key.Matches(keyMsg, m.keys.FocusNext):
		m.setFocus(m.focus + 1)
		return nil
	case key.Matches(keyMsg, m.keys.FocusPrev):
		m.setFocus(m.focus - 1)
		return nil
	case m.imageShown && key.Matches(keyMsg, m.keys.ScrollDown):
		m.patch.ViewDown()
		return nil
	case m.imageShown && key.Matches(keyMsg, m.keys.ScrollUp):
		m.patch.ViewUp()
		return nil
	}
	if idx := m.keys.stepIndex(keyMsg); idx >= 0 {
		m.clickStep(idx)
		return nil
	}

	f, ok := m.focusedField()
	if !ok {
		return nil
	}
	switch f {
	case fieldUII:
		if key.Matches(keyMsg, m.keys.Select) {
			m.setFocus(m.focus + 1)
			return nil
		}
		var cmd tea.Cmd
		m.uiiInput, cmd = m.uiiInput.Update(keyMsg)
		return cmd
	case fieldSubmit:
		if key.Matches(keyMsg, m.keys.Select) {
			return m.submit()
		}
		return nil
	default:
		return m.handleSelectorKey(f, keyMsg)
	}
}

func (m *Model) handleSelectorKey(f field, keyMsg tea.KeyMsg) tea.Cmd {
	current := m.selectors[f.name()]
	if current == nil {
		return nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Select):
		return m.pick(f, current)
	case key.Matches(keyMsg, m.keys.Up):
		current.MoveCursorUp()
	case key.Matches(keyMsg, m.keys.Down):
		current.MoveCursorDown()
	case key.Matches(keyMsg, m.keys.Home):
		current.MoveCursorHome()
	case key.Matches(keyMsg, m.keys.End):
		current.MoveCursorEnd()
	case key.Matches(keyMsg, m.keys.Backspace):
		current.DeleteFilterRuneBackward()
	case key.Matches(keyMsg, m.keys.Clear):
		current.ClearFilter()
	case keyMsg.Type == tea.KeySpace:
		current.InsertFilterText(" ")
	case keyMsg.Type == tea.KeyRunes:
		current.InsertFilterText(string(keyMsg.Runes))
	}
	return nil
}

// pick commits the item under the cursor. Committing a different department
// fires the change handler, mirroring a select's change event.
func (m *Model) pick(f field, current *selector) tea.Cmd {
	item, ok := current.Current()
	current.ClearFilter()
	if !ok {
		return nil
	}
	if f != fieldDepartment {
		m.setFocus(m.focus + 1)
		return nil
	}
	id, err := department.ParseID(item.Value)
	if err != nil {
		m.errMsg = err.Error()
		return nil
	}
	if m.hasDept && id == m.selectedDept {
		return nil
	}
	return m.changeDepartment(id)
}

// clickStep behaves like clicking the idx-th nav item.
func (m *Model) clickStep(idx int) {
	panels := m.nav.Panels()
	if idx < 0 || idx >= len(panels) {
		return
	}
	target := panels[idx].Key
	if !m.nav.ClickIndex(idx) {
		events.Step.Blocked(string(target))
		return
	}
	events.Step.Activate(string(target))
	m.setFocus(0)
}

// advance behaves like the next and previous buttons.
func (m *Model) advance(target wizard.PanelKey) {
	if !m.nav.Advance(target) {
		return
	}
	events.Step.Advance(string(target))
	m.setFocus(0)
}
