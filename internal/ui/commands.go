package ui

import (
	"fmt"

	"github.com/atomicstack/officer-wizard/internal/backend"
	"github.com/atomicstack/officer-wizard/internal/department"
	"github.com/atomicstack/officer-wizard/internal/logging"
	"github.com/atomicstack/officer-wizard/internal/logging/events"
	"github.com/atomicstack/officer-wizard/internal/options"
	"github.com/atomicstack/officer-wizard/internal/ui/command"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// submittedMsg reports that the search form was sent.
type submittedMsg struct {
	selection Selection
}

// changeDepartment reloads the dependent dropdowns for id, updates the UII
// question and locks every step except the active one.
func (m *Model) changeDepartment(id department.ID) tea.Cmd {
	m.selectedDept = id
	m.hasDept = true
	events.Department.Change(id.String())

	cmds := []tea.Cmd{
		m.bus.Load(backend.Request{Name: options.Rank, Endpoint: m.ranksURL, Department: id}),
		m.bus.Load(backend.Request{Name: options.Unit, Endpoint: m.unitsURL, Department: id}),
	}

	record, ok := m.departments.Lookup(id)
	switch {
	case !ok:
		events.Department.Missing(id.String())
		m.hideUII()
	case record.HasUII():
		m.showUII(record.UIILabel)
	default:
		m.hideUII()
	}

	m.nav.DisableInactive()
	events.Step.Locked(string(m.nav.Active()))
	return tea.Batch(cmds...)
}

func (m *Model) handleOptionsLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(command.LoadedMsg)
	if !ok {
		return nil
	}
	res := loaded.Result
	dept := res.Department.String()
	if !m.bus.Accept(res) {
		events.Options.Stale(res.Name, dept, res.Seq)
		return nil
	}
	if _, known := m.selectors[res.Name]; !known {
		return nil
	}
	if res.Err != nil {
		err := fmt.Errorf("load %s options for department %s: %w", res.Name, dept, res.Err)
		m.loadErrs[res.Name] = err
		m.errMsg = err.Error()
		logging.Error(err)
		events.Options.Error(res.Name, res.Err)
		return nil
	}
	delete(m.loadErrs, res.Name)
	m.errMsg = m.pendingLoadError()
	m.selectors[res.Name] = newOptionSelector(res.Set)
	events.Options.Loaded(res.Name, dept, res.Seq, len(res.Set.Options), res.Elapsed)
	return nil
}

// pendingLoadError returns the first load error still standing, if any.
func (m *Model) pendingLoadError() string {
	for _, name := range []string{options.Rank, options.Unit} {
		if err := m.loadErrs[name]; err != nil {
			return err.Error()
		}
	}
	return ""
}

// selection snapshots the form as it would be submitted.
func (m *Model) selection() Selection {
	sel := Selection{
		Department: m.selectedDept,
		Rank:       m.selectors[options.Rank].Value(options.NotSure),
		Unit:       m.selectors[options.Unit].Value(options.NotSure),
	}
	if m.uiiVisible {
		sel.UII = m.uiiInput.Value()
	}
	return sel
}

// submit shows the loading notification and sends the form.
func (m *Model) submit() tea.Cmd {
	if m.loaderShown {
		return nil
	}
	sel := m.selection()
	events.App.Submit(sel.Query().Encode())
	return tea.Batch(m.showLoader(), func() tea.Msg {
		return submittedMsg{selection: sel}
	})
}

func (m *Model) handleSubmittedMsg(msg tea.Msg) tea.Cmd {
	submitted, ok := msg.(submittedMsg)
	if !ok {
		return nil
	}
	sel := submitted.selection
	m.result = &sel
	return tea.Quit
}

func (m *Model) handleSpinnerTickMsg(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(spinner.TickMsg)
	if !ok || !m.loaderShown {
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(tick)
	return cmd
}
