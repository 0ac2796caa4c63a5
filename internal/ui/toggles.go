package ui

import (
	"strings"

	"github.com/atomicstack/officer-wizard/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	patchMaxRows    = 12
	patchFallbackW  = 60
	defaultUIILabel = "Unique internal identifier"
)

// showLoader reveals the loading notification. It is idempotent.
func (m *Model) showLoader() tea.Cmd {
	if m.loaderShown {
		return nil
	}
	m.loaderShown = true
	events.Toggle.Loader()
	return m.spinner.Tick
}

// showImage reveals the shoulder-patch reference block.
func (m *Model) showImage() {
	if m.imageShown {
		return
	}
	m.imageShown = true
	m.patch.GotoTop()
	events.Toggle.Image(true)
}

// hideImage collapses the shoulder-patch reference block.
func (m *Model) hideImage() {
	if !m.imageShown {
		return
	}
	m.imageShown = false
	events.Toggle.Image(false)
}

func (m *Model) toggleImage() {
	if m.imageShown {
		m.hideImage()
		return
	}
	m.showImage()
}

// showUII shows the UII question with label as its prompt.
func (m *Model) showUII(label string) {
	m.uiiLabel = strings.TrimSpace(label)
	m.uiiVisible = true
	events.Department.UII(m.selectedDept.String(), m.uiiLabel, true)
}

// hideUII hides the UII question. The entered value is kept but not submitted.
func (m *Model) hideUII() {
	wasFocused := false
	if f, ok := m.focusedField(); ok && f == fieldUII {
		wasFocused = true
	}
	m.uiiVisible = false
	events.Department.UII(m.selectedDept.String(), "", false)
	if wasFocused {
		m.setFocus(0)
	}
}

func (m *Model) currentUIILabel() string {
	if m.uiiLabel == "" {
		return defaultUIILabel
	}
	return m.uiiLabel
}

// patchWidth returns the viewport width inside the patch border.
func patchWidth(width int) int {
	if width <= 2 {
		return patchFallbackW - 2
	}
	return width - 2
}

func patchHeight(content string) int {
	if content == "" {
		return 1
	}
	rows := strings.Count(content, "\n") + 1
	if rows > patchMaxRows {
		return patchMaxRows
	}
	return rows
}
