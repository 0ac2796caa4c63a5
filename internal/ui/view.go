package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/officer-wizard/internal/format/table"
	"github.com/atomicstack/officer-wizard/internal/wizard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

// selectorRows caps how many options an expanded dropdown shows at once.
const selectorRows = 6

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := make([]styledLine, 0, 24)
	lines = append(lines, m.navLine(), styledLine{})
	lines = append(lines, m.panelLines()...)
	if m.imageShown {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: "Shoulder patches", style: styles.PatchTitle})
		lines = append(lines, m.patchLines()...)
	}
	if m.loaderShown {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: m.spinner.View() + " Searching…", raw: true})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: m.footerText(), style: styles.Footer})
	}
	// Reserve the last row for the status line.
	lines = limitHeight(lines, m.height-1, m.width)
	lines = applyWidth(lines, m.width)

	var statusLine styledLine
	if m.errMsg != "" {
		statusLine = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	lines = append(lines, applyWidth([]styledLine{statusLine}, m.width)...)
	return renderLines(lines)
}

// navLine renders the step bar. The active item is highlighted and locked
// items are struck through.
func (m *Model) navLine() styledLine {
	panels := m.nav.Panels()
	segments := make([]string, len(panels))
	for i, p := range panels {
		text := fmt.Sprintf(" %d %s ", i+1, p.Title)
		style := styles.NavItem
		switch {
		case m.nav.IsActive(p.Key):
			style = styles.NavActive
		case p.Disabled:
			style = styles.NavDisabled
		}
		if style != nil {
			text = style.Render(text)
		}
		segments[i] = text
	}
	return styledLine{text: strings.Join(segments, " "), raw: true}
}

func (m *Model) panelLines() []styledLine {
	switch m.nav.Active() {
	case wizard.StepDepartment:
		return m.selectorLines(fieldDepartment)
	case wizard.StepOfficer:
		lines := m.selectorLines(fieldRank)
		lines = append(lines, m.selectorLines(fieldUnit)...)
		if m.uiiVisible {
			lines = append(lines, styledLine{text: m.currentUIILabel() + ":", style: m.fieldStyle(fieldUII)})
			lines = append(lines, styledLine{text: m.uiiInput.View(), raw: true})
		}
		return lines
	case wizard.StepSearch:
		return m.reviewLines()
	default:
		return nil
	}
}

func (m *Model) selectorLines(f field) []styledLine {
	current := m.selectors[f.name()]
	if current == nil {
		return nil
	}
	value := "(none)"
	if item, ok := current.Current(); ok {
		value = item.Label
	}
	pending := ""
	if f != fieldDepartment && m.bus.Pending(current.Name) {
		pending = " (loading…)"
	}
	if !m.isFocused(f) {
		return []styledLine{{text: fmt.Sprintf("%s: %s%s", current.Title, value, pending), style: m.fieldStyle(f)}}
	}
	head := current.Title + ":"
	if current.Filter != "" {
		head += " " + current.Filter
	}
	lines := []styledLine{{text: head + pending, style: m.fieldStyle(f)}}
	if len(current.Items) == 0 {
		msg := "(no entries)"
		if current.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", current.Filter)
		}
		return append(lines, styledLine{text: msg, style: styles.Info})
	}
	items, start := current.Window(selectorRows)
	for i, item := range items {
		lines = append(lines, m.buildItemLine(item.Label, start+i == current.Cursor, m.width))
	}
	return lines
}

func (m *Model) reviewLines() []styledLine {
	sel := m.selection()
	deptName := sel.Department.String()
	if record, ok := m.departments.Lookup(sel.Department); ok {
		deptName = record.DisplayName()
	}
	pairs := [][2]string{
		{"Department", deptName},
		{"Rank", sel.Rank},
		{"Unit", sel.Unit},
	}
	if m.uiiVisible {
		pairs = append(pairs, [2]string{m.currentUIILabel(), sel.UII})
	}
	rows := table.Pairs(pairs)
	lines := make([]styledLine, 0, len(rows)+2)
	for _, row := range rows {
		lines = append(lines, styledLine{text: row, style: styles.Info})
	}
	button := styles.Button
	if m.isFocused(fieldSubmit) {
		button = styles.FocusedButton
	}
	return append(lines, styledLine{}, styledLine{text: "[ Search ]", style: button})
}

func (m *Model) patchLines() []styledLine {
	body := m.patch.View()
	if m.patchImage == "" {
		body = "(no shoulder patch reference configured)"
	}
	if styles.PatchBorder != nil {
		body = styles.PatchBorder.Render(body)
	}
	rows := strings.Split(body, "\n")
	lines := make([]styledLine, len(rows))
	for i, row := range rows {
		lines[i] = styledLine{text: row, raw: true}
	}
	return lines
}

func (m *Model) buildItemLine(label string, selected bool, width int) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if selected {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	fullText := indicator + " " + label
	if width > 0 {
		if pad := width - runewidth.StringWidth(fullText); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1, // just the ▌ character
	}
}

func (m *Model) isFocused(f field) bool {
	current, ok := m.focusedField()
	return ok && current == f
}

func (m *Model) fieldStyle(f field) *lipgloss.Style {
	if m.isFocused(f) {
		return styles.FocusedField
	}
	return styles.Field
}

func (m *Model) footerText() string {
	bindings := m.keys.footerBindings()
	parts := make([]string, 0, len(bindings)+1)
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		help := b.Help()
		if help.Key == "" {
			continue
		}
		parts = append(parts, help.Key+" "+help.Desc)
	}
	parts = append(parts, "f1-f9 step")
	return strings.Join(parts, "  ")
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.patch.Width = patchWidth(m.width)
	return nil
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{
			text:          text,
			style:         line.style,
			prefixStyle:   line.prefixStyle,
			highlightFrom: line.highlightFrom,
			raw:           line.raw,
		}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

// truncateText clips text to width terminal columns, ending with an ellipsis
// when anything was cut.
func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return runewidth.Truncate(text, width, "…")
}
