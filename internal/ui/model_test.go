package ui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/atomicstack/officer-wizard/internal/backend"
	"github.com/atomicstack/officer-wizard/internal/department"
	"github.com/atomicstack/officer-wizard/internal/logging"
	"github.com/atomicstack/officer-wizard/internal/options"
	"github.com/atomicstack/officer-wizard/internal/wizard"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	testRanksURL = "http://wizard.test/ranks"
	testUnitsURL = "http://wizard.test/units"
)

type stubFetcher struct {
	mu    sync.Mutex
	data  map[string]map[department.ID][]options.Record
	errs  map[string]error
	calls []string
}

func newStubFetcher() *stubFetcher {
	return &stubFetcher{
		data: map[string]map[department.ID][]options.Record{
			testRanksURL: {
				7: {{Key: "1", Label: "Officer"}, {Key: "2", Label: "Sergeant"}},
				9: {{Key: "3", Label: "Captain"}},
			},
			testUnitsURL: {
				7: {{Key: "10", Label: "Patrol"}},
				9: {{Key: "11", Label: "Traffic"}, {Key: "12", Label: "Harbor"}},
			},
		},
		errs: map[string]error{},
	}
}

func (s *stubFetcher) Fetch(_ context.Context, endpoint string, dept department.ID) ([]options.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, endpoint+"?"+dept.String())
	if err := s.errs[endpoint]; err != nil {
		return nil, err
	}
	return s.data[endpoint][dept], nil
}

func (s *stubFetcher) fail(endpoint string, err error) {
	s.mu.Lock()
	s.errs[endpoint] = err
	s.mu.Unlock()
}

func testDirectory(t *testing.T) *department.Directory {
	t.Helper()
	dir, err := department.NewDirectory([]department.Record{
		{ID: 7, Name: "Springfield PD", UIILabel: "Badge Number"},
		{ID: 9, Name: "Shelbyville PD"},
	})
	if err != nil {
		t.Fatalf("directory: %v", err)
	}
	return dir
}

func quietLogs(t *testing.T) {
	t.Helper()
	logging.Configure(filepath.Join(t.TempDir(), "ui.log"))
	t.Cleanup(func() { logging.Configure("") })
}

func newTestHarness(t *testing.T, fetcher *stubFetcher, opts Options) *Harness {
	t.Helper()
	quietLogs(t)
	loader := backend.NewLoader(fetcher)
	t.Cleanup(loader.Stop)
	if opts.Departments == nil {
		opts.Departments = testDirectory(t)
	}
	opts.Loader = loader
	opts.RanksURL = testRanksURL
	opts.UnitsURL = testUnitsURL
	h := NewHarness(NewModel(opts))
	h.Init()
	return h
}

func labels(s *selector) []string {
	out := make([]string, len(s.Full))
	for i, item := range s.Full {
		out[i] = item.Label
	}
	return out
}

func press(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func typeText(h *Harness, text string) {
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func TestInitLoadsDropdownsForInitialDepartment(t *testing.T) {
	h := newTestHarness(t, newStubFetcher(), Options{})
	m := h.Model()
	if !m.hasDept || m.selectedDept != 7 {
		t.Fatalf("expected department 7 selected, got %v", m.selectedDept)
	}
	got := strings.Join(labels(m.selectors[options.Rank]), ",")
	if got != "Not Sure,Officer,Sergeant" {
		t.Fatalf("unexpected rank options %q", got)
	}
	got = strings.Join(labels(m.selectors[options.Unit]), ",")
	if got != "Not Sure,Patrol" {
		t.Fatalf("unexpected unit options %q", got)
	}
	if m.selectors[options.Rank].Value("") != options.NotSure {
		t.Fatalf("expected sentinel preselected")
	}
}

func TestInitHonoursConfiguredDepartment(t *testing.T) {
	h := newTestHarness(t, newStubFetcher(), Options{Department: "9"})
	m := h.Model()
	if m.selectedDept != 9 {
		t.Fatalf("expected department 9, got %v", m.selectedDept)
	}
	if v := m.selectors[fieldDepartment.name()].Value(""); v != "9" {
		t.Fatalf("expected department selector on 9, got %q", v)
	}
	if got := strings.Join(labels(m.selectors[options.Unit]), ","); got != "Not Sure,Traffic,Harbor" {
		t.Fatalf("unexpected unit options %q", got)
	}
}

func TestInitUnlistedDepartmentFallsBackToFirst(t *testing.T) {
	fetcher := newStubFetcher()
	h := newTestHarness(t, fetcher, Options{Department: "42"})
	m := h.Model()
	if m.selectedDept != 7 {
		t.Fatalf("expected fallback to department 7, got %v", m.selectedDept)
	}
	if v := m.selectors[fieldDepartment.name()].Value(""); v != "7" {
		t.Fatalf("expected department selector on 7, got %q", v)
	}
	if !m.uiiVisible {
		t.Fatalf("expected UII question for department 7")
	}
	for _, call := range fetcher.calls {
		if strings.HasSuffix(call, "?42") {
			t.Fatalf("unexpected fetch for unlisted department: %s", call)
		}
	}
	sel := m.selection()
	if sel.Department != 7 {
		t.Fatalf("expected selection for department 7, got %v", sel.Department)
	}
}

func TestStaleDepartmentResponseIsDropped(t *testing.T) {
	h := newTestHarness(t, newStubFetcher(), Options{})
	m := h.Model()
	older := m.changeDepartment(9)
	newer := m.changeDepartment(7)
	// The newer response lands first; the older one must not overwrite it.
	h.processCmd(newer)
	h.processCmd(older)
	if got := strings.Join(labels(m.selectors[options.Rank]), ","); got != "Not Sure,Officer,Sergeant" {
		t.Fatalf("expected department 7 ranks to survive, got %q", got)
	}
	if got := strings.Join(labels(m.selectors[options.Unit]), ","); got != "Not Sure,Patrol" {
		t.Fatalf("expected department 7 units to survive, got %q", got)
	}
}

func TestLoadErrorKeepsPreviousDropdown(t *testing.T) {
	fetcher := newStubFetcher()
	h := newTestHarness(t, fetcher, Options{})
	fetcher.fail(testUnitsURL, errors.New("boom"))
	h.Send(press(tea.KeyDown))
	h.Send(press(tea.KeyEnter))
	m := h.Model()
	if got := strings.Join(labels(m.selectors[options.Rank]), ","); got != "Not Sure,Captain" {
		t.Fatalf("expected ranks rebuilt for department 9, got %q", got)
	}
	if got := strings.Join(labels(m.selectors[options.Unit]), ","); got != "Not Sure,Patrol" {
		t.Fatalf("expected previous units kept, got %q", got)
	}
	if !strings.Contains(m.errMsg, "boom") {
		t.Fatalf("expected error on status line, got %q", m.errMsg)
	}
	if !strings.Contains(h.View(), "Error:") {
		t.Fatalf("expected error rendered in view")
	}
}

func TestDepartmentChangeTogglesUII(t *testing.T) {
	h := newTestHarness(t, newStubFetcher(), Options{})
	m := h.Model()
	if !m.uiiVisible || m.uiiLabel != "Badge Number" {
		t.Fatalf("expected UII question for department 7, got visible=%v label=%q", m.uiiVisible, m.uiiLabel)
	}
	h.Send(press(tea.KeyDown))
	h.Send(press(tea.KeyEnter))
	if m.uiiVisible {
		t.Fatalf("expected UII question hidden for department 9")
	}
	h.Send(press(tea.KeyUp))
	h.Send(press(tea.KeyEnter))
	if !m.uiiVisible || m.uiiLabel != "Badge Number" {
		t.Fatalf("expected UII question shown again for department 7")
	}
}

func TestMissingDepartmentRecordHidesUII(t *testing.T) {
	fetcher := newStubFetcher()
	h := newTestHarness(t, fetcher, Options{})
	m := h.Model()
	h.processCmd(m.changeDepartment(42))
	if m.uiiVisible {
		t.Fatalf("expected UII hidden for unknown department")
	}
	if m.selectedDept != 42 {
		t.Fatalf("expected department 42 committed, got %v", m.selectedDept)
	}
	if got := strings.Join(labels(m.selectors[options.Rank]), ","); got != options.NotSure {
		t.Fatalf("expected only the sentinel, got %q", got)
	}
}

func TestReselectingSameDepartmentDoesNotReload(t *testing.T) {
	fetcher := newStubFetcher()
	h := newTestHarness(t, fetcher, Options{})
	before := len(fetcher.calls)
	h.Send(press(tea.KeyEnter))
	if len(fetcher.calls) != before {
		t.Fatalf("expected no reload, calls went from %d to %d", before, len(fetcher.calls))
	}
}

func TestClickingDisabledStepIsNoop(t *testing.T) {
	h := newTestHarness(t, newStubFetcher(), Options{})
	m := h.Model()
	h.Send(press(tea.KeyF3))
	if m.nav.Active() != wizard.StepDepartment {
		t.Fatalf("expected department step to stay active, got %s", m.nav.Active())
	}
}

func TestNextAndPreviousButtons(t *testing.T) {
	h := newTestHarness(t, newStubFetcher(), Options{})
	m := h.Model()
	h.Send(press(tea.KeyCtrlN))
	if m.nav.Active() != wizard.StepOfficer {
		t.Fatalf("expected officer step, got %s", m.nav.Active())
	}
	h.Send(press(tea.KeyCtrlN))
	if m.nav.Active() != wizard.StepSearch {
		t.Fatalf("expected search step, got %s", m.nav.Active())
	}
	h.Send(press(tea.KeyCtrlN))
	if m.nav.Active() != wizard.StepSearch {
		t.Fatalf("expected last step to have no next button")
	}
	h.Send(press(tea.KeyCtrlP))
	if m.nav.Active() != wizard.StepOfficer {
		t.Fatalf("expected officer step after back, got %s", m.nav.Active())
	}
	h.Send(press(tea.KeyF3))
	if m.nav.Active() != wizard.StepSearch {
		t.Fatalf("expected unlocked step to be clickable")
	}
}

func TestDepartmentChangeLocksOtherSteps(t *testing.T) {
	h := newTestHarness(t, newStubFetcher(), Options{})
	m := h.Model()
	h.Send(press(tea.KeyCtrlN))
	h.Send(press(tea.KeyCtrlN))
	h.Send(press(tea.KeyF1))
	if m.nav.Active() != wizard.StepDepartment {
		t.Fatalf("expected department step, got %s", m.nav.Active())
	}
	h.Send(press(tea.KeyDown))
	h.Send(press(tea.KeyEnter))
	if !m.nav.IsDisabled(wizard.StepOfficer) || !m.nav.IsDisabled(wizard.StepSearch) {
		t.Fatalf("expected later steps locked after department change")
	}
	h.Send(press(tea.KeyF2))
	if m.nav.Active() != wizard.StepDepartment {
		t.Fatalf("expected locked step click to be ignored")
	}
}

func TestFilterAndPickRank(t *testing.T) {
	h := newTestHarness(t, newStubFetcher(), Options{})
	m := h.Model()
	h.Send(press(tea.KeyCtrlN))
	typeText(h, "serg")
	if view := h.View(); !strings.Contains(view, "Rank: serg") {
		t.Fatalf("expected filter in view, got:\n%s", view)
	}
	h.Send(press(tea.KeyEnter))
	rank := m.selectors[options.Rank]
	if rank.Value("") != "Sergeant" || rank.Filter != "" {
		t.Fatalf("expected Sergeant picked with filter cleared, got %q filter %q", rank.Value(""), rank.Filter)
	}
	if f, _ := m.focusedField(); f != fieldUnit {
		t.Fatalf("expected focus to move to unit, got %v", f)
	}
}

func TestImageToggle(t *testing.T) {
	h := newTestHarness(t, newStubFetcher(), Options{PatchImage: "chevron\nbars"})
	m := h.Model()
	if strings.Contains(h.View(), "Shoulder patches") {
		t.Fatalf("expected patch block hidden initially")
	}
	h.Send(press(tea.KeyCtrlO))
	if !m.imageShown {
		t.Fatalf("expected patch block shown")
	}
	view := h.View()
	if !strings.Contains(view, "Shoulder patches") || !strings.Contains(view, "chevron") {
		t.Fatalf("expected patch content in view, got:\n%s", view)
	}
	m.showImage()
	if !m.imageShown {
		t.Fatalf("expected showImage to be idempotent")
	}
	h.Send(press(tea.KeyCtrlO))
	if m.imageShown {
		t.Fatalf("expected patch block hidden")
	}
	m.hideImage()
	if m.imageShown {
		t.Fatalf("expected hideImage to be idempotent")
	}
}

func TestSubmitShowsLoaderAndReturnsSelection(t *testing.T) {
	h := newTestHarness(t, newStubFetcher(), Options{})
	m := h.Model()
	h.Send(press(tea.KeyCtrlN))
	h.Send(press(tea.KeyDown))
	h.Send(press(tea.KeyEnter))
	h.Send(press(tea.KeyTab))
	typeText(h, "A12")
	h.Send(press(tea.KeyCtrlN))
	if !strings.Contains(h.View(), "Badge Number:  A12") {
		t.Fatalf("expected review summary, got:\n%s", h.View())
	}
	h.Send(press(tea.KeyEnter))
	if !m.loaderShown {
		t.Fatalf("expected loader shown on submit")
	}
	if !h.Quit() {
		t.Fatalf("expected program to quit after submit")
	}
	sel := m.Result()
	if sel == nil {
		t.Fatalf("expected a selection")
	}
	want := Selection{Department: 7, Rank: "Officer", Unit: options.NotSure, UII: "A12"}
	if *sel != want {
		t.Fatalf("unexpected selection %+v", *sel)
	}
}

func TestKeysIgnoredWhileSubmitting(t *testing.T) {
	h := newTestHarness(t, newStubFetcher(), Options{})
	m := h.Model()
	m.showLoader()
	h.Send(press(tea.KeyCtrlN))
	if m.nav.Active() != wizard.StepDepartment {
		t.Fatalf("expected navigation blocked while loading")
	}
	if cmd := m.showLoader(); cmd != nil {
		t.Fatalf("expected showLoader to be idempotent")
	}
}

func TestHiddenUIINotSubmitted(t *testing.T) {
	h := newTestHarness(t, newStubFetcher(), Options{})
	m := h.Model()
	m.uiiInput.SetValue("stale")
	h.Send(press(tea.KeyDown))
	h.Send(press(tea.KeyEnter))
	if sel := m.selection(); sel.UII != "" || sel.Department != 9 {
		t.Fatalf("unexpected selection %+v", sel)
	}
}

func TestViewShowsStepsAndFooter(t *testing.T) {
	h := newTestHarness(t, newStubFetcher(), Options{ShowFooter: true, Width: 100})
	view := h.View()
	for _, want := range []string{"1 Department", "2 Rank & Unit", "3 Search", "Springfield PD", "ctrl+n next"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view, got:\n%s", want, view)
		}
	}
}

func TestWindowSizeRespectsFixedDimensions(t *testing.T) {
	h := newTestHarness(t, newStubFetcher(), Options{Width: 50})
	h.Send(tea.WindowSizeMsg{Width: 120, Height: 30})
	m := h.Model()
	if m.width != 50 || m.height != 30 {
		t.Fatalf("unexpected size %dx%d", m.width, m.height)
	}
}
