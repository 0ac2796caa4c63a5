package ui

import (
	"fmt"
	"reflect"

	"github.com/atomicstack/officer-wizard/internal/backend"
	"github.com/atomicstack/officer-wizard/internal/department"
	"github.com/atomicstack/officer-wizard/internal/options"
	"github.com/atomicstack/officer-wizard/internal/theme"
	"github.com/atomicstack/officer-wizard/internal/ui/command"
	uistate "github.com/atomicstack/officer-wizard/internal/ui/state"
	"github.com/atomicstack/officer-wizard/internal/wizard"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type selector = uistate.Selector

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	Departments *department.Directory
	Loader      *backend.Loader
	RanksURL    string
	UnitsURL    string
	// Department is the initially selected department id. Empty selects the
	// first department in the directory.
	Department string
	// PatchImage is the text shown in the shoulder-patch reference block.
	PatchImage string
	Width      int
	Height     int
	ShowFooter bool
}

// Model implements the Bubble Tea model for the officer search wizard.
type Model struct {
	nav         *wizard.Navigator
	departments *department.Directory
	bus         *command.Bus
	ranksURL    string
	unitsURL    string

	initialDept  string
	selectedDept department.ID
	hasDept      bool

	selectors map[string]*selector
	loadErrs  map[string]error

	uiiLabel   string
	uiiVisible bool
	uiiInput   textinput.Model

	imageShown bool
	patchImage string
	patch      viewport.Model

	loaderShown bool
	spinner     spinner.Model

	focus  int
	result *Selection

	errMsg      string
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool

	keys     keyMap
	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the wizard with the department step active and the
// dependent dropdowns holding only the sentinel option.
func NewModel(opts Options) *Model {
	m := &Model{
		nav:         wizard.NewNavigator(wizard.DefaultPanels(), wizard.StepDepartment),
		departments: opts.Departments,
		bus:         command.New(opts.Loader),
		ranksURL:    opts.RanksURL,
		unitsURL:    opts.UnitsURL,
		initialDept: opts.Department,
		selectors:   map[string]*selector{},
		loadErrs:    map[string]error{},
		patchImage:  opts.PatchImage,
		showFooter:  opts.ShowFooter,
		keys:        defaultKeyMap(),
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.selectors[fieldDepartment.name()] = newDepartmentSelector(opts.Departments)
	for _, name := range []string{options.Rank, options.Unit} {
		m.selectors[name] = newOptionSelector(options.Build(name, 0, nil))
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 64
	ti.Cursor.SetMode(cursor.CursorStatic)
	if styles.Filter != nil {
		ti.TextStyle = styles.Filter.Copy()
	}
	if styles.FilterPrompt != nil {
		ti.PromptStyle = styles.FilterPrompt.Copy()
	}
	m.uiiInput = ti

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	if styles.Loading != nil {
		sp.Style = styles.Loading.Copy()
	}
	m.spinner = sp

	m.patch = viewport.New(patchWidth(m.width), patchHeight(opts.PatchImage))
	m.patch.SetContent(opts.PatchImage)

	m.registerHandlers()
	return m
}

// Init fires the department change handler for the initial department.
func (m *Model) Init() tea.Cmd {
	id, ok := m.initialDepartment()
	if !ok {
		m.errMsg = "no departments configured"
		return nil
	}
	if !m.selectors[fieldDepartment.name()].Select(id.String()) {
		m.errMsg = fmt.Sprintf("department %s is not listed", id)
		return nil
	}
	return m.changeDepartment(id)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

// Result returns the submitted selection, or nil if the wizard was abandoned.
func (m *Model) Result() *Selection {
	return m.result
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(command.LoadedMsg{}): m.handleOptionsLoadedMsg,
		reflect.TypeOf(spinner.TickMsg{}):   m.handleSpinnerTickMsg,
		reflect.TypeOf(submittedMsg{}):      m.handleSubmittedMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if len(cmds) == 0 {
		return nil
	}
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

func (m *Model) initialDepartment() (department.ID, bool) {
	if m.initialDept != "" {
		// Unlisted ids fall back to the first department so the selector
		// and the committed department agree.
		if id, err := department.ParseID(m.initialDept); err == nil {
			if _, ok := m.departments.Lookup(id); ok {
				return id, true
			}
		}
	}
	record, ok := m.departments.First()
	if !ok {
		return 0, false
	}
	return record.ID, true
}

func newDepartmentSelector(dir *department.Directory) *selector {
	records := dir.Records()
	items := make([]uistate.Item, len(records))
	for i, r := range records {
		items[i] = uistate.Item{Value: r.ID.String(), Label: r.DisplayName()}
	}
	return uistate.NewSelector(fieldDepartment.name(), "Department", items)
}

func newOptionSelector(set options.Set) *selector {
	items := make([]uistate.Item, len(set.Options))
	for i, o := range set.Options {
		items[i] = uistate.Item{Value: o.Value, Label: o.Label}
	}
	return uistate.NewSelector(set.Name, selectorTitle(set.Name), items)
}

func selectorTitle(name string) string {
	switch name {
	case options.Rank:
		return "Rank"
	case options.Unit:
		return "Unit"
	default:
		return name
	}
}
