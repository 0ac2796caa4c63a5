package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atomicstack/officer-wizard/internal/backend"
	"github.com/atomicstack/officer-wizard/internal/department"
	"github.com/atomicstack/officer-wizard/internal/options"
	"github.com/atomicstack/officer-wizard/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	RanksURL        string
	UnitsURL        string
	DepartmentsPath string
	Department      string
	SearchURL       string
	PatchImage      string
	Timeout         time.Duration
	Width           int
	Height          int
	ShowFooter      bool
}

// Run bootstraps and executes the Bubble Tea program. It returns the
// submitted selection, or nil when the user quit without searching.
func Run(cfg Config) (*ui.Selection, error) {
	model, loader, err := NewModel(cfg)
	if err != nil {
		return nil, err
	}
	defer loader.Stop()
	program := tea.NewProgram(model, tea.WithAltScreen())
	final, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if m, ok := final.(*ui.Model); ok {
		return m.Result(), nil
	}
	return model.Result(), nil
}

// NewModel wires the department directory, option client, and loader into a
// ready-to-run model.
func NewModel(cfg Config) (*ui.Model, *backend.Loader, error) {
	dir, err := department.LoadFile(cfg.DepartmentsPath)
	if err != nil {
		return nil, nil, err
	}
	if dir.Len() == 0 {
		return nil, nil, fmt.Errorf("departments file %s lists no departments", cfg.DepartmentsPath)
	}
	if cfg.Department != "" {
		id, err := department.ParseID(cfg.Department)
		if err != nil {
			return nil, nil, fmt.Errorf("initial department: %w", err)
		}
		if _, ok := dir.Lookup(id); !ok {
			return nil, nil, fmt.Errorf("initial department %s is not listed in %s", id, cfg.DepartmentsPath)
		}
	}
	patch, err := loadPatchImage(cfg.PatchImage)
	if err != nil {
		return nil, nil, err
	}
	loader := backend.NewLoader(options.NewClient(cfg.Timeout))
	model := ui.NewModel(ui.Options{
		Departments: dir,
		Loader:      loader,
		RanksURL:    cfg.RanksURL,
		UnitsURL:    cfg.UnitsURL,
		Department:  cfg.Department,
		PatchImage:  patch,
		Width:       cfg.Width,
		Height:      cfg.Height,
		ShowFooter:  cfg.ShowFooter,
	})
	return model, loader, nil
}

// loadPatchImage reads ref as a text file when it names one. URLs and other
// references are shown as-is.
func loadPatchImage(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.Contains(ref, "://") {
		return ref, nil
	}
	data, err := os.ReadFile(ref)
	if errors.Is(err, os.ErrNotExist) {
		return ref, nil
	}
	if err != nil {
		return "", fmt.Errorf("read patch image: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}
