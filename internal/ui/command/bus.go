package command

import (
	"github.com/atomicstack/officer-wizard/internal/backend"
	"github.com/atomicstack/officer-wizard/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// LoadedMsg carries a finished dropdown load back to the model.
type LoadedMsg struct {
	backend.Result
}

// Bus turns loader requests into Bubble Tea commands.
type Bus struct {
	loader *backend.Loader
}

// New initialises a command bus around loader.
func New(loader *backend.Loader) *Bus {
	return &Bus{loader: loader}
}

// Load registers req with the loader and wraps the fetch into a command while
// emitting trace logs.
func (b *Bus) Load(req backend.Request) tea.Cmd {
	if b == nil || b.loader == nil {
		return nil
	}
	seq, task := b.loader.Start(req)
	events.Options.Queue(req.Name, req.Department.String(), seq)
	return func() tea.Msg {
		return LoadedMsg{Result: task()}
	}
}

// Accept reports whether res is the newest load for its dropdown.
func (b *Bus) Accept(res backend.Result) bool {
	if b == nil || b.loader == nil {
		return false
	}
	return b.loader.Accept(res)
}

// Pending reports whether a dropdown still waits for its newest load.
func (b *Bus) Pending(name string) bool {
	if b == nil || b.loader == nil {
		return false
	}
	return b.loader.Pending(name)
}
