package events

import (
	"time"

	"github.com/atomicstack/officer-wizard/internal/logging"
)

type StepTracer struct{}

type DepartmentTracer struct{}

type OptionsTracer struct{}

type ToggleTracer struct{}

var (
	Step       = StepTracer{}
	Department = DepartmentTracer{}
	Options    = OptionsTracer{}
	Toggle     = ToggleTracer{}
)

func (StepTracer) Activate(panel string) {
	logging.Trace("step.activate", map[string]interface{}{"panel": panel})
}

func (StepTracer) Blocked(panel string) {
	logging.Trace("step.blocked", map[string]interface{}{"panel": panel})
}

func (StepTracer) Advance(panel string) {
	logging.Trace("step.advance", map[string]interface{}{"panel": panel})
}

func (StepTracer) Locked(active string) {
	logging.Trace("step.lock-inactive", map[string]interface{}{"active": active})
}

func (DepartmentTracer) Change(id string) {
	logging.Trace("department.change", map[string]interface{}{"department": id})
}

func (DepartmentTracer) UII(id, label string, shown bool) {
	logging.Trace("department.uii", map[string]interface{}{"department": id, "label": label, "shown": shown})
}

func (DepartmentTracer) Missing(id string) {
	logging.Trace("department.missing", map[string]interface{}{"department": id})
}

func (OptionsTracer) Queue(name, department string, seq uint64) {
	logging.Trace("options.queue", map[string]interface{}{"name": name, "department": department, "seq": seq})
}

func (OptionsTracer) Loaded(name, department string, seq uint64, count int, elapsed time.Duration) {
	logging.Trace("options.loaded", map[string]interface{}{
		"name":       name,
		"department": department,
		"seq":        seq,
		"count":      count,
		"elapsedMs":  elapsed.Milliseconds(),
	})
}

func (OptionsTracer) Stale(name, department string, seq uint64) {
	logging.Trace("options.stale", map[string]interface{}{"name": name, "department": department, "seq": seq})
}

func (OptionsTracer) Error(name string, err error) {
	if err == nil {
		return
	}
	logging.Trace("options.error", map[string]interface{}{"name": name, "error": err.Error()})
}

func (ToggleTracer) Loader() {
	logging.Trace("toggle.loader", nil)
}

func (ToggleTracer) Image(shown bool) {
	logging.Trace("toggle.image", map[string]interface{}{"shown": shown})
}
