package events

import "github.com/atomicstack/officer-wizard/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Submit(query string) {
	logging.Trace("app.submit", map[string]interface{}{"query": query})
}
