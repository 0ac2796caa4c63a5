package backend

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/officer-wizard/internal/department"
	"github.com/atomicstack/officer-wizard/internal/options"
)

// Fetcher retrieves option tuples for a department from an endpoint.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint string, dept department.ID) ([]options.Record, error)
}

// Request describes one dropdown load.
type Request struct {
	Name       string
	Endpoint   string
	Department department.ID
}

// Result carries a completed load back to the event loop.
type Result struct {
	Request
	Seq     uint64
	Set     options.Set
	Err     error
	Elapsed time.Duration
}

type inflight struct {
	seq    uint64
	cancel context.CancelFunc
}

// Loader runs dropdown fetches. Every request for a dropdown name supersedes
// the previous one: the older request's context is cancelled and its result
// is rejected by Accept, so the newest request always wins regardless of the
// order responses arrive in.
type Loader struct {
	fetcher Fetcher

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	seq      uint64
	inflight map[string]inflight
}

// NewLoader creates a loader backed by fetcher.
func NewLoader(fetcher Fetcher) *Loader {
	ctx, cancel := context.WithCancel(context.Background())
	return &Loader{
		fetcher:  fetcher,
		ctx:      ctx,
		cancel:   cancel,
		inflight: make(map[string]inflight),
	}
}

// Start registers req as the newest load for its dropdown and returns the
// blocking task that performs it. The task is meant to run as a tea.Cmd.
func (l *Loader) Start(req Request) (uint64, func() Result) {
	l.mu.Lock()
	l.seq++
	seq := l.seq
	if prev, ok := l.inflight[req.Name]; ok {
		prev.cancel()
	}
	ctx, cancel := context.WithCancel(l.ctx)
	l.inflight[req.Name] = inflight{seq: seq, cancel: cancel}
	l.mu.Unlock()

	return seq, func() Result {
		defer cancel()
		started := time.Now()
		res := Result{Request: req, Seq: seq}
		records, err := l.fetcher.Fetch(ctx, req.Endpoint, req.Department)
		res.Elapsed = time.Since(started)
		if err != nil {
			res.Err = err
			return res
		}
		res.Set = options.Build(req.Name, req.Department, records)
		return res
	}
}

// Accept reports whether res belongs to the newest request for its dropdown.
// An accepted result clears the pending entry; stale results are dropped.
func (l *Loader) Accept(res Result) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	cur, ok := l.inflight[res.Name]
	if !ok || cur.seq != res.Seq {
		return false
	}
	delete(l.inflight, res.Name)
	return true
}

// Pending reports whether a load for name has not been accepted yet.
func (l *Loader) Pending(name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.inflight[name]
	return ok
}

// Stop cancels every in-flight request. Results that complete afterwards are
// still delivered but Accept rejects them.
func (l *Loader) Stop() {
	l.cancel()
	l.mu.Lock()
	for name := range l.inflight {
		delete(l.inflight, name)
	}
	l.mu.Unlock()
}
