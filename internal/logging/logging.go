package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultLogFile = "officer-wizard.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	sessionID    string
)

// Configure sets the log destination. Empty values fall back to the default
// path. Missing directories are created.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether trace entries are written.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// SetSession tags every subsequent entry with id.
func SetSession(id string) {
	mu.Lock()
	sessionID = id
	mu.Unlock()
}

// Path returns the current log destination.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// Error appends err as a plain line to the log file.
func Error(err error) {
	if err == nil {
		return
	}
	mu.Lock()
	session := sessionID
	mu.Unlock()
	prefix := time.Now().Format("2006/01/02 15:04:05")
	if session != "" {
		prefix += " [" + session + "]"
	}
	line := fmt.Sprintf("%s %v\n", prefix, err)
	if werr := appendLog(func(w io.Writer) error {
		_, err := io.WriteString(w, line)
		return err
	}); werr != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", werr)
	}
}

// Trace appends a JSON entry to the log when tracing is enabled.
func Trace(event string, payload interface{}) {
	mu.Lock()
	enabled := traceEnabled
	session := sessionID
	mu.Unlock()
	if !enabled {
		return
	}

	entry := struct {
		Time    time.Time   `json:"time"`
		Session string      `json:"session,omitempty"`
		Event   string      `json:"event"`
		Payload interface{} `json:"payload,omitempty"`
	}{
		Time:    time.Now().UTC(),
		Session: session,
		Event:   event,
		Payload: payload,
	}
	if err := appendLog(func(w io.Writer) error {
		return json.NewEncoder(w).Encode(entry)
	}); err != nil {
		fmt.Fprintf(os.Stderr, "trace logging failed: %v\n", err)
	}
}

func appendLog(write func(io.Writer) error) error {
	f, err := os.OpenFile(Path(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f)
}
