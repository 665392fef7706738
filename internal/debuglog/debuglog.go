// Package debuglog writes one JSON object per line to tdsr.log when
// --debug is given, recording speech, key, and plugin events for
// offline diagnosis. The on-disk shape and the New/Nop/Close API follow
// the teacher's activitylog package.
package debuglog

import (
	"encoding/json"
	"os"
	"sync"
	"time"
)

// Logger appends JSON lines to a log file. A disabled or Nop logger is
// safe to call from anywhere without guarding every call site.
type Logger struct {
	mu      sync.Mutex
	file    *os.File
	enabled bool
}

// New opens (creating if needed) the log file at path when enabled is
// true. When enabled is false it behaves exactly like Nop(): every
// method is a no-op and no file is created.
func New(enabled bool, path string) *Logger {
	if !enabled {
		return &Logger{enabled: false}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return &Logger{enabled: false}
	}
	return &Logger{enabled: true, file: f}
}

// Nop returns a Logger whose methods are all no-ops.
func Nop() *Logger {
	return &Logger{enabled: false}
}

func (l *Logger) write(event string, fields map[string]any) {
	if l == nil || !l.enabled {
		return
	}
	entry := map[string]any{
		"ts":    time.Now().UTC().Format(time.RFC3339Nano),
		"event": event,
	}
	for k, v := range fields {
		entry[k] = v
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.file.Write(append(data, '\n'))
}

// Speak records an utterance reaching the synth, tagged with the flush
// reason that triggered it.
func (l *Logger) Speak(text string, reason any) {
	l.write("speak", map[string]any{"text": text, "reason": reason})
}

// Key records a decoded key reaching the input handler stack.
func (l *Logger) Key(raw string, meta bool, r rune) {
	l.write("key", map[string]any{"raw": raw, "meta": meta, "rune": string(r)})
}

// PluginError records a plugin subprocess failure.
func (l *Logger) PluginError(name string, err error) {
	l.write("plugin_error", map[string]any{"plugin": name, "error": err.Error()})
}

// PluginOutput records a plugin's successful output.
func (l *Logger) PluginOutput(name string, speak []string) {
	l.write("plugin_output", map[string]any{"plugin": name, "speak": speak})
}

// Resize records a terminal resize.
func (l *Logger) Resize(cols, rows int) {
	l.write("resize", map[string]any{"cols": cols, "rows": rows})
}

// SynthSelected records which synth backend was chosen at startup.
func (l *Logger) SynthSelected(name string) {
	l.write("synth_selected", map[string]any{"backend": name})
}

// Close closes the underlying file, if any.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}
