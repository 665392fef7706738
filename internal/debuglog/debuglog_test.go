package debuglog

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	raw := strings.TrimSpace(string(data))
	if raw == "" {
		return nil
	}
	return strings.Split(raw, "\n")
}

func TestSpeakWritesJSONLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tdsr.log")
	l := New(true, path)
	defer l.Close()

	l.Speak("hello world", 2)

	lines := readLines(t, path)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	var e struct {
		Event string `json:"event"`
		Text  string `json:"text"`
		TS    string `json:"ts"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if e.Event != "speak" || e.Text != "hello world" || e.TS == "" {
		t.Errorf("got %+v", e)
	}
}

func TestPluginErrorRecorded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tdsr.log")
	l := New(true, path)
	defer l.Close()

	l.PluginError("summarize", errors.New("boom"))

	lines := readLines(t, path)
	var e struct {
		Event  string `json:"event"`
		Plugin string `json:"plugin"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if e.Plugin != "summarize" || e.Error != "boom" {
		t.Errorf("got %+v", e)
	}
}

func TestDisabledLoggerIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tdsr.log")
	l := New(false, path)
	defer l.Close()

	l.Speak("hi", 0)

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected no file to be created when disabled")
	}
}

func TestNopLoggerIsNoop(t *testing.T) {
	l := Nop()
	l.Speak("hi", 0)
	l.PluginError("x", errors.New("e"))
	l.Resize(80, 24)
	l.Close()
}

func TestMultipleEntriesAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tdsr.log")
	l := New(true, path)
	defer l.Close()

	l.Speak("one", 0)
	l.Resize(80, 24)
	l.SynthSelected("native")

	lines := readLines(t, path)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
}
