package plugin

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

// writeScript writes an executable shell script to a temp dir and
// returns its path.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script plugins assume a POSIX shell")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "plugin.sh")
	script := "#!/bin/sh\n" + body
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunSuccess(t *testing.T) {
	path := writeScript(t, `cat <<'EOF'
{"speak": ["hello", "world"]}
EOF
`)
	got, err := Run(path, Request{Lines: []string{"a"}}, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "hello" || got[1] != "world" {
		t.Errorf("got %v", got)
	}
}

func TestRunNonZeroExit(t *testing.T) {
	path := writeScript(t, `exit 1`)
	_, err := Run(path, Request{}, time.Second)
	if err == nil {
		t.Error("expected error for non-zero exit")
	}
}

func TestRunMalformedOutput(t *testing.T) {
	path := writeScript(t, `echo not json`)
	_, err := Run(path, Request{}, time.Second)
	if err == nil {
		t.Error("expected error for malformed output")
	}
}

func TestRunTimeout(t *testing.T) {
	path := writeScript(t, `sleep 5`)
	_, err := Run(path, Request{}, 50*time.Millisecond)
	if err == nil {
		t.Error("expected timeout error")
	}
}

func TestRunNotFound(t *testing.T) {
	_, err := Run("tdsr-plugin-does-not-exist", Request{}, time.Second)
	if err == nil {
		t.Error("expected not-found error")
	}
}
