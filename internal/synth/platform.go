package synth

import (
	"os"
	"runtime"
	"strings"
)

// isWSL detects a Linux kernel running under Windows Subsystem for
// Linux, which reports "microsoft" or "wsl" in its release string.
func isWSL() bool {
	if runtime.GOOS != "linux" {
		return false
	}
	data, err := os.ReadFile("/proc/sys/kernel/osrelease")
	if err != nil {
		return false
	}
	release := strings.ToLower(string(data))
	return strings.Contains(release, "microsoft") || strings.Contains(release, "wsl")
}

// CandidatesForPlatform builds the ordered backend candidate list per
// the platform selection policy: WSL prefers PulseAudio then SAPI then
// the native daemon, plain Linux tries the daemon before PulseAudio,
// and Darwin uses only the native backend.
func CandidatesForPlatform() []Backend {
	switch {
	case isWSL():
		return []Backend{NewEspeak(), NewSAPI(), NewNative()}
	case runtime.GOOS == "linux":
		return []Backend{NewNative(), NewEspeak()}
	default:
		return []Backend{NewNative()}
	}
}
