package synth

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// nativeCmd returns the speak-daemon command for this platform: spd-say
// on the Linux speech-dispatcher daemon, say on Darwin.
func nativeCmd() string {
	if runtime.GOOS == "darwin" {
		return "say"
	}
	return "spd-say"
}

// Native wraps a system speech command. interrupt sends a stop first,
// matching the daemon/API backend's "interrupt cancels queued speech"
// rule.
type Native struct {
	cmd string
}

func NewNative() *Native {
	return &Native{cmd: nativeCmd()}
}

func (n *Native) Name() string { return "native:" + n.cmd }

func (n *Native) Probe(ctx context.Context) error {
	path, err := exec.LookPath(n.cmd)
	if err != nil {
		return fmt.Errorf("native: %s not found: %w", n.cmd, err)
	}
	// A no-op health call: say lists its voices and spd-say lists its
	// output modules, neither speaking anything.
	var cmd *exec.Cmd
	if n.cmd == "say" {
		cmd = exec.CommandContext(ctx, path, "-v", "?")
	} else {
		cmd = exec.CommandContext(ctx, path, "-O")
	}
	return cmd.Run()
}

func (n *Native) Speak(utterance string, mode Interruption) error {
	if mode == Interrupt {
		_ = n.Cancel()
	}
	return exec.Command(n.cmd, utterance).Start()
}

func (n *Native) Cancel() error {
	if n.cmd == "spd-say" {
		return exec.Command(n.cmd, "-C").Run()
	}
	return exec.Command("killall", "say").Run()
}

func (n *Native) SetRate(pct int) error {
	if n.cmd != "spd-say" {
		return nil // say takes rate per-utterance via -r; nothing persistent to set here
	}
	rate := pct*2 - 100 // spd-say rate is -100..100, normalize from 0..100
	return exec.Command(n.cmd, "-r", fmt.Sprint(rate), "").Run()
}

func (n *Native) SetVolume(pct int) error {
	if n.cmd != "spd-say" {
		return nil
	}
	vol := pct*2 - 100
	return exec.Command(n.cmd, "-i", fmt.Sprint(vol), "").Run()
}

func (n *Native) SetVoice(idx int) error {
	return nil // voice selection by name, not index, is left to config-level tooling
}

func (n *Native) ListVoices() ([]string, error) {
	if n.cmd != "spd-say" {
		out, err := exec.Command("say", "-v", "?").Output()
		return splitLines(string(out)), err
	}
	out, err := exec.Command(n.cmd, "-L").Output()
	return splitLines(string(out)), err
}

func (n *Native) Close() error { return nil }

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == '\n' {
			if i > start {
				lines = append(lines, s[start:i])
			}
			start = i + 1
		}
	}
	return lines
}
