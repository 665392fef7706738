package synth

import (
	"context"
	"fmt"
	"os/exec"
	"sync"
)

// Espeak pipes synthesized audio to PulseAudio via espeak, spawning one
// child per utterance. Only one utterance plays at a time and there is
// no queue: a speak with Interrupt kills whatever is running first,
// while a speak with Append during playback returns a "busy" error and
// that utterance is not spoken.
type Espeak struct {
	mu      sync.Mutex
	running *exec.Cmd
	rate    int
	volume  int
	voice   int
}

func NewEspeak() *Espeak {
	return &Espeak{rate: 50, volume: 80}
}

func (e *Espeak) Name() string { return "espeak+pulseaudio" }

func (e *Espeak) Probe(ctx context.Context) error {
	if _, err := exec.LookPath("espeak"); err != nil {
		return fmt.Errorf("espeak: not found: %w", err)
	}
	if _, err := exec.LookPath("pactl"); err != nil {
		return fmt.Errorf("espeak: pactl (pulseaudio) not found: %w", err)
	}
	cmd := exec.CommandContext(ctx, "pactl", "info")
	return cmd.Run()
}

func (e *Espeak) Speak(utterance string, mode Interruption) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if mode == Interrupt {
		e.killLocked()
	} else if e.running != nil {
		// Refuse to overlap; the utterance is dropped and nothing
		// here re-speaks it later.
		return fmt.Errorf("espeak: busy")
	}

	args := []string{
		"-s", fmt.Sprint(espeakWPM(e.rate)),
		"-a", fmt.Sprint(e.volume * 2), // espeak amplitude is 0..200
		"-v", voiceName(e.voice),
		utterance,
	}
	cmd := exec.Command("espeak", args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	e.running = cmd
	go func(c *exec.Cmd) {
		c.Wait()
		e.mu.Lock()
		if e.running == c {
			e.running = nil
		}
		e.mu.Unlock()
	}(cmd)
	return nil
}

func (e *Espeak) Cancel() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.killLocked()
	return nil
}

func (e *Espeak) killLocked() {
	if e.running != nil && e.running.Process != nil {
		e.running.Process.Kill()
		e.running = nil
	}
}

func (e *Espeak) SetRate(pct int) error {
	e.mu.Lock()
	e.rate = pct
	e.mu.Unlock()
	return nil
}

func (e *Espeak) SetVolume(pct int) error {
	e.mu.Lock()
	e.volume = pct
	e.mu.Unlock()
	return nil
}

func (e *Espeak) SetVoice(idx int) error {
	e.mu.Lock()
	e.voice = idx
	e.mu.Unlock()
	return nil
}

func (e *Espeak) ListVoices() ([]string, error) {
	out, err := exec.Command("espeak", "--voices").Output()
	if err != nil {
		return nil, err
	}
	return splitLines(string(out)), nil
}

func (e *Espeak) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.killLocked()
	return nil
}

// espeakWPM maps 0..100 (slowest..fastest) onto espeak's words-per-minute
// range, 80..450, with 50 landing near espeak's own default of 175.
func espeakWPM(pct int) int {
	if pct <= 50 {
		return 80 + (pct*(175-80))/50
	}
	return 175 + ((pct-50)*(450-175))/50
}

func voiceName(idx int) string {
	if idx <= 0 {
		return "en"
	}
	return fmt.Sprintf("en+variant%d", idx)
}
