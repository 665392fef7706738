// Package ptyloop owns the raw-mode terminal, the child PTY, and the
// event loop that fans bytes between them through the VT parser, the
// input handler stack, and the speech bridge. The teacher drives an
// equivalent loop with goroutine-fed channels and select (see
// overlay.Run's ReadInput/PipeOutput/WatchResize goroutines and
// session.lifecycleLoop's channel-select); that is the idiomatic Go
// stand-in for the spec's self-pipe plus readiness mux.
package ptyloop

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/term"

	"github.com/tdsr-go/tdsr/internal/debuglog"
	"github.com/tdsr-go/tdsr/internal/input"
	"github.com/tdsr-go/tdsr/internal/screen"
	"github.com/tdsr-go/tdsr/internal/state"
	"github.com/tdsr-go/tdsr/internal/terminal"
	"github.com/tdsr-go/tdsr/internal/vtparser"
)

// Loop wires the PTY, the VT parser/performer, the input handler
// stack, and the state bridge together and drives them from a single
// event loop goroutine.
type Loop struct {
	Bridge *state.Bridge
	Screen *screen.Screen
	Perf   *terminal.Performer
	Parser *vtparser.Parser
	Stack  *input.Stack
	Log    *debuglog.Logger

	master *os.File
	cmd    *exec.Cmd

	decoder input.Decoder
	echo    echoSuppressor

	stdinCh chan []byte
	ptyCh   chan []byte
	sigCh   chan os.Signal
}

// New builds a Loop around an already-sized Screen and Bridge.
func New(b *state.Bridge, s *screen.Screen, log *debuglog.Logger) *Loop {
	perf := terminal.New(s, b.TerminalHooks())
	return &Loop{
		Bridge: b,
		Screen: s,
		Perf:   perf,
		Parser: vtparser.New(perf),
		Stack:  input.NewStack(input.NewDefault(b.InputHooks())),
		Log:    log,
	}
}

// Run allocates a PTY sized to the real terminal, puts stdin into raw
// mode with a guaranteed restore on any exit path, spawns program with
// args on the PTY slave, and drives the event loop until the child
// exits or a terminating signal arrives. It returns the child's exit
// code.
func (l *Loop) Run(program string, args []string) (int, error) {
	fd := int(os.Stdin.Fd())
	cols, rows, err := term.GetSize(fd)
	if err != nil {
		return 1, fmt.Errorf("get terminal size (is this a terminal?): %w", err)
	}
	l.Screen.Resize(cols, rows)

	l.cmd = exec.Command(program, args...)
	l.master, err = pty.StartWithSize(l.cmd, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		return 1, fmt.Errorf("start pty: %w", err)
	}
	defer l.master.Close()

	restore, err := term.MakeRaw(fd)
	if err != nil {
		return 1, fmt.Errorf("set raw mode: %w", err)
	}
	defer term.Restore(fd, restore)

	l.sigCh = make(chan os.Signal, 4)
	signal.Notify(l.sigCh, syscall.SIGWINCH, syscall.SIGHUP, syscall.SIGTERM)
	defer signal.Stop(l.sigCh)

	l.stdinCh = make(chan []byte, 16)
	l.ptyCh = make(chan []byte, 16)
	go readInto(os.Stdin, l.stdinCh)
	go readInto(l.master, l.ptyCh)

	return l.loop()
}

// readInto copies reads from r into ch as they arrive, closing ch on
// EOF or error so the main loop can notice the source went away.
func readInto(r *os.File, ch chan<- []byte) {
	defer close(ch)
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			cp := make([]byte, n)
			copy(cp, buf[:n])
			ch <- cp
		}
		if err != nil {
			return
		}
	}
}

func (l *Loop) loop() (int, error) {
	for {
		select {
		case b, ok := <-l.stdinCh:
			if !ok {
				return l.waitChild()
			}
			l.handleStdin(b)

		case b, ok := <-l.ptyCh:
			if !ok {
				return l.waitChild()
			}
			l.handlePTYOutput(b)

		case sig := <-l.sigCh:
			switch sig {
			case syscall.SIGWINCH:
				l.handleResize()
			case syscall.SIGHUP, syscall.SIGTERM:
				l.cmd.Process.Signal(sig)
				return l.waitChild()
			}
		}
	}
}

func (l *Loop) handleStdin(b []byte) {
	keys := l.decoder.Decode(b)
	for _, k := range keys {
		switch l.Stack.Dispatch(k) {
		case input.Passthrough:
			l.master.Write(k.Raw)
			l.echo.NoteStdin(k.Raw)
		}
	}
}

func (l *Loop) handlePTYOutput(b []byte) {
	matched := l.echo.MatchLen(b)
	if matched > 0 && !l.Bridge.Config.KeyEcho {
		l.Perf.Suppressed = true
		l.Parser.Write(b[:matched])
		l.Perf.Suppressed = false
		b = b[matched:]
	}
	if len(b) > 0 {
		l.Parser.Write(b)
	}
}

func (l *Loop) handleResize() {
	fd := int(os.Stdin.Fd())
	cols, rows, err := term.GetSize(fd)
	if err != nil {
		return
	}
	l.Screen.Resize(cols, rows)
	pty.Setsize(l.master, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if l.Log != nil {
		l.Log.Resize(cols, rows)
	}
}

// waitChild waits for the child and returns its exit code (1 if it
// died on a signal, per the CLI's exit-code contract). It does not read
// any PTY output still queued on ptyCh.
func (l *Loop) waitChild() (int, error) {
	err := l.cmd.Wait()
	if err == nil {
		return 0, nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		if code := exitErr.ExitCode(); code >= 0 {
			return code, nil
		}
	}
	return 1, nil
}
