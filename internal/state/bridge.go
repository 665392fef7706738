// Package state aggregates the config, compiled regexes, speech
// buffer, review cursor and synth into a single bridge that mediates
// between the terminal performer, the input handler stack, and the
// synth backend - so none of those leaf packages needs a reference
// back to the others (see the cyclic-references note this design
// carries forward from the teacher's Hooks pattern).
package state

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/tdsr-go/tdsr/internal/clipboard"
	"github.com/tdsr-go/tdsr/internal/config"
	"github.com/tdsr-go/tdsr/internal/debuglog"
	"github.com/tdsr-go/tdsr/internal/input"
	"github.com/tdsr-go/tdsr/internal/plugin"
	"github.com/tdsr-go/tdsr/internal/review"
	"github.com/tdsr-go/tdsr/internal/screen"
	"github.com/tdsr-go/tdsr/internal/speech"
	"github.com/tdsr-go/tdsr/internal/synth"
	"github.com/tdsr-go/tdsr/internal/terminal"
)

// Bridge owns everything a handler needs to turn a key or a terminal
// event into speech, without the handler or performer holding a
// reference back to it beyond the narrow Hooks closures.
type Bridge struct {
	mu sync.Mutex

	Config *config.Config
	Screen *screen.Screen
	Review *review.Cursor
	Synth  *synth.Synth
	Log    *debuglog.Logger

	buffer speech.Buffer
	muted  bool

	pendingCopy byte // holds the copy-mode choice byte until the handler fires
	lastCommand *string

	settleTimer *time.Timer
}

// New wires a Bridge around an already-loaded config, screen, and synth.
func New(cfg *config.Config, s *screen.Screen, syn *synth.Synth, log *debuglog.Logger) *Bridge {
	return &Bridge{
		Config: cfg,
		Screen: s,
		Review: review.New(s),
		Synth:  syn,
		Log:    log,
	}
}

func (b *Bridge) symbolOptions() speech.Options {
	return speech.Options{
		ProcessSymbols:  b.Config.ProcessSymbols,
		SymbolRegex:     speech.CompileSymbolRegex(b.Config.Symbols),
		SymbolTable:     b.Config.Symbols,
		RepeatedSymbols: b.Config.RepeatedSymbols,
		RepeatedValues:  b.Config.RepeatedSymbolsValues,
	}
}

// TerminalHooks returns the Hooks the terminal.Performer should use to
// report print/newline/bell activity.
func (b *Bridge) TerminalHooks() terminal.Hooks {
	return terminal.Hooks{
		AppendSpeech: b.appendSpeech,
		PopSpeech:    b.popSpeech,
		LinePause:    func() bool { return b.Config.LinePause },
		FlushSpeech:  b.flushFromTerminal,
	}
}

// InputHooks returns the Hooks the input handler stack should use to
// drive navigation, config, copy, and plugin actions.
func (b *Bridge) InputHooks() input.Hooks {
	return input.Hooks{
		Do:            b.do,
		ToggleSetting: b.toggleSetting,
		CommitValue:   b.commitValue,
		CopyLine:      b.copyLine,
		CopyScreen:    b.copyScreen,
		TriggerPlugin: b.triggerPlugin,
		PluginKeys: func() map[byte]bool {
			out := make(map[byte]bool, len(b.Config.Plugins))
			for k := range b.Config.Plugins {
				out[k] = true
			}
			return out
		},
	}
}

func (b *Bridge) appendSpeech(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.muted {
		return
	}
	b.buffer.Append(text)
	b.resetSettleTimerLocked()
}

func (b *Bridge) popSpeech() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buffer.Pop()
}

func (b *Bridge) flushFromTerminal(reason int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var r speech.FlushReason
	switch reason {
	case terminal.FlushBell:
		r = speech.FlushCancel
	default:
		r = speech.FlushLF
	}
	b.flushLocked(r, synth.Append)
}

// OnCursorSettle runs on the cursor-settle timer's own goroutine (see
// resetSettleTimerLocked) when the timer fires; it flushes any pending
// speech as a complete utterance.
func (b *Bridge) OnCursorSettle() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.flushLocked(speech.FlushSettleTimer, synth.Append)
}

func (b *Bridge) flushLocked(reason speech.FlushReason, mode synth.Interruption) {
	text, ok := b.buffer.Flush(reason, b.symbolOptions())
	if !ok || b.muted {
		return
	}
	if b.Log != nil {
		b.Log.Speak(text, reason)
	}
	b.Synth.Speak(text, mode)
}

func (b *Bridge) resetSettleTimerLocked() {
	d := time.Duration(b.Config.CursorDelayMS) * time.Millisecond
	if d <= 0 {
		return
	}
	if b.settleTimer != nil {
		b.settleTimer.Stop()
	}
	b.settleTimer = time.AfterFunc(d, b.OnCursorSettle)
}

// speakNow processes text through the symbol/repeat pipeline and speaks
// it immediately, bypassing the pending buffer. Used for review-cursor
// speak actions, which read already-rendered text rather than streamed
// output.
func (b *Bridge) speakNow(text string, mode synth.Interruption) {
	if b.muted {
		return
	}
	processed, ok := speech.Process(text, b.symbolOptions())
	if !ok {
		return
	}
	if b.Log != nil {
		b.Log.Speak(processed, speech.FlushExplicit)
	}
	b.Synth.Speak(processed, mode)
}

// do handles one navigation/control Action from the input handler
// stack.
func (b *Bridge) do(a input.Action) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch a {
	case input.ActionPrevLine:
		b.Review.PrevLine()
		b.speakNow(b.Review.CurrentLine(), synth.Interrupt)
	case input.ActionCurLine:
		b.speakLineElevated(review.ActionLine)
	case input.ActionNextLine:
		b.Review.NextLine()
		b.speakNow(b.Review.CurrentLine(), synth.Interrupt)
	case input.ActionPrevWord:
		b.Review.PrevWord()
		b.speakWordElevated(review.ActionWord)
	case input.ActionCurWord:
		b.speakWordElevated(review.ActionWord)
	case input.ActionNextWord:
		b.Review.NextWord()
		b.speakWordElevated(review.ActionWord)
	case input.ActionPrevChar:
		b.Review.PrevChar()
		b.speakCharElevated()
	case input.ActionCurChar:
		b.speakCharElevated()
	case input.ActionNextChar:
		b.Review.NextChar()
		b.speakCharElevated()
	case input.ActionTopOfScreen:
		b.Review.Top()
		b.speakNow(b.Review.CurrentLine(), synth.Interrupt)
	case input.ActionBottomOfScreen:
		b.Review.Bottom()
		b.speakNow(b.Review.CurrentLine(), synth.Interrupt)
	case input.ActionStartOfLine:
		b.Review.StartOfLine()
		b.speakCharElevated()
	case input.ActionEndOfLine:
		b.Review.EndOfLine()
		b.speakCharElevated()
	case input.ActionConfigMenu:
		b.speakNow("config", synth.Interrupt)
	case input.ActionCopyMode:
		b.applyPendingCopy()
	case input.ActionQuietToggle:
		b.muted = !b.muted
		if !b.muted {
			b.speakNow("quiet off", synth.Interrupt)
		}
	case input.ActionCancelSpeech:
		b.buffer.Clear()
		b.Synth.Cancel()
	case input.ActionSelectionToggle:
		b.toggleSelection()
	}
}

func (b *Bridge) speakLineElevated(act review.Action) {
	now := time.Now()
	if b.Review.Tap(act, now) {
		b.speakNow(review.SpellOut(b.Review.CurrentLine()), synth.Interrupt)
		return
	}
	b.speakNow(b.Review.CurrentLine(), synth.Interrupt)
}

func (b *Bridge) speakWordElevated(act review.Action) {
	now := time.Now()
	word := b.Review.CurrentWord()
	if b.Review.Tap(act, now) {
		b.speakNow(review.SpellOut(word), synth.Interrupt)
		return
	}
	b.speakNow(word, synth.Interrupt)
}

func (b *Bridge) speakCharElevated() {
	now := time.Now()
	r := b.Review.CurrentChar()
	if b.Review.Tap(review.ActionChar, now) {
		b.speakNow(review.PhoneticChar(r, b.Config.Symbols), synth.Interrupt)
		return
	}
	b.speakNow(string(r), synth.Interrupt)
}

func (b *Bridge) toggleSelection() {
	if b.Review.HasSelection() {
		text, ok := b.Review.EndSelection()
		if !ok {
			return
		}
		if spoken, err := clipboard.Write(text); err != nil {
			b.speakNow(spoken, synth.Interrupt)
			return
		}
		b.speakNow("selection copied", synth.Interrupt)
		return
	}
	b.Review.StartSelection()
	b.speakNow("selection start", synth.Interrupt)
}

// applyPendingCopy speaks the outcome of the copy-mode decision that
// copyLine/copyScreen already wrote to the clipboard.
func (b *Bridge) applyPendingCopy() {
	switch b.pendingCopy {
	case 'l':
		b.speakNow("line copied", synth.Interrupt)
	case 's':
		b.speakNow("screen copied", synth.Interrupt)
	}
	b.pendingCopy = 0
}

func (b *Bridge) copyLine() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if spoken, err := clipboard.Write(b.Review.CurrentLine()); err != nil {
		b.speakNow(spoken, synth.Interrupt)
		return
	}
	b.pendingCopy = 'l'
	b.applyPendingCopy()
}

func (b *Bridge) copyScreen() {
	b.mu.Lock()
	defer b.mu.Unlock()
	var lines []string
	for y := 0; y < b.Screen.Rows; y++ {
		lines = append(lines, b.Screen.RowText(y))
	}
	text := ""
	for i, l := range lines {
		if i > 0 {
			text += "\n"
		}
		text += l
	}
	if spoken, err := clipboard.Write(text); err != nil {
		b.speakNow(spoken, synth.Interrupt)
		return
	}
	b.pendingCopy = 's'
	b.applyPendingCopy()
}

func (b *Bridge) toggleSetting(key byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var name string
	var on bool
	switch key {
	case 'p':
		b.Config.ProcessSymbols = !b.Config.ProcessSymbols
		name, on = "process symbols", b.Config.ProcessSymbols
	case 'e':
		b.Config.KeyEcho = !b.Config.KeyEcho
		name, on = "key echo", b.Config.KeyEcho
	case 'c':
		b.Config.CursorTracking = !b.Config.CursorTracking
		name, on = "cursor tracking", b.Config.CursorTracking
	case 'l':
		b.Config.LinePause = !b.Config.LinePause
		name, on = "line pause", b.Config.LinePause
	case 's':
		b.Config.RepeatedSymbols = !b.Config.RepeatedSymbols
		name, on = "repeated symbols", b.Config.RepeatedSymbols
	default:
		return
	}
	state := "off"
	if on {
		state = "on"
	}
	b.speakNow(name+" "+state, synth.Interrupt)
}

func (b *Bridge) commitValue(key byte, text string) (bool, string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n, err := strconv.Atoi(text)
	if err != nil {
		b.speakNow("invalid value", synth.Interrupt)
		return false, "invalid value"
	}

	switch key {
	case 'r':
		if n < 0 || n > 100 {
			b.speakNow("rate out of range", synth.Interrupt)
			return false, "out of range"
		}
		b.Config.Rate = n
		b.Synth.SetRate(n)
	case 'v':
		if n < 0 || n > 100 {
			b.speakNow("volume out of range", synth.Interrupt)
			return false, "out of range"
		}
		b.Config.Volume = n
		b.Synth.SetVolume(n)
	case 'V':
		if n < 0 {
			b.speakNow("voice out of range", synth.Interrupt)
			return false, "out of range"
		}
		b.Config.VoiceIdx = n
		b.Synth.SetVoice(n)
	case 'd':
		if n < 0 {
			b.speakNow("cursor delay out of range", synth.Interrupt)
			return false, "out of range"
		}
		b.Config.CursorDelayMS = n
	default:
		return false, "unknown setting"
	}
	b.speakNow(fmt.Sprintf("%d", n), synth.Interrupt)
	return true, ""
}

// NoteCommand records the most recently submitted shell command line,
// for the [commands] plugin-gating regex.
func (b *Bridge) NoteCommand(cmd string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastCommand = &cmd
}

func (b *Bridge) triggerPlugin(key byte) {
	b.mu.Lock()
	name, ok := b.Config.Plugins[key]
	if !ok {
		b.mu.Unlock()
		return
	}
	if re, ok := b.Config.Commands[name]; ok {
		if b.lastCommand == nil || !re.MatchString(*b.lastCommand) {
			b.mu.Unlock()
			return
		}
	}
	lines := b.linesAboveReviewCursor()
	lastCmd := b.lastCommand
	b.mu.Unlock()

	req := plugin.Request{Lines: lines, LastCommand: lastCmd}
	spoken, err := plugin.Run(name, req, plugin.DefaultTimeout)
	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		if b.Log != nil {
			b.Log.PluginError(name, err)
		}
		b.speakNow("Plugin error", synth.Interrupt)
		return
	}
	for _, s := range spoken {
		b.speakNow(s, synth.Append)
	}
}

// linesAboveReviewCursor collects rows from above the review cursor
// upward until the configured prompt regex matches, bottom-to-top, per
// the plugin protocol.
func (b *Bridge) linesAboveReviewCursor() []string {
	var lines []string
	for y := b.Review.Y - 1; y >= 0; y-- {
		text := b.Screen.RowText(y)
		lines = append(lines, text)
		if b.Config.PromptRe != nil && b.Config.PromptRe.MatchString(text) {
			break
		}
	}
	return lines
}
