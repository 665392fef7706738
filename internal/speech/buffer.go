// Package speech implements the pending-utterance buffer: accumulation
// of printed text, symbol substitution, repeated-character condensing,
// and the trim-and-flush that turns buffered text into an utterance.
package speech

import (
	"regexp"
	"strconv"
	"strings"
)

// FlushReason records what triggered a flush, for debug logging.
type FlushReason int

const (
	FlushLF FlushReason = iota
	FlushCursorMove
	FlushExplicit
	FlushSettleTimer
	FlushCancel
)

// Buffer accumulates UTF-8 text pending speech.
type Buffer struct {
	runes      []rune
	LastReason FlushReason
}

// Append adds text to the end of the buffer.
func (b *Buffer) Append(text string) {
	b.runes = append(b.runes, []rune(text)...)
}

// Pop removes the last codepoint in O(1). A no-op on an empty buffer.
func (b *Buffer) Pop() {
	if len(b.runes) == 0 {
		return
	}
	b.runes = b.runes[:len(b.runes)-1]
}

// Clear discards all pending text.
func (b *Buffer) Clear() {
	b.runes = b.runes[:0]
}

// Len reports the number of pending codepoints.
func (b *Buffer) Len() int {
	return len(b.runes)
}

// Options controls the flush-time processing pipeline. SymbolRegex and
// SymbolTable are derived state recomputed by the config/state bridge
// whenever the underlying tables change.
type Options struct {
	ProcessSymbols  bool
	SymbolRegex     *regexp.Regexp
	SymbolTable     map[rune]string
	RepeatedSymbols bool
	RepeatedValues  string
}

// Flush runs the processing pipeline over the buffered text and clears
// the buffer. It returns ("", false) if the result is empty after
// trimming.
func (b *Buffer) Flush(reason FlushReason, opts Options) (string, bool) {
	b.LastReason = reason
	text := string(b.runes)
	b.Clear()
	return Process(text, opts)
}

// Process runs the symbol-substitution and repeated-character-condense
// pipeline over text without touching a Buffer. Exposed separately so
// callers (e.g. the review cursor speaking a line) can reuse it without
// going through the pending buffer.
func Process(text string, opts Options) (string, bool) {
	if opts.ProcessSymbols && opts.SymbolRegex != nil {
		text = ApplySymbols(text, opts.SymbolTable, opts.SymbolRegex)
	}
	if opts.RepeatedSymbols && opts.RepeatedValues != "" {
		text = CondenseRepeated(text, opts.RepeatedValues)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	return text, true
}

// CompileSymbolRegex builds a character-class alternation over the keys
// of table. Using a class alternation instead of a more expressive
// pattern keeps this portable to regex engines that lack backreferences
// (see CondenseRepeated, which can't rely on \1 for the same reason).
func CompileSymbolRegex(table map[rune]string) *regexp.Regexp {
	if len(table) == 0 {
		return nil
	}
	var b strings.Builder
	b.WriteByte('[')
	for r := range table {
		if r == '-' {
			// QuoteMeta leaves '-' alone, but inside a class it would
			// form a range between its neighbours.
			b.WriteString(`\-`)
			continue
		}
		b.WriteString(regexp.QuoteMeta(string(r)))
	}
	b.WriteByte(']')
	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil
	}
	return re
}

// ApplySymbols replaces each matched codepoint with its word, padded
// with spaces so adjacent alphabetic text stays intelligible.
func ApplySymbols(text string, table map[rune]string, re *regexp.Regexp) string {
	return re.ReplaceAllStringFunc(text, func(m string) string {
		r := []rune(m)[0]
		word, ok := table[r]
		if !ok {
			return m
		}
		return " " + word + " "
	})
}

// CondenseRepeated replaces runs of length >= 2 of any character in
// values with "N times CHARNAME". Runs shorter than 2 pass through
// unchanged. Implemented as a manual scan rather than a regex with a
// backreference, since the target regex engine may not support one.
func CondenseRepeated(text string, values string) string {
	if values == "" {
		return text
	}
	set := make(map[rune]bool, len(values))
	for _, v := range values {
		set[v] = true
	}

	runes := []rune(text)
	var out strings.Builder
	i := 0
	for i < len(runes) {
		r := runes[i]
		if !set[r] {
			out.WriteRune(r)
			i++
			continue
		}
		j := i + 1
		for j < len(runes) && runes[j] == r {
			j++
		}
		count := j - i
		if count >= 2 {
			out.WriteString(describeRun(count, r))
		} else {
			out.WriteRune(r)
		}
		i = j
	}
	return out.String()
}

func describeRun(count int, r rune) string {
	name := charName(r)
	return strconv.Itoa(count) + " times " + name
}

// charName gives the run-condenser a word for the repeated character,
// independent of the symbol table (which may not be loaded at this
// call site). Falls back to the literal character.
func charName(r rune) string {
	if name, ok := repeatedCharNames[r]; ok {
		return name
	}
	return string(r)
}

var repeatedCharNames = map[rune]string{
	'=': "equals", '-': "dash", '*': "star", '.': "dot", '_': "underscore",
	'#': "pound", '~': "tilde", '+': "plus", '!': "bang", '/': "slash",
}
