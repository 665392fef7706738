package speech

import "testing"

func TestFlushNoProcessingTrims(t *testing.T) {
	var b Buffer
	b.Append("  hi there  ")
	got, ok := b.Flush(FlushExplicit, Options{})
	if !ok {
		t.Fatal("expected ok")
	}
	if got != "hi there" {
		t.Errorf("got %q, want %q", got, "hi there")
	}
}

func TestFlushEmptyReturnsFalse(t *testing.T) {
	var b Buffer
	b.Append("   ")
	_, ok := b.Flush(FlushExplicit, Options{})
	if ok {
		t.Error("expected empty flush to return false")
	}
}

func TestPopRemovesLastCodepoint(t *testing.T) {
	var b Buffer
	b.Append("hiQ")
	b.Pop()
	got, _ := b.Flush(FlushExplicit, Options{})
	if got != "hi" {
		t.Errorf("got %q, want %q", got, "hi")
	}
}

func TestPopOnEmptyIsNoop(t *testing.T) {
	var b Buffer
	b.Pop()
	if b.Len() != 0 {
		t.Errorf("len = %d, want 0", b.Len())
	}
}

func TestSymbolSubstitution(t *testing.T) {
	table := map[rune]string{'!': "bang"}
	re := CompileSymbolRegex(table)
	opts := Options{ProcessSymbols: true, SymbolTable: table, SymbolRegex: re}
	got, ok := Process("hi!", opts)
	if !ok {
		t.Fatal("expected ok")
	}
	if got != "hi bang" {
		t.Errorf("got %q, want %q", got, "hi bang")
	}
}

func TestRepeatedSymbolCondensing(t *testing.T) {
	opts := Options{RepeatedSymbols: true, RepeatedValues: "="}
	got, ok := Process("====", opts)
	if !ok {
		t.Fatal("expected ok")
	}
	if got != "4 times equals" {
		t.Errorf("got %q, want %q", got, "4 times equals")
	}
}

func TestRepeatedSymbolBelowThresholdPassesThrough(t *testing.T) {
	opts := Options{RepeatedSymbols: true, RepeatedValues: "="}
	got, ok := Process("=a=", opts)
	if !ok {
		t.Fatal("expected ok")
	}
	if got != "=a=" {
		t.Errorf("got %q, want %q", got, "=a=")
	}
}

func TestProcessingPipelineIdempotent(t *testing.T) {
	table := map[rune]string{'!': "bang"}
	re := CompileSymbolRegex(table)
	opts := Options{
		ProcessSymbols: true, SymbolTable: table, SymbolRegex: re,
		RepeatedSymbols: true, RepeatedValues: "=",
	}
	once, _ := Process("hi!====", opts)
	twice, _ := Process(once, opts)
	if once != twice {
		t.Errorf("not idempotent: once=%q twice=%q", once, twice)
	}
}

func TestCondenseRepeatedUnknownCharFallsBackToLiteral(t *testing.T) {
	got := CondenseRepeated("zzz", "z")
	if got != "3 times z" {
		t.Errorf("got %q, want %q", got, "3 times z")
	}
}
