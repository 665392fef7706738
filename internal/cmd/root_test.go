package cmd

import "testing"

func TestResolveProgramUsesCommandString(t *testing.T) {
	program, args, err := resolveProgram("ls -la", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(args) != 2 || args[0] != "-c" || args[1] != "ls -la" {
		t.Errorf("args = %v", args)
	}
	if program == "" {
		t.Error("expected a non-empty shell program")
	}
}

func TestResolveProgramUsesPositionalArgs(t *testing.T) {
	program, args, err := resolveProgram("", []string{"vim", "file.txt"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if program != "vim" {
		t.Errorf("program = %q, want vim", program)
	}
	if len(args) != 1 || args[0] != "file.txt" {
		t.Errorf("args = %v", args)
	}
}

func TestResolveProgramFallsBackToShell(t *testing.T) {
	program, args, err := resolveProgram("", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if program == "" {
		t.Error("expected a non-empty shell fallback")
	}
	if args != nil {
		t.Errorf("args = %v, want nil", args)
	}
}

func TestNewRootCmdHasExpectedFlags(t *testing.T) {
	root := NewRootCmd()
	if root.Flags().Lookup("debug") == nil {
		t.Error("expected a --debug flag")
	}
	if root.Flags().Lookup("command") == nil {
		t.Error("expected a --command flag")
	}
}
