// Package cmd wires the cobra root command: tdsr is a single flat
// command with no subcommands, following the shape of the teacher's
// NewRootCmd but with one command instead of a tree of them.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tdsr-go/tdsr/internal/config"
	"github.com/tdsr-go/tdsr/internal/debuglog"
	"github.com/tdsr-go/tdsr/internal/ptyloop"
	"github.com/tdsr-go/tdsr/internal/screen"
	"github.com/tdsr-go/tdsr/internal/state"
	"github.com/tdsr-go/tdsr/internal/synth"
	"github.com/tdsr-go/tdsr/internal/version"
)

// NewRootCmd creates the tdsr root command.
func NewRootCmd() *cobra.Command {
	var debug bool
	var commandString string

	root := &cobra.Command{
		Use:     "tdsr [program] [args...]",
		Short:   "A console screen reader that wraps a TTY program",
		Version: version.Version,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			program, programArgs, err := resolveProgram(commandString, args)
			if err != nil {
				return err
			}

			log := debuglog.Nop()
			if debug {
				log = debuglog.New(true, "tdsr.log")
			}
			defer log.Close()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			cols, rows := 80, 24
			scr := screen.New(cols, rows)

			syn := synth.Select(synth.CandidatesForPlatform())
			log.SynthSelected(syn.BackendName())
			defer syn.Close()

			bridge := state.New(cfg, scr, syn, log)
			loop := ptyloop.New(bridge, scr, log)

			code, err := loop.Run(program, programArgs)
			if err != nil {
				return err
			}
			os.Exit(code)
			return nil
		},
	}

	root.Flags().BoolVarP(&debug, "debug", "d", false, "write a JSON-lines debug log to tdsr.log")
	root.Flags().StringVarP(&commandString, "command", "c", "", "run this command string in the shell and exit when it finishes")

	return root
}

// resolveProgram decides what to run: -c "command string" takes
// precedence and is handed to the shell whole; otherwise the first
// positional argument is the program, or $SHELL (falling back to
// /bin/sh) if none was given.
func resolveProgram(commandString string, args []string) (string, []string, error) {
	if commandString != "" {
		shell := os.Getenv("SHELL")
		if shell == "" {
			shell = "/bin/sh"
		}
		return shell, []string{"-c", commandString}, nil
	}
	if len(args) > 0 {
		return args[0], args[1:], nil
	}
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	return shell, nil, nil
}
