// Command tdsr is a console screen reader: it wraps a TTY program and
// speaks its output through a synthesized-speech backend.
package main

import (
	"fmt"
	"os"

	"github.com/tdsr-go/tdsr/internal/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
