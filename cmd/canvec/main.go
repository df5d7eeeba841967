package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rskelly/canvec/internal/cli"
	"github.com/rskelly/canvec/pkg/canvec"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(canvec.ExitPanic)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(canvec.ExitCodeForError(err))
	}
}
