package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"ytclip/internal/services"
)

var version = "0.3.0"

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "ytclip:", err)
		}
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the process exit status. Retrieval and
// transcode failures get distinct codes so callers can tell a network
// problem from an encoding one; everything else is a usage or
// validation failure.
func exitCode(err error) int {
	switch {
	case errors.Is(err, services.ErrRetrieval):
		return 2
	case errors.Is(err, services.ErrTranscode):
		return 3
	default:
		return 1
	}
}
