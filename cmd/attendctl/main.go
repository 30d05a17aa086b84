// Package main provides the entry point for attendctl, the
// command-line admin console for the IoT biometric attendance
// backend.
package main

import (
	"fmt"
	"os"

	"github.com/avelarde/attendctl-go/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
