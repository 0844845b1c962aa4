package main

import (
	"os"

	"github.com/custodia-labs/keybridge-cli/internal/adapters/driving/cli"
)

func main() {
	// Cobra prints the error itself; the exit code is all that is left to do.
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
