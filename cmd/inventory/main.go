package main

import (
	"fmt"
	"os"

	"github.com/erazemk/inventory/internal/cli"
)

func main() {
	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		// Validation errors were already shown by the command's view.
		if !cli.Reported(err) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}
