// ABOUTME: Entry point for the fitforge CLI.
// ABOUTME: Invokes the root Cobra command and renders failures.
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		renderError(os.Stderr, err)
		os.Exit(1)
	}
}
