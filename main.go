// ABOUTME: Entry point for the trackdemic CLI
// ABOUTME: Terminal client for the Trackdemic e-learning platform

package main

import (
	"fmt"
	"os"

	"github.com/trackdemic/trackdemic-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
