// Package main provides the entry point for the guslee CLI.
package main

import (
	"os"

	"github.com/Chemchu/guslee/cmd/guslee/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
