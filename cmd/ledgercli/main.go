// Package main is the entry point for the ledgercli CLI.
package main

import (
	"os"

	"github.com/millspills/ledgercli/cmd/ledgercli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
