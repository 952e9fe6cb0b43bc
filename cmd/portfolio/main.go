package main

import (
	"os"

	"github.com/vnquant/portfolio-daily/cmd/portfolio/commands"
)

// main is the entry point for the portfolio CLI.
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
