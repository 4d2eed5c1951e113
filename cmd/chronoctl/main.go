// Command chronoctl drives the Chronotours stores from a terminal, keeping
// client state under a local home directory.
package main

import (
	"os"

	"github.com/pkordes/chronotours/cmd/chronoctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
