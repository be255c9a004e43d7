// cmd/boardpack/main.go
//
// Entry point for the boardpack CLI. Running `boardpack` with no arguments
// opens the landing page in the terminal; subcommands check the page copy and
// list captured leads.

package main

import (
	"os"

	"github.com/kingrea/boardpack/cmd/boardpack/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
