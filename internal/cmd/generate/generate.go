// Package generate provides code generation subcommands.
package generate

import (
	"fmt"
	"os"

	"github.com/yacchi/tsugihagi/internal/cmd/generate/paths"
)

// Run executes the generate subcommand.
func Run(args []string) error {
	if len(args) < 1 {
		PrintHelp()
		return fmt.Errorf("missing subcommand")
	}

	subcmd := args[0]
	subargs := args[1:]

	switch subcmd {
	case "paths":
		return paths.Run(subargs)
	case "help", "-h", "--help":
		PrintHelp()
		return nil
	default:
		PrintHelp()
		return fmt.Errorf("unknown subcommand: %s", subcmd)
	}
}

// PrintHelp prints help for the generate command.
func PrintHelp() {
	fmt.Fprintln(os.Stderr, `tsugihagi generate - Code generation commands

Usage:
  go tool tsugihagi generate <subcommand> [arguments]

Subcommands:
  paths       Generate JSON Pointer path constants and functions from struct types

Use "go tool tsugihagi generate <subcommand> -h" for more information.`)
}
