// Package main provides the tsugihagi CLI tool.
//
// Usage:
//
//	go tool tsugihagi <command> [arguments]
//
// Commands:
//
//	apply       Apply a patch to a document
//	watch       Re-apply a patch whenever the inputs change
//	generate    Code generation commands
//	help        Show help for a command
//	version     Show version information
package main

import (
	"fmt"
	"os"

	"github.com/yacchi/tsugihagi/internal/cmd/apply"
	"github.com/yacchi/tsugihagi/internal/cmd/generate"
	"github.com/yacchi/tsugihagi/internal/cmd/watch"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "apply":
		if err := apply.Run(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(apply.ExitCode(err))
		}
	case "watch":
		if err := watch.Run(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "generate":
		if err := generate.Run(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "help":
		if len(args) > 0 {
			printCommandHelp(args[0])
		} else {
			printUsage()
		}
	case "version":
		fmt.Printf("tsugihagi version %s\n", version)
	case "-h", "--help":
		printUsage()
	case "-v", "--version":
		fmt.Printf("tsugihagi version %s\n", version)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`tsugihagi - JSON Patch tool for structured documents

Usage:
  go tool tsugihagi <command> [arguments]

Commands:
  apply       Apply a patch to a document
  watch       Re-apply a patch whenever the inputs change
  generate    Code generation commands
  help        Show help for a command
  version     Show version information

Use "go tool tsugihagi help <command>" for more information about a command.`)
}

func printCommandHelp(cmd string) {
	switch cmd {
	case "apply":
		apply.PrintHelp()
	case "watch":
		watch.PrintHelp()
	case "generate":
		generate.PrintHelp()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		os.Exit(1)
	}
}
