// Package apply provides the "apply" subcommand.
package apply

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/yacchi/tsugihagi"
	"github.com/yacchi/tsugihagi/format"
	"github.com/yacchi/tsugihagi/internal/cmd/codecs"
)

// Options holds the command-line options for the apply command.
type Options struct {
	PatchFile    string
	DocFormat    string
	PatchFormat  string
	Output       string
	OutputFormat string
}

// Run executes the apply command.
func Run(args []string) error {
	fs := flag.NewFlagSet("apply", flag.ExitOnError)

	var opts Options
	fs.StringVar(&opts.PatchFile, "patch", "", "patch file (required)")
	fs.StringVar(&opts.DocFormat, "format", "", "document format (default: by extension)")
	fs.StringVar(&opts.PatchFormat, "patch-format", "", "patch format (default: by extension)")
	fs.StringVar(&opts.Output, "output", "", "output file (default: stdout)")
	fs.StringVar(&opts.Output, "o", "", "shorthand for -output")
	fs.StringVar(&opts.OutputFormat, "output-format", "", "output format (default: same as document)")

	fs.Usage = func() {
		PrintHelp()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if opts.PatchFile == "" {
		PrintHelp()
		return fmt.Errorf("-patch flag is required")
	}

	remaining := fs.Args()
	if len(remaining) != 1 {
		PrintHelp()
		return fmt.Errorf("exactly one document file is required")
	}

	return runApply(remaining[0], opts)
}

func runApply(docFile string, opts Options) error {
	doc, docCodec, err := loadDocument(docFile, opts.DocFormat)
	if err != nil {
		return err
	}

	patch, err := loadPatch(opts.PatchFile, opts.PatchFormat)
	if err != nil {
		return err
	}

	result, err := tsugihagi.Apply(doc, patch)
	if err != nil {
		return fmt.Errorf("apply failed (status %d): %w", tsugihagi.HTTPStatus(err), err)
	}

	outCodec := docCodec
	if opts.OutputFormat != "" {
		outCodec, err = codecs.ByName(opts.OutputFormat)
		if err != nil {
			return err
		}
	} else if opts.Output != "" {
		if c, err := codecs.ByExtension(opts.Output); err == nil {
			outCodec = c
		}
	}

	encoded, err := outCodec.Encode(result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	if opts.Output == "" {
		_, err = os.Stdout.Write(encoded)
		return err
	}
	if err := os.WriteFile(opts.Output, encoded, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func loadDocument(path, formatName string) (any, format.Codec, error) {
	var data []byte
	var err error
	if path == "-" {
		if formatName == "" {
			return nil, nil, fmt.Errorf("-format is required when reading the document from stdin")
		}
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read document from stdin: %w", err)
		}
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read document: %w", err)
		}
	}
	codec, err := codecs.Resolve(formatName, path)
	if err != nil {
		return nil, nil, err
	}
	doc, err := codec.Decode(data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode document %s: %w", path, err)
	}
	return doc, codec, nil
}

// ExitCode maps an apply failure to a process exit code so scripts can
// distinguish the failure classes without parsing stderr:
//
//	nil                  -> 0
//	syntax_error (400)   -> 2
//	test_failed  (409)   -> 3
//	path_error   (422)   -> 4
//	anything else        -> 1
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if !tsugihagi.IsSyntaxError(err) && !tsugihagi.IsPathError(err) && !tsugihagi.IsTestFailed(err) {
		return 1
	}
	switch tsugihagi.HTTPStatus(err) {
	case 400:
		return 2
	case 409:
		return 3
	case 422:
		return 4
	}
	return 1
}

func loadPatch(path, formatName string) (tsugihagi.Patch, error) {
	codec, err := codecs.Resolve(formatName, path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read patch: %w", err)
	}
	patch, err := codec.DecodePatch(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode patch %s: %w", path, err)
	}
	return patch, nil
}

// PrintHelp prints help for the apply command.
func PrintHelp() {
	fmt.Fprintln(os.Stderr, `tsugihagi apply - Apply a patch to a document

Usage:
  go tool tsugihagi apply [options] <document-file>

The document file may be "-" to read from stdin (requires -format).

Options:
  -patch string          Patch file (required)
  -format string         Document format (default: by extension)
  -patch-format string   Patch format (default: by extension)
  -output, -o string     Output file (default: stdout)
  -output-format string  Output format (default: same as document)

Exit codes: 0 success, 2 syntax error, 3 failed test, 4 path error.

Examples:
  go tool tsugihagi apply -patch changes.json config.json
  go tool tsugihagi apply -patch changes.yaml -o out.toml config.toml
  cat config.json | go tool tsugihagi apply -format json -patch changes.json -`)
}
