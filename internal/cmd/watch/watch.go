// Package watch provides the "watch" subcommand.
package watch

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"

	"github.com/yacchi/tsugihagi"
	"github.com/yacchi/tsugihagi/internal/cmd/codecs"
)

// Options holds the command-line options for the watch command.
type Options struct {
	PatchFile   string
	DocFormat   string
	PatchFormat string
	Output      string
}

// Run executes the watch command.
func Run(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)

	var opts Options
	fs.StringVar(&opts.PatchFile, "patch", "", "patch file (required)")
	fs.StringVar(&opts.DocFormat, "format", "", "document format (default: by extension)")
	fs.StringVar(&opts.PatchFormat, "patch-format", "", "patch format (default: by extension)")
	fs.StringVar(&opts.Output, "output", "", "output file (required)")

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
	if opts.Output == "" {
		PrintHelp()
		return fmt.Errorf("-output flag is required")
	}

	remaining := fs.Args()
	if len(remaining) != 1 {
		PrintHelp()
		return fmt.Errorf("exactly one document file is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runWatch(ctx, remaining[0], opts)
}

func runWatch(ctx context.Context, docFile string, opts Options) error {
	// First application fails fast on bad inputs.
	if err := applyOnce(docFile, opts); err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer w.Close()

	// Watch the directories containing the files rather than the files
	// themselves. This handles atomic writes (temp file + rename) and
	// file recreation.
	watched := map[string]bool{
		filepath.Base(docFile):        true,
		filepath.Base(opts.PatchFile): true,
	}
	dirs := map[string]bool{
		filepath.Dir(docFile):        true,
		filepath.Dir(opts.PatchFile): true,
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", dir, err)
		}
	}

	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Base(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if err := applyOnce(docFile, opts); err != nil {
				// Keep watching through transient errors such as a
				// half-written file.
				fmt.Fprintf(os.Stderr, "watch: %v\n", err)
				continue
			}
			fmt.Fprintf(os.Stderr, "watch: updated %s\n", opts.Output)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch: %v\n", err)
		case <-ctx.Done():
			return nil
		}
	}
}

func applyOnce(docFile string, opts Options) error {
	docCodec, err := codecs.Resolve(opts.DocFormat, docFile)
	if err != nil {
		return err
	}
	patchCodec, err := codecs.Resolve(opts.PatchFormat, opts.PatchFile)
	if err != nil {
		return err
	}
	outCodec := docCodec
	if c, err := codecs.ByExtension(opts.Output); err == nil {
		outCodec = c
	}

	docData, err := os.ReadFile(docFile)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}
	doc, err := docCodec.Decode(docData)
	if err != nil {
		return fmt.Errorf("failed to decode document %s: %w", docFile, err)
	}

	patchData, err := os.ReadFile(opts.PatchFile)
	if err != nil {
		return fmt.Errorf("failed to read patch: %w", err)
	}
	patch, err := patchCodec.DecodePatch(patchData)
	if err != nil {
		return fmt.Errorf("failed to decode patch %s: %w", opts.PatchFile, err)
	}

	result, err := tsugihagi.Apply(doc, patch)
	if err != nil {
		return fmt.Errorf("apply failed (status %d): %w", tsugihagi.HTTPStatus(err), err)
	}

	encoded, err := outCodec.Encode(result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if err := os.WriteFile(opts.Output, encoded, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// PrintHelp prints help for the watch command.
func PrintHelp() {
	fmt.Fprintln(os.Stderr, `tsugihagi watch - Re-apply a patch whenever the inputs change

Usage:
  go tool tsugihagi watch [options] <document-file>

Options:
  -patch string          Patch file (required)
  -output string         Output file (required)
  -format string         Document format (default: by extension)
  -patch-format string   Patch format (default: by extension)

The document and patch files are watched with fsnotify; on every change
the patch is re-applied and the output file is rewritten. Errors during
re-application are reported but do not stop the watch.

Example:
  go tool tsugihagi watch -patch overrides.yaml -output merged.json base.json`)
}
