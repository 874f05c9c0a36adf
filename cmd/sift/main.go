// Package main is the entry point for the sift fuzzy finder.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/siftlabs/sift/internal/app"
	"github.com/siftlabs/sift/internal/source"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

// Exit codes. Cancellation follows the shell convention for SIGINT.
const (
	exitOK        = 0
	exitError     = 1
	exitCancelled = 130
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		opts  app.Options
		shell shellFlags
	)

	root := &cobra.Command{
		Use:   "sift [file | item...]",
		Short: "Interactive fuzzy finder for the terminal",
		Long: `sift filters a list of items interactively as you type.

Items come from stdin, a file argument, or direct arguments. The
selected items are printed to stdout, one per line.`,
		Args:          cobra.ArbitraryArgs,
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if script, ok := shell.selected(); ok {
				out, err := source.ShellIntegration(script)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}

			assignInput(&opts, args)
			return runFinder(cmd.Context(), opts)
		},
	}

	flags := root.Flags()
	flags.BoolVarP(&opts.Multi, "multi-select", "m", false, "allow selecting multiple items")
	flags.StringVar(&opts.Query, "query", "", "start with the given query")
	flags.StringVar(&opts.Prompt, "prompt", "", "prompt text before the query")
	flags.IntVar(&opts.Height, "height", 0, "fixed view height in rows")
	flags.IntVar(&opts.HeightPercent, "height-percentage", 0, "view height as a percentage of the terminal")
	flags.BoolVar(&opts.Dedupe, "dedupe", false, "drop near-duplicate items")
	flags.StringVar(&opts.ConfigPath, "config", "", "path to the config file")
	flags.BoolVar(&shell.zsh, "zsh", false, "print zsh integration script and exit")
	flags.BoolVar(&shell.bash, "bash", false, "print bash integration script and exit")
	flags.BoolVar(&shell.fish, "fish", false, "print fish integration script and exit")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		if err == errCancelled {
			return exitCancelled
		}
		fmt.Fprintf(os.Stderr, "sift: %v\n", err)
		return exitError
	}
	return exitOK
}

// errCancelled signals a cancelled session up through cobra without
// printing anything.
var errCancelled = fmt.Errorf("cancelled")

type shellFlags struct {
	zsh, bash, fish bool
}

func (s shellFlags) selected() (string, bool) {
	switch {
	case s.zsh:
		return "zsh", true
	case s.bash:
		return "bash", true
	case s.fish:
		return "fish", true
	}
	return "", false
}

// assignInput maps positional arguments: a single existing file is
// read as an item file, anything else is the item list itself.
func assignInput(opts *app.Options, args []string) {
	if len(args) == 1 {
		if info, err := os.Stat(args[0]); err == nil && !info.IsDir() {
			opts.File = args[0]
			return
		}
	}
	opts.Items = args
}

func runFinder(ctx context.Context, opts app.Options) error {
	application, err := app.New(opts)
	if err != nil {
		return err
	}
	defer application.Close()

	outcome, err := application.Run(ctx)
	if err != nil {
		return err
	}
	if outcome.Cancelled {
		return errCancelled
	}
	for _, item := range outcome.Selected {
		fmt.Println(item)
	}
	return nil
}
