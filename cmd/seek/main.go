package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/five82/seek/internal/app"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cmd := newRootCmd(func(opts app.Options) error {
		return app.Run(ctx, opts)
	})
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "seek: %v\n", err)
		return 1
	}
	return 0
}

// newRootCmd builds the command line. start receives the parsed options.
func newRootCmd(start func(app.Options) error) *cobra.Command {
	var (
		opts  app.Options
		globs []string
	)

	cmd := &cobra.Command{
		Use:   "seek [pattern]",
		Short: "Search files as you type, preview matches and open them in your editor",
		Long: heredoc.Doc(`
			seek runs ripgrep on every change to the search pattern, lists matches as
			they stream in and shows the selected match in context with bat.
			Enter opens the match in $EDITOR at the matching line.
		`),
		Example: heredoc.Doc(`
			  seek                         start with an empty pattern
			  seek 'func main' -g '*.go'   start searching Go files right away
			  seek --hidden -- -foo        search hidden files for "-foo"
		`),
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Query = args[0]
			}
			opts.Globs = strings.Join(globs, ";")
			return start(opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/seek/config.toml)")
	flags.StringVar(&opts.PrefsPath, "prefs", "", "preferences file (default ~/.config/seek/prefs.toml)")
	flags.StringVar(&opts.LogFile, "log-file", "", "write debug logs to this file")
	flags.DurationVar(&opts.Tick, "tick", 0, "UI refresh interval (default from config, 50ms)")
	flags.BoolVar(&opts.Hidden, "hidden", false, "search hidden files and directories")
	flags.BoolVar(&opts.NoPreview, "no-preview", false, "start with the preview pane closed")
	flags.StringArrayVarP(&globs, "glob", "g", nil, "include or exclude files matching this glob (repeatable)")

	return cmd
}
