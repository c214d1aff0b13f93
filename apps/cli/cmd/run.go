package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/kyrosle/xdiff/packages/core/args"
	"github.com/kyrosle/xdiff/packages/core/config"
	"github.com/kyrosle/xdiff/packages/core/runner"
	"github.com/kyrosle/xdiff/packages/output"
)

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

type runOptions struct {
	profile string
	extra   []string
	watch   bool
	output  string
}

func newRunCmd(m mode) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Send the requests of a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCommand(cmd, m, opts)
		},
	}
	if m.diff {
		cmd.Long = `Send req1 and req2 of a profile and print the diff of the responses.

Override tokens passed with -e are applied to both requests:
  key=value     query parameter
  %key=value    header (%key:value is accepted too)
  @key=value    body field

Values that parse as JSON keep their type, so a=1 sets the number 1.

Examples:
  xdiff run -p todo
  xdiff run -p todo -e a=100 -e %user-agent=xdiff
  xdiff run -p todo --watch`
	} else {
		cmd.Long = `Send the request of a profile and print the response.

Examples:
  xreq run -p todo
  xreq run -p todo -e id=2 -e @done=true`
	}

	cmd.Flags().StringVarP(&opts.profile, "profile", "p", "", "Name of the profile to run")
	cmd.Flags().StringArrayVarP(&opts.extra, "extra-params", "e", nil, "Override a query (key=value), header (%key=value) or body (@key=value) field")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Watch the profile file and re-run on changes")
	cmd.Flags().StringVarP(&opts.output, "output", "o", getEnvString("XDIFF_OUTPUT", output.FormatConsole), "Output format: console, json (env: XDIFF_OUTPUT)")
	_ = cmd.MarkFlagRequired("profile")
	return cmd
}

func runCommand(cmd *cobra.Command, m mode, opts *runOptions) error {
	extra, err := args.Parse(opts.extra)
	if err != nil {
		return err
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	formatter, err := output.NewFormatter(opts.output, w, isInteractive(w, settings))
	if err != nil {
		return err
	}

	r := newRunner(cmd, settings)
	logger := newLogger(cmd, settings)
	run := func(ctx context.Context) error {
		if logger != nil {
			logger.Printf("loading profile %s from %s", opts.profile, configFlag)
		}
		return runProfile(ctx, m, r, formatter, opts.profile, extra)
	}

	if !opts.watch {
		return run(cmd.Context())
	}
	return watchConfig(cmd, formatter, run)
}

func runProfile(ctx context.Context, m mode, r *runner.Runner, f output.Formatter, name string, extra args.Args) error {
	if m.diff {
		c, err := config.LoadDiffConfig(configFlag)
		if err != nil {
			return err
		}
		p, ok := c.GetProfile(name)
		if !ok {
			return config.ProfileNotFound(name, configFlag)
		}
		result, err := r.Diff(ctx, p, extra)
		if err != nil {
			return err
		}
		f.FormatDiff(name, result)
		return nil
	}

	c, err := config.LoadRequestConfig(configFlag)
	if err != nil {
		return err
	}
	p, ok := c.GetProfile(name)
	if !ok {
		return config.ProfileNotFound(name, configFlag)
	}
	result, err := r.Request(ctx, p, extra)
	if err != nil {
		return err
	}
	f.FormatResponse(name, result)
	return nil
}

// watchConfig runs once, then again whenever the profile file is written,
// until interrupted. Failed runs are reported and watching continues.
func watchConfig(cmd *cobra.Command, f output.Formatter, run func(context.Context) error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		f.FormatError(err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	target, err := filepath.Abs(configFlag)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", configFlag, err)
	}
	// Editors often replace the file, so watch its directory instead.
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "\nWatching %s for changes... (press Ctrl+C to stop)\n", configFlag)

	rerun := serialRunner(f, run)
	var debounceTimer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(WatchDebounceDelay, func() {
				rerun(ctx, func() {
					fmt.Fprintf(cmd.ErrOrStderr(), "\nFile changed: %s\nRe-running...\n\n", configFlag)
				})
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			f.FormatError(fmt.Errorf("watcher error: %w", err))
		}
	}
}

// serialRunner wraps run so that calls from separate timer goroutines never
// overlap. before is called under the same lock, ahead of run.
func serialRunner(f output.Formatter, run func(context.Context) error) func(context.Context, func()) {
	var mu sync.Mutex
	return func(ctx context.Context, before func()) {
		mu.Lock()
		defer mu.Unlock()
		if before != nil {
			before()
		}
		if err := run(ctx); err != nil {
			f.FormatError(err)
		}
	}
}
