// Package main provides the line-tracker CLI. It scans a directory tree,
// counts lines per file, appends the scan to a history log in the user's
// home directory and reports how the tree changed since the previous scan
// of the same path.
//
// Usage:
//
//	line-tracker -p <dir> [-ie <substr>] [-if <a,b,c>] [-iw] [-q]
//	line-tracker history [-p <dir>] [-o text|json|yaml]
//
// The single-dash spellings (-ie, -if, -iw, -help) are accepted alongside
// the long flag names.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"line-tracker/internal/config"
	"line-tracker/internal/diff"
	"line-tracker/internal/history"
	"line-tracker/internal/logging"
	"line-tracker/internal/report"
	"line-tracker/internal/scan"
)

// usageError marks errors caused by bad invocation rather than by the scan.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code: 0 on success or
// help, 2 for invocation errors (nothing is written), 1 for runtime errors.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(normalizeArgs(args))
	err := root.Execute()
	if err == nil {
		return 0
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	var ue usageError
	if errors.Is(err, config.ErrNoPath) || errors.Is(err, config.ErrBadFilter) || errors.As(err, &ue) {
		fmt.Fprintln(stderr, "Run 'line-tracker --help' for usage.")
		return 2
	}
	return 1
}

type globalFlags struct {
	historyFile string
	noColor     bool
	verbose     bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		g globalFlags
		f config.Flags
	)
	cmd := &cobra.Command{
		Use:   "line-tracker -p <path>",
		Short: "Track how many lines a codebase has and how that changes between scans",
		Long: `line-tracker counts the lines of every file under a directory, stores the
scan in a history log (~/.linecounter) and reports the change since the last
scan of the same path.`,
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f.IgnoreExtSet = cmd.Flags().Changed("ignore-ext")
			f.HistoryFile = g.historyFile
			f.NoColor = g.noColor
			f.Verbose = g.verbose
			cfg, err := config.New(f)
			if err != nil {
				return err
			}
			return runScan(cfg, stdout, stderr)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError{err} })

	pf := cmd.PersistentFlags()
	pf.StringVar(&g.historyFile, "history-file", "", "history log location (default ~/.linecounter)")
	pf.BoolVar(&g.noColor, "no-color", false, "disable coloured output")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "log debug details to stderr")

	fl := cmd.Flags()
	fl.StringVarP(&f.Path, "path", "p", "", "directory to scan (required)")
	fl.StringVar(&f.IgnoreExtension, "ignore-ext", "", "skip files whose path contains this substring (-ie)")
	fl.StringVar(&f.IgnoreFolders, "ignore-folders", "", "comma-separated substrings; skip paths containing any (-if)")
	fl.StringArrayVar(&f.IgnoreGlobs, "ignore-glob", nil, "doublestar pattern relative to the scan root to skip (repeatable)")
	fl.BoolVarP(&f.IgnoreWhitespace, "ignore-whitespace", "w", false, "do not count whitespace-only lines (-iw)")
	fl.BoolVarP(&f.Quiet, "quiet", "q", false, "do not print a line per scanned file")
	fl.BoolVar(&f.FileHistory, "file-history", false, "print every recorded change per file for this path")
	fl.BoolVar(&f.Patch, "patch", false, "print a unified diff of the file listing against the previous scan")

	cmd.AddCommand(newHistoryCmd(&g, stdout, stderr))
	return cmd
}

func noArgs(_ *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usageError{fmt.Errorf("unexpected argument %q (use -p <path>)", args[0])}
	}
	return nil
}

// runScan is one full tracker run: load history, scan, compare, persist,
// report. History is only written after the scan completed.
func runScan(cfg config.Config, stdout, stderr io.Writer) error {
	log := logging.New(stderr, cfg.Verbose)
	defer func() { _ = log.Sync() }()

	histPath, err := cfg.HistoryPath()
	if err != nil {
		return err
	}
	past, err := history.Load(histPath)
	if err != nil {
		return err
	}
	log.Debug("history loaded", zap.String("file", histPath), zap.Int("scans", len(past)))

	r := report.New(stdout, useColor(cfg.NoColor, stdout))
	opts := scan.Options{
		Filter:           cfg.Filter(),
		IgnoreWhitespace: cfg.IgnoreWhitespace,
		Logger:           log,
	}
	if !cfg.Quiet {
		opts.OnFile = r.File
	}
	start := time.Now()
	snap, err := scan.Build(cfg.Path, opts)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	res := history.Diff(snap, past)
	var files []history.FileHistory
	if cfg.FileHistory {
		files = history.FileHistories(snap, past)
	}
	var patch string
	if cfg.Patch {
		if patch, err = diff.Listing(res.Prior, snap, diff.Options{}); err != nil {
			return err
		}
	}

	if err := history.Save(histPath, past.Append(snap)); err != nil {
		return err
	}

	r.Scan(snap, elapsed, histPath)
	r.Analysis(res, snap)
	if cfg.FileHistory {
		r.FileHistory(files)
	}
	if cfg.Patch {
		r.Patch(patch)
	}
	return nil
}

// useColor enables ANSI colour only for terminals.
func useColor(disabled bool, w io.Writer) bool {
	if disabled {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
