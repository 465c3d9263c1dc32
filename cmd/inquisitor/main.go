package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/wahlandcase/release-inquisitor/internal/app"
	"github.com/wahlandcase/release-inquisitor/internal/config"
	"github.com/wahlandcase/release-inquisitor/internal/git"
	"github.com/wahlandcase/release-inquisitor/internal/jira"
	"github.com/wahlandcase/release-inquisitor/internal/termfix"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const example = `  # Set up credentials for interacting with JIRA
  export JIRA_USERNAME='adrien'

  # Inquire about all commits between the 2.0.2 tag and the latest commit of
  # the current branch, and compare against issues with a fixVersion of '2.1.0'
  # in the FACT project.
  inquisitor ~/src/facter FACT 2.0.2 HEAD 2.1.0

  # Inquire about all commits between the 3.6.2 tag and the 'master' branch,
  # and compare against issues with a fixVersion of '3.7.0' in the PUP project.
  inquisitor ~/src/puppet PUP 3.6.2 master 3.7.0`

type flags struct {
	configPath string
	gitBackend string
	noColor    bool
	verbose    bool
}

func main() {
	os.Exit(execute(newRootCmd(os.Stdout, os.Stderr), os.Args[1:], os.Stderr))
}

// execute runs cmd and returns the process exit code. The run is not
// cancellable; an interrupt at the password prompt ends the process there.
func execute(cmd *cobra.Command, args []string, stderr io.Writer) int {
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		printError(stderr, cmd, err)
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:           "inquisitor <repo-path> <project-key> <from-rev> <to-rev> <fix-version>",
		Short:         "Reconcile a release's git commits against its Jira tickets",
		Example:       example,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, f, stdout, stderr)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to config file (default: <user config dir>/inquisitor.toml)")
	cmd.Flags().StringVar(&f.gitBackend, "git-backend", "", "How to read the commit log: cli or go-git")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false, "Disable coloured output")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Log debug output to stderr")

	return cmd
}

func run(cmd *cobra.Command, args []string, f flags, stdout, stderr io.Writer) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if f.gitBackend != "" {
		cfg.Git.Backend = f.gitBackend
	}
	if f.noColor || termfix.NoColorRequested() {
		cfg.Report.NoColor = true
	}

	logger, err := newLogger(f.verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	a, err := app.New(cfg, app.Options{
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	return a.Execute(cmd.Context(), args)
}

// newLogger builds a console logger on stderr, warn level unless verbose
func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

// printError reports a failed run the way each error kind calls for
func printError(w io.Writer, cmd *cobra.Command, err error) {
	var fetchErr *jira.FetchError
	switch {
	case config.IsConfigError(err):
		fmt.Fprintf(w, "Error: %s\n", err)
		fmt.Fprint(w, cmd.UsageString())
	case errors.As(err, &fetchErr):
		fmt.Fprintf(w, "Could not query JIRA: %s\n", fetchErr)
	case git.IsRevisionNotFound(err):
		fmt.Fprintf(w, "Error: %s (check <from-rev> and <to-rev>)\n", err)
	default:
		fmt.Fprintf(w, "Error: %s\n", err)
	}
}
