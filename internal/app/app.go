// Package app runs one release inquisition: fetch the release tickets,
// read the commit log, reconcile the two and print the report.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/wahlandcase/release-inquisitor/internal/config"
	"github.com/wahlandcase/release-inquisitor/internal/git"
	"github.com/wahlandcase/release-inquisitor/internal/jira"
	"github.com/wahlandcase/release-inquisitor/internal/models"
	"github.com/wahlandcase/release-inquisitor/internal/prompt"
	"github.com/wahlandcase/release-inquisitor/internal/reconcile"
	"github.com/wahlandcase/release-inquisitor/internal/ui"
)

// TicketFetcher returns the tickets of a project fixed in a version
type TicketFetcher interface {
	FetchKnownTickets(ctx context.Context, project, fixVersion string) (models.KnownTicketSet, error)
}

// PasswordReader obtains the tracker password interactively
type PasswordReader interface {
	ReadPassword(label string) (string, error)
}

// FetcherFactory builds a TicketFetcher once credentials are known
type FetcherFactory func(cfg *config.Config, username, password string) TicketFetcher

// Options are the collaborators of an App; zero values get defaults
type Options struct {
	Stdout     io.Writer
	Stderr     io.Writer
	Password   PasswordReader
	NewFetcher FetcherFactory
	Log        git.LogSource
	Logger     *zap.Logger
}

// App holds the configuration and collaborators of a run
type App struct {
	cfg        *config.Config
	stdout     io.Writer
	stderr     io.Writer
	password   PasswordReader
	newFetcher FetcherFactory
	log        git.LogSource
	logger     *zap.Logger
}

// New creates an App
func New(cfg *config.Config, opts Options) (*App, error) {
	a := &App{
		cfg:        cfg,
		stdout:     opts.Stdout,
		stderr:     opts.Stderr,
		password:   opts.Password,
		newFetcher: opts.NewFetcher,
		log:        opts.Log,
		logger:     opts.Logger,
	}

	if a.stdout == nil {
		a.stdout = os.Stdout
	}
	if a.stderr == nil {
		a.stderr = os.Stderr
	}
	if a.logger == nil {
		a.logger = zap.NewNop()
	}
	if a.password == nil {
		a.password = prompt.NewTerminal()
	}
	if a.newFetcher == nil {
		a.newFetcher = a.jiraFetcher
	}
	if a.log == nil {
		src, err := git.NewLogSource(cfg.Git.Backend, a.logger)
		if err != nil {
			return nil, &config.ConfigError{Msg: err.Error()}
		}
		a.log = src
	}

	return a, nil
}

// jiraFetcher is the default FetcherFactory
func (a *App) jiraFetcher(cfg *config.Config, username, password string) TicketFetcher {
	client := jira.NewClient(cfg.SiteURL(), username, password)
	if cfg.Jira.RESTPath != "" {
		client.RESTPath = cfg.Jira.RESTPath
	}
	client.Logger = a.logger

	fetcher := jira.NewFetcher(client)
	fetcher.MaxResults = cfg.Jira.MaxResults
	return fetcher
}

// Execute validates the configuration and arguments, then runs.
// Nothing is prompted, fetched or executed until both are valid.
func (a *App) Execute(ctx context.Context, args []string) error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	inv, err := ParseInvocation(args)
	if err != nil {
		return err
	}

	return a.Run(ctx, inv)
}

// Run performs the inquisition for a parsed invocation
func (a *App) Run(ctx context.Context, inv Invocation) error {
	username := a.cfg.Jira.Username
	fmt.Fprintf(a.stderr, "Logging in to %s as %s\n", a.cfg.SiteURL(), username)

	password, err := a.password.ReadPassword("Password please: ")
	if err != nil {
		return err
	}

	fetcher := a.newFetcher(a.cfg, username, password)
	known, err := fetcher.FetchKnownTickets(ctx, inv.Project, inv.FixVersion)
	if err != nil {
		return err
	}
	a.logger.Debug("Known tickets loaded", zap.Int("count", len(known)))

	text, err := a.log.Log(ctx, inv.RepoPath, inv.From, inv.To)
	if err != nil {
		return err
	}

	groups := git.NewClassifier(inv.Project).ParseLog(text)
	a.logger.Debug("Commit log classified",
		zap.Int("commits", groups.Total()),
		zap.Int("groups", groups.Len()))

	result := reconcile.Reconcile(groups, known)

	renderer := ui.NewRenderer(a.stdout, ui.RenderOptions{
		NoColor:    a.cfg.Report.NoColor,
		ExemptTags: a.cfg.Report.ExemptTags,
	})
	return renderer.Render(result)
}
