package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"go.uber.org/zap"
)

// Backend names accepted by NewLogSource
const (
	BackendCLI   = "cli"
	BackendGoGit = "go-git"
)

// LogSource produces a "<sha> <subject>" log, newest first, of the
// non-merge commits reachable from `to` but not from `from`
type LogSource interface {
	Log(ctx context.Context, repoPath, from, to string) (string, error)
}

// NewLogSource returns the log source for a backend name
func NewLogSource(backend string, logger *zap.Logger) (LogSource, error) {
	switch backend {
	case "", BackendCLI:
		return &CLILog{Logger: logger}, nil
	case BackendGoGit:
		return &RepoLog{Logger: logger}, nil
	default:
		return nil, fmt.Errorf("unknown git backend %q (want %q or %q)", backend, BackendCLI, BackendGoGit)
	}
}

// CLILog runs the git binary, so local config and aliases for revisions apply
type CLILog struct {
	Logger *zap.Logger
}

// Log runs `git log --no-merges --oneline from..to` in repoPath
func (l *CLILog) Log(ctx context.Context, repoPath, from, to string) (string, error) {
	args := []string{"log", "--no-merges", "--oneline", "--no-decorate", "--no-color", "--end-of-options", from + ".." + to}
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = repoPath

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if l.Logger != nil {
		l.Logger.Debug("Running git", zap.Strings("args", args), zap.String("dir", repoPath))
	}

	output, err := cmd.Output()
	if err != nil {
		outputStr := strings.TrimSpace(stderr.String())
		if strings.Contains(outputStr, "unknown revision") || strings.Contains(outputStr, "bad revision") {
			return "", &RevisionNotFoundError{Revisions: []string{from, to}}
		}
		if outputStr != "" {
			return "", &GitError{Command: "log", Output: outputStr}
		}
		return "", &GitError{Command: "log", Output: err.Error()}
	}

	return string(output), nil
}

// RepoLog reads the log in-process with go-git, no git binary required
type RepoLog struct {
	Logger *zap.Logger
}

// Log walks commits reachable from `to` that are not reachable from `from`
func (l *RepoLog) Log(ctx context.Context, repoPath, from, to string) (string, error) {
	repo, err := openRepo(repoPath)
	if err != nil {
		return "", &GitError{Command: "open", Output: err.Error()}
	}

	fromHash, err := repo.ResolveRevision(plumbing.Revision(from))
	if err != nil {
		return "", &RevisionNotFoundError{Revisions: []string{from}}
	}

	toHash, err := repo.ResolveRevision(plumbing.Revision(to))
	if err != nil {
		return "", &RevisionNotFoundError{Revisions: []string{to}}
	}

	// Build set of commits reachable from `from`
	excluded := make(map[plumbing.Hash]bool)
	fromIter, err := repo.Log(&git.LogOptions{From: *fromHash})
	if err != nil {
		return "", err
	}
	err = fromIter.ForEach(func(c *object.Commit) error {
		excluded[c.Hash] = true
		return ctx.Err()
	})
	if err != nil {
		return "", err
	}

	toIter, err := repo.Log(&git.LogOptions{From: *toHash, Order: git.LogOrderCommitterTime})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	count := 0
	err = toIter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		// Keep walking past excluded commits, other parents may still lead to new ones
		if excluded[c.Hash] {
			return nil
		}
		excluded[c.Hash] = true

		if c.NumParents() > 1 {
			return nil
		}

		fmt.Fprintf(&b, "%s %s\n", c.Hash.String()[:7], subject(c.Message))
		count++
		return nil
	})
	if err != nil {
		return "", err
	}

	if l.Logger != nil {
		l.Logger.Debug("Walked repository",
			zap.String("dir", repoPath),
			zap.String("range", from+".."+to),
			zap.Int("commits", count))
	}

	return b.String(), nil
}

// openRepo opens the repository containing path, like the git CLI does
func openRepo(path string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
}

// subject returns the first paragraph of a commit message joined onto one
// line, as `git log --oneline` prints it
func subject(message string) string {
	var parts []string
	for _, line := range strings.Split(strings.TrimLeft(message, "\r\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, " ")
}

// GitError provides better context for git command failures
type GitError struct {
	Command string
	Output  string
}

func (e *GitError) Error() string {
	return "git " + e.Command + ": " + e.Output
}

// RevisionNotFoundError indicates a revision could not be resolved
type RevisionNotFoundError struct {
	Revisions []string
}

func (e *RevisionNotFoundError) Error() string {
	return "revision not found: " + strings.Join(e.Revisions, ", ")
}

// IsRevisionNotFound reports whether err is a RevisionNotFoundError
func IsRevisionNotFound(err error) bool {
	var target *RevisionNotFoundError
	return errors.As(err, &target)
}
