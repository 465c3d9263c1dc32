package app

import (
	"fmt"

	"github.com/wahlandcase/release-inquisitor/internal/config"
)

// ArgCount is the number of positional arguments a run takes
const ArgCount = 5

// Invocation holds the positional arguments of a run
type Invocation struct {
	// RepoPath is the git repository to inspect
	RepoPath string
	// Project is the Jira project key (e.g., "FACT")
	Project string
	// From is the revision the release starts after (e.g., a tag)
	From string
	// To is the last revision of the release (e.g., "HEAD")
	To string
	// FixVersion is the Jira fix version of the release
	FixVersion string
}

// ParseInvocation maps positional arguments onto an Invocation
func ParseInvocation(args []string) (Invocation, error) {
	if len(args) != ArgCount {
		return Invocation{}, &config.ConfigError{
			Msg: fmt.Sprintf("Wrong number of arguments (got %d, want %d)", len(args), ArgCount),
		}
	}
	return Invocation{
		RepoPath:   args[0],
		Project:    args[1],
		From:       args[2],
		To:         args[3],
		FixVersion: args[4],
	}, nil
}
