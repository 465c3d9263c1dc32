// Package reconcile cross-references classified commits against the
// tickets the tracker lists for a release.
package reconcile

import (
	"strings"

	"github.com/wahlandcase/release-inquisitor/internal/models"
)

// Group is one issue key and its commits in log order
type Group struct {
	Key     string
	Known   bool
	Commits []models.CommitRecord
}

// Result holds the derived sets of one reconciliation.
// Groups are ordered by key; tickets by normalized key.
type Result struct {
	// Committed is every group, known or not
	Committed []Group
	// CommittedAndKnown are groups whose key is a ticket of the release
	CommittedAndKnown []Group
	// CommittedUnknown are all other groups, including note tags and unmarked
	CommittedUnknown []Group
	// UnmarkedCommits are the commits without any leading tag
	UnmarkedCommits []models.CommitRecord
	// KnownButUncommitted are release tickets no commit refers to
	KnownButUncommitted []models.TicketRecord
}

// Reconcile compares commit groups with the known tickets of a release
func Reconcile(groups *models.CommitGroups, known models.KnownTicketSet) Result {
	var res Result

	committed := make(map[string]bool, groups.Len())
	for _, key := range groups.Keys() {
		upper := strings.ToUpper(key)
		committed[upper] = true

		_, isKnown := known[upper]
		g := Group{Key: key, Known: isKnown, Commits: groups.Commits(key)}

		res.Committed = append(res.Committed, g)
		if isKnown {
			res.CommittedAndKnown = append(res.CommittedAndKnown, g)
			continue
		}
		res.CommittedUnknown = append(res.CommittedUnknown, g)
		if key == models.Unmarked {
			res.UnmarkedCommits = append(res.UnmarkedCommits, g.Commits...)
		}
	}

	for _, key := range known.Keys() {
		if !committed[key] {
			res.KnownButUncommitted = append(res.KnownButUncommitted, known[key])
		}
	}

	return res
}

// Unknown returns the unknown groups whose key is not in exempt
func (r Result) Unknown(exempt []string) []Group {
	skip := make(map[string]bool, len(exempt))
	for _, tag := range exempt {
		skip[tag] = true
	}

	var out []Group
	for _, g := range r.CommittedUnknown {
		if !skip[g.Key] {
			out = append(out, g)
		}
	}
	return out
}
