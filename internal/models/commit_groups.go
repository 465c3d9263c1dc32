package models

import "sort"

// CommitGroups maps group keys to the commits sharing them, in log order
type CommitGroups struct {
	order  []string
	groups map[string][]CommitRecord
}

// NewCommitGroups creates an empty CommitGroups
func NewCommitGroups() *CommitGroups {
	return &CommitGroups{groups: make(map[string][]CommitRecord)}
}

// Add appends a commit to the group named by its GroupKey
func (g *CommitGroups) Add(c CommitRecord) {
	key := c.GroupKey()
	if _, ok := g.groups[key]; !ok {
		g.order = append(g.order, key)
	}
	g.groups[key] = append(g.groups[key], c)
}

// Keys returns the group keys sorted ascending (case-sensitive)
func (g *CommitGroups) Keys() []string {
	keys := make([]string, len(g.order))
	copy(keys, g.order)
	sort.Strings(keys)
	return keys
}

// Commits returns the commits of a group in log order
func (g *CommitGroups) Commits(key string) []CommitRecord {
	return g.groups[key]
}

// Has reports whether a group exists for key
func (g *CommitGroups) Has(key string) bool {
	_, ok := g.groups[key]
	return ok
}

// Len returns the number of groups
func (g *CommitGroups) Len() int {
	return len(g.order)
}

// Total returns the number of commits across all groups
func (g *CommitGroups) Total() int {
	n := 0
	for _, commits := range g.groups {
		n += len(commits)
	}
	return n
}
