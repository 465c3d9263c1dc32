package models

import (
	"sort"
	"strings"
)

// Unresolved is shown when the tracker reports no resolution for a ticket
const Unresolved = "Unresolved"

// TicketRecord contains the tracker fields the report needs
type TicketRecord struct {
	// Key is the ticket key as reported by the tracker (e.g., "FACT-123")
	Key string
	// Summary is the ticket title
	Summary string
	// Resolution name, empty when unresolved
	Resolution string
}

// NewTicketRecord creates a new TicketRecord
func NewTicketRecord(key, summary, resolution string) TicketRecord {
	return TicketRecord{
		Key:        key,
		Summary:    summary,
		Resolution: resolution,
	}
}

// ResolutionName returns the resolution, or Unresolved if there is none
func (t TicketRecord) ResolutionName() string {
	if t.Resolution == "" {
		return Unresolved
	}
	return t.Resolution
}

// KnownTicketSet holds the tickets of one project/fix-version query,
// keyed by upper-cased ticket key
type KnownTicketSet map[string]TicketRecord

// Add stores a ticket under its normalized key
func (s KnownTicketSet) Add(t TicketRecord) {
	s[strings.ToUpper(t.Key)] = t
}

// Lookup finds a ticket by key, ignoring case
func (s KnownTicketSet) Lookup(key string) (TicketRecord, bool) {
	t, ok := s[strings.ToUpper(key)]
	return t, ok
}

// Keys returns the normalized ticket keys, sorted
func (s KnownTicketSet) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
