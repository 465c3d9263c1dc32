package models

import "strings"

// Unmarked is the issue key given to commits without a leading bracket tag
const Unmarked = "unmarked"

// IssueKind describes what the leading bracket of a commit message referenced
type IssueKind int

const (
	// KindUnmarked means the message had no leading bracket tag
	KindUnmarked IssueKind = iota
	// KindTicket means the bracket held a project ticket key (e.g., "FACT-123")
	KindTicket
	// KindNote means the bracket held a note tag (e.g., "maint", "doc")
	KindNote
)

// CommitRecord contains one classified line of the commit log
type CommitRecord struct {
	// SHA is the abbreviated commit hash as printed by the log
	SHA string
	// IssueKey is the ticket key (case as written), the note tag, or Unmarked
	IssueKey string
	// Message is the commit subject with the leading tag removed
	Message string
	// Kind of reference found in the message
	Kind IssueKind
}

// NewCommitRecord creates a new CommitRecord
func NewCommitRecord(sha, issueKey, message string, kind IssueKind) CommitRecord {
	return CommitRecord{
		SHA:      sha,
		IssueKey: issueKey,
		Message:  message,
		Kind:     kind,
	}
}

// GroupKey returns the key the record is grouped under.
// Ticket keys are upper-cased so "fact-1" and "FACT-1" land together;
// note tags and Unmarked are literal.
func (c CommitRecord) GroupKey() string {
	switch c.Kind {
	case KindTicket:
		return strings.ToUpper(c.IssueKey)
	case KindNote:
		return c.IssueKey
	default:
		return Unmarked
	}
}
