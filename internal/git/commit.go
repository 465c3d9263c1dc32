package git

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/wahlandcase/release-inquisitor/internal/models"
)

// notePattern matches a leading "[word]" or "(word)" tag such as "[maint]"
var notePattern = regexp.MustCompile(`^[\[(](\w+)[\])](?:\s+(.*))?$`)

// Classifier turns one-line log entries into commit records for a project
type Classifier struct {
	ticketPattern *regexp.Regexp
}

// NewClassifier creates a Classifier recognising "[PROJECT-123]" tags
func NewClassifier(project string) *Classifier {
	// Project keys are matched case-insensitively, the captured case is kept
	pattern := `(?i)^[\[(](` + regexp.QuoteMeta(project) + `-\d+)[\])](?:\s+(.*))?$`
	return &Classifier{ticketPattern: regexp.MustCompile(pattern)}
}

// Classify parses a "<sha> <message>" log line.
// Only the leading bracket is consulted; a project ticket tag wins over a note tag.
func (c *Classifier) Classify(line string) models.CommitRecord {
	sha, rest := splitLine(line)

	if m := c.ticketPattern.FindStringSubmatch(rest); m != nil {
		return models.NewCommitRecord(sha, m[1], m[2], models.KindTicket)
	}
	if m := notePattern.FindStringSubmatch(rest); m != nil {
		return models.NewCommitRecord(sha, m[1], m[2], models.KindNote)
	}
	return models.NewCommitRecord(sha, models.Unmarked, rest, models.KindUnmarked)
}

// ParseLog classifies every non-blank line of a log and groups the results
func (c *Classifier) ParseLog(text string) *models.CommitGroups {
	groups := models.NewCommitGroups()
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		groups.Add(c.Classify(line))
	}
	return groups
}

// splitLine splits on the first whitespace run
func splitLine(line string) (sha, rest string) {
	line = strings.TrimSpace(line)
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimLeftFunc(line[i:], unicode.IsSpace)
}
