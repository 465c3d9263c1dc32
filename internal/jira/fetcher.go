package jira

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wahlandcase/release-inquisitor/internal/models"
)

// DefaultMaxResults caps the single search page; larger releases are truncated
const DefaultMaxResults = 1000

// Fetcher finds the tickets fixed in a release.
type Fetcher struct {
	Client     *Client
	MaxResults int
}

// NewFetcher creates a Fetcher with the default result cap.
func NewFetcher(client *Client) *Fetcher {
	return &Fetcher{Client: client, MaxResults: DefaultMaxResults}
}

// FixVersionJQL builds the query for all tickets of a project with a fix version.
func FixVersionJQL(project, fixVersion string) string {
	return fmt.Sprintf("project = %s and fixVersion = '%s'", project, fixVersion)
}

// FetchKnownTickets returns the tickets of project whose fix version is fixVersion.
// Errors are *FetchError.
func (f *Fetcher) FetchKnownTickets(ctx context.Context, project, fixVersion string) (models.KnownTicketSet, error) {
	maxResults := f.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	result, err := f.Client.Search(ctx, FixVersionJQL(project, fixVersion), maxResults)
	if err != nil {
		return nil, err
	}

	known := make(models.KnownTicketSet, len(result.Issues))
	for _, issue := range result.Issues {
		known.Add(toTicketRecord(issue))
	}

	f.Client.logger().Debug("Fetched known tickets",
		zap.String("project", project),
		zap.String("fix_version", fixVersion),
		zap.Int("count", len(known)))

	return known, nil
}

func toTicketRecord(issue Issue) models.TicketRecord {
	resolution := ""
	if issue.Fields.Resolution != nil {
		resolution = issue.Fields.Resolution.Name
	}
	return models.NewTicketRecord(issue.Key, issue.Fields.Summary, resolution)
}
