// Package jira provides the tracker query used to find tickets fixed in a release.
package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultRESTPath is the REST API base path of a Jira server
const DefaultRESTPath = "/rest/api/2"

// Issue represents a Jira issue from the REST API.
type Issue struct {
	ID     string      `json:"id"`
	Key    string      `json:"key"`
	Fields IssueFields `json:"fields"`
}

// IssueFields contains the fields of a Jira issue the report uses.
type IssueFields struct {
	Summary    string           `json:"summary"`
	Resolution *ResolutionField `json:"resolution"`
}

// ResolutionField represents a Jira resolution.
type ResolutionField struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SearchResult represents a Jira JQL search response.
type SearchResult struct {
	StartAt    int     `json:"startAt"`
	MaxResults int     `json:"maxResults"`
	Total      int     `json:"total"`
	Issues     []Issue `json:"issues"`
}

// Client provides HTTP access to a Jira instance.
type Client struct {
	SiteURL    string
	RESTPath   string
	Username   string
	Password   string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// NewClient creates a new Jira client using basic auth.
func NewClient(siteURL, username, password string) *Client {
	return &Client{
		SiteURL:  strings.TrimSuffix(siteURL, "/"),
		RESTPath: DefaultRESTPath,
		Username: username,
		Password: password,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		Logger: zap.NewNop(),
	}
}

// Search runs a JQL query and returns a single page of at most maxResults issues.
func (c *Client) Search(ctx context.Context, jql string, maxResults int) (*SearchResult, error) {
	apiURL := c.SiteURL + c.RESTPath + "/search?jql=" + url.QueryEscape(jql) +
		"&maxResults=" + strconv.Itoa(maxResults)

	body, err := c.get(ctx, apiURL)
	if err != nil {
		return nil, err
	}

	var result SearchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &FetchError{Err: fmt.Errorf("parse search response: %w", err)}
	}

	if result.Total > len(result.Issues) {
		c.logger().Warn("Search result truncated",
			zap.String("jql", jql),
			zap.Int("total", result.Total),
			zap.Int("returned", len(result.Issues)))
	}

	return &result, nil
}

// get executes an authenticated GET and returns the response body.
func (c *Client) get(ctx context.Context, apiURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, &FetchError{Err: fmt.Errorf("create request: %w", err)}
	}

	req.SetBasicAuth(c.Username, c.Password)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "release-inquisitor/1.0")

	c.logger().Debug("Querying Jira", zap.String("url", apiURL), zap.String("user", c.Username))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{StatusCode: resp.StatusCode, Status: resp.Status, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newFetchError(resp, respBody)
	}

	return respBody, nil
}

func (c *Client) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
