package jira

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// FetchError is returned when the tracker cannot be queried.
// StatusCode is zero for transport failures.
type FetchError struct {
	StatusCode    int
	Status        string
	ErrorMessages []string
	Err           error
}

func (e *FetchError) Error() string {
	var parts []string
	if e.StatusCode != 0 {
		parts = append(parts, e.Status)
	}
	if len(e.ErrorMessages) > 0 {
		parts = append(parts, fmt.Sprintf("%q", e.ErrorMessages))
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	if len(parts) == 0 {
		return "jira query failed"
	}
	return strings.Join(parts, " ")
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// newFetchError builds a FetchError from a non-2xx response.
// Jira reports problems as {"errorMessages": [...], "errors": {...}}.
func newFetchError(resp *http.Response, body []byte) *FetchError {
	fe := &FetchError{StatusCode: resp.StatusCode, Status: resp.Status}
	if fe.Status == "" {
		fe.Status = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var payload struct {
		ErrorMessages []string          `json:"errorMessages"`
		Errors        map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return fe
	}

	fe.ErrorMessages = append(fe.ErrorMessages, payload.ErrorMessages...)
	fields := make([]string, 0, len(payload.Errors))
	for field := range payload.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		fe.ErrorMessages = append(fe.ErrorMessages, field+": "+payload.Errors[field])
	}
	return fe
}
