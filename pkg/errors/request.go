package errors

import (
	"fmt"
	"time"
)

// snippetLimit caps how much of an error response body is carried around in
// a RequestError. Remote error pages can be arbitrarily large.
const snippetLimit = 200

/*
RequestError represents a non-success HTTP status returned by the memory API.
It carries the status code and a truncated snippet of the response body.
*/
type RequestError struct {
	Method  string
	Path    string
	Status  int
	Snippet string
}

/*
NewRequestError builds a RequestError from a raw response body, truncating
the body to the snippet limit. Truncation happens on a rune boundary so the
snippet stays valid UTF-8.
*/
func NewRequestError(method, path string, status int, body []byte) *RequestError {
	snippet := string(body)

	if runes := []rune(snippet); len(runes) > snippetLimit {
		snippet = string(runes[:snippetLimit])
	}

	return &RequestError{
		Method:  method,
		Path:    path,
		Status:  status,
		Snippet: snippet,
	}
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.Status, e.Snippet)
}

/*
TimeoutError represents a request that was aborted because the memory API did
not respond within the fixed per-call timeout.
*/
type TimeoutError struct {
	Method  string
	Path    string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request to %s timed out after %s", e.Path, e.Timeout)
}
