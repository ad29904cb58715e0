/*
Package velixar implements a thin client for the Velixar remote memory API.
Every call is a single authenticated, timeout-bounded HTTP request; there is
no retry logic and no local state.
*/
package velixar

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/theapemachine/velixar-mcp/pkg/errors"
)

const (
	// DefaultBaseURL is the production Velixar API host, overridable via
	// configuration.
	DefaultBaseURL = "https://api.velixar.dev"

	requestTimeout = 30 * time.Second
)

/*
Client issues authenticated requests against the Velixar API. It holds no
mutable state and is safe for concurrent use.
*/
type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	conn    *http.Client
}

/*
NewClient creates a Client for the given base URL and bearer token. An empty
base URL falls back to the production host.
*/
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		timeout: requestTimeout,
		conn:    &http.Client{},
	}
}

// WithTimeout returns the client with its per-request timeout replaced.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.timeout = timeout
	return c
}

/*
do performs one HTTP round-trip against the API. Caller-supplied headers
override the default authorization and content-type headers. The response
body is decoded into out when out is non-nil.
*/
func (c *Client) do(
	ctx context.Context,
	method, path string,
	query url.Values,
	headers map[string]string,
	body, out any,
) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader

	if body != nil {
		buf, err := json.Marshal(body)

		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}

		reader = bytes.NewReader(buf)
	}

	endpoint := c.baseURL + path

	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)

	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.conn.Do(req)

	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return &errors.TimeoutError{
				Method:  method,
				Path:    path,
				Timeout: c.timeout,
			}
		}

		return fmt.Errorf("request to %s failed: %w", path, err)
	}

	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)

	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.NewRequestError(method, path, resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", path, err)
		}
	}

	return nil
}

/*
CreateMemory stores a new memory and returns the identifier assigned by the
service.
*/
func (c *Client) CreateMemory(ctx context.Context, req CreateMemoryRequest) (string, error) {
	var out CreateMemoryResponse

	if err := c.do(ctx, http.MethodPost, "/memory", nil, nil, req, &out); err != nil {
		return "", err
	}

	if out.Error != "" {
		return "", &errors.APIError{Message: out.Error}
	}

	if out.ID == "" {
		return "", errors.NewContractErrorf("create response carried no memory id")
	}

	return out.ID, nil
}

/*
SearchMemories performs a semantic search scoped to the given user. A limit
of zero lets the service apply its own default.
*/
func (c *Client) SearchMemories(ctx context.Context, query, userID string, limit int) ([]Memory, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("user_id", userID)

	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var out SearchMemoriesResponse

	if err := c.do(ctx, http.MethodGet, "/memory/search", params, nil, nil, &out); err != nil {
		return nil, err
	}

	if out.Error != "" {
		return nil, &errors.APIError{Message: out.Error}
	}

	return out.Memories, nil
}

/*
ListMemories returns a page of the user's memories, newest first. Pass the
cursor from a previous response to fetch the next page.
*/
func (c *Client) ListMemories(ctx context.Context, userID string, limit int, cursor string) (*ListMemoriesResponse, error) {
	params := url.Values{}
	params.Set("user_id", userID)

	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	if cursor != "" {
		params.Set("cursor", cursor)
	}

	var out ListMemoriesResponse

	if err := c.do(ctx, http.MethodGet, "/memory/list", params, nil, nil, &out); err != nil {
		return nil, err
	}

	if out.Error != "" {
		return nil, &errors.APIError{Message: out.Error}
	}

	return &out, nil
}

/*
UpdateMemory applies a partial update to the identified memory. Only fields
set on req are transmitted.
*/
func (c *Client) UpdateMemory(ctx context.Context, id string, req UpdateMemoryRequest) error {
	var out UpdateMemoryResponse

	if err := c.do(ctx, http.MethodPatch, "/memory/"+id, nil, nil, req, &out); err != nil {
		return err
	}

	if out.Error != "" {
		return &errors.APIError{Message: out.Error}
	}

	return nil
}

// DeleteMemory removes the identified memory.
func (c *Client) DeleteMemory(ctx context.Context, id string) error {
	var out DeleteMemoryResponse

	if err := c.do(ctx, http.MethodDelete, "/memory/"+id, nil, nil, nil, &out); err != nil {
		return err
	}

	if out.Error != "" {
		return &errors.APIError{Message: out.Error}
	}

	return nil
}
