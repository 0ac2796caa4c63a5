package options

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/atomicstack/officer-wizard/internal/department"
	"github.com/mattn/go-runewidth"
)

const (
	maxBodyBytes    = 4 << 20
	maxSnippetWidth = 200
)

// StatusError reports a non-200 response from a data endpoint.
type StatusError struct {
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s returned status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("%s returned status %d: %s", e.URL, e.Status, e.Body)
}

// Client fetches option tuples from the ranks and units endpoints.
type Client struct {
	httpClient *http.Client
}

// NewClient returns a client whose requests time out after timeout. A zero
// timeout leaves requests bounded only by their context.
func NewClient(timeout time.Duration) *Client {
	return &Client{httpClient: &http.Client{Timeout: timeout}}
}

// NewClientWith wraps an existing http.Client.
func NewClientWith(hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{httpClient: hc}
}

// Fetch issues GET endpoint?department_id=<dept> and decodes the tuples.
func (c *Client) Fetch(ctx context.Context, endpoint string, dept department.ID) ([]Record, error) {
	target, err := RequestURL(endpoint, dept)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", target, err)
	}
	if resp.StatusCode != http.StatusOK {
		snippet := runewidth.Truncate(string(body), maxSnippetWidth, "…")
		return nil, &StatusError{URL: target, Status: resp.StatusCode, Body: snippet}
	}
	records, err := ParseRecords(body)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", target, err)
	}
	return records, nil
}

// RequestURL merges the department_id parameter into endpoint, keeping any
// query the endpoint already carries.
func RequestURL(endpoint string, dept department.ID) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	q := u.Query()
	q.Set("department_id", dept.String())
	u.RawQuery = q.Encode()
	return u.String(), nil
}
