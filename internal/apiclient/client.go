// Package apiclient reads case studies from the record service's REST API.
// Client implements the browsing engine's summary and detail sources.
package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rpggio/policyatlas/internal/domain/casestudy"
)

const defaultTimeout = 10 * time.Second

// maxErrorBody bounds how much of a failed response is kept for the error.
const maxErrorBody = 4 << 10

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("record service returned status %d", e.Code)
	}
	return fmt.Sprintf("record service returned status %d: %s", e.Code, e.Message)
}

// Unwrap lets callers match a 404 with errors.Is(err, casestudy.ErrCaseStudyNotFound).
func (e *StatusError) Unwrap() error {
	switch e.Code {
	case http.StatusNotFound:
		return casestudy.ErrCaseStudyNotFound
	case http.StatusBadRequest:
		return casestudy.ErrInvalidInput
	}
	return nil
}

// Client talks to the record service.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a client for the service rooted at baseURL. A zero timeout
// selects the default.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("api base url is required")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api base url %q: scheme must be http or https", baseURL)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// ListCaseStudySummaries fetches every summary.
func (c *Client) ListCaseStudySummaries(ctx context.Context) ([]casestudy.Summary, error) {
	var summaries []casestudy.Summary
	if err := c.getJSON(ctx, "/api/case-studies", &summaries); err != nil {
		return nil, fmt.Errorf("list case studies: %w", err)
	}
	if summaries == nil {
		summaries = []casestudy.Summary{}
	}
	return summaries, nil
}

// GetCaseStudyDetail fetches one fully hydrated case study.
func (c *Client) GetCaseStudyDetail(ctx context.Context, id string) (*casestudy.Detail, error) {
	if strings.TrimSpace(id) == "" {
		return nil, casestudy.ErrInvalidInput
	}
	var detail casestudy.Detail
	if err := c.getJSON(ctx, "/api/case-studies/"+url.PathEscape(id), &detail); err != nil {
		return nil, fmt.Errorf("get case study %s: %w", id, err)
	}
	return &detail, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var payload struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(body))
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		msg = payload.Error
	}
	return &StatusError{Code: resp.StatusCode, Message: msg}
}
