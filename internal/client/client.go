// Package client talks to the text/result/leaderboard service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/typeflow/internal/model"
)

const defaultTimeout = 10 * time.Second

// StatusError is returned when the service answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Detail)
}

// Client is an HTTP+JSON client for the service API.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New returns a Client for the service rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchText returns a random text for the duration.
func (c *Client) FetchText(ctx context.Context, duration int) (model.Text, error) {
	q := url.Values{}
	q.Set("duration", strconv.Itoa(duration))
	var text model.Text
	if err := c.do(ctx, http.MethodGet, "/api/texts", q, nil, &text); err != nil {
		return model.Text{}, fmt.Errorf("fetch text: %w", err)
	}
	return text, nil
}

// SubmitResult posts a finished session result.
func (c *Client) SubmitResult(ctx context.Context, res model.SessionResult) error {
	if err := c.do(ctx, http.MethodPost, "/api/results", nil, res, nil); err != nil {
		return fmt.Errorf("submit result: %w", err)
	}
	return nil
}

// FetchLeaderboard returns the top results for the duration.
func (c *Client) FetchLeaderboard(ctx context.Context, duration, limit int) ([]model.LeaderboardEntry, error) {
	q := url.Values{}
	q.Set("duration", strconv.Itoa(duration))
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var entries []model.LeaderboardEntry
	if err := c.do(ctx, http.MethodGet, "/api/leaderboard", q, nil, &entries); err != nil {
		return nil, fmt.Errorf("fetch leaderboard: %w", err)
	}
	return entries, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			// Best-effort body close.
			_ = cerr
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	e := &StatusError{StatusCode: resp.StatusCode}
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body); err == nil {
		e.Detail = body.Detail
	}
	return e
}
