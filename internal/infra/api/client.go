// Package api provides the REST client for the task backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/runoshun/taskdeck/internal/domain"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 8 << 20

// Options configures a Client.
// Fields are ordered to minimize memory padding.
type Options struct {
	HTTPClient *http.Client  // Custom transport (nil = new client with Timeout)
	Logger     domain.Logger // Request log (nil = discard)
	Timeout    time.Duration // Per-request timeout (0 = domain.DefaultAPITimeout)
	RateLimit  float64       // Requests per second (0 = unlimited)
	Burst      int           // Limiter burst (0 = 1)
}

// Client talks to the backend's REST API.
// Fields are ordered to minimize memory padding.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	logger  domain.Logger
	baseURL string
}

// New creates a Client for baseURL, which includes the /api prefix.
func New(baseURL string, opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = domain.DefaultAPITimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	logger := opts.Logger
	if logger == nil {
		logger = domain.NopLogger{}
	}

	return &Client{
		http:    httpClient,
		limiter: limiter,
		logger:  logger,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Tasks returns the task resource.
func (c *Client) Tasks() domain.TaskRemote {
	return &resource[domain.Task, domain.TaskInput, wireTask]{client: c, kind: domain.KindTask}
}

// Categories returns the category resource.
func (c *Client) Categories() domain.CategoryRemote {
	return &resource[domain.Category, domain.CategoryInput, wireCategory]{client: c, kind: domain.KindCategory}
}

// Context returns the context entry resource.
func (c *Client) Context() domain.ContextRemote {
	return &resource[domain.ContextEntry, domain.ContextInput, wireContextEntry]{client: c, kind: domain.KindContext}
}

// do sends a JSON request to path (relative to the base URL) and decodes a
// JSON answer into out. A nil out discards the answer; a 204 answer has none.
// Any status outside 2xx is returned as *domain.RemoteError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%s %s: %w", method, path, err)
		}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("", "http", fmt.Sprintf("%s %s: %v", method, path, err))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%s %s: read response: %w", method, path, err)
	}
	c.logger.Debug("", "http", fmt.Sprintf("%s %s -> %d (%s)", method, path, resp.StatusCode, time.Since(start).Round(time.Millisecond)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &domain.RemoteError{
			Method: method,
			Path:   path,
			Status: resp.StatusCode,
			Body:   data,
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

// collectionPath returns "tasks/" style paths.
func collectionPath(kind domain.EntityKind) string {
	return kind.Path() + "/"
}

// itemPath returns "tasks/{id}/" style paths.
func itemPath(kind domain.EntityKind, id string) string {
	return kind.Path() + "/" + url.PathEscape(id) + "/"
}
