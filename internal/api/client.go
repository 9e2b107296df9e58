// Package api implements the HTTP client for the grievance backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Veraticus/grievance-intel/internal/common"
	"github.com/Veraticus/grievance-intel/internal/model"
	"github.com/google/uuid"
)

const (
	grievancesPath = "/grievances/"

	// RequestIDHeader carries a per-request id for backend log correlation.
	RequestIDHeader = "X-Request-ID"

	maxErrorBody = 4 << 10

	// DefaultTimeout bounds each request when no timeout is configured.
	DefaultTimeout = 30 * time.Second
)

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Method     string
	URL        string
	Body       string
	StatusCode int
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: unexpected status %d - %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// Client talks to the grievance backend over HTTP.
type Client struct {
	httpClient *http.Client
	newID      func() string
	baseURL    string
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The client is copied,
// so a timeout set on the Client never changes the caller's value. A nil
// client is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout. It applies regardless of option
// order.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRequestIDs overrides the request id generator.
func WithRequestIDs(gen func() string) Option {
	return func(c *Client) {
		c.newID = gen
	}
}

// NewClient creates a client for the backend rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: base URL must be http or https: %q", common.ErrInvalidConfig, baseURL)
	}

	c := &Client{
		baseURL:    strings.TrimRight(u.String(), "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := *c.httpClient
	if c.timeout > 0 {
		hc.Timeout = c.timeout
	}
	c.httpClient = &hc

	return c, nil
}

// BaseURL returns the normalized backend root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// listEnvelope is the paginated shape some backend builds return.
type listEnvelope struct {
	Grievances []model.Grievance `json:"grievances"`
}

// ListGrievances fetches the full grievance collection.
func (c *Client) ListGrievances(ctx context.Context) ([]model.Grievance, error) {
	body, err := c.do(ctx, http.MethodGet, nil)
	if err != nil {
		return nil, err
	}

	grievances, err := decodeList(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode grievances: %w", err)
	}

	return grievances, nil
}

// CreateGrievance submits a draft. Only the status code is inspected.
func (c *Client) CreateGrievance(ctx context.Context, draft model.Draft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to encode grievance: %w", err)
	}

	_, err = c.do(ctx, http.MethodPost, payload)
	return err
}

func (c *Client) do(ctx context.Context, method string, payload []byte) ([]byte, error) {
	endpoint := c.baseURL + grievancesPath

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := c.newID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger := common.LoggerFrom(ctx)
	logger.Debug("Requesting grievance backend",
		"method", method,
		"url", endpoint,
		"request_id", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	logger.Debug("Grievance backend responded",
		"method", method,
		"status", resp.StatusCode,
		"request_id", requestID,
		"elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			Method:     method,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return body, nil
}

// decodeList accepts either a bare JSON array or the list envelope.
func decodeList(body []byte) ([]model.Grievance, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, errors.New("empty response body")
	}

	switch trimmed[0] {
	case '[':
		var grievances []model.Grievance
		if err := json.Unmarshal(trimmed, &grievances); err != nil {
			return nil, err
		}
		if grievances == nil {
			grievances = []model.Grievance{}
		}
		return grievances, nil

	case '{':
		var env listEnvelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, err
		}
		if env.Grievances == nil {
			env.Grievances = []model.Grievance{}
		}
		return env.Grievances, nil

	default:
		return nil, fmt.Errorf("unexpected response body starting with %q", trimmed[0])
	}
}
