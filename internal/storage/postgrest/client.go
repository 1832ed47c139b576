// Package postgrest talks to a hosted PostgREST endpoint (the Supabase REST
// API) over HTTP. Each call is one request; the client never retries.
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/penwright/blog/internal/platform/timeouts"
	"github.com/penwright/blog/internal/storage"
)

const (
	restPath = "/rest/v1/"
	// maxErrorBody bounds how much of a failed response is read for details.
	maxErrorBody = 64 << 10
)

// Config configures a Client.
type Config struct {
	// URL is the project base URL, for example https://xyz.supabase.co.
	URL string
	// Key is the project API key sent as apikey and bearer token.
	Key string
	// Timeout bounds each request. Zero uses timeouts.StoreRequest.
	Timeout time.Duration
	// Transport overrides the HTTP transport; it is still wrapped by otelhttp.
	Transport http.RoundTripper
}

// Client is a storage.Client backed by PostgREST.
type Client struct {
	base *url.URL
	key  string
	http *http.Client
}

var _ storage.Client = (*Client)(nil)

// New validates cfg and builds a client. No request is made.
func New(cfg Config) (*Client, error) {
	rawURL := strings.TrimSpace(cfg.URL)
	if rawURL == "" {
		return nil, errors.New("postgrest: url is required")
	}
	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("postgrest: parse url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("postgrest: url scheme must be http or https, got %q", base.Scheme)
	}
	if base.Host == "" {
		return nil, errors.New("postgrest: url host is required")
	}
	key := strings.TrimSpace(cfg.Key)
	if key == "" {
		return nil, errors.New("postgrest: key is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = timeouts.StoreRequest
	}
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	base.Path = strings.TrimRight(base.Path, "/") + restPath
	base.RawQuery = ""
	base.Fragment = ""

	return &Client{
		base: base,
		key:  key,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(transport),
		},
	}, nil
}

// Table returns the named table. Invalid names fail on first use.
func (c *Client) Table(name string) storage.Table {
	return &table{client: c, name: name, nameErr: storage.ValidateIdentifier(name)}
}

// Ping checks that the REST root answers and accepts the key.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, c.base.String(), nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	return nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *Client) tableURL(name string, query url.Values) string {
	u := *c.base
	u.Path += name
	u.RawQuery = query.Encode()
	return u.String()
}

// do sends one request and converts non-2xx responses to errors. The caller
// closes the body of a successful response.
func (c *Client) do(ctx context.Context, method, target string, body []byte, headers http.Header) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("postgrest: build request: %w", err)
	}
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for name, values := range headers {
		for _, value := range values {
			req.Header.Add(name, value)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("postgrest: %s %s: %w", method, req.URL.Path, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()
	return nil, responseError(resp)
}

// APIError is a non-2xx PostgREST response.
type APIError struct {
	Status  int
	Code    string
	Message string
	Details string
	Hint    string
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "postgrest: status %d", e.Status)
	if e.Code != "" {
		fmt.Fprintf(&b, " code %s", e.Code)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	return b.String()
}

func responseError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details string `json:"details"`
		Hint    string `json:"hint"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		apiErr.Code = payload.Code
		apiErr.Message = payload.Message
		apiErr.Details = payload.Details
		apiErr.Hint = payload.Hint
	} else if text := strings.TrimSpace(string(data)); text != "" {
		apiErr.Message = text
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: %w", storage.ErrUnauthorized, apiErr)
	}
	return apiErr
}

func idFilter(id int64) string {
	return "eq." + strconv.FormatInt(id, 10)
}
