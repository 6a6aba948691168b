// Package supabase is a small client for the Supabase REST, storage and edge function endpoints.
package supabase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	maxResponseBytes  = 8 << 20
	maxErrorBodyBytes = 32 << 10
)

var (
	ErrTransport     = errors.New("supabase transport error")
	ErrEmptyPath     = errors.New("object path is empty")
	errMissingURL    = errors.New("supabase url is required")
	errMissingKey    = errors.New("supabase service key is required")
	errResponseLimit = errors.New("supabase response exceeds limit")
)

type Config struct {
	URL        string
	ServiceKey string
	Timeout    time.Duration
}

type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

type FunctionResponse struct {
	StatusCode int
	Body       []byte
}

// New builds a client. A nil httpClient gets one with cfg.Timeout.
func New(cfg Config, httpClient *http.Client) (*Client, error) {
	if cfg.URL == "" {
		return nil, errMissingURL
	}
	if cfg.ServiceKey == "" {
		return nil, errMissingKey
	}

	parsed, err := url.Parse(cfg.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid supabase url %q", cfg.URL)
	}

	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		serviceKey: cfg.ServiceKey,
		httpClient: httpClient,
	}, nil
}

// Select reads rows of table; query is an already encoded PostgREST query string.
func (c *Client) Select(ctx context.Context, table, query string) ([]byte, error) {
	const op = "supabase.Client.Select"

	if table == "" {
		return nil, fmt.Errorf("%s: table is required", op)
	}

	endpoint := c.baseURL + "/rest/v1/" + url.PathEscape(table)
	if query != "" {
		endpoint += "?" + query
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := readLimited(resp.Body, maxErrorBodyBytes)
		return nil, fmt.Errorf("%s: api error %d: %s", op, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := readLimited(resp.Body, maxResponseBytes)
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", op, err)
	}

	return body, nil
}

// PublicObjectURL builds the public storage URL of an object in bucket.
func (c *Client) PublicObjectURL(bucket, objectPath string) (string, error) {
	objectPath = strings.Trim(objectPath, "/")
	if objectPath == "" {
		return "", ErrEmptyPath
	}
	if bucket == "" {
		return "", errors.New("bucket is required")
	}

	segments := strings.Split(objectPath, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, url.PathEscape(bucket), strings.Join(segments, "/")), nil
}

// InvokeFunction POSTs body to an edge function. Any non-transport outcome, including
// non-2xx statuses, is returned as a FunctionResponse.
func (c *Client) InvokeFunction(ctx context.Context, name string, body []byte, header http.Header) (*FunctionResponse, error) {
	const op = "supabase.Client.InvokeFunction"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/functions/v1/"+url.PathEscape(name), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", op, err)
	}

	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrTransport, err)
	}
	defer resp.Body.Close()

	respBody, err := readLimited(resp.Body, maxResponseBytes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: read response: %w", op, ErrTransport, err)
	}

	return &FunctionResponse{StatusCode: resp.StatusCode, Body: respBody}, nil
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > limit {
		return body[:limit], errResponseLimit
	}

	return body, nil
}
