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

	"convertly/internal/config"
	"convertly/internal/session"
)

// Client provides access to the Convertly backend API.
type Client struct {
	baseURL    string
	userAgent  string
	session    *session.Session
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(agent string) Option {
	return func(c *Client) {
		if strings.TrimSpace(agent) != "" {
			c.userAgent = strings.TrimSpace(agent)
		}
	}
}

// New creates a backend client. The session supplies the bearer token for
// authenticated endpoints and receives the token issued by Login.
func New(baseURL string, sess *session.Session, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("api base url required")
	}
	if sess == nil {
		return nil, errors.New("session required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  "Convertly-CLI/0.1.0",
		session:    sess,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// NewFromConfig creates a client using application configuration.
func NewFromConfig(cfg *config.Config, sess *session.Session, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	base := []Option{
		WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout()}),
		WithUserAgent(cfg.API.UserAgent),
	}
	return New(cfg.API.BaseURL, sess, append(base, opts...)...)
}

// BaseURL returns the configured backend endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// request issues a JSON API call. Query may be nil; body, when non-nil, is
// marshalled as the JSON request payload; out, when non-nil, receives the
// decoded response body. Non-2xx statuses are returned as *Error carrying
// the backend's error message.
func (c *Client) request(ctx context.Context, method, endpoint string, query url.Values, body, out any) error {
	target, err := c.endpointURL(endpoint, query)
	if err != nil {
		return err
	}

	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setCommonHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) endpointURL(endpoint string, query url.Values) (string, error) {
	target, err := url.Parse(c.baseURL + endpoint)
	if err != nil {
		return "", fmt.Errorf("parse endpoint url: %w", err)
	}
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}
	return target.String(), nil
}

func (c *Client) setCommonHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.userAgent)
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if clientID := c.session.ClientID(); clientID != "" {
		req.Header.Set("X-Client-Id", clientID)
	}
}

// decodeError reads the JSON error envelope from a failed response, falling
// back to a generic message when the body is not parsable.
func decodeError(resp *http.Response) error {
	message := genericMessage
	data, err := io.ReadAll(io.LimitReader(resp.Body, 8192))
	if err == nil && len(data) > 0 {
		var envelope struct {
			Error string `json:"error"`
		}
		if jsonErr := json.Unmarshal(data, &envelope); jsonErr == nil && strings.TrimSpace(envelope.Error) != "" {
			message = envelope.Error
		}
	}
	return &Error{Status: resp.StatusCode, Message: message}
}

func pageQuery(page, perPage int) url.Values {
	query := url.Values{}
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	query.Set("page", fmt.Sprintf("%d", page))
	query.Set("per_page", fmt.Sprintf("%d", perPage))
	return query
}

// Health checks backend liveness.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var payload HealthResponse
	if err := c.request(ctx, http.MethodGet, "/health", nil, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
