package supplychain

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
)

// RecordFetcher lists records of one type.
type RecordFetcher interface {
	FetchRecords(ctx context.Context, recordType string) ([]Record, error)
}

// OwnerFetcher lists the ownership history of one record.
type OwnerFetcher interface {
	FetchOwners(ctx context.Context, recordID string) ([]Owner, error)
}

// UpdateSubmitter forwards property updates to the API, which turns them into
// ledger transactions.
type UpdateSubmitter interface {
	SubmitUpdate(ctx context.Context, req UpdateRequest) error
}

// Identity exposes the viewer's public key. An empty key means the viewer is
// not authenticated.
type Identity interface {
	PublicKey() string
}

// API bundles everything the views consume.
type API interface {
	RecordFetcher
	OwnerFetcher
	UpdateSubmitter
	Identity
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// ErrNotFound matches API errors carrying a 404 status.
var ErrNotFound = errors.New("not found")

// APIError reports a non-success HTTP status from the API.
type APIError struct {
	Path       string
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.Path, e.StatusCode)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Client talks to the supply chain REST API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	authToken string
	publicKey string
}

const (
	defaultAPIURL    = "http://127.0.0.1:8020/api"
	defaultUserAgent = "loadtrack/0.1"
	requestTimeout   = 5 * time.Second
)

// Option customizes a Client.
type Option func(*Client)

// WithPublicKey sets the viewer identity reported by PublicKey.
func WithPublicKey(key string) Option {
	return func(c *Client) { c.publicKey = strings.TrimSpace(key) }
}

// WithAuthToken sends token in the Authorization header of every request.
func WithAuthToken(token string) Option {
	return func(c *Client) { c.authToken = strings.TrimSpace(token) }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient builds a Client for the API rooted at apiURL. A bare host:port is
// accepted and treated as plain HTTP.
func NewClient(apiURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// PublicKey returns the viewer's public key, or "" when unauthenticated.
func (c *Client) PublicKey() string {
	if c == nil {
		return ""
	}
	return c.publicKey
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// FetchRecords retrieves every record of the given type.
func (c *Client) FetchRecords(ctx context.Context, recordType string) ([]Record, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if rt := strings.TrimSpace(recordType); rt != "" {
		values.Set("recordType", rt)
	}
	rel := &url.URL{Path: "records", RawQuery: values.Encode()}
	var payload []Record
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchOwners retrieves the ordered ownership history of a record.
func (c *Client) FetchOwners(ctx context.Context, recordID string) ([]Owner, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	rel, err := recordPath(recordID, "owners")
	if err != nil {
		return nil, err
	}
	var payload []Owner
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// SubmitUpdate posts a new value for one property of a record.
func (c *Client) SubmitUpdate(ctx context.Context, req UpdateRequest) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	name := strings.TrimSpace(req.Property)
	if name == "" {
		return fmt.Errorf("property name required")
	}
	rel, err := recordPath(req.RecordID, "properties", name)
	if err != nil {
		return err
	}
	body, err := json.Marshal(struct {
		Value string `json:"value"`
	}{Value: req.Value})
	if err != nil {
		return fmt.Errorf("encode update: %w", err)
	}
	return c.doURL(ctx, http.MethodPost, rel, body, nil)
}

func recordPath(recordID string, segments ...string) (*url.URL, error) {
	id := strings.TrimSpace(recordID)
	if id == "" {
		return nil, fmt.Errorf("record id required")
	}
	parts := []string{"records", url.PathEscape(id)}
	for _, s := range segments {
		parts = append(parts, url.PathEscape(s))
	}
	rel, err := url.Parse(strings.Join(parts, "/"))
	if err != nil {
		return nil, fmt.Errorf("build path: %w", err)
	}
	return rel, nil
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body []byte, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.authToken != "" {
		req.Header.Set("Authorization", c.authToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return &APIError{Path: rel.String(), StatusCode: resp.StatusCode}
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = defaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", apiURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_url %q: missing host", apiURL)
	}
	// Relative references resolve under the prefix only with a trailing slash.
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
