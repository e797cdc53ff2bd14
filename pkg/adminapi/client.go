package adminapi

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
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/jellydator/ttlcache/v3"
)

const (
	DefaultEndpoint = "http://localhost:8000"
	basePath        = "/api/admin"
	loginPath       = "/login"
)

// CredentialProvider supplies the bearer token for each request. An empty
// token sends the request without an Authorization header.
type CredentialProvider interface {
	Token() string
}

type staticToken string

func (s staticToken) Token() string { return string(s) }

// StaticToken returns a CredentialProvider that always yields token.
func StaticToken(token string) CredentialProvider {
	return staticToken(token)
}

type Client struct {
	endpoint       string
	creds          CredentialProvider
	client         *http.Client
	cache          *ttlcache.Cache[string, []byte]
	cacheTTL       time.Duration
	cacheMu        sync.Mutex
	cacheGen       uint64
	attempts       uint
	retryDelay     time.Duration
	onUnauthorized func()
	debugLog       func(string)
}

type ClientOption func(*Client)

func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		c.endpoint = strings.TrimRight(endpoint, "/")
	}
}

func WithCredentials(creds CredentialProvider) ClientOption {
	return func(c *Client) {
		c.creds = creds
	}
}

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.client = hc
	}
}

// WithCacheTTL sets how long GET responses are reused, 0 disables caching.
func WithCacheTTL(ttl time.Duration) ClientOption {
	return func(c *Client) {
		c.cacheTTL = ttl
	}
}

func WithRetryAttempts(attempts uint, delay time.Duration) ClientOption {
	return func(c *Client) {
		c.attempts = max(attempts, 1)
		c.retryDelay = delay
	}
}

// WithOnUnauthorized is called when a request other than login gets a 401.
func WithOnUnauthorized(f func()) ClientOption {
	return func(c *Client) {
		c.onUnauthorized = f
	}
}

func WithDebugLog(f func(string)) ClientOption {
	return func(c *Client) {
		c.debugLog = f
	}
}

func New(opts ...ClientOption) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		cacheTTL:   10 * time.Second,
		attempts:   3,
		retryDelay: 200 * time.Millisecond,
	}
	for _, o := range opts {
		o(c)
	}
	if c.cacheTTL > 0 {
		c.cache = ttlcache.New[string, []byte](
			ttlcache.WithTTL[string, []byte](c.cacheTTL),
			ttlcache.WithDisableTouchOnHit[string, []byte](),
		)
	}
	return c
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// SetOnUnauthorized replaces the 401 callback, it must be set before the
// client is shared between goroutines.
func (c *Client) SetOnUnauthorized(f func()) {
	c.onUnauthorized = f
}

// Invalidate drops all cached GET responses. GETs already in flight will
// not store their response.
func (c *Client) Invalidate() {
	if c.cache == nil {
		return
	}
	c.cacheMu.Lock()
	c.cacheGen++
	c.cache.DeleteAll()
	c.cacheMu.Unlock()
}

func (c *Client) generation() uint64 {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()
	return c.cacheGen
}

// store caches body unless the cache was invalidated since gen.
func (c *Client) store(gen uint64, key string, body []byte) {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()
	if gen != c.cacheGen {
		c.debugf("GET %s not cached, invalidated in flight", key)
		return
	}
	c.cache.Set(key, body, ttlcache.DefaultTTL)
}

func (c *Client) url(path string, query url.Values) string {
	u := c.endpoint + basePath + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	key := path
	if len(query) > 0 {
		key += "?" + query.Encode()
	}
	var gen uint64
	if c.cache != nil {
		if item := c.cache.Get(key); item != nil {
			c.debugf("GET %s (cached)", key)
			return decode(item.Value(), out)
		}
		gen = c.generation()
	}

	var body []byte
	err := retry.Do(
		func() error {
			b, err := c.do(ctx, http.MethodGet, path, query, nil, "")
			if err != nil {
				return err
			}
			body = b
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.retryDelay),
		retry.RetryIf(retryable),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return err
	}
	if c.cache != nil {
		c.store(gen, key, body)
	}
	return decode(body, out)
}

// send issues a mutating request with an optional JSON body. Successful
// mutations purge the GET cache.
func (c *Client) send(ctx context.Context, method, path string, in, out any) error {
	var r io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		r = bytes.NewReader(b)
		contentType = "application/json"
	}
	body, err := c.do(ctx, method, path, nil, r, contentType)
	if err != nil {
		return err
	}
	c.Invalidate()
	return decode(body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path, query), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.creds != nil {
		if token := c.creds.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.debugf("%s %s failed: %v", method, path, err)
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	c.debugf("%s %s %d %s", method, path, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(resp.StatusCode, b)
		if resp.StatusCode == http.StatusUnauthorized && path != loginPath && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return nil, apiErr
	}
	return b, nil
}

func (c *Client) debugf(format string, args ...any) {
	if c.debugLog != nil {
		c.debugLog(fmt.Sprintf(format, args...))
	}
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500 || apiErr.StatusCode == http.StatusTooManyRequests
	}
	return true
}

func decode(body []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
