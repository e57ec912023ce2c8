// Package client is a typed client for the account inventory HTTP API.
//
// Successful responses are cached per request URL for a short TTL, and
// concurrent identical requests share one round trip.
package client

import (
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

	"golang.org/x/sync/singleflight"

	"github.com/yungbote/account-inventory/internal/platform/envutil"
)

const (
	DefaultBaseURL  = "http://localhost:8000"
	DefaultCacheTTL = 60 * time.Second
	DefaultTimeout  = 10 * time.Second
)

type Options struct {
	BaseURL string

	// CacheTTL of 0 means DefaultCacheTTL; a negative value disables caching.
	CacheTTL   time.Duration
	Timeout    time.Duration
	MaxRetries int

	HTTPClient *http.Client
	// Now overrides the cache clock.
	Now func() time.Time
}

type Client struct {
	baseURL    string
	timeout    time.Duration
	maxRetries int
	httpClient *http.Client

	cache  *responseCache
	flight singleflight.Group
}

func New(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("baseURL required")
	}
	if u, err := url.Parse(baseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid baseURL %q", opts.BaseURL)
	}

	ttl := opts.CacheTTL
	if ttl == 0 {
		ttl = DefaultCacheTTL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	maxRetries := opts.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}

	return &Client{
		baseURL:    baseURL,
		timeout:    timeout,
		maxRetries: maxRetries,
		httpClient: hc,
		cache:      newResponseCache(ttl, opts.Now),
	}, nil
}

func NewFromEnv() (*Client, error) {
	return New(Options{
		BaseURL:    envutil.String("INVENTORY_API_URL", DefaultBaseURL),
		CacheTTL:   envutil.Duration("INVENTORY_CACHE_TTL", DefaultCacheTTL),
		Timeout:    envutil.Duration("INVENTORY_API_TIMEOUT", DefaultTimeout),
		MaxRetries: envutil.Int("INVENTORY_API_MAX_RETRIES", 1),
	})
}

func (c *Client) BaseURL() string { return c.baseURL }

// Invalidate drops every cached response.
func (c *Client) Invalidate() { c.cache.clear() }

func (c *Client) Info(ctx context.Context) (Info, error) {
	var out Info
	err := c.getJSON(ctx, "/", nil, &out)
	return out, err
}

func (c *Client) ListAccounts(ctx context.Context, f Filter) ([]AccountSummary, error) {
	q := url.Values{}
	setParam(q, "tenant", f.Tenant)
	setParam(q, "status", f.Status)
	setParam(q, "environment", f.Environment)
	setParam(q, "account_category", f.AccountCategory)

	var out []AccountSummary
	if err := c.getJSON(ctx, "/accounts", q, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []AccountSummary{}
	}
	return out, nil
}

// GetAccount returns ErrNotFound (via errors.Is) when no account matches.
func (c *Client) GetAccount(ctx context.Context, accountNumber int64) (Account, error) {
	var out Account
	err := c.getJSON(ctx, "/accounts/"+strconv.FormatInt(accountNumber, 10), nil, &out)
	return out, err
}

func (c *Client) Tenants(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.getJSON(ctx, "/tenants", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var out Stats
	err := c.getJSON(ctx, "/stats", nil, &out)
	return out, err
}

func setParam(q url.Values, key, val string) {
	if val != "" {
		q.Set(key, val)
	}
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	target := c.baseURL + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}

	raw, err := c.fetch(ctx, target)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, target string) ([]byte, error) {
	if body, ok := c.cache.get(target); ok {
		return body, nil
	}
	v, err, _ := c.flight.Do(target, func() (any, error) {
		body, err := c.doGet(ctx, target)
		if err != nil {
			return nil, err
		}
		c.cache.put(target, body)
		return body, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (c *Client) doGet(ctx context.Context, target string) ([]byte, error) {
	ctx2, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var lastErr error
	backoff := 250 * time.Millisecond
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx2.Err() != nil {
			return nil, ctx2.Err()
		}

		req, err := http.NewRequestWithContext(ctx2, http.MethodGet, target, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = &UnreachableError{URL: c.baseURL, Err: err}
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				return nil, readErr
			}
			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			}
			lastErr = parseHTTPError(resp.StatusCode, raw)
			if resp.StatusCode < 500 {
				return nil, lastErr
			}
		}

		if attempt < c.maxRetries {
			select {
			case <-ctx2.Done():
				return nil, lastErr
			case <-time.After(backoff):
			}
			backoff *= 2
		}
	}

	if lastErr == nil {
		lastErr = errors.New("request failed")
	}
	return nil, lastErr
}
