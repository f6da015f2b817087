// Package registry searches an npm-compatible package registry for installable generators.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	lru "github.com/hashicorp/golang-lru/v2"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// SearchKeyword is prepended to every search so only generator packages are returned.
const SearchKeyword = "keywords:yeoman-generator"

var (
	ErrUnexpectedStatus = errors.New("unexpected status from registry")
)

// Package is a search result from the registry.
type Package struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`
}

type searchResponse struct {
	Objects []struct {
		Package Package `json:"package"`
	} `json:"objects"`
}

type packageDocument struct {
	DistTags map[string]string `json:"dist-tags"`
	Versions map[string]struct {
		Deprecated any `json:"deprecated"`
	} `json:"versions"`
}

// StatusError is returned when the registry responds with a non-200 status.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v: %d from %s", ErrUnexpectedStatus, e.StatusCode, e.URL)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

func (e *StatusError) retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// Client queries the registry, memoizing results for the life of the process.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *slog.Logger
	size    int
	retry   retrySettings

	searches   *lru.Cache[string, []Package]
	deprecated *lru.Cache[string, bool]
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient overrides the [http.Client] used for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithLogger sets the logger used to report retries.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSearchSize sets how many results are requested per search.
func WithSearchSize(size int) Option {
	return func(c *Client) {
		if size > 0 {
			c.size = size
		}
	}
}

// WithRetries sets how many attempts are made for transient failures, and the initial delay between them.
// The delay doubles after each attempt.
func WithRetries(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		c.retry = retrySettings{MaxTries: attempts, TimeBetweenRetries: delay, BackoffFactor: 2}
	}
}

// NewClient creates a [Client] for the registry at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid registry URL '%s': %w", baseURL, err)
	}
	if len(u.Scheme) == 0 || len(u.Host) == 0 {
		return nil, fmt.Errorf("invalid registry URL '%s': scheme and host are required", baseURL)
	}
	searches, err := lru.New[string, []Package](64)
	if err != nil {
		return nil, err
	}
	deprecated, err := lru.New[string, bool](512)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:    u,
		http:       &http.Client{Timeout: 30 * time.Second},
		logger:     slog.New(slog.DiscardHandler),
		size:       250,
		retry:      retrySettings{MaxTries: 3, TimeBetweenRetries: 250 * time.Millisecond, BackoffFactor: 2},
		searches:   searches,
		deprecated: deprecated,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Search returns generator packages matching term.
// Results are cached by term, so repeated searches in a session don't hit the network.
func (c *Client) Search(ctx context.Context, term string) ([]Package, error) {
	term = strings.TrimSpace(term)
	if cached, ok := c.searches.Get(term); ok {
		return cached, nil
	}
	u := c.baseURL.JoinPath("-", "v1", "search")
	q := u.Query()
	q.Set("text", strings.TrimSpace(SearchKeyword+" "+term))
	q.Set("size", strconv.Itoa(c.size))
	u.RawQuery = q.Encode()

	var resp searchResponse
	if err := c.getJSON(ctx, u.String(), &resp); err != nil {
		return nil, fmt.Errorf("failed to search registry: %w", err)
	}
	pkgs := make([]Package, 0, len(resp.Objects))
	for _, obj := range resp.Objects {
		pkgs = append(pkgs, obj.Package)
	}
	c.searches.Add(term, pkgs)
	return pkgs, nil
}

// Deprecated reports whether the latest published version of the named package is deprecated.
func (c *Client) Deprecated(ctx context.Context, name string) (bool, error) {
	if cached, ok := c.deprecated.Get(name); ok {
		return cached, nil
	}
	u := c.baseURL.JoinPath(url.PathEscape(name))

	var doc packageDocument
	if err := c.getJSON(ctx, u.String(), &doc); err != nil {
		return false, fmt.Errorf("failed to read package '%s': %w", name, err)
	}
	deprecated := false
	if latest, ok := doc.DistTags["latest"]; ok {
		if version, ok := doc.Versions[latest]; ok {
			switch d := version.Deprecated.(type) {
			case nil:
			case bool:
				deprecated = d
			case string:
				deprecated = len(d) > 0
			default:
				deprecated = true
			}
		}
	}
	c.deprecated.Add(name, deprecated)
	return deprecated, nil
}

func (c *Client) getJSON(ctx context.Context, u string, target any) error {
	attempt := 0
	return withRetry(ctx, c.retry, func() (bool, error) {
		attempt++
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return false, err
		}
		req.Header.Set("Accept", "application/json")
		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			c.logger.Debug("Registry request failed", "url", u, "attempt", attempt, "error", err)
			return true, err
		}
		defer func() {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
		}()
		if resp.StatusCode != http.StatusOK {
			statusErr := &StatusError{StatusCode: resp.StatusCode, URL: u}
			c.logger.Debug("Registry returned error status", "url", u, "attempt", attempt, "status", resp.StatusCode)
			return statusErr.retryable(), statusErr
		}
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return false, fmt.Errorf("invalid registry response: %w", err)
		}
		return false, nil
	})
}
