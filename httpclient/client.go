// Package httpclient provides the single process-wide HTTP client used
// by every vendor scraper and the GitHub release lister (spec §4.1), a
// process-wide immutable singleton per spec §9's design note.
package httpclient

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/quay/zlog"

	"github.com/jmeta/jmeta"
)

const (
	defaultUserAgent = "jmeta/dev"
	githubAPIHost    = "api.github.com"
	githubAPIVersion = "2022-11-28"
)

// Client wraps an *http.Client with the shared behavior spec §4.1
// describes: gzip/zstd decompression, a fixed user-agent, and a
// host-specific GitHub-token augmentation.
type Client struct {
	hc        *http.Client
	userAgent string
	token     string
}

// Option configures a Client at construction time.
type Option func(*Client)

// WithUserAgent overrides the default "<binary>/<version>" user-agent.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithTimeouts sets the connect and read/response timeouts. Both
// default to 30s per spec §4.1.
func WithTimeouts(connect, read time.Duration) Option {
	return func(c *Client) {
		t := c.hc.Transport.(*http.Transport)
		t.DialContext = (&net.Dialer{Timeout: connect}).DialContext
		c.hc.Timeout = read
	}
}

// New constructs a Client. The GitHub token is read from the
// GITHUB_TOKEN environment variable, per spec §6.
func New(opts ...Option) *Client {
	c := &Client{
		hc: &http.Client{
			Timeout:   30 * time.Second,
			Transport: &http.Transport{DialContext: (&net.Dialer{Timeout: 30 * time.Second}).DialContext},
		},
		userAgent: defaultUserAgent,
		token:     os.Getenv("GITHUB_TOKEN"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) newRequest(ctx context.Context, method, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, &jmeta.Error{Kind: jmeta.ErrNetwork, Op: "httpclient.newRequest", Inner: err}
	}
	req.Header.Set("user-agent", c.userAgent)
	req.Header.Set("accept-encoding", "gzip, zstd")
	if c.token != "" && req.URL.Host == githubAPIHost {
		req.Header.Set("authorization", "token "+c.token)
		req.Header.Set("x-github-api-version", githubAPIVersion)
	}
	return req, nil
}

// do issues req, checks the rate-limit headers, and decompresses the
// body transparently based on Content-Encoding.
func (c *Client) do(ctx context.Context, req *http.Request) (*http.Response, error) {
	res, err := c.hc.Do(req)
	if err != nil {
		return nil, &jmeta.Error{Kind: jmeta.ErrNetwork, Op: "httpclient.do", Inner: err}
	}
	c.warnOnRateLimit(ctx, res)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		res.Body.Close()
		return nil, &jmeta.Error{
			Kind:    jmeta.ErrNetwork,
			Op:      "httpclient.do",
			Message: fmt.Sprintf("unexpected status %s requesting %s", res.Status, req.URL),
		}
	}
	switch res.Header.Get("content-encoding") {
	case "gzip":
		zr, err := gzip.NewReader(res.Body)
		if err != nil {
			res.Body.Close()
			return nil, &jmeta.Error{Kind: jmeta.ErrDecode, Op: "httpclient.do", Inner: err}
		}
		res.Body = wrapReadCloser(zr, res.Body)
	case "zstd":
		zr, err := zstd.NewReader(res.Body)
		if err != nil {
			res.Body.Close()
			return nil, &jmeta.Error{Kind: jmeta.ErrDecode, Op: "httpclient.do", Inner: err}
		}
		res.Body = wrapZstdReadCloser(zr, res.Body)
	}
	return res, nil
}

func (c *Client) warnOnRateLimit(ctx context.Context, res *http.Response) {
	if res.StatusCode != http.StatusForbidden && res.StatusCode != http.StatusTooManyRequests {
		return
	}
	if res.Header.Get("x-ratelimit-remaining") != "0" {
		return
	}
	reset := res.Header.Get("x-ratelimit-reset")
	if sec, err := strconv.ParseInt(reset, 10, 64); err == nil {
		zlog.Warn(ctx).
			Str("url", res.Request.URL.String()).
			Time("reset", time.Unix(sec, 0)).
			Msg("rate limited")
		return
	}
	zlog.Warn(ctx).Str("url", res.Request.URL.String()).Msg("rate limited")
}

// Get retrieves url and returns the response body bytes.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, url)
	if err != nil {
		return nil, err
	}
	res, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &jmeta.Error{Kind: jmeta.ErrNetwork, Op: "httpclient.Get", Inner: err}
	}
	return b, nil
}

// GetText retrieves url and returns the body decoded as UTF-8 text.
func (c *Client) GetText(ctx context.Context, url string) (string, error) {
	b, err := c.Get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// GetJSON retrieves url, JSON-decodes the body into a new T, and returns
// the decoded value along with the response headers (needed by the
// GitHub release lister for Link-header pagination).
func GetJSON[T any](ctx context.Context, c *Client, url string) (T, http.Header, error) {
	var zero T
	req, err := c.newRequest(ctx, http.MethodGet, url)
	if err != nil {
		return zero, nil, err
	}
	res, err := c.do(ctx, req)
	if err != nil {
		return zero, nil, err
	}
	defer res.Body.Close()
	var v T
	if err := json.NewDecoder(res.Body).Decode(&v); err != nil {
		return zero, res.Header, &jmeta.Error{Kind: jmeta.ErrDecode, Op: "httpclient.GetJSON", Inner: err}
	}
	return v, res.Header, nil
}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r readCloser) Close() error {
	for _, c := range r.closers {
		if err := c.Close(); err != nil {
			return err
		}
	}
	return nil
}

func wrapReadCloser(r io.Reader, orig io.Closer) io.ReadCloser {
	return readCloser{Reader: r, closers: []io.Closer{orig}}
}

type zstdCloser struct {
	*zstd.Decoder
	orig io.Closer
}

func (z zstdCloser) Close() error {
	z.Decoder.Close()
	return z.orig.Close()
}

func wrapZstdReadCloser(r *zstd.Decoder, orig io.Closer) io.ReadCloser {
	return zstdCloser{Decoder: r, orig: orig}
}
