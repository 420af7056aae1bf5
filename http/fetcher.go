// Package http provides an HTTP-based implementation of wrake.Fetcher.
package http

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/wrake"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "wrake"

// DefaultMaxBodySize caps how much of a response body is read.
const DefaultMaxBodySize = 10 << 20 // 10 MiB

// Ensure Fetcher implements wrake.Fetcher at compile time.
var _ wrake.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP GET requests.
// It is safe for concurrent use.
type Fetcher struct {
	client        *http.Client
	timeout       time.Duration
	userAgent     string
	proxy         *url.URL
	insecureProxy bool
	maxBodySize   int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithProxy routes every request through the given proxy.
// Use ParseProxy to validate user input first.
func WithProxy(proxy *url.URL) Option {
	return func(f *Fetcher) {
		f.proxy = proxy
	}
}

// WithInsecureProxy disables TLS certificate verification while a proxy is
// configured. It applies to every TLS session the transport opens: the
// proxy connection and the target servers reached through it.
func WithInsecureProxy(insecure bool) Option {
	return func(f *Fetcher) {
		f.insecureProxy = insecure
	}
}

// WithMaxBodySize sets how many bytes of a response body are read.
// The rest is discarded.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if f.proxy != nil {
		transport.Proxy = http.ProxyURL(f.proxy)
		if f.insecureProxy {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		}
	} else {
		transport.Proxy = nil
	}

	f.client = &http.Client{
		Timeout:   f.timeout,
		Transport: transport,
	}

	return f
}

// ParseProxy parses a proxy URL given on the command line.
// Supported schemes are http, https, socks5 and socks5h.
func ParseProxy(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, wrake.Errorf(wrake.EINVALID, "invalid proxy %q: %v", raw, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "socks5", "socks5h":
	case "":
		return nil, wrake.Errorf(wrake.EINVALID, "invalid proxy %q: missing scheme", raw)
	default:
		return nil, wrake.Errorf(wrake.EINVALID, "invalid proxy %q: unsupported scheme %q", raw, u.Scheme)
	}
	if u.Host == "" {
		return nil, wrake.Errorf(wrake.EINVALID, "invalid proxy %q: missing host", raw)
	}
	return u, nil
}

// Fetch retrieves the body of the given URL decoded to UTF-8.
// Non-2xx responses are errors: 404 and 410 carry ENOTFOUND, anything
// else EUNAVAILABLE.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		code := wrake.EUNAVAILABLE
		if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
			code = wrake.ENOTFOUND
		}
		return "", wrake.Errorf(code, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return "", err
	}

	enc, _, _ := charset.DetermineEncoding(body, resp.Header.Get("Content-Type"))
	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return "", err
	}

	return string(decoded), nil
}

// Close releases idle connections.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
