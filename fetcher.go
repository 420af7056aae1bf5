package wrake

import "context"

// Fetcher retrieves raw HTML from URLs.
// Implementations own transport concerns such as user agent, proxy,
// TLS verification and per-request timeouts.
type Fetcher interface {
	// Fetch retrieves the HTML body of the page at url.
	// Non-success responses and unreadable bodies are returned as errors.
	// The context controls cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}
