// Package wrake provides a depth-bounded link crawler.
// It fetches a starting page, extracts anchor, script and stylesheet
// references, normalizes them to absolute URLs and reports every newly
// discovered URL exactly once, optionally restricting recursion to the
// starting site.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, bloom/).
package wrake

import (
	"net/url"
	"strings"
)

// Scope controls which discovered URLs are eligible for recursion
// when domain restriction is enabled.
type Scope string

// Supported scopes.
const (
	// ScopeHost recurses only into URLs whose host equals the start URL's host.
	ScopeHost Scope = "host"
	// ScopeSite recurses into URLs sharing the start URL's registrable domain,
	// so www.example.com and docs.example.com are in scope for example.com.
	ScopeSite Scope = "site"
)

// Config describes a single crawl. It is built once before the crawl starts
// and must not be modified while the crawl is running.
type Config struct {
	// StartURL is the absolute http or https URL the crawl begins at.
	StartURL string

	// MaxDepth is the inclusive bound on fetch rounds after the first.
	// 0 fetches only the start page and reports its direct links.
	MaxDepth int

	// RestrictDomain limits recursion to URLs in Scope of the start URL.
	// Out-of-scope URLs are still reported unless DropOffsite is set.
	RestrictDomain bool

	// Scope selects how RestrictDomain compares hosts. Empty means ScopeHost.
	Scope Scope

	// DropOffsite suppresses reporting of out-of-scope URLs entirely.
	// It has no effect when RestrictDomain is false.
	DropOffsite bool

	// Concurrency bounds the number of simultaneous fetches within a level.
	// Values <= 0 select DefaultConcurrency.
	Concurrency int
}

// DefaultConcurrency is the fetch concurrency used when Config.Concurrency is unset.
const DefaultConcurrency = 10

// Validate reports a configuration error that must abort the crawl before
// any network activity. Returned errors carry the EINVALID code.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.StartURL) == "" {
		return Errorf(EINVALID, "start URL required")
	}
	u, err := url.Parse(c.StartURL)
	if err != nil {
		return Errorf(EINVALID, "invalid start URL %q: %v", c.StartURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "invalid start URL %q: scheme must be http or https", c.StartURL)
	}
	if u.Hostname() == "" {
		return Errorf(EINVALID, "invalid start URL %q: missing host", c.StartURL)
	}
	if c.MaxDepth < 0 {
		return Errorf(EINVALID, "depth must be non-negative, got %d", c.MaxDepth)
	}
	switch c.Scope {
	case "", ScopeHost, ScopeSite:
	default:
		return Errorf(EINVALID, "unknown scope %q", c.Scope)
	}
	return nil
}

// ConcurrencyLimit returns the effective fetch concurrency.
func (c *Config) ConcurrencyLimit() int {
	if c.Concurrency <= 0 {
		return DefaultConcurrency
	}
	return c.Concurrency
}
