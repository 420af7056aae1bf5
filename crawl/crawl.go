// Package crawl provides link crawl orchestration.
// It drives a breadth-first traversal one depth level at a time, fetching
// each level with a bounded worker pool, normalizing extracted links and
// reporting each newly seen URL exactly once.
package crawl

import (
	"context"
	"net/url"
	"time"

	"github.com/fwojciec/wrake"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Crawler orchestrates depth-bounded link discovery.
// A Crawler may run several crawls; each call to Crawl owns its own
// frontier and seen set.
type Crawler struct {
	Fetcher    wrake.Fetcher
	Extractor  wrake.LinkExtractor
	Normalizer *Normalizer

	// NewSeenSet creates the seen set for a crawl. Defaults to an exact,
	// in-memory set.
	NewSeenSet func() wrake.SeenSet

	// RetryDelays are waited between fetch attempts of a single URL.
	// Nil means each URL is fetched once.
	RetryDelays []time.Duration

	// Progress, if set, receives events as the crawl proceeds.
	// It is called from a single goroutine.
	Progress ProgressFunc
}

// EmitFunc receives each newly discovered URL. It is called from a single
// goroutine, in discovery order.
type EmitFunc func(url string)

// Result holds the outcome of a crawl.
type Result struct {
	ID         string
	Levels     int // fetch rounds completed
	Fetched    int // pages fetched and parsed
	Failed     int // pages that could not be fetched or parsed
	Discovered int // URLs emitted
}

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type    ProgressType
	CrawlID string
	Level   int
	URL     string
	Total   int // frontier size, for ProgressLevelStarted
	Attempt int // upcoming attempt, for ProgressRetried
	Error   error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressLevelStarted ProgressType = iota
	ProgressFetched
	ProgressFailed
	ProgressRetried
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of processing a single frontier URL.
type pageResult struct {
	url     string
	links   []string
	retries []ProgressEvent
	err     error
}

// Crawl traverses from cfg.StartURL and calls emit for every URL it
// discovers that it has not seen before. The start URL itself is marked
// seen up front and never emitted; a start URL without a path is treated
// as having path "/".
//
// Level N+1 is fetched only after every page of level N has been processed.
// Fetch and parse failures are reported through Progress and counted in
// Result.Failed; they never stop the crawl. The only error returned before
// fetching is an invalid configuration. If ctx is canceled, Crawl returns
// the partial result with ctx.Err() once the current level drains.
func (c *Crawler) Crawl(ctx context.Context, cfg wrake.Config, emit EmitFunc) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	start, err := url.Parse(cfg.StartURL)
	if err != nil {
		return nil, wrake.Errorf(wrake.EINVALID, "invalid start URL %q: %v", cfg.StartURL, err)
	}
	if start.Path == "" {
		start.Path = "/"
	}
	startURL := start.String()

	newSeen := c.NewSeenSet
	if newSeen == nil {
		newSeen = func() wrake.SeenSet { return NewSeenSet() }
	}
	seen := newSeen()
	seen.Insert(startURL)

	result := &Result{ID: uuid.NewString()}
	frontier := []string{startURL}

	for level := 0; level <= cfg.MaxDepth && len(frontier) > 0; level++ {
		c.report(ProgressEvent{
			Type:    ProgressLevelStarted,
			CrawlID: result.ID,
			Level:   level,
			Total:   len(frontier),
		})

		var next []string
		for page := range c.fetchLevel(ctx, frontier, cfg.ConcurrencyLimit()) {
			for _, ev := range page.retries {
				ev.CrawlID, ev.Level = result.ID, level
				c.report(ev)
			}
			if page.err != nil {
				result.Failed++
				c.report(ProgressEvent{
					Type:    ProgressFailed,
					CrawlID: result.ID,
					Level:   level,
					URL:     page.url,
					Error:   page.err,
				})
				continue
			}
			result.Fetched++
			c.report(ProgressEvent{
				Type:    ProgressFetched,
				CrawlID: result.ID,
				Level:   level,
				URL:     page.url,
			})

			for _, link := range page.links {
				inScope := !cfg.RestrictDomain || InScope(cfg.Scope, startURL, link)
				if !inScope && cfg.DropOffsite {
					continue
				}
				if !seen.Insert(link) {
					continue
				}
				result.Discovered++
				if emit != nil {
					emit(link)
				}
				if inScope {
					next = append(next, link)
				}
			}
		}
		result.Levels++
		frontier = next

		if err := ctx.Err(); err != nil {
			c.finish(result)
			return result, err
		}
	}

	c.finish(result)
	return result, nil
}

// fetchLevel processes every URL of a frontier with at most concurrency
// pages in flight. The returned channel is closed once all have completed.
func (c *Crawler) fetchLevel(ctx context.Context, frontier []string, concurrency int) <-chan pageResult {
	resultCh := make(chan pageResult, len(frontier))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, u := range frontier {
			g.Go(func() error {
				resultCh <- c.processURL(gctx, u)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	return resultCh
}

// processURL fetches a page and returns its normalized links.
func (c *Crawler) processURL(ctx context.Context, pageURL string) pageResult {
	result := pageResult{url: pageURL}

	base, err := url.Parse(pageURL)
	if err != nil {
		result.err = err
		return result
	}

	onRetry := func(attempt int, err error) {
		result.retries = append(result.retries, ProgressEvent{
			Type:    ProgressRetried,
			URL:     pageURL,
			Attempt: attempt,
			Error:   err,
		})
	}
	html, err := FetchWithRetry(ctx, pageURL, c.Fetcher.Fetch, c.RetryDelays, onRetry)
	if err != nil {
		result.err = err
		return result
	}

	raws, err := c.Extractor.ExtractLinks(html)
	if err != nil {
		result.err = err
		return result
	}

	norm := c.Normalizer
	if norm == nil {
		norm = &Normalizer{}
	}
	for _, raw := range raws {
		if link, ok := norm.Normalize(base, raw.Value); ok {
			result.links = append(result.links, link)
		}
	}
	return result
}

func (c *Crawler) report(event ProgressEvent) {
	if c.Progress != nil {
		c.Progress(event)
	}
}

func (c *Crawler) finish(result *Result) {
	c.report(ProgressEvent{
		Type:    ProgressFinished,
		CrawlID: result.ID,
		Level:   result.Levels,
	})
}
