package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/wrake"
	"github.com/fwojciec/wrake/bloom"
	"github.com/fwojciec/wrake/crawl"
	"github.com/fwojciec/wrake/goquery"
	wrakehttp "github.com/fwojciec/wrake/http"
	wrakeslog "github.com/fwojciec/wrake/slog"
)

// bloomFalsePositiveRate is the target error rate of --approximate-dedupe.
const bloomFalsePositiveRate = 0.001

// retryBaseDelay is the wait before the first retry; later waits double.
const retryBaseDelay = time.Second

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL            string        `short:"u" required:"" help:"Start URL to crawl"`
	Proxy          string        `short:"p" env:"WRAKE_PROXY" help:"Proxy URL (http, https, socks5 or socks5h)"`
	UserAgent      string        `short:"A" name:"user-agent" default:"wrake" env:"WRAKE_USER_AGENT" help:"User-Agent header sent with every request"`
	Depth          int           `short:"d" default:"2" help:"Maximum crawl depth (0 fetches only the start page)"`
	NoDomainFilter bool          `short:"n" name:"no-domain-filter" help:"Follow links to any host"`
	InsecureProxy  bool          `short:"i" name:"insecure-proxy" help:"Skip TLS certificate verification for the proxy and the sites reached through it"`
	Concurrency    int           `short:"c" default:"10" help:"Concurrent fetches per level"`
	Timeout        time.Duration `short:"t" default:"10s" help:"Timeout per request"`
	Retries        int           `default:"0" help:"Retries per failed fetch, with exponential backoff from 1s"`

	Scope        string `default:"host" enum:"host,site" help:"Domain filter scope: exact host or registrable domain (${enum})"`
	DropOffsite  bool   `name:"drop-offsite" help:"Do not print links outside the domain filter scope"`
	BareRelative bool   `name:"bare-relative" help:"Resolve bare relative links such as page.html"`

	ApproximateDedupe bool `name:"approximate-dedupe" help:"Track seen URLs in a Bloom filter (bounded memory, may skip a few URLs)"`
	ExpectedURLs      uint `name:"expected-urls" default:"100000" help:"Expected number of URLs when using --approximate-dedupe"`

	Debug  bool            `help:"Log fetches and crawl progress to stderr"`
	Config kong.ConfigFlag `help:"Path to a YAML config file"`
}

// CrawlConfig builds the crawl configuration from parsed flags.
func (c *CLI) CrawlConfig() wrake.Config {
	return wrake.Config{
		StartURL:       c.URL,
		MaxDepth:       c.Depth,
		RestrictDomain: !c.NoDomainFilter,
		Scope:          wrake.Scope(c.Scope),
		DropOffsite:    c.DropOffsite,
		Concurrency:    c.Concurrency,
	}
}

// Run wires dependencies and crawls, printing each discovered URL to stdout.
func (c *CLI) Run(ctx context.Context, stdout, stderr io.Writer) error {
	cfg := c.CrawlConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if c.Retries < 0 {
		return wrake.Errorf(wrake.EINVALID, "retries must be non-negative, got %d", c.Retries)
	}

	opts := []wrakehttp.Option{
		wrakehttp.WithTimeout(c.Timeout),
		wrakehttp.WithUserAgent(c.UserAgent),
	}
	if c.Proxy != "" {
		proxy, err := wrakehttp.ParseProxy(c.Proxy)
		if err != nil {
			return err
		}
		opts = append(opts, wrakehttp.WithProxy(proxy), wrakehttp.WithInsecureProxy(c.InsecureProxy))
	}

	var fetcher wrake.Fetcher = wrakehttp.NewFetcher(opts...)
	defer fetcher.Close()
	var extractor wrake.LinkExtractor = goquery.NewExtractor()

	var logger *slog.Logger
	if c.Debug {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		fetcher = wrakeslog.NewLoggingFetcher(fetcher, logger)
		extractor = wrakeslog.NewLoggingExtractor(extractor, logger)
	}

	crawler := &crawl.Crawler{
		Fetcher:     fetcher,
		Extractor:   extractor,
		Normalizer:  &crawl.Normalizer{ResolveBare: c.BareRelative},
		RetryDelays: crawl.BackoffDelays(c.Retries, retryBaseDelay),
	}
	if c.ApproximateDedupe {
		crawler.NewSeenSet = func() wrake.SeenSet {
			return bloom.NewSeenSet(c.ExpectedURLs, bloomFalsePositiveRate)
		}
	}
	if logger != nil {
		crawler.Progress = wrakeslog.ProgressLogger(logger)
	}

	var writeErr error
	emit := func(url string) {
		if writeErr != nil {
			return
		}
		_, writeErr = fmt.Fprintln(stdout, url)
	}

	result, err := crawler.Crawl(ctx, cfg, emit)
	if logger != nil {
		wrakeslog.LogResult(logger, result, err)
	}
	if err != nil {
		return err
	}
	return writeErr
}
