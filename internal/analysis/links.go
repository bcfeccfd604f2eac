package analysis

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultProbeTimeout bounds each URL existence probe.
	DefaultProbeTimeout = 5 * time.Second

	// DefaultProbeWorkers is the size of the probe worker pool.
	DefaultProbeWorkers = 5

	maxRedirects = 10

	probeUserAgent = "inkwell-link-checker/1.0"
)

// ProbeResult is the outcome of one URL reachability check. A timeout or
// transport error is a normal "invalid" outcome, not a pipeline failure.
type ProbeResult struct {
	URL    string
	Status int // 0 when the probe errored before receiving a response
	Err    error
	Valid  bool
}

// LinkChecker is the URL-reachability capability.
type LinkChecker interface {
	Probe(ctx context.Context, url string) ProbeResult
}

// HTTPLinkChecker probes URLs with a HEAD request and a short timeout,
// following redirects. A URL is valid iff the final status is in the
// success/redirect class (200-399).
type HTTPLinkChecker struct {
	client *http.Client
}

// NewHTTPLinkChecker creates a checker with the given per-probe timeout.
func NewHTTPLinkChecker(timeout time.Duration) *HTTPLinkChecker {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return &HTTPLinkChecker{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
	}
}

// Probe implements [LinkChecker].
func (c *HTTPLinkChecker) Probe(ctx context.Context, url string) ProbeResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return ProbeResult{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", probeUserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return ProbeResult{URL: url, Err: err}
	}
	_ = resp.Body.Close()

	return ProbeResult{
		URL:    url,
		Status: resp.StatusCode,
		Valid:  resp.StatusCode >= 200 && resp.StatusCode < 400,
	}
}

// CheckURLs probes every URL with a bounded worker pool and returns
// results in input order. Probe failures are isolated per URL: the pool
// always runs to completion.
func CheckURLs(ctx context.Context, checker LinkChecker, urls []string, workers int) []ProbeResult {
	if len(urls) == 0 {
		return nil
	}
	if workers <= 0 {
		workers = DefaultProbeWorkers
	}

	results := make([]ProbeResult, len(urls))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, url := range urls {
		g.Go(func() error {
			results[i] = checker.Probe(ctx, url)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures live in results

	return results
}

// BrokenLinks filters probe results down to the invalid URLs, preserving
// first-seen order. The returned slice is never nil so that it
// serializes as [] rather than null.
func BrokenLinks(results []ProbeResult) []string {
	broken := []string{}
	for _, r := range results {
		if !r.Valid {
			broken = append(broken, r.URL)
		}
	}
	return broken
}
