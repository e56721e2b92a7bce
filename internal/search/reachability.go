package search

import (
	"context"
	"net/http"
	"time"
)

// Checker verifies that a URL resolves to a usable page. A HEAD request is
// tried first; origins that reject HEAD get a one-byte ranged GET before the
// URL is declared unreachable.
type Checker struct {
	client  *http.Client
	timeout time.Duration
}

func NewChecker(timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &Checker{
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

var reachableStatus = map[int]struct{}{
	http.StatusOK:                {},
	http.StatusMovedPermanently:  {},
	http.StatusFound:             {},
	http.StatusTemporaryRedirect: {},
	http.StatusPermanentRedirect: {},
}

// IsReachable probes with HEAD first; any HEAD failure (network error,
// timeout, unacceptable status) falls back to a one-byte ranged GET before
// the URL is declared unreachable.
func (c *Checker) IsReachable(ctx context.Context, url string) bool {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if c.attempt(ctx, http.MethodHead, url) {
		return true
	}
	return c.attempt(ctx, http.MethodGet, url)
}

func (c *Checker) attempt(ctx context.Context, method, url string) bool {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return false
	}
	if method == http.MethodGet {
		req.Header.Set("Range", "bytes=0-0")
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if _, accepted := reachableStatus[resp.StatusCode]; accepted {
		return true
	}
	return method == http.MethodGet && resp.StatusCode == http.StatusPartialContent
}
