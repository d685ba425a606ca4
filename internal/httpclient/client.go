// Package httpclient provides a small HTTP client that spaces out requests
// and retries transient failures.
package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/ytdl-ng/ytdl-web/internal/constants"
)

// Client wraps an http.Client to provide rate limiting and automatic retries.
type Client struct {
	httpClient *http.Client

	minRequestInterval time.Duration
	retryCount         int
	retryBase          time.Duration

	lastRequest time.Time
	mu          sync.Mutex
}

// NewClient creates a new rate-limited, retrying HTTP client.
func NewClient(httpClient *http.Client, minRequestInterval time.Duration) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: constants.DefaultProbeTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     30 * time.Second,
				TLSHandshakeTimeout: 5 * time.Second,
			},
		}
	}
	return &Client{
		httpClient:         httpClient,
		minRequestInterval: minRequestInterval,
		retryCount:         constants.DefaultRetryCount,
		retryBase:          constants.DefaultRetryBase,
	}
}

// WithRetry overrides the attempt count and the linear backoff step.
func (c *Client) WithRetry(count int, base time.Duration) *Client {
	if count < 1 {
		count = 1
	}
	c.retryCount = count
	c.retryBase = base
	return c
}

// Get issues a GET to url, building a fresh request for every attempt.
// Transport errors, 429 and 5xx responses are retried; any other response is
// returned to the caller, who must close its body.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt < c.retryCount; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, time.Duration(attempt)*c.retryBase); err != nil {
				return nil, err
			}
		}

		if err := c.waitTurn(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		if !retryable(resp.StatusCode) {
			return resp, nil
		}

		lastErr = fmt.Errorf("unexpected status %d", resp.StatusCode)
		if retryAfter := parseRetryAfter(resp); retryAfter > 0 {
			c.mu.Lock()
			next := time.Now().Add(retryAfter)
			if c.lastRequest.Before(next) {
				c.lastRequest = next
			}
			c.mu.Unlock()
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}
	return nil, lastErr
}

// waitTurn claims the next request slot and sleeps until it arrives.
func (c *Client) waitTurn(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	c.mu.Lock()
	now := time.Now()
	nextAllowed := c.lastRequest.Add(c.minRequestInterval)
	var waitTime time.Duration
	if now.Before(nextAllowed) {
		waitTime = nextAllowed.Sub(now)
		c.lastRequest = nextAllowed
	} else {
		c.lastRequest = now
	}
	c.mu.Unlock()

	return sleep(ctx, waitTime)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

// parseRetryAfter reads a Retry-After header and returns the duration to wait.
func parseRetryAfter(resp *http.Response) time.Duration {
	ra := resp.Header.Get("Retry-After")
	if ra == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(ra); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(ra); err == nil {
		return time.Until(t)
	}
	return 0
}
