package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/matzehuels/starmap/pkg/buildinfo"
	"github.com/matzehuels/starmap/pkg/errors"
)

// MaxBodySize caps how much of a response body is read.
const MaxBodySize = 32 << 20

const (
	defaultAttempts = 3
	defaultDelay    = time.Second
	defaultTimeout  = 30 * time.Second
)

// Fetcher downloads remote catalogs.
type Fetcher struct {
	Client   *http.Client
	Cache    *Cache // nil disables caching
	Attempts int
	Delay    time.Duration

	// Refresh skips cached entries but still stores fresh bodies.
	Refresh bool
}

// NewFetcher returns a Fetcher with a 30 second client timeout and three
// attempts starting at a one second backoff. c may be nil.
func NewFetcher(c *Cache) *Fetcher {
	return &Fetcher{
		Client:   &http.Client{Timeout: defaultTimeout},
		Cache:    c,
		Attempts: defaultAttempts,
		Delay:    defaultDelay,
	}
}

// IsURL reports whether s is an http or https URL.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Get returns the body at rawURL, from the cache when a fresh copy exists.
// If every attempt fails and a stale copy is cached, the stale copy is
// returned instead of the error.
func (f *Fetcher) Get(ctx context.Context, rawURL string) ([]byte, error) {
	var stale []byte
	if f.Cache != nil && !f.Refresh {
		data, ok, err := f.Cache.Get(rawURL)
		if ok {
			return data, nil
		}
		if err == ErrExpired {
			stale = data
		}
	}

	var body []byte
	err := Retry(ctx, f.Attempts, f.Delay, func() error {
		var err error
		body, err = f.fetch(ctx, rawURL)
		return err
	})
	if err != nil {
		if stale != nil && IsRetryable(err) {
			return stale, nil
		}
		return nil, err
	}

	if f.Cache != nil {
		_ = f.Cache.Set(rawURL, body)
	}
	return body, nil
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "catalog url")
	}
	req.Header.Set("User-Agent", "starmap/"+buildinfo.Version)

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "GET %s", rawURL))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeFileNotFound, "catalog %s: %s", rawURL, resp.Status)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, Retryable(errors.New(errors.ErrCodeRateLimited, "GET %s: %s", rawURL, resp.Status))
	case resp.StatusCode >= 500:
		return nil, Retryable(errors.New(errors.ErrCodeNetwork, "GET %s: %s", rawURL, resp.Status))
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("GET %s: %s", rawURL, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "read %s", rawURL))
	}
	if len(body) > MaxBodySize {
		return nil, errors.New(errors.ErrCodeInvalidCatalog, "catalog %s exceeds %d bytes", rawURL, MaxBodySize)
	}
	return body, nil
}
