// Package httputil fetches star catalogs published over HTTP.
//
// A [Fetcher] downloads a catalog body with [Retry] and keeps a copy in a
// [Cache] so repeated renders of the same URL do not hit the network:
//
//	c, err := httputil.NewCache(dir, 24*time.Hour)
//	f := httputil.NewFetcher(c)
//	body, err := f.Get(ctx, "https://example.com/inner-sphere.json")
//
// Network errors, 5xx responses and 429 responses are retried with
// exponential backoff. A 404 is reported as a FILE_NOT_FOUND error so
// callers can treat a missing remote catalog like a missing local file.
//
// The cache is keyed by URL and expires entries by file modification
// time. A TTL of 0 means entries never expire.
package httputil
