// Package collect implements the HTTP collaborator clients the aggregator
// fans out to. Each external source gets its own file and client type; all
// of them tolerate non-200 statuses, timeouts and malformed payloads by
// reporting the failure to the caller instead of aborting a batch.
package collect

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// browserUserAgent is sent to profile endpoints that block obvious bots
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	// toolUserAgent is sent to APIs that ask for an identifying agent
	toolUserAgent = "osintdash-OSINT-Tool"

	// maxBodyBytes caps how much of any response we read. Profile pages are
	// classified on their first megabyte; anything larger is junk for us.
	maxBodyBytes = 1 << 20
)

// DefaultHTTPClient returns the outbound client shared by collectors.
// Per-call deadlines come from the caller's context, so no client-level
// timeout is set here.
func DefaultHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 4,
			IdleConnTimeout:     30 * time.Second,
		},
	}
}

// get issues a GET with the given user agent and optional accept header,
// returning the response. The caller owns closing the body.
func get(ctx context.Context, client *http.Client, url, agent, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", agent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	return client.Do(req)
}

// readBody drains up to maxBodyBytes of a response body
func readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
}

// isTimeout reports whether an outbound call failed because its deadline
// expired rather than because the source misbehaved.
func isTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
