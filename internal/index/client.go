package index

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
)

// ErrHTMLResponse marks the classic dev-server misconfiguration: the SPA
// fallback answering index.html for a missing JSON file. It has to be called
// out explicitly instead of dying inside the JSON decoder with a useless
// "invalid character '<'" message.
var ErrHTMLResponse = errors.New("expected JSON but got HTML")

// FetchError wraps a single failed fetch attempt with the URL that failed.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("fetch %s: %v", e.URL, e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }

// LoadError is the fatal index-load failure: the primary and every fallback
// path failed. Pages treat this as "nothing safe to show" and render an
// error state instead of an empty grid.
type LoadError struct {
	Resource string
	Err      error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load %s: %v", e.Resource, e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

// Client fetches catalog JSON from a static origin. The origin is usually the
// service's own public directory served back over HTTP, but any host that
// exposes the /products tree works.
type Client struct {
	base string
	http *http.Client
}

func NewClient(base string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{base: strings.TrimSuffix(base, "/"), http: httpClient}
}

var collapseWS = regexp.MustCompile(`\s+`)

// fetch performs one attempt: status check, HTML sniff, then hands the body
// to decode. Decode errors count as attempt failures so the caller can fall
// back to the next path.
func (c *Client) fetch(ctx context.Context, path string, decode func(io.Reader) error) error {
	url := c.base + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &FetchError{URL: url, Err: err}
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.http.Do(req)
	if err != nil {
		return &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &FetchError{URL: url, Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	if ct := resp.Header.Get("Content-Type"); strings.Contains(ct, "text/html") {
		first := make([]byte, 80)
		n, _ := io.ReadFull(resp.Body, first)
		snippet := collapseWS.ReplaceAllString(string(first[:n]), " ")
		return &FetchError{URL: url, Err: fmt.Errorf("%w (first chars: %q)", ErrHTMLResponse, snippet)}
	}

	if err := decode(resp.Body); err != nil {
		return &FetchError{URL: url, Err: fmt.Errorf("parse JSON: %w", err)}
	}
	return nil
}

// FetchFirst tries each path in order and decodes the first success. Only the
// final attempt's error surfaces; intermediate failures are the expected cost
// of probing legacy locations.
func (c *Client) FetchFirst(ctx context.Context, paths []string, decode func(io.Reader) error) error {
	var lastErr error
	for _, p := range paths {
		if err := c.fetch(ctx, p, decode); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	if lastErr == nil {
		lastErr = errors.New("no paths to fetch")
	}
	return lastErr
}
