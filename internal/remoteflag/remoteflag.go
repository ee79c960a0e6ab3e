// Package remoteflag reads per-balancer activation flags served over HTTP.
//
// A flag is active only when its URL answers 200 with a body of exactly
// "active". Any failure to read the flag is reported as Unavailable, which
// callers treat as keep (fail-open).
package remoteflag

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ActiveBody is the only body that marks a flag active.
const ActiveBody = "active"

// DefaultTimeout bounds a single flag request.
const DefaultTimeout = 5 * time.Second

// maxBody caps how much of a flag response is read.
const maxBody = 4096

// ErrInvalidSpec is returned for a malformed "name#url,..." flag list.
var ErrInvalidSpec = errors.New("invalid remote flag spec")

// Outcome is the classified result of one flag lookup.
type Outcome int

const (
	Unavailable Outcome = iota
	Active
	Inactive
)

func (o Outcome) String() string {
	switch o {
	case Active:
		return "active"
	case Inactive:
		return "inactive"
	default:
		return "unavailable"
	}
}

// Keep reports whether a balancer stays in the working set.
func (o Outcome) Keep() bool {
	return o != Inactive
}

// Fetcher performs the HTTP GET behind a flag.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// HTTPFetcher fetches flags with a per-request timeout.
type HTTPFetcher struct {
	client  *http.Client
	timeout time.Duration
}

func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPFetcher{client: &http.Client{}, timeout: timeout}
}

// Fetch returns the response body, or an error for transport failures and
// non-200 responses.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}
	return string(body), nil
}

// Check fetches one flag and classifies it. The returned error is the fetch
// failure behind an Unavailable outcome, for logging only.
func Check(ctx context.Context, f Fetcher, url string) (Outcome, error) {
	body, err := f.Fetch(ctx, url)
	if err != nil {
		return Unavailable, err
	}
	if body == ActiveBody {
		return Active, nil
	}
	return Inactive, nil
}

// ParseSpec parses "name#url,name#url" into a balancer name to URL map.
// Empty input yields an empty map.
func ParseSpec(spec string) (map[string]string, error) {
	flags := map[string]string{}
	if strings.TrimSpace(spec) == "" {
		return flags, nil
	}
	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, url, ok := strings.Cut(entry, "#")
		if !ok || name == "" || url == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSpec, entry)
		}
		flags[name] = url
	}
	return flags, nil
}
