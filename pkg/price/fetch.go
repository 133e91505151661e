package price

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
)

// userAgent is a desktop browser identity; storefronts serve stripped-down
// or blocked pages to unknown clients.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// maxBodyBytes caps how much of a product page is read. Prices sit in the
// first part of the document on every storefront we target.
const maxBodyBytes = 2 << 20

// Fetcher retrieves product pages and runs extraction over them. It holds no
// per-request state and is safe for concurrent use.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a Fetcher whose outbound requests are bounded by the
// given timeout. Timeouts are treated as lookup failures, not retried.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// LookupByURL fetches the page at rawURL and extracts the first plausible
// price. Every failure mode (bad URL, DNS, TLS, timeout, non-2xx status, no
// price pattern in the body) degrades to Found=false; the caller never sees
// an error.
func (f *Fetcher) LookupByURL(ctx context.Context, rawURL string) Result {
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		log.Warn("Rejecting non-http product URL", "url", rawURL)
		return Result{Found: false, URL: rawURL}
	}

	body, err := f.fetch(ctx, rawURL)
	if err != nil {
		log.Warn("Price page fetch failed", "url", rawURL, "error", err)
		return Result{Found: false, URL: rawURL}
	}

	result := ExtractForHost(parsed.Hostname(), body)
	result.URL = rawURL
	if !result.Found {
		log.Info("No price pattern found in page", "url", rawURL)
	}
	return result
}

// LookupByDescription builds a shopping search query from a free-text product
// description (typically produced by image analysis) and extracts a price
// from the first results page, using the same rules as LookupByURL.
func (f *Fetcher) LookupByDescription(ctx context.Context, description string) Result {
	if description == "" {
		return Result{Found: false}
	}
	searchURL := "https://www.amazon.com/s?k=" + url.QueryEscape(description)
	result := f.LookupByURL(ctx, searchURL)
	if result.Found {
		result.Source = result.Source + " Search"
		result.Title = description
	}
	return result
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", err
	}
	return string(body), nil
}
