// Package fetchmeta fetches title/description/keywords metadata from an
// http(s) URL's HTML, for the orchestrator's add(fetch_metadata=true) path
// (SPEC_FULL.md §4.I). Adapted from the teacher's general-purpose HTML
// scraper, trimmed to title, description and keywords. The bookmark add
// path fills in title and description from them; it does not use keywords.
package fetchmeta

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

// Metadata is what add(fetch_metadata=true) pulls from a page.
type Metadata struct {
	Title       string
	Description string
	Keywords    string
}

// Fetcher retrieves Metadata for a URL, rate-limited to be polite to the
// remote host.
type Fetcher struct {
	client      *http.Client
	rateLimiter *rate.Limiter
	userAgent   string
}

// New returns a Fetcher with a 10s timeout and a 2 req/s rate limit.
func New() *Fetcher {
	return &Fetcher{
		client:      &http.Client{Timeout: 10 * time.Second},
		rateLimiter: rate.NewLimiter(rate.Limit(2.0), 1),
		userAgent:   "bkmr/1.0 (+https://github.com/sysid/bkmr)",
	}
}

// Fetch retrieves and parses the HTML at url. A non-2xx status or a
// non-HTML content type is returned as an error; callers treat metadata
// fetch failure as non-fatal to the surrounding add operation.
func (f *Fetcher) Fetch(ctx context.Context, url string) (Metadata, error) {
	if err := f.rateLimiter.Wait(ctx); err != nil {
		return Metadata{}, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Metadata{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return Metadata{}, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Metadata{}, fmt.Errorf("fetch %s: http %d", url, resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "text/html") {
		return Metadata{}, fmt.Errorf("fetch %s: non-html content type %q", url, ct)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Metadata{}, fmt.Errorf("read body: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return Metadata{}, fmt.Errorf("parse html: %w", err)
	}

	return Metadata{
		Title:       extractTitle(doc),
		Description: extractMeta(doc, "description"),
		Keywords:    extractMeta(doc, "keywords"),
	}, nil
}

func extractTitle(doc *goquery.Document) string {
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return strings.TrimSpace(doc.Find("meta[property='og:title']").AttrOr("content", ""))
}

func extractMeta(doc *goquery.Document, name string) string {
	return strings.TrimSpace(doc.Find(fmt.Sprintf("meta[name=%q]", name)).AttrOr("content", ""))
}
