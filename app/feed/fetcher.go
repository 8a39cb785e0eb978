package feed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
)

const fetchTimeout = 15 * time.Second

// MaxExcerptLength bounds stored summaries; longer text is cut at a
// sentence boundary where possible.
const MaxExcerptLength = 500

type Fetcher struct {
	httpClient   *http.Client
	gofeedParser *gofeed.Parser
	userAgent    string
	perSource    int
}

// NewFetcher creates a fetcher that takes at most perSource entries from
// each feed per run.
func NewFetcher(httpClient *http.Client, userAgent string, perSource int) *Fetcher {
	return &Fetcher{
		httpClient:   httpClient,
		gofeedParser: gofeed.NewParser(),
		userAgent:    userAgent,
		perSource:    perSource,
	}
}

// FetchSource retrieves and parses one feed, returning up to the per-source
// cap of most-recent entries. A network or parse failure fails the whole
// source; the caller skips it for this run.
func (f *Fetcher) FetchSource(ctx context.Context, feedURL string) ([]Entry, error) {
	data, err := f.fetch(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	parsed, err := f.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := parsed.Items
	if len(items) > f.perSource {
		items = items[:f.perSource]
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		entry, ok := f.extractEntry(item)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (f *Fetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

// extractEntry normalizes one feed item. Entries without a title or link
// are discarded.
func (f *Fetcher) extractEntry(item *gofeed.Item) (Entry, bool) {
	entry := Entry{
		Title:      collapseWhitespace(item.Title),
		ArticleURL: item.Link,
	}

	if entry.Title == "" || entry.ArticleURL == "" {
		return Entry{}, false
	}

	if item.PublishedParsed != nil {
		entry.PublishedAt = item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		entry.PublishedAt = item.UpdatedParsed
	}

	// Native summary first, generated excerpt from full content otherwise.
	summaryHTML := item.Description
	if summaryHTML == "" {
		summaryHTML = item.Content
	}
	entry.Summary = Excerpt(ExtractText(summaryHTML), MaxExcerptLength)

	entry.ImageURL = extractImage(item)

	return entry, true
}
