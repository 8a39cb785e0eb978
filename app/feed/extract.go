package feed

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// ExtractText strips markup from an HTML fragment and returns plain text
// with normalized whitespace. Plain-text input passes through unchanged.
func ExtractText(html string) string {
	if html == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return collapseWhitespace(html)
	}

	return collapseWhitespace(doc.Text())
}

// Excerpt truncates text to at most max runes, preferring a sentence
// boundary in the second half of the window, then a word boundary.
func Excerpt(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}

	window := string(runes[:max])

	boundary := -1
	for _, mark := range []string{". ", "! ", "? "} {
		if idx := strings.LastIndex(window, mark); idx > boundary {
			boundary = idx
		}
	}
	// Byte offsets on both sides: boundary comes from LastIndex.
	if boundary >= len(window)/2 {
		return window[:boundary+1]
	}

	if idx := strings.LastIndex(window, " "); idx > 0 {
		window = window[:idx]
	}
	return window + "..."
}

// extractImage finds a best-effort image reference for an entry: the feed's
// native image, a media extension, an image enclosure, or the first <img>
// in the entry HTML.
func extractImage(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}

	if media, ok := item.Extensions["media"]; ok {
		for _, key := range []string{"content", "thumbnail"} {
			for _, ext := range media[key] {
				if url := ext.Attrs["url"]; url != "" {
					return url
				}
			}
		}
	}

	for _, enclosure := range item.Enclosures {
		if enclosure != nil && strings.HasPrefix(enclosure.Type, "image/") && enclosure.URL != "" {
			return enclosure.URL
		}
	}

	for _, html := range []string{item.Description, item.Content} {
		if html == "" {
			continue
		}
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			continue
		}
		if src, ok := doc.Find("img").First().Attr("src"); ok && src != "" {
			return src
		}
	}

	return ""
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
