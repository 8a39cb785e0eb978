package feed

import (
	"time"
)

// Entry is a single feed item reduced to the fields the pipeline stores.
type Entry struct {
	Title       string
	Summary     string
	ArticleURL  string // Canonical URL, the de-duplication identity
	PublishedAt *time.Time
	ImageURL    string
}
