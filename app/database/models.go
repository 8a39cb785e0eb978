package database

import (
	"time"
)

type Source struct {
	ID            string // Database UUID
	Name          string // Human-readable source name
	FeedURL       string // RSS/Atom feed URL, unique across sources
	LastFetchedAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type ContentItem struct {
	ID          string
	SourceID    string
	Title       string
	Summary     string
	ArticleURL  string // Canonical URL, unique across content (the dedup key)
	PublishedAt *time.Time
	Topic       string
	ImageURL    string

	// Classification provenance, set once at ingest time
	Method     string
	Confidence *float64
	Metadata   map[string]any

	CreatedAt time.Time
}

type TopicCount struct {
	Topic string
	Count int
}

type ContentStats struct {
	TotalItems    int
	ItemsLast24h  int
	ItemsLastWeek int
	MostRecent    *time.Time
	TopTopics     []TopicCount
}
