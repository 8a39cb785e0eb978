package database

import (
	"time"
)

type SourceRepository interface {
	GetAllSources() ([]Source, error)
	GetSourceCount() (int, error)

	UpsertSource(name, feedURL string) error
	UpdateLastFetched(sourceID string, fetchedAt time.Time) error
}

type ContentRepository interface {
	// InsertItem stores an accepted item keyed by its canonical URL.
	// Returns false when the URL is already present; that is the expected
	// de-duplication path, not an error.
	InsertItem(item ContentItem) (bool, error)

	GetItemCount() (int, error)
	GetStats() (*ContentStats, error)

	// Retention queries. Favorited items are excluded from counts and from
	// deletion unconditionally.
	CountFreshToday() (int, error)
	CountAvailable() (int, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

type MetadataRepository interface {
	GetLastIngestedAt() (*time.Time, error)
	UpdateLastIngestedAt(t time.Time) error
}
