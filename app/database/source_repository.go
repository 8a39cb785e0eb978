package database

import (
	"fmt"
	"time"
)

var _ SourceRepository = (*SourceRepositoryImpl)(nil)

// SourceRepositoryImpl handles database operations for feed sources
type SourceRepositoryImpl struct {
	db *DB
}

func NewSourceRepository(db *DB) *SourceRepositoryImpl {
	return &SourceRepositoryImpl{db: db}
}

// UpsertSource registers a source by its unique feed URL. Re-registering an
// existing URL updates the display name only; sources are never deleted here.
func (r *SourceRepositoryImpl) UpsertSource(name, feedURL string) error {
	_, err := r.db.Exec(`
		INSERT INTO sources (name, feed_url)
		VALUES ($1, $2)
		ON CONFLICT (feed_url) DO UPDATE SET
			name = EXCLUDED.name,
			updated_at = NOW()
	`, name, feedURL)

	if err != nil {
		return fmt.Errorf("failed to upsert source: %w", err)
	}

	return nil
}

// UpdateLastFetched records a successful fetch of the source's feed.
func (r *SourceRepositoryImpl) UpdateLastFetched(sourceID string, fetchedAt time.Time) error {
	_, err := r.db.Exec(`
		UPDATE sources
		SET last_fetched_at = $2, updated_at = NOW()
		WHERE id = $1
	`, sourceID, fetchedAt)

	if err != nil {
		return fmt.Errorf("failed to update last fetched time: %w", err)
	}

	return nil
}

func (r *SourceRepositoryImpl) GetAllSources() ([]Source, error) {
	rows, err := r.db.Query(`
		SELECT id, name, feed_url, last_fetched_at, created_at, updated_at
		FROM sources
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get sources: %w", err)
	}
	defer rows.Close()

	var sources []Source
	for rows.Next() {
		var source Source
		err := rows.Scan(
			&source.ID, &source.Name, &source.FeedURL,
			&source.LastFetchedAt, &source.CreatedAt, &source.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan source row: %w", err)
		}
		sources = append(sources, source)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating source rows: %w", err)
	}

	return sources, nil
}

func (r *SourceRepositoryImpl) GetSourceCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM sources").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get source count: %w", err)
	}
	return count, nil
}
