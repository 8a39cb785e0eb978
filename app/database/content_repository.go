package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

var _ ContentRepository = (*ContentRepositoryImpl)(nil)

// ContentRepositoryImpl handles database operations for content items
type ContentRepositoryImpl struct {
	db *DB
}

func NewContentRepository(db *DB) *ContentRepositoryImpl {
	return &ContentRepositoryImpl{db: db}
}

// InsertItem stores an accepted item. The article_url unique constraint is
// the sole de-duplication mechanism; a conflict means the item is already
// stored and the insert is silently skipped.
func (r *ContentRepositoryImpl) InsertItem(item ContentItem) (bool, error) {
	var metadata []byte
	if item.Metadata != nil {
		var err error
		metadata, err = json.Marshal(item.Metadata)
		if err != nil {
			return false, fmt.Errorf("failed to encode classification metadata: %w", err)
		}
	}

	var confidence sql.NullFloat64
	if item.Confidence != nil {
		confidence = sql.NullFloat64{Float64: *item.Confidence, Valid: true}
	}

	result, err := r.db.Exec(`
		INSERT INTO content (
			source_id, title, summary, article_url, published_at,
			topic, image_url, classification_method,
			classification_confidence, classification_metadata
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (article_url) DO NOTHING
	`, item.SourceID, item.Title, item.Summary, item.ArticleURL, item.PublishedAt,
		item.Topic, item.ImageURL, item.Method, confidence, metadata)

	if err != nil {
		return false, fmt.Errorf("failed to insert content item: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}

	return inserted > 0, nil
}

func (r *ContentRepositoryImpl) GetItemCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM content").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get item count: %w", err)
	}
	return count, nil
}

// CountFreshToday counts unfavorited content published today, falling back to
// the ingestion date for items without a publish timestamp.
func (r *ContentRepositoryImpl) CountFreshToday() (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM content c
		WHERE DATE(COALESCE(c.published_at, c.created_at)) = CURRENT_DATE
		  AND NOT EXISTS (
			SELECT 1 FROM user_content_interactions uci
			WHERE uci.content_id = c.id AND uci.is_liked = true
		  )
	`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count fresh content: %w", err)
	}
	return count, nil
}

// CountAvailable counts all unfavorited content regardless of age.
func (r *ContentRepositoryImpl) CountAvailable() (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM content c
		WHERE NOT EXISTS (
			SELECT 1 FROM user_content_interactions uci
			WHERE uci.content_id = c.id AND uci.is_liked = true
		)
	`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count available content: %w", err)
	}
	return count, nil
}

// DeleteOlderThan removes unfavorited content older than the cutoff. Items
// liked by any user are never deleted here, regardless of age.
func (r *ContentRepositoryImpl) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result, err := r.db.Exec(`
		DELETE FROM content c
		WHERE COALESCE(c.published_at, c.created_at) < $1
		  AND NOT EXISTS (
			SELECT 1 FROM user_content_interactions uci
			WHERE uci.content_id = c.id AND uci.is_liked = true
		  )
	`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old content: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read delete result: %w", err)
	}

	return deleted, nil
}

func (r *ContentRepositoryImpl) GetStats() (*ContentStats, error) {
	stats := &ContentStats{}

	err := r.db.QueryRow(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE COALESCE(published_at, created_at) >= NOW() - INTERVAL '24 hours'),
			COUNT(*) FILTER (WHERE COALESCE(published_at, created_at) >= NOW() - INTERVAL '7 days'),
			MAX(published_at)
		FROM content
	`).Scan(&stats.TotalItems, &stats.ItemsLast24h, &stats.ItemsLastWeek, &stats.MostRecent)
	if err != nil {
		return nil, fmt.Errorf("failed to get content stats: %w", err)
	}

	rows, err := r.db.Query(`
		SELECT topic, COUNT(*) AS count
		FROM content
		GROUP BY topic
		ORDER BY count DESC
		LIMIT 5
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get topic stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tc TopicCount
		if err := rows.Scan(&tc.Topic, &tc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan topic row: %w", err)
		}
		stats.TopTopics = append(stats.TopTopics, tc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating topic rows: %w", err)
	}

	return stats, nil
}
