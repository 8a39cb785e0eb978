package database

import (
	"database/sql"
	"fmt"
	"time"
)

var _ MetadataRepository = (*MetadataRepositoryImpl)(nil)

// MetadataRepositoryImpl handles the singleton ingestion bookkeeping record
type MetadataRepositoryImpl struct {
	db *DB
}

func NewMetadataRepository(db *DB) *MetadataRepositoryImpl {
	return &MetadataRepositoryImpl{db: db}
}

func (r *MetadataRepositoryImpl) GetLastIngestedAt() (*time.Time, error) {
	var last sql.NullTime
	err := r.db.QueryRow(`
		SELECT last_ingested_at FROM ingestion_metadata
		ORDER BY id ASC
		LIMIT 1
	`).Scan(&last)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last ingestion time: %w", err)
	}

	if !last.Valid {
		return nil, nil
	}
	return &last.Time, nil
}

func (r *MetadataRepositoryImpl) UpdateLastIngestedAt(t time.Time) error {
	_, err := r.db.Exec(`
		UPDATE ingestion_metadata
		SET last_ingested_at = $1
		WHERE id = (SELECT id FROM ingestion_metadata ORDER BY id ASC LIMIT 1)
	`, t)

	if err != nil {
		return fmt.Errorf("failed to update last ingestion time: %w", err)
	}

	return nil
}
