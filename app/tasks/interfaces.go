package tasks

import (
	"context"

	"github.com/techpulse/ingest/app/classify"
	"github.com/techpulse/ingest/app/feed"
	"github.com/techpulse/ingest/app/retention"
)

// EntryFetcher retrieves and parses one registered feed.
type EntryFetcher interface {
	FetchSource(ctx context.Context, feedURL string) ([]feed.Entry, error)
}

// EntryClassifier decides accept/reject and topic for one entry.
type EntryClassifier interface {
	Classify(ctx context.Context, title, summary string) classify.Decision
}

// RunnerInterface defines the run control operations exposed to the API
// layer. Ingestion and cleanup are independently single-flight: a second
// trigger while a run is in progress gets ErrAlreadyRunning and performs
// no work.
type RunnerInterface interface {
	RunIngestion(ctx context.Context) (*IngestionResult, error)
	RunCleanup(ctx context.Context) (*retention.Result, error)
	TriggerIfStale(ctx context.Context) bool
	Status() RunStatus
}
