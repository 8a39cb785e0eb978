package tasks

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/techpulse/ingest/app/database"
)

// SourceResult holds per-source counters for one ingestion pass.
type SourceResult struct {
	Source   string `json:"source"`
	Fetched  int    `json:"fetched"`
	Inserted int    `json:"inserted"`
	Skipped  int    `json:"skipped"`
	Rejected int    `json:"rejected"`
	Failed   int    `json:"failed"`
	Error    string `json:"error,omitempty"`
}

// IngestionResult aggregates one full fetch-classify-write pass.
type IngestionResult struct {
	Sources       []SourceResult `json:"sources"`
	TotalFetched  int            `json:"total_fetched"`
	TotalInserted int            `json:"total_inserted"`
	TotalSkipped  int            `json:"total_skipped"`
	TotalRejected int            `json:"total_rejected"`
	TotalFailed   int            `json:"total_failed"`
}

type IngestionTask struct {
	Task
	sourceRepo  database.SourceRepository
	contentRepo database.ContentRepository
	fetcher     EntryFetcher
	classifier  EntryClassifier
}

func NewIngestionTask(sourceRepo database.SourceRepository, contentRepo database.ContentRepository,
	fetcher EntryFetcher, classifier EntryClassifier) *IngestionTask {
	return &IngestionTask{
		Task:        NewTask(TaskTypeIngestion),
		sourceRepo:  sourceRepo,
		contentRepo: contentRepo,
		fetcher:     fetcher,
		classifier:  classifier,
	}
}

// Execute runs one ingestion pass over all registered sources. A source
// that fails to fetch is recorded and skipped; a write failure aborts the
// whole pass since the store is unreachable.
func (t *IngestionTask) Execute(ctx context.Context) (*IngestionResult, error) {
	sources, err := t.sourceRepo.GetAllSources()
	if err != nil {
		return nil, fmt.Errorf("failed to get sources: %w", err)
	}

	if len(sources) == 0 {
		slog.Warn("No sources registered, nothing to ingest")
		return &IngestionResult{Sources: []SourceResult{}}, nil
	}

	result := &IngestionResult{Sources: make([]SourceResult, 0, len(sources))}

	for _, source := range sources {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		sourceResult, err := t.ingestSource(ctx, source)
		if err != nil {
			return nil, err
		}
		result.Sources = append(result.Sources, *sourceResult)
		result.TotalFetched += sourceResult.Fetched
		result.TotalInserted += sourceResult.Inserted
		result.TotalSkipped += sourceResult.Skipped
		result.TotalRejected += sourceResult.Rejected
		result.TotalFailed += sourceResult.Failed
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"duration", t.GetDuration(),
		"sources", len(result.Sources),
		"fetched", result.TotalFetched,
		"inserted", result.TotalInserted,
		"skipped", result.TotalSkipped,
		"rejected", result.TotalRejected,
		"failed", result.TotalFailed)

	return result, nil
}

func (t *IngestionTask) ingestSource(ctx context.Context, source database.Source) (*SourceResult, error) {
	sourceResult := &SourceResult{Source: source.Name}

	entries, err := t.fetcher.FetchSource(ctx, source.FeedURL)
	if err != nil {
		slog.Warn("Failed to fetch source", "source", source.Name, "error", err)
		sourceResult.Error = err.Error()
		return sourceResult, nil
	}
	sourceResult.Fetched = len(entries)

	for _, entry := range entries {
		decision := t.classifier.Classify(ctx, entry.Title, entry.Summary)
		if !decision.Accepted {
			slog.Debug("Entry rejected",
				"source", source.Name, "title", entry.Title,
				"method", decision.Method, "reason", decision.Reason)
			sourceResult.Rejected++
			continue
		}

		item := database.ContentItem{
			SourceID:    source.ID,
			Title:       entry.Title,
			Summary:     entry.Summary,
			ArticleURL:  entry.ArticleURL,
			PublishedAt: entry.PublishedAt,
			Topic:       decision.Topic,
			ImageURL:    entry.ImageURL,
			Method:      decision.Method,
			Confidence:  decision.Confidence,
			Metadata: map[string]any{
				"reason":       decision.Reason,
				"tech_score":   decision.Scores.Tech,
				"reject_score": decision.Scores.Reject,
				"price_hits":   decision.Scores.Price,
			},
		}

		inserted, err := t.contentRepo.InsertItem(item)
		if err != nil {
			if storeUnreachable(err) {
				return nil, fmt.Errorf("store unreachable while writing %s: %w", source.Name, err)
			}
			slog.Warn("Failed to insert item", "source", source.Name, "url", entry.ArticleURL, "error", err)
			sourceResult.Failed++
			continue
		}
		if inserted {
			sourceResult.Inserted++
		} else {
			sourceResult.Skipped++
		}
	}

	if err := t.sourceRepo.UpdateLastFetched(source.ID, time.Now().UTC()); err != nil {
		slog.Warn("Failed to update last fetched timestamp", "source", source.Name, "error", err)
	}

	return sourceResult, nil
}

// storeUnreachable tells a dead connection apart from an entry-level write
// failure. Entry failures are skipped and counted; a dead store aborts the
// remainder of the run.
func storeUnreachable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
