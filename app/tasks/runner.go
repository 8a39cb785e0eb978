package tasks

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/techpulse/ingest/app/database"
	"github.com/techpulse/ingest/app/retention"
)

// ErrAlreadyRunning signals that a trigger arrived while a run of the same
// kind was in progress. The caller translates it to a conflict response.
var ErrAlreadyRunning = errors.New("task is already running")

// RunStatus is a snapshot of the run flags and last ingestion time.
type RunStatus struct {
	IngestionRunning bool       `json:"ingestion_running"`
	CleanupRunning   bool       `json:"cleanup_running"`
	LastIngestedAt   *time.Time `json:"last_ingested_at"`
}

var _ RunnerInterface = (*Runner)(nil)

// Runner gates when ingestion and cleanup are allowed to execute. The two
// run flags are independent and checked with an atomic test-and-set, so at
// most one run of each kind is ever in flight.
type Runner struct {
	sourceRepo   database.SourceRepository
	contentRepo  database.ContentRepository
	metadataRepo database.MetadataRepository
	fetcher      EntryFetcher
	classifier   EntryClassifier
	retention    *retention.Engine
	staleAfter   time.Duration
	now          func() time.Time

	ingestionRunning atomic.Bool
	cleanupRunning   atomic.Bool
}

func NewRunner(sourceRepo database.SourceRepository, contentRepo database.ContentRepository,
	metadataRepo database.MetadataRepository, fetcher EntryFetcher, classifier EntryClassifier,
	retentionEngine *retention.Engine, staleAfter time.Duration) *Runner {
	return &Runner{
		sourceRepo:   sourceRepo,
		contentRepo:  contentRepo,
		metadataRepo: metadataRepo,
		fetcher:      fetcher,
		classifier:   classifier,
		retention:    retentionEngine,
		staleAfter:   staleAfter,
		now:          time.Now,
	}
}

// RunIngestion executes one fetch-classify-write pass. The last ingestion
// timestamp is only advanced after the pass succeeds, so a failed run
// leaves the store considered stale.
func (r *Runner) RunIngestion(ctx context.Context) (*IngestionResult, error) {
	if !r.ingestionRunning.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRunning
	}
	defer r.ingestionRunning.Store(false)

	task := NewIngestionTask(r.sourceRepo, r.contentRepo, r.fetcher, r.classifier)
	task.Start()

	result, err := task.Execute(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.metadataRepo.UpdateLastIngestedAt(r.now().UTC()); err != nil {
		slog.Warn("Failed to record last ingestion time", "error", err)
	}

	return result, nil
}

// RunCleanup executes one retention pass.
func (r *Runner) RunCleanup(ctx context.Context) (*retention.Result, error) {
	if !r.cleanupRunning.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRunning
	}
	defer r.cleanupRunning.Store(false)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	task := NewTask(TaskTypeCleanup)
	task.Start()

	result, err := r.retention.Run()
	if err != nil {
		return nil, err
	}

	slog.Info("Task completed",
		"type", task.GetType(),
		"duration", task.GetDuration(),
		"tier", result.Tier,
		"deleted", result.DeletedCount)

	return result, nil
}

// TriggerIfStale starts a background ingestion when the last successful
// run is older than the staleness window (or has never happened). Returns
// whether a run was started. An ingestion already in flight counts as not
// stale.
func (r *Runner) TriggerIfStale(ctx context.Context) bool {
	if r.ingestionRunning.Load() {
		return false
	}
	last, err := r.metadataRepo.GetLastIngestedAt()
	if err != nil {
		slog.Error("Failed to read last ingestion time", "error", err)
		return false
	}
	if last != nil && r.now().Sub(*last) < r.staleAfter {
		return false
	}

	go func() {
		if _, err := r.RunIngestion(context.WithoutCancel(ctx)); err != nil {
			if errors.Is(err, ErrAlreadyRunning) {
				return
			}
			slog.Error("Background ingestion failed", "error", err)
		}
	}()
	return true
}

func (r *Runner) Status() RunStatus {
	status := RunStatus{
		IngestionRunning: r.ingestionRunning.Load(),
		CleanupRunning:   r.cleanupRunning.Load(),
	}
	last, err := r.metadataRepo.GetLastIngestedAt()
	if err != nil {
		slog.Warn("Failed to read last ingestion time", "error", err)
		return status
	}
	status.LastIngestedAt = last
	return status
}
