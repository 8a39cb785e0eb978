package retention

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/techpulse/ingest/app/database"
)

// Tier names reported with each cleanup result.
const (
	TierAggressive = "aggressive_24h"
	TierModerate   = "moderate_48h"
	TierNone       = "none"
)

// Freshness thresholds for picking a tier. Favorited content never counts
// toward freshness and is never deleted.
const (
	aggressiveMinFresh = 10
	aggressiveWindow   = 24 * time.Hour
	moderateWindow     = 48 * time.Hour
)

// Result describes one cleanup pass.
type Result struct {
	FreshToday     int    `json:"fresh_today"`
	TotalAvailable int    `json:"total_available"`
	DeletedCount   int64  `json:"deleted_count"`
	Tier           string `json:"tier"`
}

// Engine applies the tiered retention policy to the content store.
type Engine struct {
	contentRepo database.ContentRepository
	now         func() time.Time
}

func NewEngine(contentRepo database.ContentRepository) *Engine {
	return &Engine{contentRepo: contentRepo, now: time.Now}
}

// Run evaluates freshness and deletes old unfavorited content. When any
// freshness query fails the pass aborts without deleting anything.
func (e *Engine) Run() (*Result, error) {
	freshToday, err := e.contentRepo.CountFreshToday()
	if err != nil {
		return nil, fmt.Errorf("failed to count fresh content: %w", err)
	}

	totalAvailable, err := e.contentRepo.CountAvailable()
	if err != nil {
		return nil, fmt.Errorf("failed to count available content: %w", err)
	}

	result := &Result{FreshToday: freshToday, TotalAvailable: totalAvailable, Tier: TierNone}

	var window time.Duration
	switch {
	case freshToday >= aggressiveMinFresh:
		result.Tier = TierAggressive
		window = aggressiveWindow
	case freshToday >= 1:
		result.Tier = TierModerate
		window = moderateWindow
	default:
		// No fresh content today, keep everything.
		slog.Debug("Cleanup skipped, no fresh content", "total_available", totalAvailable)
		return result, nil
	}

	deleted, err := e.contentRepo.DeleteOlderThan(e.now().Add(-window))
	if err != nil {
		return nil, fmt.Errorf("failed to delete old content: %w", err)
	}
	result.DeletedCount = deleted

	slog.Info("Cleanup completed",
		"tier", result.Tier, "fresh_today", freshToday,
		"deleted", deleted, "total_available", totalAvailable)
	return result, nil
}
