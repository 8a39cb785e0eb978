package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/techpulse/ingest/app/database"
	"github.com/techpulse/ingest/app/tasks"
)

func NewHandler(sourceRepo database.SourceRepository, contentRepo database.ContentRepository,
	runner tasks.RunnerInterface) *Handler {
	return &Handler{
		sourceRepo:  sourceRepo,
		contentRepo: contentRepo,
		runner:      runner,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if sourceCount, err := h.sourceRepo.GetSourceCount(); err == nil {
		health["sources"] = sourceCount
	}
	if itemCount, err := h.contentRepo.GetItemCount(); err == nil {
		health["items"] = itemCount
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.contentRepo.GetStats()
	if err != nil {
		slog.Error("Database error", "operation", "get_stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	topics := make([]gin.H, 0, len(stats.TopTopics))
	for _, t := range stats.TopTopics {
		topics = append(topics, gin.H{"topic": t.Topic, "count": t.Count})
	}

	c.JSON(http.StatusOK, gin.H{
		"total_items":    stats.TotalItems,
		"items_last_24h": stats.ItemsLast24h,
		"items_last_7d":  stats.ItemsLastWeek,
		"most_recent":    stats.MostRecent,
		"top_topics":     topics,
	})
}

// APIRunIngestion triggers a synchronous ingestion pass. A pass already in
// flight gets a conflict response and performs no work.
func (h *Handler) APIRunIngestion(c *gin.Context) {
	result, err := h.runner.RunIngestion(c.Request.Context())
	if err != nil {
		if errors.Is(err, tasks.ErrAlreadyRunning) {
			c.JSON(http.StatusConflict, gin.H{"error": "Ingestion is already running"})
			return
		}
		slog.Error("Ingestion run failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Ingestion failed",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
	})
}

// APIRunCleanup triggers a synchronous retention pass.
func (h *Handler) APIRunCleanup(c *gin.Context) {
	result, err := h.runner.RunCleanup(c.Request.Context())
	if err != nil {
		if errors.Is(err, tasks.ErrAlreadyRunning) {
			c.JSON(http.StatusConflict, gin.H{"error": "Cleanup is already running"})
			return
		}
		slog.Error("Cleanup run failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Cleanup failed",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
	})
}

// APIRefresh starts a background ingestion only when the store is stale.
func (h *Handler) APIRefresh(c *gin.Context) {
	started := h.runner.TriggerIfStale(c.Request.Context())

	c.JSON(http.StatusAccepted, gin.H{
		"started": started,
	})
}

func (h *Handler) APIGetJobStatus(c *gin.Context) {
	status := h.runner.Status()

	c.JSON(http.StatusOK, gin.H{
		"ingestion_running": status.IngestionRunning,
		"cleanup_running":   status.CleanupRunning,
		"last_ingested_at":  status.LastIngestedAt,
	})
}
