package api

import (
	"github.com/techpulse/ingest/app/database"
	"github.com/techpulse/ingest/app/tasks"
)

type Handler struct {
	sourceRepo  database.SourceRepository
	contentRepo database.ContentRepository
	runner      tasks.RunnerInterface
}
