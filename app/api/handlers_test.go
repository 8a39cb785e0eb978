package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/techpulse/ingest/app/database"
	"github.com/techpulse/ingest/app/retention"
	"github.com/techpulse/ingest/app/tasks"
)

const testAPIKey = "test-key"

type fakeRunner struct {
	ingestionResult *tasks.IngestionResult
	ingestionErr    error
	cleanupResult   *retention.Result
	cleanupErr      error
	triggered       bool
	status          tasks.RunStatus
}

func (f *fakeRunner) RunIngestion(_ context.Context) (*tasks.IngestionResult, error) {
	return f.ingestionResult, f.ingestionErr
}

func (f *fakeRunner) RunCleanup(_ context.Context) (*retention.Result, error) {
	return f.cleanupResult, f.cleanupErr
}

func (f *fakeRunner) TriggerIfStale(_ context.Context) bool {
	return f.triggered
}

func (f *fakeRunner) Status() tasks.RunStatus {
	return f.status
}

type fakeSourceRepo struct {
	count int
}

func (f *fakeSourceRepo) GetAllSources() ([]database.Source, error)     { return nil, nil }
func (f *fakeSourceRepo) GetSourceCount() (int, error)                  { return f.count, nil }
func (f *fakeSourceRepo) UpsertSource(_, _ string) error                { return nil }
func (f *fakeSourceRepo) UpdateLastFetched(_ string, _ time.Time) error { return nil }

type fakeContentRepo struct {
	count int
	stats *database.ContentStats
}

func (f *fakeContentRepo) InsertItem(_ database.ContentItem) (bool, error) { return false, nil }
func (f *fakeContentRepo) GetItemCount() (int, error)                      { return f.count, nil }
func (f *fakeContentRepo) GetStats() (*database.ContentStats, error)       { return f.stats, nil }
func (f *fakeContentRepo) CountFreshToday() (int, error)                   { return 0, nil }
func (f *fakeContentRepo) CountAvailable() (int, error)                    { return f.count, nil }
func (f *fakeContentRepo) DeleteOlderThan(_ time.Time) (int64, error)      { return 0, nil }

func newTestServer(runner tasks.RunnerInterface) http.Handler {
	handler := NewHandler(&fakeSourceRepo{count: 2}, &fakeContentRepo{
		count: 10,
		stats: &database.ContentStats{TotalItems: 10, ItemsLast24h: 3, ItemsLastWeek: 8},
	}, runner)
	return NewServer(handler, testAPIKey)
}

func doRequest(t *testing.T, server http.Handler, method, path, apiKey string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

func TestRunIngestionEndpoint(t *testing.T) {
	runner := &fakeRunner{ingestionResult: &tasks.IngestionResult{TotalFetched: 5, TotalInserted: 3}}
	server := newTestServer(runner)

	w := doRequest(t, server, http.MethodPost, "/api/jobs/ingest", testAPIKey)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var body struct {
		Success bool                  `json:"success"`
		Result  tasks.IngestionResult `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !body.Success {
		t.Error("expected success to be true")
	}
	if body.Result.TotalInserted != 3 {
		t.Errorf("expected 3 inserted, got %d", body.Result.TotalInserted)
	}
}

func TestRunIngestionEndpointConflict(t *testing.T) {
	runner := &fakeRunner{ingestionErr: tasks.ErrAlreadyRunning}
	server := newTestServer(runner)

	w := doRequest(t, server, http.MethodPost, "/api/jobs/ingest", testAPIKey)

	if w.Code != http.StatusConflict {
		t.Errorf("expected status 409, got %d", w.Code)
	}
}

func TestRunIngestionEndpointRequiresAuth(t *testing.T) {
	server := newTestServer(&fakeRunner{})

	w := doRequest(t, server, http.MethodPost, "/api/jobs/ingest", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401 without a key, got %d", w.Code)
	}

	w = doRequest(t, server, http.MethodPost, "/api/jobs/ingest", "wrong-key")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401 with a wrong key, got %d", w.Code)
	}
}

func TestRunIngestionEndpointAcceptsBearerAuth(t *testing.T) {
	runner := &fakeRunner{ingestionResult: &tasks.IngestionResult{}}
	server := newTestServer(runner)

	req := httptest.NewRequest(http.MethodPost, "/api/jobs/ingest", nil)
	req.Header.Set("Authorization", "Bearer "+testAPIKey)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200 with bearer auth, got %d", w.Code)
	}
}

func TestRunCleanupEndpoint(t *testing.T) {
	runner := &fakeRunner{cleanupResult: &retention.Result{
		FreshToday: 12, TotalAvailable: 90, DeletedCount: 30, Tier: retention.TierAggressive,
	}}
	server := newTestServer(runner)

	w := doRequest(t, server, http.MethodPost, "/api/jobs/cleanup", testAPIKey)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var body struct {
		Result retention.Result `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Result.Tier != retention.TierAggressive {
		t.Errorf("expected tier %q, got %q", retention.TierAggressive, body.Result.Tier)
	}
	if body.Result.DeletedCount != 30 {
		t.Errorf("expected 30 deleted, got %d", body.Result.DeletedCount)
	}
}

func TestRunCleanupEndpointConflict(t *testing.T) {
	runner := &fakeRunner{cleanupErr: tasks.ErrAlreadyRunning}
	server := newTestServer(runner)

	w := doRequest(t, server, http.MethodPost, "/api/jobs/cleanup", testAPIKey)

	if w.Code != http.StatusConflict {
		t.Errorf("expected status 409, got %d", w.Code)
	}
}

func TestRefreshEndpoint(t *testing.T) {
	tests := []struct {
		name      string
		triggered bool
	}{
		{name: "stale store starts a run", triggered: true},
		{name: "fresh store does not", triggered: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(&fakeRunner{triggered: tt.triggered})

			w := doRequest(t, server, http.MethodPost, "/api/jobs/refresh", testAPIKey)

			if w.Code != http.StatusAccepted {
				t.Fatalf("expected status 202, got %d", w.Code)
			}

			var body struct {
				Started bool `json:"started"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if body.Started != tt.triggered {
				t.Errorf("expected started %v, got %v", tt.triggered, body.Started)
			}
		})
	}
}

func TestJobStatusEndpoint(t *testing.T) {
	last := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	runner := &fakeRunner{status: tasks.RunStatus{IngestionRunning: true, LastIngestedAt: &last}}
	server := newTestServer(runner)

	w := doRequest(t, server, http.MethodGet, "/api/jobs/status", testAPIKey)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var body struct {
		IngestionRunning bool       `json:"ingestion_running"`
		CleanupRunning   bool       `json:"cleanup_running"`
		LastIngestedAt   *time.Time `json:"last_ingested_at"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !body.IngestionRunning {
		t.Error("expected ingestion to be reported as running")
	}
	if body.LastIngestedAt == nil || !body.LastIngestedAt.Equal(last) {
		t.Errorf("expected last ingested %v, got %v", last, body.LastIngestedAt)
	}
}

func TestHealthEndpointIsPublic(t *testing.T) {
	server := newTestServer(&fakeRunner{})

	w := doRequest(t, server, http.MethodGet, "/health", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["sources"] != float64(2) {
		t.Errorf("expected 2 sources, got %v", body["sources"])
	}
	if body["items"] != float64(10) {
		t.Errorf("expected 10 items, got %v", body["items"])
	}
}

func TestStatsEndpoint(t *testing.T) {
	server := newTestServer(&fakeRunner{})

	w := doRequest(t, server, http.MethodGet, "/stats", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var body struct {
		TotalItems   int `json:"total_items"`
		ItemsLast24h int `json:"items_last_24h"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.TotalItems != 10 {
		t.Errorf("expected 10 total items, got %d", body.TotalItems)
	}
	if body.ItemsLast24h != 3 {
		t.Errorf("expected 3 items in the last 24h, got %d", body.ItemsLast24h)
	}
}
