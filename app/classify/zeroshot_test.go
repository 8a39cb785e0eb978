package classify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHFClientClassify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("expected bearer auth header, got %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("expected JSON content type, got %q", got)
		}

		var req zeroShotRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Inputs != "some article text" {
			t.Errorf("expected inputs to carry the text, got %q", req.Inputs)
		}
		if len(req.Parameters.CandidateLabels) != len(TopicLabels) {
			t.Errorf("expected %d candidate labels, got %d", len(TopicLabels), len(req.Parameters.CandidateLabels))
		}

		json.NewEncoder(w).Encode(zeroShotResponse{
			Labels: []string{TopicAIML, TopicSoftwareDev},
			Scores: []float64{0.82, 0.11},
		})
	}))
	defer server.Close()

	client := NewHFClient(server.URL, "test-token")
	prediction, err := client.Classify(context.Background(), "some article text", TopicLabels)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if prediction.Label != TopicAIML {
		t.Errorf("expected label %q, got %q", TopicAIML, prediction.Label)
	}
	if prediction.Confidence != 0.82 {
		t.Errorf("expected confidence 0.82, got %f", prediction.Confidence)
	}
}

func TestHFClientClassifyNoToken(t *testing.T) {
	client := NewHFClient("http://localhost:1/never-called", "")

	_, err := client.Classify(context.Background(), "text", TopicLabels)
	if !errors.Is(err, ErrNoCredential) {
		t.Errorf("expected ErrNoCredential, got %v", err)
	}
}

func TestHFClientClassifyRetriesOn503(t *testing.T) {
	var attempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"Model is currently loading"}`))
			return
		}
		json.NewEncoder(w).Encode(zeroShotResponse{
			Labels: []string{TopicCloudDevOps},
			Scores: []float64{0.77},
		})
	}))
	defer server.Close()

	client := NewHFClient(server.URL, "test-token")
	prediction, err := client.Classify(context.Background(), "text", TopicLabels)
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}

	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
	if prediction.Label != TopicCloudDevOps {
		t.Errorf("expected label %q, got %q", TopicCloudDevOps, prediction.Label)
	}
}

func TestHFClientClassifyServerError(t *testing.T) {
	var attempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewHFClient(server.URL, "test-token")
	_, err := client.Classify(context.Background(), "text", TopicLabels)
	if err == nil {
		t.Fatal("expected error for HTTP 400")
	}

	if attempts != 1 {
		t.Errorf("expected no retries on a non-503 status, got %d attempts", attempts)
	}
}

func TestHFClientClassifyEmptyLabels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"labels":[],"scores":[]}`))
	}))
	defer server.Close()

	client := NewHFClient(server.URL, "test-token")
	_, err := client.Classify(context.Background(), "text", TopicLabels)
	if err == nil {
		t.Fatal("expected error for a response without labels")
	}
}
