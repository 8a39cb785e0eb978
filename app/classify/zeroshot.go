package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const zeroShotTimeout = 8 * time.Second

// ErrNoCredential is returned when the client was built without an API
// token. Callers treat it like any other service failure and fall back to
// keyword-only classification.
var ErrNoCredential = errors.New("zero-shot service: no API token configured")

// Prediction is the top label returned by the zero-shot service.
type Prediction struct {
	Label      string
	Confidence float64
}

// ZeroShotClient scores text against a fixed candidate label set.
type ZeroShotClient interface {
	Classify(ctx context.Context, text string, labels []string) (*Prediction, error)
}

// HFClient calls a Hugging Face hosted inference endpoint.
type HFClient struct {
	httpClient *http.Client
	endpoint   string
	token      string
}

var _ ZeroShotClient = (*HFClient)(nil)

func NewHFClient(endpoint, token string) *HFClient {
	return &HFClient{
		httpClient: &http.Client{Timeout: zeroShotTimeout},
		endpoint:   endpoint,
		token:      token,
	}
}

type zeroShotRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters zeroShotParameters `json:"parameters"`
}

type zeroShotParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
	MultiLabel      bool     `json:"multi_label"`
}

type zeroShotResponse struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

// Classify sends text to the inference endpoint and returns the
// highest-confidence label. A 503 from the service means the model is
// still loading and is retried with backoff inside the request deadline.
func (c *HFClient) Classify(ctx context.Context, text string, labels []string) (*Prediction, error) {
	if c.token == "" {
		return nil, ErrNoCredential
	}

	payload, err := json.Marshal(zeroShotRequest{
		Inputs:     text,
		Parameters: zeroShotParameters{CandidateLabels: labels},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, zeroShotTimeout)
	defer cancel()

	var result zeroShotResponse
	operation := func() error {
		return c.doRequest(ctx, payload, &result)
	}
	policy := backoff.WithContext(backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(500*time.Millisecond),
		backoff.WithMaxElapsedTime(zeroShotTimeout),
	), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}

	if len(result.Labels) == 0 || len(result.Scores) == 0 {
		return nil, fmt.Errorf("service returned no labels")
	}
	return &Prediction{Label: result.Labels[0], Confidence: result.Scores[0]}, nil
}

func (c *HFClient) doRequest(ctx context.Context, payload []byte, result *zeroShotResponse) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("failed to read response: %w", err))
	}

	switch {
	case resp.StatusCode == http.StatusServiceUnavailable:
		// Model is warming up, worth retrying.
		return fmt.Errorf("service unavailable (HTTP 503)")
	case resp.StatusCode != http.StatusOK:
		return backoff.Permanent(fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	if err := json.Unmarshal(body, result); err != nil {
		return backoff.Permanent(fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}
