package classify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Classification method tags recorded alongside each stored entry.
const (
	MethodKeywordHardAccept     = "keyword_hard_accept"
	MethodKeywordHardReject     = "keyword_hard_reject"
	MethodAIZeroShot            = "ai_zero_shot"
	MethodHybridAIKeyword       = "hybrid_ai_keyword"
	MethodKeywordFallbackAccept = "keyword_fallback_accept"
	MethodKeywordFallbackReject = "keyword_fallback_reject"
)

// Decision thresholds. Hard paths resolve on keywords alone; the AI path
// applies to everything in between.
const (
	hardRejectScore    = 2
	hardRejectPrice    = 3
	hardAcceptScore    = 4
	aiAcceptConfidence = 0.75
	aiRejectConfidence = 0.30

	minCallInterval = 500 * time.Millisecond
)

// Decision is the full classification outcome for one entry.
type Decision struct {
	Accepted   bool
	Topic      string
	Method     string
	Confidence *float64
	Reason     string
	Scores     Scores
}

// Classifier routes entries through keyword scoring and, when keywords are
// inconclusive, the zero-shot service. External calls are serialized and
// rate limited; entries resolved on keywords alone skip the delay.
type Classifier struct {
	zeroShot    ZeroShotClient
	minInterval time.Duration

	mu       sync.Mutex
	lastCall time.Time
}

func NewClassifier(zeroShot ZeroShotClient) *Classifier {
	return &Classifier{zeroShot: zeroShot, minInterval: minCallInterval}
}

// Classify decides whether the entry is stored and under which topic.
func (c *Classifier) Classify(ctx context.Context, title, summary string) Decision {
	text := title + " " + summary
	scores := Score(text)

	// Path 1: unambiguous keyword signals, no external call.
	if scores.Reject >= hardRejectScore || scores.Price >= hardRejectPrice {
		return Decision{
			Accepted: false,
			Method:   MethodKeywordHardReject,
			Reason:   fmt.Sprintf("reject keywords: %d, price hits: %d", scores.Reject, scores.Price),
			Scores:   scores,
		}
	}
	if scores.Tech >= hardAcceptScore && scores.Reject == 0 {
		return Decision{
			Accepted: true,
			Topic:    TopicByKeywords(text),
			Method:   MethodKeywordHardAccept,
			Reason:   fmt.Sprintf("tech keywords: %d", scores.Tech),
			Scores:   scores,
		}
	}

	// Path 2: zero-shot classification for the ambiguous middle.
	prediction, err := c.classifyRemote(ctx, text)
	if err != nil {
		slog.Debug("Zero-shot classification unavailable, falling back to keywords", "error", err)
		return c.fallback(text, scores)
	}

	confidence := prediction.Confidence
	switch {
	case confidence >= aiAcceptConfidence:
		return Decision{
			Accepted:   true,
			Topic:      prediction.Label,
			Method:     MethodAIZeroShot,
			Confidence: &confidence,
			Reason:     fmt.Sprintf("confidence %.2f for %q", confidence, prediction.Label),
			Scores:     scores,
		}
	case confidence <= aiRejectConfidence:
		return Decision{
			Accepted:   false,
			Method:     MethodAIZeroShot,
			Confidence: &confidence,
			Reason:     fmt.Sprintf("confidence %.2f below reject threshold", confidence),
			Scores:     scores,
		}
	}

	// Mid band: the model is unsure, keywords break the tie. Acceptance
	// requires at least one tech signal and a clean reject score.
	if scores.Tech >= 1 && scores.Reject == 0 {
		return Decision{
			Accepted:   true,
			Topic:      prediction.Label,
			Method:     MethodHybridAIKeyword,
			Confidence: &confidence,
			Reason:     fmt.Sprintf("confidence %.2f with %d tech keywords", confidence, scores.Tech),
			Scores:     scores,
		}
	}
	return Decision{
		Accepted:   false,
		Method:     MethodHybridAIKeyword,
		Confidence: &confidence,
		Reason:     fmt.Sprintf("confidence %.2f without keyword support", confidence),
		Scores:     scores,
	}
}

// Path 3: keyword-only fallback when the service cannot be reached. The
// bar is lower than the hard-accept path so that reasonable tech content
// still gets through during outages.
func (c *Classifier) fallback(text string, scores Scores) Decision {
	if scores.Reject == 0 && scores.Tech >= 1 {
		return Decision{
			Accepted: true,
			Topic:    TopicByKeywords(text),
			Method:   MethodKeywordFallbackAccept,
			Reason:   fmt.Sprintf("tech keywords: %d, service unavailable", scores.Tech),
			Scores:   scores,
		}
	}
	return Decision{
		Accepted: false,
		Method:   MethodKeywordFallbackReject,
		Reason:   fmt.Sprintf("tech keywords: %d, reject keywords: %d, service unavailable", scores.Tech, scores.Reject),
		Scores:   scores,
	}
}

// classifyRemote serializes external calls and enforces the minimum
// interval between them.
func (c *Classifier) classifyRemote(ctx context.Context, text string) (*Prediction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if wait := c.minInterval - time.Since(c.lastCall); wait > 0 {
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	c.lastCall = time.Now()

	return c.zeroShot.Classify(ctx, text, TopicLabels)
}
