package classify

import (
	"strings"
)

// Scores holds the keyword signals extracted from an entry's text.
type Scores struct {
	Tech   int `json:"tech_score"`
	Reject int `json:"reject_score"`
	Price  int `json:"price_hits"`
}

// Score counts tech keyword, reject keyword, and price pattern matches in
// text. The caller is expected to pass the concatenated title and summary;
// matching is case-insensitive substring containment.
func Score(text string) Scores {
	lowered := strings.ToLower(text)

	s := Scores{}
	for _, kw := range techKeywords {
		if strings.Contains(lowered, kw) {
			s.Tech++
		}
	}
	for _, kw := range rejectKeywords {
		if strings.Contains(lowered, kw) {
			s.Reject++
		}
	}
	for _, p := range pricePatterns {
		s.Price += len(p.FindAllString(text, -1))
	}
	return s
}

// TopicByKeywords assigns a topic label by counting per-category keyword
// matches. The highest-scoring category wins; ties resolve in priority
// order. Text with no category matches falls back to TopicEmergingTech.
func TopicByKeywords(text string) string {
	lowered := strings.ToLower(text)

	best := TopicEmergingTech
	bestScore := 0
	for _, topic := range topicPriority {
		score := 0
		for _, kw := range topicKeywords[topic] {
			if strings.Contains(lowered, kw) {
				score++
			}
		}
		if score > bestScore {
			best = topic
			bestScore = score
		}
	}
	return best
}
