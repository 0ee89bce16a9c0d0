package usecase

import (
	"math"
	"unicode/utf8"

	"docqna/internal/core/domain"
)

// confidenceScore estimates how much grounding evidence the retrieval
// produced: more sources and longer chunks push it up, capped at 1.0. It
// says nothing about whether the generated answer is correct.
//
//	confidence = min(0.1 + 0.15*sources + 0.3*(avgLen/2000), 1.0)
//
// rounded to two decimals, 0.0 when nothing was retrieved.
func confidenceScore(chunks []domain.ScoredChunk) float64 {
	if len(chunks) == 0 {
		return 0.0
	}

	total := 0
	for _, c := range chunks {
		total += utf8.RuneCountInString(c.Text)
	}
	avgLen := float64(total) / float64(len(chunks))

	confidence := 0.1 + float64(len(chunks))*0.15 + (avgLen/2000.0)*0.3
	if confidence > 1.0 {
		confidence = 1.0
	}
	return math.Round(confidence*100) / 100
}
