package domain

import "time"

// ScoredChunk is one retrieved piece of evidence: a chunk of the document's
// extracted text and its similarity to the question, most-similar first in
// any retrieval result.
type ScoredChunk struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// AnswerResult is what the retrieval & answer service returns for one
// question. Confidence is a heuristic proxy for how much grounding evidence
// the retrieval produced, not a measure of answer correctness.
type AnswerResult struct {
	Answer       string        `json:"answer"`
	Confidence   float64       `json:"confidence_score"`
	ResponseTime time.Duration `json:"-"`
	SourceCount  int           `json:"source_count"`
}

// QASession is the persisted record of one answered question.
type QASession struct {
	ID                  string    `json:"id"`
	DocumentID          string    `json:"document_id"`
	Question            string    `json:"question"`
	Answer              string    `json:"answer"`
	Confidence          float64   `json:"confidence_score"`
	ResponseTimeSeconds float64   `json:"response_time"`
	SourceCount         int       `json:"source_count"`
	CreatedAt           time.Time `json:"created_at"`
}
