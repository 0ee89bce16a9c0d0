package ports

import (
	"context"
	"io"

	"docqna/internal/core/domain"
)

// DocumentIngestor is the inbound contract for synchronous upload and
// indexing. Upload does not return until the document is processed or the
// ingestion has failed and the record is rolled back.
type DocumentIngestor interface {
	Upload(ctx context.Context, title, filename string, size int64, body io.Reader) (*domain.Document, error)
}

// QuestionAnswerer is the inbound contract for answering a question against
// one processed document and recording the session.
type QuestionAnswerer interface {
	Ask(ctx context.Context, documentID, question string) (*domain.QASession, error)
	History(ctx context.Context, documentID string) ([]domain.QASession, error)
}

// DocumentRemover deletes a document together with its index collection and
// stored file.
type DocumentRemover interface {
	Remove(ctx context.Context, documentID string) error
}
