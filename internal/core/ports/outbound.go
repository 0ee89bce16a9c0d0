package ports

import (
	"context"
	"io"

	"docqna/internal/core/domain"
)

// DocumentRepository persists and reads document state.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	List(ctx context.Context) ([]domain.Document, error)
	MarkProcessed(ctx context.Context, id, collectionName string, chunkCount int) error
	Delete(ctx context.Context, id string) error
}

// SessionRepository persists answered questions.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.QASession) error
	ListByDocument(ctx context.Context, documentID string) ([]domain.QASession, error)
}

// ObjectStorage stores uploaded source files.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// TextExtractor extracts plain text from a stored document according to its
// declared file type.
type TextExtractor interface {
	Extract(ctx context.Context, doc *domain.Document) (string, error)
}

// Chunker splits extracted text into overlapping segments sized for
// embedding.
type Chunker interface {
	Split(text string) []string
}

// Embedder builds vectors for chunks and query text.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Collection is a read handle on one document's indexed chunks. Collections
// are never mutated after creation, so concurrent Query calls are safe.
type Collection interface {
	// Query embeds the question and returns up to k chunks ordered by
	// descending similarity. A collection deleted mid-request surfaces
	// domain.ErrCollectionNotFound.
	Query(ctx context.Context, question string, k int) ([]domain.ScoredChunk, error)
}

// VectorIndex manages one named collection per processed document.
type VectorIndex interface {
	// CreateCollection embeds every chunk and persists (text, vector)
	// pairs under name. Either all chunks are stored or the collection is
	// not observable afterwards; failures surface domain.ErrIndexBuild.
	CreateCollection(ctx context.Context, name string, chunks []string) error

	// Open returns a query handle, or domain.ErrCollectionNotFound when
	// nothing is persisted under name.
	Open(ctx context.Context, name string) (Collection, error)

	// DeleteCollection is idempotent; deleting an absent collection is
	// not an error.
	DeleteCollection(ctx context.Context, name string) error
}

// AnswerGenerator produces the grounded answer text from a prompt.
type AnswerGenerator interface {
	GenerateFromPrompt(ctx context.Context, prompt string) (string, error)
}
