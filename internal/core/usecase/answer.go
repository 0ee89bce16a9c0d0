package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"docqna/internal/core/domain"
	"docqna/internal/core/ports"
)

const (
	defaultTopK       = 5
	maxQuestionLength = 1000
)

// AnswerQuestionUseCase retrieves the most relevant chunks of a processed
// document, asks the generator for an answer grounded in them, and records
// the session.
type AnswerQuestionUseCase struct {
	repo      ports.DocumentRepository
	sessions  ports.SessionRepository
	index     ports.VectorIndex
	generator ports.AnswerGenerator
	topK      int
}

func NewAnswerQuestionUseCase(
	repo ports.DocumentRepository,
	sessions ports.SessionRepository,
	index ports.VectorIndex,
	generator ports.AnswerGenerator,
	topK int,
) *AnswerQuestionUseCase {
	if topK <= 0 {
		topK = defaultTopK
	}
	return &AnswerQuestionUseCase{
		repo:      repo,
		sessions:  sessions,
		index:     index,
		generator: generator,
		topK:      topK,
	}
}

func (uc *AnswerQuestionUseCase) Ask(ctx context.Context, documentID, question string) (*domain.QASession, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "ask", fmt.Errorf("question is empty"))
	}
	if utf8.RuneCountInString(question) > maxQuestionLength {
		return nil, domain.WrapError(domain.ErrInvalidInput, "ask", fmt.Errorf("question exceeds %d characters", maxQuestionLength))
	}

	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("fetch document: %w", err)
	}
	if doc.Status != domain.StatusProcessed || doc.CollectionName == "" {
		return nil, domain.WrapError(domain.ErrDocumentNotReady, "ask", fmt.Errorf("document %s status=%s", doc.ID, doc.Status))
	}

	result, err := uc.answer(ctx, doc, question)
	if err != nil {
		return nil, err
	}

	session := &domain.QASession{
		ID:                  uuid.NewString(),
		DocumentID:          doc.ID,
		Question:            question,
		Answer:              result.Answer,
		Confidence:          result.Confidence,
		ResponseTimeSeconds: result.ResponseTime.Seconds(),
		SourceCount:         result.SourceCount,
		CreatedAt:           time.Now().UTC(),
	}
	if err := uc.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("save qa session: %w", err)
	}
	return session, nil
}

// answer runs open -> query -> generate and measures wall-clock latency
// across all three. A collection that disappears mid-request (concurrent
// delete) surfaces ErrIndexMissing, never a crash, and is never silently
// recreated.
func (uc *AnswerQuestionUseCase) answer(ctx context.Context, doc *domain.Document, question string) (*domain.AnswerResult, error) {
	start := time.Now()

	collection, err := uc.index.Open(ctx, doc.CollectionName)
	if err != nil {
		if domain.IsKind(err, domain.ErrCollectionNotFound) {
			return nil, domain.WrapError(domain.ErrIndexMissing, "open collection", err)
		}
		return nil, fmt.Errorf("open collection: %w", err)
	}

	chunks, err := collection.Query(ctx, question, uc.topK)
	if err != nil {
		if domain.IsKind(err, domain.ErrCollectionNotFound) {
			return nil, domain.WrapError(domain.ErrIndexMissing, "query collection", err)
		}
		return nil, fmt.Errorf("query collection: %w", err)
	}

	answerText, err := uc.generator.GenerateFromPrompt(ctx, buildAnswerPrompt(question, chunks))
	if err != nil {
		return nil, domain.WrapError(domain.ErrAnswerGeneration, "generate answer", err)
	}
	elapsed := time.Since(start)

	return &domain.AnswerResult{
		Answer:       answerText,
		Confidence:   confidenceScore(chunks),
		ResponseTime: elapsed,
		SourceCount:  len(chunks),
	}, nil
}

func (uc *AnswerQuestionUseCase) History(ctx context.Context, documentID string) ([]domain.QASession, error) {
	if _, err := uc.repo.GetByID(ctx, documentID); err != nil {
		return nil, fmt.Errorf("fetch document: %w", err)
	}
	sessions, err := uc.sessions.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("list qa sessions: %w", err)
	}
	return sessions, nil
}
