package usecase

import (
	"context"
	"fmt"

	"docqna/internal/core/domain"
	"docqna/internal/core/ports"
)

// DeleteDocumentUseCase removes a document, its index collection and its
// stored file. The collection goes first so a document row never outlives
// the metadata that points at it in the other direction (no orphaned
// collections).
type DeleteDocumentUseCase struct {
	repo    ports.DocumentRepository
	storage ports.ObjectStorage
	index   ports.VectorIndex
}

func NewDeleteDocumentUseCase(
	repo ports.DocumentRepository,
	storage ports.ObjectStorage,
	index ports.VectorIndex,
) *DeleteDocumentUseCase {
	return &DeleteDocumentUseCase{
		repo:    repo,
		storage: storage,
		index:   index,
	}
}

func (uc *DeleteDocumentUseCase) Remove(ctx context.Context, documentID string) error {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return fmt.Errorf("fetch document: %w", err)
	}

	// Derived name rather than the stored one so pending/failed leftovers
	// are swept too. DeleteCollection is idempotent.
	if err := uc.index.DeleteCollection(ctx, domain.CollectionNameFor(doc.ID)); err != nil {
		return fmt.Errorf("delete index collection: %w", err)
	}

	if err := uc.repo.Delete(ctx, doc.ID); err != nil {
		return fmt.Errorf("delete document record: %w", err)
	}

	if err := uc.storage.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("delete stored file: %w", err)
	}
	return nil
}
