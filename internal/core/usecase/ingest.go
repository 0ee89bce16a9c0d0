package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"docqna/internal/core/domain"
	"docqna/internal/core/ports"
)

// IngestDocumentUseCase runs the whole upload path synchronously: store the
// file, create the pending record, extract, chunk, build the index
// collection and mark the document processed. The upload request does not
// complete until ingestion finishes or fails.
type IngestDocumentUseCase struct {
	repo      ports.DocumentRepository
	storage   ports.ObjectStorage
	extractor ports.TextExtractor
	chunker   ports.Chunker
	index     ports.VectorIndex
}

func NewIngestDocumentUseCase(
	repo ports.DocumentRepository,
	storage ports.ObjectStorage,
	extractor ports.TextExtractor,
	chunker ports.Chunker,
	index ports.VectorIndex,
) *IngestDocumentUseCase {
	return &IngestDocumentUseCase{
		repo:      repo,
		storage:   storage,
		extractor: extractor,
		chunker:   chunker,
		index:     index,
	}
}

func (uc *IngestDocumentUseCase) Upload(
	ctx context.Context,
	title, filename string,
	size int64,
	body io.Reader,
) (*domain.Document, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	fileType, ok := domain.FileTypeForExtension(ext)
	if !ok {
		return nil, domain.WrapError(domain.ErrUnsupportedFileType, "upload", fmt.Errorf("extension %q", ext))
	}
	if strings.TrimSpace(title) == "" {
		title = filename
	}

	id := uuid.NewString()
	storageKey := fmt.Sprintf("%s_%s", id, sanitizeFilename(filename))
	now := time.Now().UTC()

	written, err := uc.storage.Save(ctx, storageKey, body)
	if err != nil {
		return nil, fmt.Errorf("save to object storage: %w", err)
	}
	if size <= 0 {
		size = written
	}

	doc := &domain.Document{
		ID:          id,
		Title:       title,
		Filename:    filename,
		FileType:    fileType,
		FileSize:    size,
		StoragePath: storageKey,
		Status:      domain.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.repo.Create(ctx, doc); err != nil {
		_ = uc.storage.Delete(ctx, storageKey)
		return nil, fmt.Errorf("create document metadata: %w", err)
	}

	if err := uc.process(ctx, doc); err != nil {
		uc.rollback(ctx, doc)
		return nil, err
	}
	return doc, nil
}

// process runs the pending -> processed transition. Any failure leaves no
// partial collection behind; the caller rolls the record back.
func (uc *IngestDocumentUseCase) process(ctx context.Context, doc *domain.Document) error {
	text, err := uc.extractor.Extract(ctx, doc)
	if err != nil {
		return fmt.Errorf("extract text: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return domain.WrapError(domain.ErrEmptyDocument, "extract text", errors.New("empty extracted text"))
	}

	chunks := uc.chunker.Split(text)
	if len(chunks) == 0 {
		return domain.WrapError(domain.ErrEmptyDocument, "chunk document", errors.New("chunking produced zero chunks"))
	}

	collection := domain.CollectionNameFor(doc.ID)
	if err := uc.index.CreateCollection(ctx, collection, chunks); err != nil {
		return fmt.Errorf("build index collection: %w", err)
	}

	if err := uc.repo.MarkProcessed(ctx, doc.ID, collection, len(chunks)); err != nil {
		_ = uc.index.DeleteCollection(ctx, collection)
		return fmt.Errorf("mark document processed: %w", err)
	}

	doc.Status = domain.StatusProcessed
	doc.CollectionName = collection
	doc.ChunkCount = len(chunks)
	doc.UpdatedAt = time.Now().UTC()
	return nil
}

// rollback removes whatever the failed ingestion left behind. A failed
// document is not retried; re-ingestion requires a fresh upload.
func (uc *IngestDocumentUseCase) rollback(ctx context.Context, doc *domain.Document) {
	_ = uc.index.DeleteCollection(ctx, domain.CollectionNameFor(doc.ID))
	_ = uc.repo.Delete(ctx, doc.ID)
	_ = uc.storage.Delete(ctx, doc.StoragePath)
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" {
		return "document.bin"
	}
	return base
}
