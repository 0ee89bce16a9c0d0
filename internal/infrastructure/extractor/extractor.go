// Package extractor turns stored upload bytes into plain text according to
// the document's declared file type.
package extractor

import (
	"context"
	"fmt"
	"io"

	"docqna/internal/core/domain"
	"docqna/internal/core/ports"
)

type Extractor struct {
	storage ports.ObjectStorage
}

func New(storage ports.ObjectStorage) *Extractor {
	return &Extractor{storage: storage}
}

// Extract reads the document's stored bytes and dispatches on the declared
// file type. It does not judge emptiness; the ingestion pipeline does.
func (e *Extractor) Extract(ctx context.Context, doc *domain.Document) (string, error) {
	raw, err := e.read(ctx, doc.StoragePath)
	if err != nil {
		return "", domain.WrapError(domain.ErrExtraction, "read stored document", err)
	}

	switch doc.FileType {
	case domain.FileTypeText:
		return extractText(raw)
	case domain.FileTypePDF:
		return extractPDF(raw)
	case domain.FileTypeWord:
		return extractDocx(raw)
	default:
		return "", domain.WrapError(domain.ErrUnsupportedFileType, "extract", fmt.Errorf("file type %q", doc.FileType))
	}
}

func (e *Extractor) read(ctx context.Context, key string) ([]byte, error) {
	reader, err := e.storage.Open(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("open source document: %w", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read source document: %w", err)
	}
	return raw, nil
}
