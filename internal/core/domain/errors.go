package domain

import (
	"errors"
	"fmt"
)

// Ingestion and retrieval failures. All are terminal for the current
// request; nothing in the core retries them.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrExtraction          = errors.New("text extraction failed")
	ErrEmptyDocument       = errors.New("document contains no text")
	ErrIndexBuild          = errors.New("index build failed")
	ErrCollectionNotFound  = errors.New("collection not found")
	ErrDocumentNotReady    = errors.New("document is not processed")
	ErrIndexMissing        = errors.New("index collection missing for processed document")
	ErrAnswerGeneration    = errors.New("answer generation failed")
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrTemporary        = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
