package extractor

import (
	"errors"
	"unicode/utf8"

	"docqna/internal/core/domain"
)

func extractText(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", domain.WrapError(domain.ErrExtraction, "decode text file", errors.New("content is not valid UTF-8"))
	}
	return string(raw), nil
}
