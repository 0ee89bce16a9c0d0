package extractor

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"docqna/internal/core/domain"
)

type storageFake struct {
	content []byte
	err     error
}

func (f *storageFake) Save(context.Context, string, io.Reader) (int64, error) {
	return 0, errors.New("not implemented")
}

func (f *storageFake) Open(context.Context, string) (io.ReadCloser, error) {
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(bytes.NewReader(f.content)), nil
}

func (f *storageFake) Delete(context.Context, string) error {
	return errors.New("not implemented")
}

func docOfType(ft domain.FileType) *domain.Document {
	return &domain.Document{
		ID:          "doc-1",
		StoragePath: "doc-1_file",
		FileType:    ft,
	}
}

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	part, err := writer.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := part.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestExtractPlainText(t *testing.T) {
	storage := &storageFake{content: []byte("hello from a text file\nsecond line")}
	e := New(storage)

	text, err := e.Extract(context.Background(), docOfType(domain.FileTypeText))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if text != "hello from a text file\nsecond line" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestExtractPlainTextRejectsInvalidUTF8(t *testing.T) {
	storage := &storageFake{content: []byte{0xff, 0xfe, 0x00, 0x41}}
	e := New(storage)

	_, err := e.Extract(context.Background(), docOfType(domain.FileTypeText))
	if !domain.IsKind(err, domain.ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
}

func TestExtractDocxParagraphs(t *testing.T) {
	documentXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph, </w:t></w:r><w:r><w:t>split over runs.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second paragraph.</w:t></w:r></w:p>
    <w:p/>
  </w:body>
</w:document>`
	storage := &storageFake{content: buildDocx(t, documentXML)}
	e := New(storage)

	text, err := e.Extract(context.Background(), docOfType(domain.FileTypeWord))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	want := "First paragraph, split over runs.\nSecond paragraph.\n\n"
	if text != want {
		t.Fatalf("expected %q, got %q", want, text)
	}
}

func TestExtractDocxMissingDocumentPart(t *testing.T) {
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	part, _ := writer.Create("word/styles.xml")
	_, _ = part.Write([]byte("<styles/>"))
	_ = writer.Close()

	storage := &storageFake{content: buf.Bytes()}
	e := New(storage)

	_, err := e.Extract(context.Background(), docOfType(domain.FileTypeWord))
	if !domain.IsKind(err, domain.ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
}

func TestExtractDocxRejectsNonArchive(t *testing.T) {
	storage := &storageFake{content: []byte("this is not a zip archive")}
	e := New(storage)

	_, err := e.Extract(context.Background(), docOfType(domain.FileTypeWord))
	if !domain.IsKind(err, domain.ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
}

func TestExtractPDFRejectsGarbage(t *testing.T) {
	storage := &storageFake{content: []byte("%PDF-1.7 truncated garbage")}
	e := New(storage)

	_, err := e.Extract(context.Background(), docOfType(domain.FileTypePDF))
	if !domain.IsKind(err, domain.ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
}

func TestExtractStorageFailure(t *testing.T) {
	storage := &storageFake{err: errors.New("disk gone")}
	e := New(storage)

	_, err := e.Extract(context.Background(), docOfType(domain.FileTypeText))
	if !domain.IsKind(err, domain.ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
}

func TestExtractUnknownFileType(t *testing.T) {
	storage := &storageFake{content: []byte("data")}
	e := New(storage)

	_, err := e.Extract(context.Background(), docOfType(domain.FileType("spreadsheet")))
	if !domain.IsKind(err, domain.ErrUnsupportedFileType) {
		t.Fatalf("expected ErrUnsupportedFileType, got %v", err)
	}
}
