package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"docqna/internal/core/domain"
)

// documentXML mirrors the parts of word/document.xml we read: paragraphs,
// their runs and the text elements inside them.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

// extractDocx concatenates the text of every paragraph in document order,
// each followed by a newline.
func extractDocx(raw []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", domain.WrapError(domain.ErrExtraction, "open docx archive", err)
	}

	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", domain.WrapError(domain.ErrExtraction, "open docx document part", err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", domain.WrapError(domain.ErrExtraction, "read docx document part", err)
		}

		var doc documentXML
		if err := xml.Unmarshal(content, &doc); err != nil {
			return "", domain.WrapError(domain.ErrExtraction, "parse docx document xml", err)
		}

		var builder strings.Builder
		for _, para := range doc.Body.Paragraphs {
			for _, r := range para.Runs {
				for _, t := range r.Text {
					builder.WriteString(t.Content)
				}
			}
			builder.WriteString("\n")
		}
		return builder.String(), nil
	}

	return "", domain.WrapError(domain.ErrExtraction, "parse docx", errors.New("word/document.xml not found"))
}
