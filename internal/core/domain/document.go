package domain

import "time"

type FileType string

const (
	FileTypeText FileType = "text"
	FileTypePDF  FileType = "pdf"
	FileTypeWord FileType = "word"
)

type DocumentStatus string

const (
	StatusPending   DocumentStatus = "pending"
	StatusProcessed DocumentStatus = "processed"
	StatusFailed    DocumentStatus = "failed"
)

// Document is the metadata record for one uploaded file. CollectionName is
// non-empty exactly when Status is StatusProcessed.
type Document struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Filename    string         `json:"filename"`
	FileType    FileType       `json:"file_type"`
	FileSize    int64          `json:"file_size"`
	StoragePath string         `json:"storage_path"`
	Status      DocumentStatus `json:"status"`

	// CollectionName is the vector index collection holding this
	// document's chunk embeddings, derived from the document id.
	CollectionName string `json:"collection_name,omitempty"`

	// ChunkCount is the number of indexed chunks, zero until processed.
	ChunkCount int `json:"chunk_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CollectionNameFor derives the index collection name for a document id.
func CollectionNameFor(documentID string) string {
	return "doc_" + documentID
}

// FileTypeForExtension maps an upload filename extension (lowercase, with
// leading dot) to a declared file type.
func FileTypeForExtension(ext string) (FileType, bool) {
	switch ext {
	case ".txt":
		return FileTypeText, true
	case ".pdf":
		return FileTypePDF, true
	case ".docx":
		return FileTypeWord, true
	default:
		return "", false
	}
}
