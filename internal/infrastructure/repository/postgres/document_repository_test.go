package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"docqna/internal/core/domain"
)

func documentColumns() []string {
	return []string{
		"id", "title", "filename", "file_type", "file_size",
		"storage_path", "status", "collection_name", "chunk_count", "created_at", "updated_at",
	}
}

func TestDocumentCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewDocumentRepository(db)

	now := time.Now().UTC()
	doc := &domain.Document{
		ID:          "doc-1",
		Title:       "Report",
		Filename:    "report.txt",
		FileType:    domain.FileTypeText,
		FileSize:    42,
		StoragePath: "doc-1_report.txt",
		Status:      domain.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	mock.ExpectExec("INSERT INTO documents").
		WithArgs(doc.ID, doc.Title, doc.Filename, "text", doc.FileSize, doc.StoragePath, "pending", "", 0, now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), doc); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDocumentGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewDocumentRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows(documentColumns()).
		AddRow("doc-1", "Report", "report.txt", "text", int64(42), "doc-1_report.txt", "processed", "doc_doc-1", 3, now, now)
	mock.ExpectQuery("SELECT (.+) FROM documents").WithArgs("doc-1").WillReturnRows(rows)

	doc, err := repo.GetByID(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if doc.Status != domain.StatusProcessed {
		t.Fatalf("expected processed status, got %s", doc.Status)
	}
	if doc.CollectionName != "doc_doc-1" {
		t.Fatalf("expected collection name, got %q", doc.CollectionName)
	}
	if doc.ChunkCount != 3 {
		t.Fatalf("expected chunk count 3, got %d", doc.ChunkCount)
	}
}

func TestDocumentGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewDocumentRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM documents").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(documentColumns()))

	_, err = repo.GetByID(context.Background(), "missing")
	if !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestDocumentListNewestFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewDocumentRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows(documentColumns()).
		AddRow("doc-2", "B", "b.txt", "text", int64(2), "p2", "processed", "doc_doc-2", 2, now, now).
		AddRow("doc-1", "A", "a.txt", "text", int64(1), "p1", "failed", "", 0, now.Add(-time.Hour), now)
	mock.ExpectQuery("SELECT (.+) FROM documents ORDER BY created_at DESC").WillReturnRows(rows)

	docs, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(docs) != 2 || docs[0].ID != "doc-2" {
		t.Fatalf("expected newest-first listing, got %+v", docs)
	}
}

func TestDocumentMarkProcessed(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewDocumentRepository(db)

	mock.ExpectExec("UPDATE documents").
		WithArgs("doc-1", "processed", "doc_doc-1", 4, sqlmock.AnyArg(), "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.MarkProcessed(context.Background(), "doc-1", "doc_doc-1", 4); err != nil {
		t.Fatalf("MarkProcessed() error = %v", err)
	}
}

func TestDocumentMarkProcessedNoPendingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewDocumentRepository(db)

	mock.ExpectExec("UPDATE documents").
		WithArgs("doc-1", "processed", "doc_doc-1", 4, sqlmock.AnyArg(), "pending").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.MarkProcessed(context.Background(), "doc-1", "doc_doc-1", 4)
	if !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestDocumentDeleteMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewDocumentRepository(db)

	mock.ExpectExec("DELETE FROM documents").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Delete(context.Background(), "missing")
	if !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestEnsureSchemaRunsInTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewDocumentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").
		WithArgs(int64(2026083101)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS documents").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	if err := repo.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
