package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"docqna/internal/core/domain"
)

func TestSessionCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewSessionRepository(db)

	now := time.Now().UTC()
	session := &domain.QASession{
		ID:                  "s-1",
		DocumentID:          "doc-1",
		Question:            "what is this?",
		Answer:              "a report",
		Confidence:          0.55,
		ResponseTimeSeconds: 1.23,
		SourceCount:         3,
		CreatedAt:           now,
	}

	mock.ExpectExec("INSERT INTO qa_sessions").
		WithArgs(session.ID, session.DocumentID, session.Question, session.Answer,
			session.Confidence, session.ResponseTimeSeconds, session.SourceCount, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), session); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSessionListByDocumentNewestFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewSessionRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "document_id", "question", "answer", "confidence", "response_time_seconds", "source_count", "created_at",
	}).
		AddRow("s-2", "doc-1", "second?", "yes", 0.7, 0.9, 2, now).
		AddRow("s-1", "doc-1", "first?", "no", 0.31, 1.5, 1, now.Add(-time.Minute))
	mock.ExpectQuery("SELECT (.+) FROM qa_sessions").WithArgs("doc-1").WillReturnRows(rows)

	sessions, err := repo.ListByDocument(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("ListByDocument() error = %v", err)
	}
	if len(sessions) != 2 || sessions[0].ID != "s-2" {
		t.Fatalf("expected newest-first sessions, got %+v", sessions)
	}
	if sessions[1].Confidence != 0.31 {
		t.Fatalf("expected confidence round-trip, got %v", sessions[1].Confidence)
	}
}

func TestSessionListByDocumentEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewSessionRepository(db)

	rows := sqlmock.NewRows([]string{
		"id", "document_id", "question", "answer", "confidence", "response_time_seconds", "source_count", "created_at",
	})
	mock.ExpectQuery("SELECT (.+) FROM qa_sessions").WithArgs("doc-1").WillReturnRows(rows)

	sessions, err := repo.ListByDocument(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("ListByDocument() error = %v", err)
	}
	if sessions == nil || len(sessions) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", sessions)
	}
}
