package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"docqna/internal/core/domain"
)

type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session *domain.QASession) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO qa_sessions (
	id, document_id, question, answer, confidence, response_time_seconds, source_count, created_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
`,
		session.ID, session.DocumentID, session.Question, session.Answer,
		session.Confidence, session.ResponseTimeSeconds, session.SourceCount, session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert qa session: %w", err)
	}
	return nil
}

func (r *SessionRepository) ListByDocument(ctx context.Context, documentID string) ([]domain.QASession, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, document_id, question, answer, confidence, response_time_seconds, source_count, created_at
FROM qa_sessions
WHERE document_id = $1
ORDER BY created_at DESC
`, documentID)
	if err != nil {
		return nil, fmt.Errorf("query qa sessions: %w", err)
	}
	defer rows.Close()

	out := make([]domain.QASession, 0)
	for rows.Next() {
		var s domain.QASession
		err := rows.Scan(
			&s.ID, &s.DocumentID, &s.Question, &s.Answer,
			&s.Confidence, &s.ResponseTimeSeconds, &s.SourceCount, &s.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan qa session: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate qa sessions: %w", err)
	}
	return out, nil
}
