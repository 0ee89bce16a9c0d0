package bootstrap

import (
	"context"
	"fmt"

	"docqna/internal/config"
	"docqna/internal/core/ports"
	"docqna/internal/core/usecase"
	"docqna/internal/infrastructure/chunking"
	"docqna/internal/infrastructure/extractor"
	"docqna/internal/infrastructure/llm/ollama"
	"docqna/internal/infrastructure/repository/postgres"
	"docqna/internal/infrastructure/resilience"
	"docqna/internal/infrastructure/storage/localfs"
	"docqna/internal/infrastructure/vector/qdrant"
	"docqna/internal/observability/metrics"
)

// App wires configuration, infrastructure, and use cases for the API binary.
type App struct {
	Config  config.Config
	Metrics *metrics.HTTPServerMetrics

	Repo     ports.DocumentRepository
	IngestUC ports.DocumentIngestor
	AnswerUC ports.QuestionAnswerer
	DeleteUC ports.DocumentRemover

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewDocumentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	sessions := postgres.NewSessionRepository(db)

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	executor := resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts: cfg.RetryMaxAttempts,
		BreakerEnabled:   cfg.BreakerEnabled,
	})

	ollamaClient := ollama.New(cfg.OllamaURL, cfg.OllamaGenModel, cfg.OllamaEmbedModel, executor)
	embedder := ollama.NewEmbedder(ollamaClient)
	generator := ollama.NewGenerator(ollamaClient)

	index := qdrant.New(cfg.QdrantURL, embedder)
	chunker := chunking.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)
	textExtractor := extractor.New(storage)

	ingestUC := usecase.NewIngestDocumentUseCase(repo, storage, textExtractor, chunker, index)
	answerUC := usecase.NewAnswerQuestionUseCase(repo, sessions, index, generator, cfg.QATopK)
	deleteUC := usecase.NewDeleteDocumentUseCase(repo, storage, index)

	return &App{
		Config:  cfg,
		Metrics: metrics.NewHTTPServerMetrics("docqna-api"),

		Repo:     repo,
		IngestUC: ingestUC,
		AnswerUC: answerUC,
		DeleteUC: deleteUC,

		closeFn: func() {
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
