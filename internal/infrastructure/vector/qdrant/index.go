// Package qdrant stores chunk embeddings in Qdrant over its HTTP API, one
// collection per processed document.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"docqna/internal/core/domain"
	"docqna/internal/core/ports"
)

type Index struct {
	baseURL    string
	embedder   ports.Embedder
	httpClient *http.Client
}

func New(baseURL string, embedder ports.Embedder) *Index {
	return &Index{
		baseURL:    strings.TrimRight(baseURL, "/"),
		embedder:   embedder,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// CreateCollection embeds every chunk and upserts all (text, vector) points
// under name. A failure after the collection was created tears it down
// again so no partial collection is ever observable.
func (x *Index) CreateCollection(ctx context.Context, name string, chunks []string) error {
	if len(chunks) == 0 {
		return domain.WrapError(domain.ErrIndexBuild, "create collection", fmt.Errorf("no chunks to index"))
	}

	vectors, err := x.embedder.Embed(ctx, chunks)
	if err != nil {
		return domain.WrapError(domain.ErrIndexBuild, "embed chunks", err)
	}
	if len(vectors) != len(chunks) {
		return domain.WrapError(domain.ErrIndexBuild, "embed chunks",
			fmt.Errorf("vectors/chunks mismatch: %d/%d", len(vectors), len(chunks)))
	}

	if err := x.createCollection(ctx, name, len(vectors[0])); err != nil {
		return domain.WrapError(domain.ErrIndexBuild, "create collection", err)
	}

	if err := x.upsertPoints(ctx, name, chunks, vectors); err != nil {
		// Roll the half-written collection back; a later Open must see
		// CollectionNotFound, not a truncated index.
		_ = x.DeleteCollection(ctx, name)
		return domain.WrapError(domain.ErrIndexBuild, "upsert points", err)
	}
	return nil
}

// Open verifies the collection exists and returns a read handle.
func (x *Index) Open(ctx context.Context, name string) (ports.Collection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/collections/%s", x.baseURL, name), nil)
	if err != nil {
		return nil, fmt.Errorf("create collection info request: %w", err)
	}

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("qdrant collection info request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.WrapError(domain.ErrCollectionNotFound, "open collection", fmt.Errorf("collection %s", name))
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("qdrant collection info status: %s", resp.Status)
	}
	return &collection{index: x, name: name}, nil
}

// DeleteCollection removes the collection; deleting one that does not exist
// is not an error.
func (x *Index) DeleteCollection(ctx context.Context, name string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, fmt.Sprintf("%s/collections/%s", x.baseURL, name), nil)
	if err != nil {
		return fmt.Errorf("create delete collection request: %w", err)
	}

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant delete collection request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("qdrant delete collection status: %s", resp.Status)
	}
	return nil
}

type collection struct {
	index *Index
	name  string
}

// Query embeds the question and returns up to k chunks, most-similar first.
// Qdrant already orders results by descending similarity. A 404 here means
// the collection was deleted after Open; that maps to CollectionNotFound so
// callers can treat it as "document was deleted mid-request".
func (c *collection) Query(ctx context.Context, question string, k int) ([]domain.ScoredChunk, error) {
	if k <= 0 {
		k = 5
	}

	queryVector, err := c.index.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	reqBody := map[string]any{
		"vector":       queryVector,
		"limit":        k,
		"with_payload": true,
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal search body: %w", err)
	}

	url := fmt.Sprintf("%s/collections/%s/points/search", c.index.baseURL, c.name)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.index.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("qdrant search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.WrapError(domain.ErrCollectionNotFound, "query collection", fmt.Errorf("collection %s", c.name))
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("qdrant search status: %s", resp.Status)
	}

	var searchResp struct {
		Result []struct {
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	out := make([]domain.ScoredChunk, 0, len(searchResp.Result))
	for _, r := range searchResp.Result {
		out = append(out, domain.ScoredChunk{
			Text:  getStringPayload(r.Payload, "text"),
			Score: r.Score,
		})
	}
	return out, nil
}

func (x *Index) createCollection(ctx context.Context, name string, vectorSize int) error {
	reqBody := map[string]any{
		"vectors": map[string]any{
			"size":     vectorSize,
			"distance": "Cosine",
		},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal create collection body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, fmt.Sprintf("%s/collections/%s", x.baseURL, name), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create collection request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant create collection request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		if msg := strings.TrimSpace(string(body)); msg != "" {
			return fmt.Errorf("qdrant create collection status: %s: %s", resp.Status, msg)
		}
		return fmt.Errorf("qdrant create collection status: %s", resp.Status)
	}
	return nil
}

func (x *Index) upsertPoints(ctx context.Context, name string, chunks []string, vectors [][]float32) error {
	type point struct {
		ID      string         `json:"id"`
		Vector  []float32      `json:"vector"`
		Payload map[string]any `json:"payload"`
	}

	points := make([]point, 0, len(chunks))
	for i := range chunks {
		points = append(points, point{
			ID:     uuid.NewString(),
			Vector: vectors[i],
			Payload: map[string]any{
				"chunk_index": i,
				"text":        chunks[i],
			},
		})
	}

	body, err := json.Marshal(map[string]any{"points": points})
	if err != nil {
		return fmt.Errorf("marshal upsert body: %w", err)
	}

	url := fmt.Sprintf("%s/collections/%s/points?wait=true", x.baseURL, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create upsert request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant upsert request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant upsert status: %s", resp.Status)
	}
	return nil
}

func getStringPayload(payload map[string]any, key string) string {
	v, ok := payload[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
