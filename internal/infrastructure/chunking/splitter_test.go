package chunking

import (
	"strings"
	"testing"
)

func TestSplitEmptyTextReturnsNoChunks(t *testing.T) {
	s := NewSplitter(1000, 200)
	if chunks := s.Split(""); chunks != nil {
		t.Fatalf("expected no chunks for empty input, got %d", len(chunks))
	}
}

func TestSplitShortTextSingleChunk(t *testing.T) {
	s := NewSplitter(1000, 200)
	chunks := s.Split("a short document")
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != "a short document" {
		t.Fatalf("expected chunk to equal input, got %q", chunks[0])
	}
}

func TestSplitRepeatedSentences(t *testing.T) {
	text := strings.Repeat("Hello world. ", 100)
	s := NewSplitter(1000, 200)

	chunks := s.Split(text)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks for 1300 chars, got %d", len(chunks))
	}
	if len(chunks[0]) != 988 {
		t.Fatalf("expected first chunk cut after sentence boundary at 988, got %d", len(chunks[0]))
	}
	if !strings.HasSuffix(chunks[0], ". ") {
		t.Fatalf("expected first chunk to end on a sentence boundary, got suffix %q", chunks[0][len(chunks[0])-5:])
	}
	if len(chunks[1]) != 512 {
		t.Fatalf("expected second chunk of 512 chars, got %d", len(chunks[1]))
	}
}

func TestSplitChunkSizeBound(t *testing.T) {
	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 200)
	s := NewSplitter(1000, 200)

	for i, chunk := range s.Split(text) {
		if got := len([]rune(chunk)); got > s.ChunkSize {
			t.Fatalf("chunk %d has %d runes, exceeds limit %d", i, got, s.ChunkSize)
		}
	}
}

func TestSplitReconstructsOriginalText(t *testing.T) {
	texts := []string{
		strings.Repeat("Hello world. ", 100),
		strings.Repeat("pack my box with five dozen liquor jugs\n", 120),
		strings.Repeat("x", 2500),
		"first paragraph\n\n" + strings.Repeat("second paragraph sentence. ", 80),
	}
	s := NewSplitter(1000, 200)

	for _, text := range texts {
		chunks := s.Split(text)
		if len(chunks) == 0 {
			t.Fatalf("expected chunks for %d chars", len(text))
		}

		var rebuilt strings.Builder
		rebuilt.WriteString(chunks[0])
		for _, chunk := range chunks[1:] {
			runes := []rune(chunk)
			rebuilt.WriteString(string(runes[s.Overlap:]))
		}
		if rebuilt.String() != text {
			t.Fatalf("dropping the overlap from each chunk did not reconstruct the input")
		}
	}
}

func TestSplitPrefersParagraphBoundary(t *testing.T) {
	text := strings.Repeat("a", 90) + "\n\n" + strings.Repeat("b", 100)
	s := NewSplitter(100, 20)

	chunks := s.Split(text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	if !strings.HasSuffix(chunks[0], "\n\n") {
		t.Fatalf("expected first chunk to end at the paragraph break")
	}
	if len(chunks[0]) != 92 {
		t.Fatalf("expected first chunk of 92 chars, got %d", len(chunks[0]))
	}
}

func TestSplitHardCutWithoutBoundaries(t *testing.T) {
	text := strings.Repeat("x", 2500)
	s := NewSplitter(1000, 200)

	chunks := s.Split(text)
	want := []int{1000, 1000, 900}
	if len(chunks) != len(want) {
		t.Fatalf("expected %d chunks, got %d", len(want), len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk) != want[i] {
			t.Fatalf("chunk %d: expected %d chars, got %d", i, want[i], len(chunk))
		}
	}
}

func TestSplitDeterministic(t *testing.T) {
	text := strings.Repeat("Some sentences repeat here. Others do not! Is that fine? ", 60)
	s := NewSplitter(1000, 200)

	first := s.Split(text)
	second := s.Split(text)
	if len(first) != len(second) {
		t.Fatalf("expected identical chunk counts, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("chunk %d differs between runs", i)
		}
	}
}

func TestNewSplitterClampsDegenerateOverlap(t *testing.T) {
	s := NewSplitter(100, 100)
	if s.Overlap != 20 {
		t.Fatalf("expected overlap clamped to 20, got %d", s.Overlap)
	}
	s = NewSplitter(0, -5)
	if s.ChunkSize != 1000 || s.Overlap != 0 {
		t.Fatalf("expected defaults 1000/0, got %d/%d", s.ChunkSize, s.Overlap)
	}
}
