package chunking

import "strings"

// Splitter cuts text into a sliding window of overlapping chunks. Cuts
// prefer natural boundaries (paragraph, then sentence, then word) found in
// the tail of the window; only when none exists does it fall back to a hard
// character cut. Splitting is deterministic: identical input yields
// identical chunks.
type Splitter struct {
	ChunkSize int
	Overlap   int
}

func NewSplitter(chunkSize, overlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize / 5
	}
	return &Splitter{
		ChunkSize: chunkSize,
		Overlap:   overlap,
	}
}

// Split returns the chunk sequence for text. Every chunk except possibly
// the last has at most ChunkSize runes, each chunk after the first starts
// Overlap runes (boundary slack aside) before the previous chunk's end, and
// concatenating the chunks with overlaps removed reconstructs text exactly.
// Empty input yields no chunks.
func (s *Splitter) Split(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	out := make([]string, 0, len(runes)/(s.ChunkSize-s.Overlap)+1)
	start := 0
	for {
		end := start + s.ChunkSize
		if end >= len(runes) {
			out = append(out, string(runes[start:]))
			return out
		}

		end = s.alignCut(runes, start, end)
		out = append(out, string(runes[start:end]))

		next := end - s.Overlap
		if next <= start {
			next = start + 1
		}
		start = next
	}
}

// alignCut moves the cut position back to the nearest natural boundary
// inside the tail of the window. The search tail is the overlap region, so
// boundary alignment never shrinks a chunk below ChunkSize-Overlap runes.
func (s *Splitter) alignCut(runes []rune, start, end int) int {
	tail := end - s.Overlap
	if tail <= start {
		tail = start + 1
	}

	window := string(runes[tail:end])
	for _, boundary := range []string{"\n\n", "\n", ". ", "! ", "? ", " "} {
		if idx := strings.LastIndex(window, boundary); idx >= 0 {
			// Cut after the boundary so separators stay with the
			// preceding chunk.
			return tail + len([]rune(window[:idx+len(boundary)]))
		}
	}
	return end
}
