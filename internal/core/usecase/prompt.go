package usecase

import (
	"fmt"
	"strings"

	"docqna/internal/core/domain"
)

// buildAnswerPrompt constrains the generator to the retrieved context:
// chunks are concatenated in retrieval order and the instructions forbid
// answering from anything else.
func buildAnswerPrompt(question string, chunks []domain.ScoredChunk) string {
	var contextBuilder strings.Builder
	for idx, chunk := range chunks {
		contextBuilder.WriteString(fmt.Sprintf("[%d] score=%.3f\n%s\n\n", idx+1, chunk.Score, chunk.Text))
	}

	return fmt.Sprintf(`You are an assistant that answers questions based ONLY on the provided document content.

Context from the document:
%s
Question: %s

Instructions:
1. Answer ONLY based on the information provided in the context above.
2. If the answer cannot be found in the context, say "I cannot find this information in the provided document".
3. Be concise but comprehensive.
4. Quote relevant parts of the document when appropriate.
5. Do not make assumptions or add information not present in the context.

Answer:`, contextBuilder.String(), question)
}
