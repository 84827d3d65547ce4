package providers

import (
	"context"
	"errors"
)

// ErrEmbeddingUnavailable signals that no embedding could be produced.
// Callers must degrade to keyword-only scoring, never fail the request.
var ErrEmbeddingUnavailable = errors.New("embedding provider unavailable")

// EmbeddingProvider generates semantic vectors for free text. Implemented
// by the OpenAI embeddings client; a nil provider means the engine runs in
// keyword-only mode.
type EmbeddingProvider interface {
	// Embed returns the embedding vector for the given text.
	Embed(ctx context.Context, text string) ([]float64, error)
}
