package embedding

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Model names go-openai's ada-002 embedding model (1536-dimensional
// vectors). Embed does not send it; requests use remoteModel.
const Model = openai.AdaEmbeddingV2

// remoteModel is the model Embed requests, in place of Model; kept
// as a separate constant since go-openai's typed enum doesn't include it.
const remoteModel = "text-embedding-3-small"

// OpenAIEmbedder is the remote Embedder implementation. It reads its API
// key once at construction; callers that don't have a key configured
// should use NullEmbedder instead of constructing this with an empty key.
type OpenAIEmbedder struct {
	client *openai.Client
}

// NewOpenAIEmbedder constructs an embedder bound to apiKey. Returns an
// error if apiKey is empty, so callers can fall back to NullEmbedder.
func NewOpenAIEmbedder(apiKey string) (*OpenAIEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("embedding: empty OpenAI API key")
	}
	return &OpenAIEmbedder{client: openai.NewClient(apiKey)}, nil
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, nil
	}
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
		Input: []string{text},
		Model: remoteModel,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding: openai request failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, nil
	}
	return resp.Data[0].Embedding, nil
}
