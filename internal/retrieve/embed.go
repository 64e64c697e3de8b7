package retrieve

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"

	"triangulate/internal/model"
)

// Embedder turns text into a vector for similarity ranking
type Embedder interface {
	// Name returns the embedder name
	Name() string

	// Embed generates an embedding for a single text
	Embed(ctx context.Context, text string) ([]float32, error)
}

// NewEmbedder builds the configured embedder
func NewEmbedder(cfg model.EmbeddingConfig) (Embedder, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai", "":
		return NewOpenAIEmbedder(cfg)
	case "gemini", "google":
		return NewGenAIEmbedder(cfg)
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Provider)
	}
}

// OpenAIEmbedder generates embeddings through the OpenAI embeddings API
type OpenAIEmbedder struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// NewOpenAIEmbedder creates an OpenAI embedder
func NewOpenAIEmbedder(cfg model.EmbeddingConfig) (*OpenAIEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai embedder: API key is required")
	}
	m := openai.SmallEmbedding3
	if cfg.Model != "" {
		m = openai.EmbeddingModel(cfg.Model)
	}
	return &OpenAIEmbedder{
		client: openai.NewClient(cfg.APIKey),
		model:  m,
	}, nil
}

func (e *OpenAIEmbedder) Name() string { return "openai" }

func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: e.model,
	})
	if err != nil {
		return nil, fmt.Errorf("openai embed: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("openai embed: no embedding returned")
	}
	return resp.Data[0].Embedding, nil
}

// GenAIEmbedder generates embeddings through Google's Gemini API
type GenAIEmbedder struct {
	client *genai.Client
	model  string
}

// NewGenAIEmbedder creates a Gemini embedder
func NewGenAIEmbedder(cfg model.EmbeddingConfig) (*GenAIEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini embedder: API key is required")
	}
	m := cfg.Model
	if m == "" {
		m = "gemini-embedding-001"
	}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini embedder: %w", err)
	}
	return &GenAIEmbedder{client: client, model: m}, nil
}

func (e *GenAIEmbedder) Name() string { return "gemini" }

func (e *GenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}
	result, err := e.client.Models.EmbedContent(ctx, e.model, contents,
		&genai.EmbedContentConfig{
			TaskType: "RETRIEVAL_QUERY",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini embed: %w", err)
	}
	if len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("gemini embed: no embedding returned")
	}
	return result.Embeddings[0].Values, nil
}

// CachedEmbedder memoizes query embeddings. The three attribute queries
// for one person only differ by template, so a batch run hits the cache
// constantly when the same person appears in multiple input files.
type CachedEmbedder struct {
	inner Embedder
	cache *gocache.Cache
}

// NewCachedEmbedder wraps an embedder with an in-memory TTL cache
func NewCachedEmbedder(inner Embedder, ttl time.Duration) *CachedEmbedder {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &CachedEmbedder{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (e *CachedEmbedder) Name() string { return e.inner.Name() }

func (e *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	key := e.cacheKey(text)
	if v, ok := e.cache.Get(key); ok {
		return v.([]float32), nil
	}
	emb, err := e.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	e.cache.Set(key, emb, gocache.DefaultExpiration)
	return emb, nil
}

func (e *CachedEmbedder) cacheKey(text string) string {
	sum := sha256.Sum256([]byte(e.inner.Name() + ":" + text))
	return hex.EncodeToString(sum[:])
}
