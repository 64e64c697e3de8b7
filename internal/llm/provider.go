package llm

import (
	"context"
	"strings"
	"time"

	"triangulate/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete runs one prompt and returns the raw model output
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest is one prompt execution
type CompletionRequest struct {
	// System is the system/preamble prompt
	System string

	// Prompt is the user prompt with the chunk text already substituted
	Prompt string

	// Model overrides the configured model when non-empty
	Model string

	// MaxTokens limits the response length
	MaxTokens int

	// Temperature, low for extraction work
	Temperature float32
}

// CompletionResponse is the raw model output
type CompletionResponse struct {
	Text       string
	Model      string
	TokensUsed int
}

// fillTemplate substitutes {{KEY}} placeholders in a prompt template
func fillTemplate(template string, vars map[string]string) string {
	out := template
	for k, v := range vars {
		out = strings.ReplaceAll(out, "{{"+k+"}}", v)
	}
	return out
}

// withCallTimeout bounds a single provider call by the configured
// timeout so one hung request cannot stall a scan
func withCallTimeout(ctx context.Context, cfg model.LLMConfig) (context.Context, context.CancelFunc) {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}

// defaultModel picks the request model, then config, then fallback
func defaultModel(req CompletionRequest, cfg model.LLMConfig, fallback string) string {
	if req.Model != "" {
		return req.Model
	}
	if cfg.Model != "" {
		return cfg.Model
	}
	return fallback
}
