package llm

import (
	"context"
	"fmt"

	"triangulate/internal/model"
)

// ClaimExtractor turns one LLM provider into a typed claim extractor for
// a single attribute: it fills the attribute's prompt template, runs the
// provider, and parses the tagged output. It satisfies the engine's
// Extractor boundary; per-call timeouts live in the provider.
type ClaimExtractor struct {
	provider     Provider
	system       string
	userTemplate string
	parse        func(string) model.Claim
	temperature  float32
	maxTokens    int
}

func newClaimExtractor(p Provider, cfg model.LLMConfig, system, userTemplate string, parse func(string) model.Claim) *ClaimExtractor {
	temp := cfg.Temperature
	if temp == 0 {
		temp = 0.3
	}
	return &ClaimExtractor{
		provider:     p,
		system:       system,
		userTemplate: userTemplate,
		parse:        parse,
		temperature:  temp,
		maxTokens:    cfg.MaxTokens,
	}
}

// NewBirthExtractor builds the birth-year claim extractor
func NewBirthExtractor(p Provider, cfg model.LLMConfig) *ClaimExtractor {
	return newClaimExtractor(p, cfg, birthSystemPrompt, birthUserTemplate, ParseBirthOutput)
}

// NewDeathExtractor builds the death/alive claim extractor
func NewDeathExtractor(p Provider, cfg model.LLMConfig) *ClaimExtractor {
	return newClaimExtractor(p, cfg, deathSystemPrompt, deathUserTemplate, ParseDeathOutput)
}

// NewNationalityExtractor builds the nationality claim extractor
func NewNationalityExtractor(p Provider, cfg model.LLMConfig) *ClaimExtractor {
	return newClaimExtractor(p, cfg, nationalitySystemPrompt, nationalityUserTemplate, ParseNationalityOutput)
}

// Extract runs the attribute prompt against one chunk of text
func (e *ClaimExtractor) Extract(ctx context.Context, personName, chunkText string) (model.Claim, error) {
	prompt := fillTemplate(e.userTemplate, map[string]string{
		"PERSON_NAME": personName,
		"CHUNK_TEXT":  chunkText,
	})

	resp, err := e.provider.Complete(ctx, CompletionRequest{
		System:      e.system,
		Prompt:      prompt,
		MaxTokens:   e.maxTokens,
		Temperature: e.temperature,
	})
	if err != nil {
		return model.Claim{}, fmt.Errorf("%s extraction: %w", e.provider.Name(), err)
	}

	return e.parse(resp.Text), nil
}
