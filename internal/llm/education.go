package llm

import (
	"context"
	"fmt"
	"strings"

	"triangulate/internal/model"
)

// EducationExtractor runs the two-stage education pipeline against one
// provider: stage 1 pulls raw mentions out of individual chunks, stage 2
// consolidates all mentions into structured events in a single call.
type EducationExtractor struct {
	provider    Provider
	temperature float32
	maxTokens   int
}

// NewEducationExtractor builds the education extractor
func NewEducationExtractor(p Provider, cfg model.LLMConfig) *EducationExtractor {
	temp := cfg.Temperature
	if temp == 0 {
		temp = 0.3
	}
	return &EducationExtractor{
		provider:    p,
		temperature: temp,
		maxTokens:   cfg.MaxTokens,
	}
}

// ExtractMentions runs stage 1 against one chunk of text
func (e *EducationExtractor) ExtractMentions(ctx context.Context, personName, chunkText string) (bool, []string, error) {
	prompt := fillTemplate(educationStage1Template, map[string]string{
		"PERSON_NAME": personName,
		"CHUNK_TEXT":  chunkText,
	})

	resp, err := e.provider.Complete(ctx, CompletionRequest{
		System:      educationStage1System,
		Prompt:      prompt,
		MaxTokens:   e.maxTokens,
		Temperature: e.temperature,
	})
	if err != nil {
		return false, nil, fmt.Errorf("%s education extraction: %w", e.provider.Name(), err)
	}

	found, mentions := ParseEducationMentions(resp.Text)
	return found, mentions, nil
}

// StructureEvents runs stage 2 over the collected mentions
func (e *EducationExtractor) StructureEvents(ctx context.Context, personName string, mentions []string) ([]model.EducationEvent, error) {
	lines := make([]string, len(mentions))
	for i, m := range mentions {
		lines[i] = "- " + m
	}

	prompt := fillTemplate(educationStage2Template, map[string]string{
		"PERSON_NAME":        personName,
		"EDUCATION_MENTIONS": strings.Join(lines, "\n"),
	})

	// Structuring output is larger than a tagged extraction block
	maxTokens := e.maxTokens
	if maxTokens == 0 {
		maxTokens = 400
	}
	resp, err := e.provider.Complete(ctx, CompletionRequest{
		System:      educationStage2System,
		Prompt:      prompt,
		MaxTokens:   maxTokens * 2,
		Temperature: e.temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("%s education structuring: %w", e.provider.Name(), err)
	}

	return ParseEducationEvents(resp.Text), nil
}
