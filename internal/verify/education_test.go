package verify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triangulate/internal/model"
)

// fakeEducationExtractor maps chunk text to canned mentions and returns
// a fixed event set from structuring
type fakeEducationExtractor struct {
	mentions     map[string][]string
	extractErrs  map[string]error
	events       []model.EducationEvent
	structureErr error

	structuredWith []string
	stage2Calls    int
}

func (f *fakeEducationExtractor) ExtractMentions(_ context.Context, _ string, chunkText string) (bool, []string, error) {
	if err, ok := f.extractErrs[chunkText]; ok {
		return false, nil, err
	}
	m := f.mentions[chunkText]
	return len(m) > 0, m, nil
}

func (f *fakeEducationExtractor) StructureEvents(_ context.Context, _ string, mentions []string) ([]model.EducationEvent, error) {
	f.stage2Calls++
	f.structuredWith = mentions
	if f.structureErr != nil {
		return nil, f.structureErr
	}
	return f.events, nil
}

func intPtr(v int) *int { return &v }

func TestEducationCollectMentionsAndStructure(t *testing.T) {
	ex := &fakeEducationExtractor{
		mentions: map[string][]string{
			"studied law (wiki)": {"studied law at Oxford"},
			"llb oxford (gov)":   {"LLB, Oxford University", "honorary doctorate, LSE"},
		},
		events: []model.EducationEvent{
			{Institution: "Oxford University", Degree: "LLB", Field: "law", EndYear: intPtr(1970)},
		},
	}
	c := NewEducationCollector(ex, defaultCfg(), nil)

	rec := c.Collect(context.Background(), "Test Person", []model.EvidenceCandidate{
		cand("wiki.org", "studied law (wiki)", 0),
		cand("nothing.net", "no education here", 1),
		cand("state.gov", "llb oxford (gov)", 2),
	})

	require.Len(t, rec.Events, 1)
	assert.Equal(t, "Oxford University", rec.Events[0].Institution)
	assert.Equal(t, 3, rec.Scanned)
	assert.Equal(t, []string{
		"studied law at Oxford",
		"LLB, Oxford University",
		"honorary doctorate, LSE",
	}, rec.RawMentions)

	// Every mention keeps its chunk provenance
	require.Len(t, rec.Sources, 3)
	assert.Equal(t, "wiki.org", rec.Sources[0].Domain)
	assert.Equal(t, "state.gov", rec.Sources[1].Domain)
	assert.Equal(t, "LLB, Oxford University", rec.Sources[1].Mention)

	// Structuring saw everything collected, once
	assert.Equal(t, 1, ex.stage2Calls)
	assert.Equal(t, rec.RawMentions, ex.structuredWith)
}

func TestEducationNoMentionsSkipsStructuring(t *testing.T) {
	ex := &fakeEducationExtractor{}
	c := NewEducationCollector(ex, defaultCfg(), nil)

	rec := c.Collect(context.Background(), "Test Person", []model.EvidenceCandidate{
		cand("wiki.org", "no education here", 0),
	})

	assert.Empty(t, rec.Events)
	assert.Empty(t, rec.RawMentions)
	assert.Equal(t, 1, rec.Scanned)
	assert.Zero(t, ex.stage2Calls)
	assert.Empty(t, rec.Error)
}

func TestEducationBudgetBoundsScan(t *testing.T) {
	ex := &fakeEducationExtractor{}
	cfg := model.VerifyConfig{MaxScans: 2, Quorum: 2}
	c := NewEducationCollector(ex, cfg, nil)

	rec := c.Collect(context.Background(), "Test Person", []model.EvidenceCandidate{
		cand("a.org", "text a", 0),
		cand("b.org", "text b", 1),
		cand("c.org", "text c", 2),
	})

	assert.Equal(t, 2, rec.Scanned)
}

func TestEducationExtractorErrorSkipsChunk(t *testing.T) {
	ex := &fakeEducationExtractor{
		mentions: map[string][]string{
			"llb oxford (gov)": {"LLB, Oxford University"},
		},
		extractErrs: map[string]error{
			"studied law (wiki)": errors.New("provider timeout"),
		},
		events: []model.EducationEvent{{Institution: "Oxford University"}},
	}
	c := NewEducationCollector(ex, defaultCfg(), nil)

	rec := c.Collect(context.Background(), "Test Person", []model.EvidenceCandidate{
		cand("wiki.org", "studied law (wiki)", 0),
		cand("state.gov", "llb oxford (gov)", 1),
	})

	// The failed chunk consumed budget but the scan carried on
	assert.Equal(t, 2, rec.Scanned)
	require.Len(t, rec.RawMentions, 1)
	assert.Len(t, rec.Events, 1)
	assert.Empty(t, rec.Error)
}

func TestEducationStructuringFailureKeepsMentions(t *testing.T) {
	ex := &fakeEducationExtractor{
		mentions: map[string][]string{
			"studied law (wiki)": {"studied law at Oxford"},
		},
		structureErr: errors.New("provider unavailable"),
	}
	c := NewEducationCollector(ex, defaultCfg(), nil)

	rec := c.Collect(context.Background(), "Test Person", []model.EvidenceCandidate{
		cand("wiki.org", "studied law (wiki)", 0),
	})

	assert.Empty(t, rec.Events)
	assert.Equal(t, []string{"studied law at Oxford"}, rec.RawMentions)
	assert.Contains(t, rec.Error, "provider unavailable")
}

func TestEducationMissingChunkTextConsumesBudget(t *testing.T) {
	ex := &fakeEducationExtractor{
		mentions: map[string][]string{
			"llb oxford (gov)": {"LLB, Oxford University"},
		},
		events: []model.EducationEvent{{Institution: "Oxford University"}},
	}
	cfg := model.VerifyConfig{MaxScans: 2, Quorum: 2}
	c := NewEducationCollector(ex, cfg, nil)

	rec := c.Collect(context.Background(), "Test Person", []model.EvidenceCandidate{
		cand("gone.org", "", 0),
		cand("state.gov", "llb oxford (gov)", 1),
	})

	assert.Equal(t, 2, rec.Scanned)
	assert.Len(t, rec.RawMentions, 1)
}
