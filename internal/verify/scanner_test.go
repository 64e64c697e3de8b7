package verify

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triangulate/internal/model"
)

// fakeExtractor maps chunk text to a fixed claim. Deterministic, so scans
// over identical candidate lists are reproducible.
type fakeExtractor struct {
	claims map[string]model.Claim
	errs   map[string]error
	calls  int
}

func (f *fakeExtractor) Extract(_ context.Context, _ string, chunkText string) (model.Claim, error) {
	f.calls++
	if err, ok := f.errs[chunkText]; ok {
		return model.Claim{}, err
	}
	return f.claims[chunkText], nil
}

func yearClaim(year int) model.Claim {
	return model.Claim{Present: true, Year: year}
}

func cand(domain, text string, rank int) model.EvidenceCandidate {
	return model.EvidenceCandidate{
		ChunkID:    fmt.Sprintf("%s-%d", domain, rank),
		Domain:     domain,
		URL:        "https://" + domain + "/page",
		ChunkIndex: rank,
		Rank:       rank,
		Text:       text,
	}
}

func defaultCfg() model.VerifyConfig {
	return model.VerifyConfig{MaxScans: 10, Quorum: 2}
}

func TestBirthScenarioA_TwoDomainQuorum(t *testing.T) {
	ex := &fakeExtractor{claims: map[string]model.Claim{
		"born in 1950 (wiki)": yearClaim(1950),
		"born in 1950 (gov)":  yearClaim(1950),
	}}
	v := NewBirthVerifier(ex, defaultCfg(), nil)

	rec := v.Verify(context.Background(), "Test Person", []model.EvidenceCandidate{
		cand("wiki.org", "born in 1950 (wiki)", 0),
		cand("state.gov", "born in 1950 (gov)", 1),
	})

	require.NotNil(t, rec.WinnerYear)
	assert.Equal(t, 1950, *rec.WinnerYear)
	assert.Equal(t, model.OutcomeVerified, rec.Outcome)
	assert.Equal(t, 2, rec.Verified)
	assert.Equal(t, 2, rec.Scanned)
	assert.Len(t, rec.WinnerSources, 2)
}

func TestBirthScenarioB_MinorityYearSeenFirst(t *testing.T) {
	ex := &fakeExtractor{claims: map[string]model.Claim{
		"blog says 1951": yearClaim(1951),
		"wiki says 1950": yearClaim(1950),
		"also 1950":      yearClaim(1950),
	}}
	v := NewBirthVerifier(ex, defaultCfg(), nil)

	rec := v.Verify(context.Background(), "Test Person", []model.EvidenceCandidate{
		cand("blog.com", "blog says 1951", 0),
		cand("wiki.org", "wiki says 1950", 1),
		cand("other.org", "also 1950", 2),
	})

	require.NotNil(t, rec.WinnerYear)
	assert.Equal(t, 1950, *rec.WinnerYear)
	assert.Equal(t, model.OutcomeVerified, rec.Outcome)
	assert.Equal(t, 2, rec.Verified)
	assert.Equal(t, 3, rec.Scanned, "quorum reached on the second 1950 match at index 3")
	assert.Len(t, rec.RunnerUpYears, 1)
	assert.Equal(t, "1951", rec.RunnerUpYears[0].Value)
}

func TestBirthScenarioC_NoEvidence(t *testing.T) {
	ex := &fakeExtractor{} // every chunk: absent
	v := NewBirthVerifier(ex, defaultCfg(), nil)

	var candidates []model.EvidenceCandidate
	for i := 0; i < 10; i++ {
		candidates = append(candidates, cand(fmt.Sprintf("d%d.com", i), "nothing here", i))
	}
	rec := v.Verify(context.Background(), "Test Person", candidates)

	assert.Nil(t, rec.WinnerYear)
	assert.Equal(t, model.OutcomeNoEvidence, rec.Outcome)
	assert.Equal(t, 0, rec.Verified)
	assert.Equal(t, 10, rec.Scanned)
}

func TestQuorumStopsEarlyAndNeverScansMore(t *testing.T) {
	ex := &fakeExtractor{claims: map[string]model.Claim{
		"a": yearClaim(1950),
		"b": yearClaim(1950),
		"c": yearClaim(1999), // must never be reached
	}}
	v := NewBirthVerifier(ex, defaultCfg(), nil)

	rec := v.Verify(context.Background(), "P", []model.EvidenceCandidate{
		cand("a.com", "a", 0),
		cand("b.com", "b", 1),
		cand("c.com", "c", 2),
	})

	assert.Equal(t, 2, rec.Scanned)
	assert.Equal(t, 2, ex.calls, "extractor must not run past the quorum stop")
	assert.Equal(t, model.OutcomeVerified, rec.Outcome)
}

func TestSameDomainPairIsNotQuorum(t *testing.T) {
	ex := &fakeExtractor{claims: map[string]model.Claim{
		"a": yearClaim(1950),
		"b": yearClaim(1950),
	}}
	v := NewBirthVerifier(ex, defaultCfg(), nil)

	rec := v.Verify(context.Background(), "P", []model.EvidenceCandidate{
		cand("same.org", "a", 0),
		cand("same.org", "b", 1),
	})

	assert.Equal(t, model.OutcomeNoCorroboration, rec.Outcome)
	assert.Equal(t, 1, rec.Verified)
	assert.Len(t, rec.WinnerSources, 2, "repeat-domain sources kept for audit")
}

func TestBudgetRespected(t *testing.T) {
	ex := &fakeExtractor{}
	cfg := model.VerifyConfig{MaxScans: 10, Quorum: 2}
	v := NewBirthVerifier(ex, cfg, nil)

	var candidates []model.EvidenceCandidate
	for i := 0; i < 25; i++ {
		candidates = append(candidates, cand(fmt.Sprintf("d%d.com", i), "x", i))
	}
	rec := v.Verify(context.Background(), "P", candidates)

	assert.Equal(t, 10, rec.Scanned)
	assert.Equal(t, 10, ex.calls)
}

func TestExtractorFailureIsAbsentNotFatal(t *testing.T) {
	ex := &fakeExtractor{
		claims: map[string]model.Claim{
			"good1": yearClaim(1950),
			"good2": yearClaim(1950),
		},
		errs: map[string]error{"bad": errors.New("upstream timeout")},
	}
	v := NewBirthVerifier(ex, defaultCfg(), nil)

	rec := v.Verify(context.Background(), "P", []model.EvidenceCandidate{
		cand("a.com", "bad", 0),
		cand("b.com", "good1", 1),
		cand("c.com", "good2", 2),
	})

	assert.Equal(t, model.OutcomeVerified, rec.Outcome)
	assert.Equal(t, 3, rec.Scanned)
}

func TestMissingChunkTextConsumesBudget(t *testing.T) {
	ex := &fakeExtractor{claims: map[string]model.Claim{"good": yearClaim(1950)}}
	v := NewBirthVerifier(ex, model.VerifyConfig{MaxScans: 2, Quorum: 2}, nil)

	rec := v.Verify(context.Background(), "P", []model.EvidenceCandidate{
		cand("a.com", "", 0), // chunk missing from store
		cand("b.com", "good", 1),
		cand("c.com", "good", 2), // outside the budget
	})

	assert.Equal(t, 2, rec.Scanned)
	assert.Equal(t, 1, ex.calls, "missing chunks are skipped without an extractor call")
	assert.Equal(t, model.OutcomeNoCorroboration, rec.Outcome)
}

func TestExhaustBudgetFindsLaterMajority(t *testing.T) {
	// With quorum stopping disabled, a later better-supported year can
	// overturn an early pair.
	claims := map[string]model.Claim{
		"e1": yearClaim(1950), "e2": yearClaim(1950),
		"l1": yearClaim(1948), "l2": yearClaim(1948), "l3": yearClaim(1948),
	}
	candidates := []model.EvidenceCandidate{
		cand("a.com", "e1", 0),
		cand("b.com", "e2", 1),
		cand("c.com", "l1", 2),
		cand("d.com", "l2", 3),
		cand("e.com", "l3", 4),
	}

	early := NewBirthVerifier(&fakeExtractor{claims: claims}, defaultCfg(), nil)
	recEarly := early.Verify(context.Background(), "P", candidates)
	require.NotNil(t, recEarly.WinnerYear)
	assert.Equal(t, 1950, *recEarly.WinnerYear, "default policy stops at the first quorum")
	assert.Equal(t, 2, recEarly.Scanned)

	cfg := model.VerifyConfig{MaxScans: 10, Quorum: 2, ExhaustBudget: true}
	full := NewBirthVerifier(&fakeExtractor{claims: claims}, cfg, nil)
	recFull := full.Verify(context.Background(), "P", candidates)
	require.NotNil(t, recFull.WinnerYear)
	assert.Equal(t, 1948, *recFull.WinnerYear)
	assert.Equal(t, 5, recFull.Scanned)
	assert.Equal(t, model.OutcomeVerified, recFull.Outcome)
}

func TestTieBreakByEvidenceQuality(t *testing.T) {
	// 1950 appears in explicit date-of-birth fields, 1951 only in
	// narrative text; both reach two domains under a full-budget scan.
	claims := map[string]model.Claim{
		"Date of birth: 1950":    yearClaim(1950),
		"date of birth was 1950": yearClaim(1950),
		"he was born about 1951": yearClaim(1951),
		"reportedly born 1951":   yearClaim(1951),
	}
	cfg := model.VerifyConfig{MaxScans: 10, Quorum: 2, ExhaustBudget: true}
	v := NewBirthVerifier(&fakeExtractor{claims: claims}, cfg, nil)

	rec := v.Verify(context.Background(), "P", []model.EvidenceCandidate{
		cand("a.com", "he was born about 1951", 0),
		cand("b.com", "reportedly born 1951", 1),
		cand("c.com", "Date of birth: 1950", 2),
		cand("d.com", "date of birth was 1950", 3),
	})

	require.NotNil(t, rec.WinnerYear)
	assert.Equal(t, 1950, *rec.WinnerYear, "explicit field evidence outranks narrative")
	assert.Equal(t, model.OutcomeConflictResolved, rec.Outcome)
	assert.Equal(t, 2, rec.Verified)
}

func TestIdempotentRuns(t *testing.T) {
	claims := map[string]model.Claim{
		"a": yearClaim(1950),
		"b": yearClaim(1951),
		"c": yearClaim(1950),
	}
	candidates := []model.EvidenceCandidate{
		cand("a.com", "a", 0),
		cand("b.com", "b", 1),
		cand("c.com", "c", 2),
	}

	run := func() *model.BirthRecord {
		v := NewBirthVerifier(&fakeExtractor{claims: claims}, defaultCfg(), nil)
		return v.Verify(context.Background(), "P", candidates)
	}

	first, second := run(), run()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated runs differ (-first +second):\n%s", diff)
	}
}

func TestBirthEmptyCandidates(t *testing.T) {
	v := NewBirthVerifier(&fakeExtractor{}, defaultCfg(), nil)
	rec := v.Verify(context.Background(), "P", nil)

	assert.Equal(t, model.OutcomeNoEvidence, rec.Outcome)
	assert.Equal(t, 0, rec.Verified)
	assert.Equal(t, 0, rec.Scanned)
}

func deceasedClaim(year int) model.Claim {
	return model.Claim{Present: true, Status: model.StatusDeceased, Year: year}
}

func aliveClaim() model.Claim {
	return model.Claim{Present: true, Status: model.StatusAlive}
}

func TestDeathYearQuorum(t *testing.T) {
	ex := &fakeExtractor{claims: map[string]model.Claim{
		"obituary 2016": deceasedClaim(2016),
		"died in 2016":  deceasedClaim(2016),
	}}
	v := NewDeathVerifier(ex, defaultCfg(), nil)

	rec := v.Verify(context.Background(), "P", []model.EvidenceCandidate{
		cand("a.com", "obituary 2016", 0),
		cand("b.com", "died in 2016", 1),
	})

	assert.Equal(t, model.StatusDeceased, rec.Status)
	require.NotNil(t, rec.DeathYear)
	assert.Equal(t, 2016, *rec.DeathYear)
	assert.Equal(t, model.OutcomeVerified, rec.Outcome)
	assert.Equal(t, 2, rec.Verified)
}

func TestDeathAliveQuorum(t *testing.T) {
	ex := &fakeExtractor{claims: map[string]model.Claim{
		"currently serves as minister": aliveClaim(),
		"is the sitting ambassador":    aliveClaim(),
	}}
	v := NewDeathVerifier(ex, defaultCfg(), nil)

	rec := v.Verify(context.Background(), "P", []model.EvidenceCandidate{
		cand("a.com", "currently serves as minister", 0),
		cand("b.com", "is the sitting ambassador", 1),
	})

	assert.Equal(t, model.StatusAlive, rec.Status)
	assert.Nil(t, rec.DeathYear)
	assert.Equal(t, model.OutcomeVerified, rec.Outcome)
	assert.Equal(t, 2, rec.Verified)
	assert.Len(t, rec.AliveSignals, 2)
}

func TestDeathSingleAliveSignal(t *testing.T) {
	ex := &fakeExtractor{claims: map[string]model.Claim{
		"currently in office": aliveClaim(),
	}}
	v := NewDeathVerifier(ex, defaultCfg(), nil)

	rec := v.Verify(context.Background(), "P", []model.EvidenceCandidate{
		cand("a.com", "currently in office", 0),
	})

	assert.Equal(t, model.StatusAlive, rec.Status)
	assert.Equal(t, model.OutcomeNoCorroboration, rec.Outcome)
	assert.Equal(t, 1, rec.Verified)
}

func TestDeathYearOutranksAliveSignals(t *testing.T) {
	// Resolution order: any recorded death year wins over alive signals,
	// even a single-domain one.
	ex := &fakeExtractor{claims: map[string]model.Claim{
		"still active":  aliveClaim(),
		"still serving": aliveClaim(),
		"died in 2020":  deceasedClaim(2020),
	}}
	v := NewDeathVerifier(ex, defaultCfg(), nil)

	rec := v.Verify(context.Background(), "P", []model.EvidenceCandidate{
		cand("a.com", "still active", 0),
		cand("b.com", "still serving", 1),
		cand("c.com", "died in 2020", 2),
	})

	assert.Equal(t, model.StatusDeceased, rec.Status)
	require.NotNil(t, rec.DeathYear)
	assert.Equal(t, 2020, *rec.DeathYear)
	assert.Equal(t, model.OutcomeNoCorroboration, rec.Outcome)
	assert.Equal(t, 1, rec.Verified)
}

func TestDeathUnknown(t *testing.T) {
	v := NewDeathVerifier(&fakeExtractor{}, defaultCfg(), nil)
	rec := v.Verify(context.Background(), "P", []model.EvidenceCandidate{
		cand("a.com", "nothing relevant", 0),
	})

	assert.Equal(t, model.StatusUnknown, rec.Status)
	assert.Equal(t, model.OutcomeNoEvidence, rec.Outcome)
	assert.Equal(t, 0, rec.Verified)
}

func codesClaim(codes ...string) model.Claim {
	return model.Claim{Present: true, Codes: codes}
}

func TestNationalityScenarioD(t *testing.T) {
	ex := &fakeExtractor{claims: map[string]model.Claim{
		"french statesman":     codesClaim("FRA"),
		"citizen of France":    codesClaim("FRA"),
		"italian by birth too": codesClaim("ITA"),
	}}
	v := NewNationalityVerifier(ex, defaultCfg(), nil)

	rec := v.Verify(context.Background(), "P", []model.EvidenceCandidate{
		cand("a.com", "french statesman", 0),
		cand("b.com", "citizen of France", 1),
		cand("c.com", "italian by birth too", 2),
	})

	assert.Equal(t, []string{"FRA"}, rec.Nationalities)
	assert.Equal(t, []string{"ITA"}, rec.Unverified)
	assert.Equal(t, model.OutcomeVerified, rec.Outcome)
	assert.Equal(t, 2, rec.Verified)
}

func TestNationalityScansToBudgetAfterQuorum(t *testing.T) {
	// Unlike scalar claims, a code reaching quorum does not end the scan:
	// a second nationality can verify from later candidates.
	ex := &fakeExtractor{claims: map[string]model.Claim{
		"fr 1": codesClaim("FRA"),
		"fr 2": codesClaim("FRA"),
		"it 1": codesClaim("ITA"),
		"it 2": codesClaim("ITA"),
	}}
	v := NewNationalityVerifier(ex, defaultCfg(), nil)

	rec := v.Verify(context.Background(), "P", []model.EvidenceCandidate{
		cand("a.com", "fr 1", 0),
		cand("b.com", "fr 2", 1),
		cand("c.com", "it 1", 2),
		cand("d.com", "it 2", 3),
	})

	assert.Equal(t, 4, rec.Scanned)
	assert.ElementsMatch(t, []string{"FRA", "ITA"}, rec.Nationalities)
	assert.Empty(t, rec.Unverified)
}

func TestNationalityMultiCodeChunk(t *testing.T) {
	ex := &fakeExtractor{claims: map[string]model.Claim{
		"dual citizen": codesClaim("FRA", "ITA"),
		"french":       codesClaim("FRA"),
	}}
	v := NewNationalityVerifier(ex, defaultCfg(), nil)

	rec := v.Verify(context.Background(), "P", []model.EvidenceCandidate{
		cand("a.com", "dual citizen", 0),
		cand("b.com", "french", 1),
	})

	assert.Equal(t, []string{"FRA"}, rec.Nationalities)
	assert.Equal(t, []string{"ITA"}, rec.Unverified)
	require.Contains(t, rec.Details, "FRA")
	assert.Equal(t, 2, rec.Details["FRA"].Count)
}
