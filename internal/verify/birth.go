package verify

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"triangulate/internal/evidence"
	"triangulate/internal/model"
)

// BirthVerifier decides a single trustworthy birth year from a ranked
// stream of evidence chunks. Scalar-exclusive shape: one true value.
type BirthVerifier struct {
	scanner *Scanner
	quorum  int
}

// NewBirthVerifier wires a birth-year verifier around an extractor
func NewBirthVerifier(ex Extractor, cfg model.VerifyConfig, log *zap.Logger) *BirthVerifier {
	quorum := cfg.Quorum
	if quorum <= 0 {
		quorum = 2
	}
	return &BirthVerifier{
		scanner: NewScanner(ex, evidence.BirthType, ShapeScalar, cfg, log),
		quorum:  quorum,
	}
}

// Verify runs one scan and classifies the outcome. The returned record is
// complete and immutable; re-running with identical candidates and a
// deterministic extractor yields a structurally identical record.
func (v *BirthVerifier) Verify(ctx context.Context, person string, candidates []model.EvidenceCandidate) *model.BirthRecord {
	rec := &model.BirthRecord{
		PersonName:    person,
		Outcome:       model.OutcomeNoEvidence,
		WinnerSources: []model.EvidenceRecord{},
		RunnerUpYears: []model.RunnerUp{},
	}
	if len(candidates) == 0 {
		return rec
	}

	st := v.scanner.Scan(ctx, person, candidates)
	rec.Scanned = st.Scanned

	res := resolveExclusive(st.Ledger, v.quorum)
	rec.Outcome = res.Outcome
	rec.Verified = res.Level
	if res.Winner != "" {
		year, err := strconv.Atoi(res.Winner)
		if err == nil {
			rec.BirthYear = &year
			rec.WinnerYear = &year
		}
		rec.WinnerSources = append(rec.WinnerSources, st.Ledger.Sources(res.Winner)...)
	}
	rec.RunnerUpYears = append(rec.RunnerUpYears, runnerUps(st.Ledger, res.Winner)...)
	return rec
}
