package verify

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"triangulate/internal/evidence"
	"triangulate/internal/model"
)

// DeathVerifier decides deceased-with-year vs alive vs unknown. Two
// parallel ledgers are kept: death years (keyed by year) and alive
// signals ("alive" carries no year, so independence is per domain).
// Resolution order: any recorded death year outranks alive signals,
// even a single-domain one (that branch then reports no_corroboration).
type DeathVerifier struct {
	scanner *Scanner
	quorum  int
}

// NewDeathVerifier wires a death/alive verifier around an extractor
func NewDeathVerifier(ex Extractor, cfg model.VerifyConfig, log *zap.Logger) *DeathVerifier {
	quorum := cfg.Quorum
	if quorum <= 0 {
		quorum = 2
	}
	return &DeathVerifier{
		scanner: NewScanner(ex, evidence.DeathType, ShapeStatus, cfg, log),
		quorum:  quorum,
	}
}

// Verify runs one scan and classifies the outcome
func (v *DeathVerifier) Verify(ctx context.Context, person string, candidates []model.EvidenceCandidate) *model.DeathRecord {
	rec := &model.DeathRecord{
		PersonName:       person,
		Status:           model.StatusUnknown,
		Outcome:          model.OutcomeNoEvidence,
		DeathYearSources: []model.EvidenceRecord{},
		AliveSignals:     []model.EvidenceRecord{},
	}
	if len(candidates) == 0 {
		return rec
	}

	st := v.scanner.Scan(ctx, person, candidates)
	rec.Scanned = st.Scanned

	switch {
	case st.Ledger.Len() > 0:
		res := resolveExclusive(st.Ledger, v.quorum)
		rec.Status = model.StatusDeceased
		rec.Outcome = res.Outcome
		rec.Verified = res.Level
		if res.Winner != "" {
			if year, err := strconv.Atoi(res.Winner); err == nil {
				rec.DeathYear = &year
			}
			rec.DeathYearSources = append(rec.DeathYearSources, st.Ledger.Sources(res.Winner)...)
		}
		rec.RunnerUpYears = runnerUps(st.Ledger, res.Winner)

	case st.Alive.Count(aliveKey) > 0:
		rec.Status = model.StatusAlive
		rec.AliveSignals = append(rec.AliveSignals, st.Alive.Sources(aliveKey)...)
		if st.Alive.Count(aliveKey) >= v.quorum {
			rec.Outcome = model.OutcomeVerified
			rec.Verified = model.LevelCorroborate
		} else {
			rec.Outcome = model.OutcomeNoCorroboration
			rec.Verified = model.LevelSingle
		}
	}
	return rec
}
