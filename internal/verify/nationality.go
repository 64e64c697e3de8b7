package verify

import (
	"context"

	"go.uber.org/zap"

	"triangulate/internal/model"
)

// NationalityVerifier verifies a set of ISO-3166 alpha-3 codes.
// Set-inclusive shape: a person can hold more than one nationality, so
// scanning runs to budget exhaustion and every code at quorum verifies
// independently.
type NationalityVerifier struct {
	scanner *Scanner
	quorum  int
}

// NewNationalityVerifier wires a nationality verifier around an extractor.
// Nationality evidence carries no type vocabulary; records keep only the
// domain and authority bucket.
func NewNationalityVerifier(ex Extractor, cfg model.VerifyConfig, log *zap.Logger) *NationalityVerifier {
	quorum := cfg.Quorum
	if quorum <= 0 {
		quorum = 2
	}
	return &NationalityVerifier{
		scanner: NewScanner(ex, nil, ShapeSet, cfg, log),
		quorum:  quorum,
	}
}

// Verify runs one scan and splits codes into verified and unverified sets
func (v *NationalityVerifier) Verify(ctx context.Context, person string, candidates []model.EvidenceCandidate) *model.NationalityRecord {
	rec := &model.NationalityRecord{
		PersonName:    person,
		Nationalities: []string{},
		Unverified:    []string{},
		Outcome:       model.OutcomeNoEvidence,
	}
	if len(candidates) == 0 {
		return rec
	}

	st := v.scanner.Scan(ctx, person, candidates)
	rec.Scanned = st.Scanned

	res := resolveSet(st.Ledger, v.quorum)
	rec.Nationalities = append(rec.Nationalities, res.Verified...)
	rec.Unverified = append(rec.Unverified, res.Unverified...)
	rec.Outcome = res.Outcome
	rec.Verified = res.Level

	if st.Ledger.Len() > 0 {
		rec.Details = make(map[string]model.NationalityDetail, st.Ledger.Len())
		for _, code := range st.Ledger.Values() {
			rec.Details[code] = model.NationalityDetail{
				Count:   st.Ledger.Count(code),
				Sources: st.Ledger.Sources(code),
			}
		}
	}
	return rec
}
