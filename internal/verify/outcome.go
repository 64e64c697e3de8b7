package verify

import (
	"triangulate/internal/model"
)

// Resolution is the outcome classifier's verdict for exclusive shapes
type Resolution struct {
	Winner  string // empty when no value ever appeared
	Outcome model.Outcome
	Level   int
}

// resolveExclusive derives the final value, verification level and named
// outcome for scalar/categorical-exclusive claims:
//
//	max_count 0              -> no_evidence, level 0
//	max_count >= quorum, one top value  -> verified, level 2
//	max_count >= quorum, tied top       -> conflict_resolved (quality tie-break), level 2
//	max_count < quorum, single value    -> no_corroboration, level 1
//	max_count < quorum, several values  -> conflict_inconclusive (a winner is
//	                                       still picked for the record), level 1
func resolveExclusive(l *Ledger, quorum int) Resolution {
	maxCount := l.MaxCount()
	if maxCount == 0 {
		return Resolution{Outcome: model.OutcomeNoEvidence, Level: model.LevelNone}
	}

	top := l.ValuesAt(maxCount)

	if maxCount >= quorum {
		if len(top) == 1 {
			return Resolution{Winner: top[0], Outcome: model.OutcomeVerified, Level: model.LevelCorroborate}
		}
		return Resolution{
			Winner:  breakTie(l, top),
			Outcome: model.OutcomeConflictResolved,
			Level:   model.LevelCorroborate,
		}
	}

	if l.Len() == 1 {
		return Resolution{Winner: top[0], Outcome: model.OutcomeNoCorroboration, Level: model.LevelSingle}
	}
	return Resolution{
		Winner:  breakTie(l, top),
		Outcome: model.OutcomeConflictInconclusive,
		Level:   model.LevelSingle,
	}
}

// breakTie picks among count-tied values: best (lowest) quality rank over
// each value's sources wins; if quality also ties, the value first
// recorded in scan order wins. Deterministic for a fixed candidate list.
func breakTie(l *Ledger, tied []string) string {
	best := tied[0]
	bestQuality := l.BestQuality(best)
	for _, v := range tied[1:] {
		q := l.BestQuality(v)
		if q < bestQuality || (q == bestQuality && l.firstSeenSeq(v) < l.firstSeenSeq(best)) {
			best = v
			bestQuality = q
		}
	}
	return best
}

// SetResolution is the outcome classifier's verdict for set-inclusive claims
type SetResolution struct {
	Verified   []string // values that reached quorum, first-seen order
	Unverified []string // values seen from fewer domains than quorum
	Outcome    model.Outcome
	Level      int
}

// resolveSet accepts every value at or above quorum into the verified set
// and reports below-quorum values separately as unverified.
func resolveSet(l *Ledger, quorum int) SetResolution {
	res := SetResolution{}
	for _, v := range l.Values() {
		if l.Count(v) >= quorum {
			res.Verified = append(res.Verified, v)
		} else {
			res.Unverified = append(res.Unverified, v)
		}
	}
	switch {
	case len(res.Verified) > 0:
		res.Outcome = model.OutcomeVerified
		res.Level = model.LevelCorroborate
	case len(res.Unverified) > 0:
		res.Outcome = model.OutcomePartial
		res.Level = model.LevelSingle
	default:
		res.Outcome = model.OutcomeNoEvidence
		res.Level = model.LevelNone
	}
	return res
}

// runnerUps summarizes every non-winning value for the audit trail
func runnerUps(l *Ledger, winner string) []model.RunnerUp {
	var out []model.RunnerUp
	for _, v := range l.Values() {
		if v == winner {
			continue
		}
		ru := model.RunnerUp{Value: v, Count: l.Count(v)}
		if srcs := l.Sources(v); len(srcs) > 0 {
			s := srcs[0]
			ru.SampleSource = &s
		}
		out = append(out, ru)
	}
	return out
}
