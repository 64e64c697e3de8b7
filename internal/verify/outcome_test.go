package verify

import (
	"testing"

	"triangulate/internal/model"
)

func TestResolveExclusiveNoEvidence(t *testing.T) {
	res := resolveExclusive(NewLedger(), 2)
	if res.Outcome != model.OutcomeNoEvidence || res.Level != 0 || res.Winner != "" {
		t.Errorf("empty ledger: got %+v", res)
	}
}

func TestResolveExclusiveVerified(t *testing.T) {
	l := NewLedger()
	l.Record("1950", rec("wiki.org", 1))
	l.Record("1950", rec("state.gov", 0))

	res := resolveExclusive(l, 2)
	if res.Winner != "1950" || res.Outcome != model.OutcomeVerified || res.Level != 2 {
		t.Errorf("got %+v, want verified 1950 at level 2", res)
	}
}

func TestResolveExclusiveVerifiedDespiteMinorityValue(t *testing.T) {
	// A single-domain minority year does not demote a unique quorum winner
	l := NewLedger()
	l.Record("1951", rec("blog.com", 2))
	l.Record("1950", rec("wiki.org", 1))
	l.Record("1950", rec("other.org", 1))

	res := resolveExclusive(l, 2)
	if res.Winner != "1950" || res.Outcome != model.OutcomeVerified || res.Level != 2 {
		t.Errorf("got %+v, want verified 1950", res)
	}
}

func TestResolveExclusiveConflictResolvedByQuality(t *testing.T) {
	l := NewLedger()
	// 1950 backed by a narrative mention (rank 1), 1951 by an explicit
	// field (rank 0); both at two domains.
	l.Record("1950", rec("a.com", 1))
	l.Record("1950", rec("b.com", 1))
	l.Record("1951", rec("c.com", 0))
	l.Record("1951", rec("d.com", 2))

	res := resolveExclusive(l, 2)
	if res.Winner != "1951" || res.Outcome != model.OutcomeConflictResolved || res.Level != 2 {
		t.Errorf("got %+v, want 1951 winning on quality", res)
	}
}

func TestResolveExclusiveQualityTieFallsBackToScanOrder(t *testing.T) {
	l := NewLedger()
	l.Record("1950", rec("a.com", 1))
	l.Record("1951", rec("c.com", 1))
	l.Record("1950", rec("b.com", 1))
	l.Record("1951", rec("d.com", 1))

	res := resolveExclusive(l, 2)
	if res.Winner != "1950" {
		t.Errorf("winner = %s, want first-seen 1950 when quality ties", res.Winner)
	}
	if res.Outcome != model.OutcomeConflictResolved {
		t.Errorf("outcome = %s, want conflict_resolved", res.Outcome)
	}
}

func TestResolveExclusiveNoCorroboration(t *testing.T) {
	l := NewLedger()
	l.Record("1950", rec("wiki.org", 1))

	res := resolveExclusive(l, 2)
	if res.Winner != "1950" || res.Outcome != model.OutcomeNoCorroboration || res.Level != 1 {
		t.Errorf("got %+v, want no_corroboration at level 1", res)
	}
}

func TestResolveExclusiveConflictInconclusive(t *testing.T) {
	l := NewLedger()
	l.Record("1950", rec("a.com", 1))
	l.Record("1951", rec("b.com", 0))

	res := resolveExclusive(l, 2)
	if res.Outcome != model.OutcomeConflictInconclusive || res.Level != 1 {
		t.Errorf("got %+v, want conflict_inconclusive at level 1", res)
	}
	// A winner is still reported for the record, picked by quality
	if res.Winner != "1951" {
		t.Errorf("winner = %s, want 1951 (stronger evidence)", res.Winner)
	}
}

func TestResolveSet(t *testing.T) {
	l := NewLedger()
	l.Record("FRA", rec("a.com", 0))
	l.Record("FRA", rec("b.com", 0))
	l.Record("ITA", rec("c.com", 0))

	res := resolveSet(l, 2)
	if len(res.Verified) != 1 || res.Verified[0] != "FRA" {
		t.Errorf("Verified = %v, want [FRA]", res.Verified)
	}
	if len(res.Unverified) != 1 || res.Unverified[0] != "ITA" {
		t.Errorf("Unverified = %v, want [ITA]", res.Unverified)
	}
	if res.Outcome != model.OutcomeVerified || res.Level != 2 {
		t.Errorf("got outcome %s level %d, want verified level 2", res.Outcome, res.Level)
	}
}

func TestResolveSetPartial(t *testing.T) {
	l := NewLedger()
	l.Record("ITA", rec("c.com", 0))

	res := resolveSet(l, 2)
	if res.Outcome != model.OutcomePartial || res.Level != 1 {
		t.Errorf("got outcome %s level %d, want partial level 1", res.Outcome, res.Level)
	}
}

func TestResolveSetNoEvidence(t *testing.T) {
	res := resolveSet(NewLedger(), 2)
	if res.Outcome != model.OutcomeNoEvidence || res.Level != 0 {
		t.Errorf("got outcome %s level %d, want no_evidence level 0", res.Outcome, res.Level)
	}
}

func TestRunnerUps(t *testing.T) {
	l := NewLedger()
	l.Record("1950", rec("a.com", 1))
	l.Record("1950", rec("b.com", 1))
	l.Record("1951", rec("c.com", 2))

	rus := runnerUps(l, "1950")
	if len(rus) != 1 {
		t.Fatalf("got %d runner-ups, want 1", len(rus))
	}
	if rus[0].Value != "1951" || rus[0].Count != 1 || rus[0].SampleSource == nil {
		t.Errorf("runner-up = %+v", rus[0])
	}
}
