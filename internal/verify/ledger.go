package verify

import (
	"triangulate/internal/model"
)

// worstQuality is the rank assigned when a ledger entry has no ranked
// sources; any real rank beats it.
const worstQuality = 999

// ledgerEntry accumulates support for one candidate value
type ledgerEntry struct {
	count     int                    // independent domains, == len(domains) always
	domains   map[string]struct{}    // normalized domains counted so far
	sources   []model.EvidenceRecord // one per accepted claim, repeat domains kept for audit
	firstSeen int                    // sequence of the first accepted claim, tie-break fallback
}

// Ledger is the per-value tally of independent domains and their
// supporting evidence records. One Ledger is owned by exactly one scan
// and discarded when the scan's result is emitted.
type Ledger struct {
	entries map[string]*ledgerEntry
	order   []string // values in first-seen order
	seq     int
}

// NewLedger returns an empty ledger
func NewLedger() *Ledger {
	return &Ledger{entries: make(map[string]*ledgerEntry)}
}

// Record appends rec to the value's source list. If rec.Domain has not
// yet supported this value, the independent-domain count is incremented.
// Counts are monotonically non-decreasing within a scan.
func (l *Ledger) Record(value string, rec model.EvidenceRecord) {
	e, ok := l.entries[value]
	if !ok {
		e = &ledgerEntry{
			domains:   make(map[string]struct{}),
			firstSeen: l.seq,
		}
		l.entries[value] = e
		l.order = append(l.order, value)
	}
	l.seq++

	if _, seen := e.domains[rec.Domain]; !seen {
		e.domains[rec.Domain] = struct{}{}
		e.count++
	}
	e.sources = append(e.sources, rec)
}

// Count returns the independent-domain count for a value (0 if untracked)
func (l *Ledger) Count(value string) int {
	if e, ok := l.entries[value]; ok {
		return e.count
	}
	return 0
}

// MaxCount returns the highest independent-domain count across all values
func (l *Ledger) MaxCount() int {
	max := 0
	for _, e := range l.entries {
		if e.count > max {
			max = e.count
		}
	}
	return max
}

// ValuesAt returns all values whose count equals count, in first-seen
// scan order. Supports tie detection and deterministic tie-breaking.
func (l *Ledger) ValuesAt(count int) []string {
	var out []string
	for _, v := range l.order {
		if l.entries[v].count == count {
			out = append(out, v)
		}
	}
	return out
}

// Values returns all tracked values in first-seen scan order
func (l *Ledger) Values() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Len returns the number of distinct values tracked
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Sources returns the ordered evidence records supporting a value
func (l *Ledger) Sources(value string) []model.EvidenceRecord {
	if e, ok := l.entries[value]; ok {
		return e.sources
	}
	return nil
}

// BestQuality returns the best (lowest) quality rank among a value's
// sources, or worstQuality when the value has none.
func (l *Ledger) BestQuality(value string) int {
	e, ok := l.entries[value]
	if !ok {
		return worstQuality
	}
	best := worstQuality
	for _, s := range e.sources {
		if s.QualityRank < best {
			best = s.QualityRank
		}
	}
	return best
}

// firstSeen returns the sequence at which a value first appeared
func (l *Ledger) firstSeenSeq(value string) int {
	if e, ok := l.entries[value]; ok {
		return e.firstSeen
	}
	return int(^uint(0) >> 1)
}
