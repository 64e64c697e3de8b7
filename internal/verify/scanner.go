package verify

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"triangulate/internal/evidence"
	"triangulate/internal/model"
)

// Extractor is the external claim extractor boundary: given a person name
// and a chunk of text, return a structured claim. Implementations are
// expected to be network calls with meaningful latency; the engine treats
// any error (timeout included) as "claim absent" for that chunk and
// continues.
type Extractor interface {
	Extract(ctx context.Context, personName, chunkText string) (model.Claim, error)
}

// ExtractorFunc adapts a plain function to the Extractor interface
type ExtractorFunc func(ctx context.Context, personName, chunkText string) (model.Claim, error)

func (f ExtractorFunc) Extract(ctx context.Context, personName, chunkText string) (model.Claim, error) {
	return f(ctx, personName, chunkText)
}

// aliveKey keys the companion ledger for alive signals; "alive" carries
// no year, so independence is counted per domain alone.
const aliveKey = "alive"

// Scanner runs one sequential corroboration scan over a ranked candidate
// list. It owns no state between scans: every call to Scan builds a
// fresh ledger and discards it with the returned state.
type Scanner struct {
	extractor     Extractor
	typer         evidence.Typer // nil leaves records untyped (set shape)
	shape         Shape
	quorum        int
	maxScans      int
	exhaustBudget bool
	log           *zap.Logger
}

// NewScanner creates a scanner for one claim shape
func NewScanner(ex Extractor, typer evidence.Typer, shape Shape, cfg model.VerifyConfig, log *zap.Logger) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scanner{
		extractor:     ex,
		typer:         typer,
		shape:         shape,
		quorum:        cfg.Quorum,
		maxScans:      cfg.MaxScans,
		exhaustBudget: cfg.ExhaustBudget,
		log:           log,
	}
}

// ScanState is the terminal state of one scan: the ledger(s), how many
// candidates were consumed, and why scanning stopped.
type ScanState struct {
	Ledger  *Ledger
	Alive   *Ledger // status shape only; nil otherwise
	Scanned int
	Reason  StopReason
}

// Scan consumes at most maxScans candidates from the front of the list,
// invoking the extractor once per candidate and updating the ledger.
// Scanning is strictly sequential: the stop decision after each chunk
// depends on all prior chunks. Scan itself never fails; extractor errors
// and missing chunk text degrade to absent claims and are logged.
func (s *Scanner) Scan(ctx context.Context, person string, candidates []model.EvidenceCandidate) *ScanState {
	st := &ScanState{Ledger: NewLedger()}
	if s.shape == ShapeStatus {
		st.Alive = NewLedger()
	}

	ctl := newController(s.quorum, s.maxScans, s.exhaustBudget, s.shape)

	for _, cand := range candidates {
		if ctx.Err() != nil {
			break
		}
		if !ctl.noteScan() {
			break
		}
		st.Scanned = ctl.scanned

		if strings.TrimSpace(cand.Text) == "" {
			// Chunk missing from the store: the budget is consumed but the
			// skip stays visible in logs.
			s.log.Warn("chunk text missing, skipped",
				zap.String("person", person),
				zap.String("chunk_id", cand.ChunkID),
				zap.String("domain", cand.Domain))
			if ctl.observe(st.Ledger) {
				break
			}
			continue
		}

		claim, err := s.extractor.Extract(ctx, person, cand.Text)
		if err != nil {
			s.log.Warn("extractor failed, claim treated as absent",
				zap.String("person", person),
				zap.String("domain", cand.Domain),
				zap.Error(err))
			claim = model.Claim{}
		}

		s.apply(claim, cand, st)

		if ctl.observe(st.Ledger) {
			break
		}
	}

	ctl.finish()
	st.Scanned = ctl.scanned
	st.Reason = ctl.reason

	s.log.Debug("scan stopped",
		zap.String("person", person),
		zap.Int("scanned", st.Scanned),
		zap.String("reason", string(st.Reason)),
		zap.Int("values", st.Ledger.Len()))
	return st
}

// apply interprets a claim under the scanner's shape and records support
func (s *Scanner) apply(claim model.Claim, cand model.EvidenceCandidate, st *ScanState) {
	switch s.shape {
	case ShapeScalar:
		if claim.Present && claim.YearValid() {
			st.Ledger.Record(strconv.Itoa(claim.Year), s.record(cand))
		}
	case ShapeStatus:
		switch {
		case claim.Status == model.StatusDeceased && claim.YearValid():
			st.Ledger.Record(strconv.Itoa(claim.Year), s.record(cand))
		case claim.Status == model.StatusAlive:
			st.Alive.Record(aliveKey, s.record(cand))
		}
	case ShapeSet:
		if claim.Present {
			for _, code := range claim.Codes {
				st.Ledger.Record(code, s.record(cand))
			}
		}
	}
}

// record builds the provenance record attached to a ledger entry
func (s *Scanner) record(cand model.EvidenceCandidate) model.EvidenceRecord {
	rec := model.EvidenceRecord{
		URL:        cand.URL,
		ChunkIndex: cand.ChunkIndex,
		Domain:     cand.Domain,
		Authority:  evidence.Bucket(cand.Domain),
	}
	if s.typer != nil {
		rec.EvidenceType, rec.QualityRank = s.typer(cand.Text)
	}
	return rec
}
