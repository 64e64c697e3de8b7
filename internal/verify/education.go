package verify

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"triangulate/internal/model"
)

// EducationExtractor is the two-stage education boundary: per-chunk
// mention extraction, then one structuring pass over everything found.
type EducationExtractor interface {
	ExtractMentions(ctx context.Context, personName, chunkText string) (bool, []string, error)
	StructureEvents(ctx context.Context, personName string, mentions []string) ([]model.EducationEvent, error)
}

// EducationCollector gathers education mentions across the scanned
// candidates. Unlike the corroborated attributes there is no ledger and
// no quorum: every mention is kept with its source and the stage-2 call
// merges them into events. The scan budget still applies.
type EducationCollector struct {
	extractor EducationExtractor
	maxScans  int
	log       *zap.Logger
}

// NewEducationCollector wires a collector around an extractor
func NewEducationCollector(ex EducationExtractor, cfg model.VerifyConfig, log *zap.Logger) *EducationCollector {
	if log == nil {
		log = zap.NewNop()
	}
	return &EducationCollector{
		extractor: ex,
		maxScans:  cfg.MaxScans,
		log:       log,
	}
}

// Collect scans at most maxScans candidates for education mentions and
// structures whatever was found. Extractor failures on single chunks are
// absorbed; a structuring failure is reported on the record with the raw
// mentions preserved.
func (c *EducationCollector) Collect(ctx context.Context, person string, candidates []model.EvidenceCandidate) *model.EducationRecord {
	rec := &model.EducationRecord{
		PersonName:  person,
		Events:      []model.EducationEvent{},
		RawMentions: []string{},
		Sources:     []model.EducationSource{},
	}

	for _, cand := range candidates {
		if ctx.Err() != nil {
			break
		}
		if rec.Scanned >= c.maxScans {
			break
		}
		rec.Scanned++

		if strings.TrimSpace(cand.Text) == "" {
			c.log.Warn("chunk text missing, skipped",
				zap.String("person", person),
				zap.String("chunk_id", cand.ChunkID),
				zap.String("domain", cand.Domain))
			continue
		}

		found, mentions, err := c.extractor.ExtractMentions(ctx, person, cand.Text)
		if err != nil {
			c.log.Warn("education extraction failed, chunk skipped",
				zap.String("person", person),
				zap.String("domain", cand.Domain),
				zap.Error(err))
			continue
		}
		if !found {
			continue
		}

		for _, m := range mentions {
			rec.RawMentions = append(rec.RawMentions, m)
			rec.Sources = append(rec.Sources, model.EducationSource{
				URL:        cand.URL,
				ChunkIndex: cand.ChunkIndex,
				Domain:     cand.Domain,
				Mention:    m,
			})
		}
	}

	if len(rec.RawMentions) == 0 {
		return rec
	}

	events, err := c.extractor.StructureEvents(ctx, person, rec.RawMentions)
	if err != nil {
		c.log.Error("education structuring failed",
			zap.String("person", person),
			zap.Int("mentions", len(rec.RawMentions)),
			zap.Error(err))
		rec.Error = err.Error()
		return rec
	}
	if events != nil {
		rec.Events = events
	}

	c.log.Debug("education collected",
		zap.String("person", person),
		zap.Int("scanned", rec.Scanned),
		zap.Int("mentions", len(rec.RawMentions)),
		zap.Int("events", len(rec.Events)))
	return rec
}
