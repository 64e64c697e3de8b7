package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"triangulate/internal/llm"
	"triangulate/internal/model"
	"triangulate/internal/retrieve"
	"triangulate/internal/verify"
)

// Runner orchestrates one person's verification: embedding retrieval per
// attribute, then the corroboration scan over the retrieved candidates.
type Runner struct {
	retriever   *retrieve.Retriever
	birth       *verify.BirthVerifier
	death       *verify.DeathVerifier
	nationality *verify.NationalityVerifier
	education   *verify.EducationCollector
	runID       string
	log         *zap.Logger
}

// NewRunner wires the full pipeline from configuration and a loaded
// chunk store.
func NewRunner(cfg *model.Config, store *retrieve.Store, log *zap.Logger) (*Runner, error) {
	if log == nil {
		log = zap.NewNop()
	}

	embedder, err := retrieve.NewEmbedder(cfg.Embedding)
	if err != nil {
		return nil, fmt.Errorf("embedder: %w", err)
	}
	cached := retrieve.NewCachedEmbedder(embedder, cfg.Cache.MemoryTTL)
	retriever := retrieve.NewRetriever(store, cached, cfg.Retrieval, log)

	provider, err := llm.NewProvider(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("llm provider: %w", err)
	}

	return &Runner{
		retriever:   retriever,
		birth:       verify.NewBirthVerifier(llm.NewBirthExtractor(provider, cfg.LLM), cfg.Verify, log),
		death:       verify.NewDeathVerifier(llm.NewDeathExtractor(provider, cfg.LLM), cfg.Verify, log),
		nationality: verify.NewNationalityVerifier(llm.NewNationalityExtractor(provider, cfg.LLM), cfg.Verify, log),
		education:   verify.NewEducationCollector(llm.NewEducationExtractor(provider, cfg.LLM), cfg.Verify, log),
		runID:       uuid.NewString(),
		log:         log,
	}, nil
}

// RunID identifies this runner's output batch
func (r *Runner) RunID() string { return r.runID }

// VerifyPerson runs every attribute for one person: the three
// corroborated verifications plus the education collection pass.
// A retrieval failure for one attribute degrades that record, carrying
// the error, while the other attributes still run. The method fails only
// on context cancellation.
func (r *Runner) VerifyPerson(ctx context.Context, personName string) (*model.PersonReport, error) {
	report := &model.PersonReport{
		PersonName: personName,
		RunID:      r.runID,
	}

	report.Birth = r.verifyBirth(ctx, personName)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	report.Death = r.verifyDeath(ctx, personName)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	report.Nationality = r.verifyNationality(ctx, personName)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	report.Education = r.collectEducation(ctx, personName)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	r.log.Info("person verified",
		zap.String("person", personName),
		zap.String("birth", string(report.Birth.Outcome)),
		zap.String("death", string(report.Death.Outcome)),
		zap.String("nationality", string(report.Nationality.Outcome)),
		zap.Int("education_events", len(report.Education.Events)))
	return report, nil
}

func (r *Runner) verifyBirth(ctx context.Context, personName string) *model.BirthRecord {
	candidates, err := r.retriever.Retrieve(ctx, personName, retrieve.BirthQuery(personName))
	if err != nil {
		r.log.Error("birth retrieval failed",
			zap.String("person", personName),
			zap.Error(err))
		return &model.BirthRecord{
			PersonName:    personName,
			Outcome:       model.OutcomeNoEvidence,
			WinnerSources: []model.EvidenceRecord{},
			RunnerUpYears: []model.RunnerUp{},
			Error:         err.Error(),
		}
	}
	return r.birth.Verify(ctx, personName, candidates)
}

func (r *Runner) verifyDeath(ctx context.Context, personName string) *model.DeathRecord {
	candidates, err := r.retriever.Retrieve(ctx, personName, retrieve.DeathQuery(personName))
	if err != nil {
		r.log.Error("death retrieval failed",
			zap.String("person", personName),
			zap.Error(err))
		return &model.DeathRecord{
			PersonName:       personName,
			Status:           model.StatusUnknown,
			Outcome:          model.OutcomeNoEvidence,
			DeathYearSources: []model.EvidenceRecord{},
			AliveSignals:     []model.EvidenceRecord{},
			Error:            err.Error(),
		}
	}
	return r.death.Verify(ctx, personName, candidates)
}

func (r *Runner) verifyNationality(ctx context.Context, personName string) *model.NationalityRecord {
	candidates, err := r.retriever.Retrieve(ctx, personName, retrieve.NationalityQuery(personName))
	if err != nil {
		r.log.Error("nationality retrieval failed",
			zap.String("person", personName),
			zap.Error(err))
		return &model.NationalityRecord{
			PersonName:    personName,
			Nationalities: []string{},
			Unverified:    []string{},
			Outcome:       model.OutcomeNoEvidence,
			Error:         err.Error(),
		}
	}
	return r.nationality.Verify(ctx, personName, candidates)
}

func (r *Runner) collectEducation(ctx context.Context, personName string) *model.EducationRecord {
	candidates, err := r.retriever.Retrieve(ctx, personName, retrieve.EducationQuery(personName))
	if err != nil {
		r.log.Error("education retrieval failed",
			zap.String("person", personName),
			zap.Error(err))
		return &model.EducationRecord{
			PersonName:  personName,
			Events:      []model.EducationEvent{},
			RawMentions: []string{},
			Sources:     []model.EducationSource{},
			Error:       err.Error(),
		}
	}
	return r.education.Collect(ctx, personName, candidates)
}
