package retrieve

import (
	"context"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"triangulate/internal/evidence"
	"triangulate/internal/model"
)

// Retriever ranks a person's embedded chunks against an attribute query
// and returns the top candidates, domain-diverse first.
type Retriever struct {
	store    *Store
	embedder Embedder
	topN     int
	minSim   float64
	log      *zap.Logger
}

// NewRetriever builds a retriever over a loaded store
func NewRetriever(store *Store, embedder Embedder, cfg model.RetrievalConfig, log *zap.Logger) *Retriever {
	if log == nil {
		log = zap.NewNop()
	}
	topN := cfg.TopN
	if topN <= 0 {
		topN = 10
	}
	return &Retriever{
		store:    store,
		embedder: embedder,
		topN:     topN,
		minSim:   cfg.MinSimilarity,
		log:      log,
	}
}

// BirthQuery phrases the birth-attribute retrieval query
func BirthQuery(personName string) string {
	return "date of birth or birth information of " + personName
}

// DeathQuery phrases the death-attribute retrieval query
func DeathQuery(personName string) string {
	return "date of death, obituary, or current living status of " + personName
}

// NationalityQuery phrases the nationality-attribute retrieval query
func NationalityQuery(personName string) string {
	return "nationality or citizenship of " + personName
}

// EducationQuery phrases the education-attribute retrieval query
func EducationQuery(personName string) string {
	return "education, university, degree, or academic background of " + personName
}

// Retrieve embeds the query and returns up to topN candidates for the
// person, similarity-filtered and ordered for scanning. The order is the
// scan order downstream, so it is deterministic for a fixed store: ties
// keep the embedded-file order.
func (r *Retriever) Retrieve(ctx context.Context, personName, query string) ([]model.EvidenceCandidate, error) {
	records := r.store.EmbeddedFor(personName)
	if len(records) == 0 {
		return nil, nil
	}

	qEmb, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	scored := make([]model.EvidenceCandidate, 0, len(records))
	for _, rec := range records {
		sim := cosineSimilarity(qEmb, rec.Embedding)
		if sim < r.minSim {
			continue
		}
		domain := evidence.NormalizeDomain(rec.SourceURL)
		scored = append(scored, r.store.candidateFromChunk(rec, domain, sim))
	}
	if len(scored) == 0 {
		r.log.Debug("no chunks above similarity floor",
			zap.String("person", personName),
			zap.Float64("min_similarity", r.minSim))
		return nil, nil
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})

	picked := diverseTopN(scored, r.topN)
	for i := range picked {
		picked[i].Rank = i
	}

	r.log.Debug("retrieved candidates",
		zap.String("person", personName),
		zap.Int("scored", len(scored)),
		zap.Int("picked", len(picked)))
	return picked, nil
}

// diverseTopN picks up to n candidates greedily, preferring unseen
// domains on the first pass and backfilling by similarity on the second.
func diverseTopN(sorted []model.EvidenceCandidate, n int) []model.EvidenceCandidate {
	picked := make([]model.EvidenceCandidate, 0, n)
	taken := make([]bool, len(sorted))
	seen := make(map[string]bool)

	for i, c := range sorted {
		if len(picked) >= n {
			break
		}
		if seen[c.Domain] {
			continue
		}
		picked = append(picked, c)
		taken[i] = true
		seen[c.Domain] = true
	}
	for i, c := range sorted {
		if len(picked) >= n {
			break
		}
		if taken[i] {
			continue
		}
		picked = append(picked, c)
	}
	return picked
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
