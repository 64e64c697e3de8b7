package model

// EvidenceType tags the textual shape of a supporting chunk.
// The vocabulary is attribute-specific (see internal/evidence); each tag
// maps to a quality rank used only to break count ties.
type EvidenceType string

const (
	// Birth-year vocabulary
	EvidenceBornField     EvidenceType = "born-field"
	EvidenceBornNarrative EvidenceType = "born-narrative"
	EvidenceCategory      EvidenceType = "category"

	// Death vocabulary
	EvidenceObituary       EvidenceType = "obituary"
	EvidenceDeathNarrative EvidenceType = "death-narrative"
	EvidenceAliveCurrent   EvidenceType = "alive-current"

	// Shared fallback
	EvidenceOther EvidenceType = "other"
)

// AuthorityBucket is a coarse classification of the source domain,
// carried on evidence records for audit. It never affects counting.
type AuthorityBucket string

const (
	BucketWiki  AuthorityBucket = "wiki"
	BucketGov   AuthorityBucket = "gov"
	BucketEdu   AuthorityBucket = "edu"
	BucketOrg   AuthorityBucket = "org"
	BucketNews  AuthorityBucket = "news"
	BucketBlog  AuthorityBucket = "blog"
	BucketOther AuthorityBucket = "other"
)

// EvidenceRecord is attached to a ledger entry when a claim is accepted
// as support for a value. Repeat domains are kept in the source list for
// audit but counted once toward independence.
type EvidenceRecord struct {
	URL          string          `json:"url"`
	ChunkIndex   int             `json:"chunk_index"`
	Domain       string          `json:"domain"`
	EvidenceType EvidenceType    `json:"evidence_type,omitempty"`
	QualityRank  int             `json:"quality_rank,omitempty"`
	Authority    AuthorityBucket `json:"authority,omitempty"`
}
