package model

// EvidenceCandidate is one retrieved chunk, ready for scanning.
// Candidates arrive rank-ordered from the retriever and are immutable;
// the engine consumes at most max_scans of them from the front.
type EvidenceCandidate struct {
	ChunkID    string  `json:"chunk_id"`
	PersonName string  `json:"person_name"`
	Domain     string  `json:"domain"` // normalized, the independence key
	URL        string  `json:"source_url"`
	ChunkIndex int     `json:"chunk_index"`
	Rank       int     `json:"rank"` // 0-based retrieval order
	Similarity float64 `json:"similarity,omitempty"`
	Text       string  `json:"text,omitempty"` // empty when the chunk is missing from the store
}
