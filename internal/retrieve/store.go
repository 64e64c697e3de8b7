package retrieve

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"triangulate/internal/model"
)

// Chunk is one stored text segment from a crawled page
type Chunk struct {
	ChunkID    string `json:"chunk_id"`
	PersonName string `json:"person_name"`
	SourceURL  string `json:"source_url"`
	ChunkIndex int    `json:"chunk_index"`
	Text       string `json:"text"`
}

// EmbeddedChunk pairs a chunk id with its embedding vector.
// The text itself lives in the chunk store; embedded records stay small
// so the whole JSONL file can be held in memory.
type EmbeddedChunk struct {
	ChunkID    string    `json:"chunk_id"`
	PersonName string    `json:"person_name"`
	SourceURL  string    `json:"source_url"`
	Embedding  []float32 `json:"embedding"`
}

// Store holds the chunk corpus and its embeddings, indexed for retrieval
type Store struct {
	chunks   map[string]Chunk
	byPerson map[string][]EmbeddedChunk
}

// LoadStore reads the chunk corpus (a JSON array) and the embedded
// records (JSONL, one object per line). Embedded records whose chunk id
// is absent from the corpus are kept; retrieval surfaces them with empty
// text so the scan budget still accounts for them.
func LoadStore(chunksPath, embeddedPath string) (*Store, error) {
	s := &Store{
		chunks:   make(map[string]Chunk),
		byPerson: make(map[string][]EmbeddedChunk),
	}

	raw, err := os.ReadFile(chunksPath)
	if err != nil {
		return nil, fmt.Errorf("reading chunk corpus: %w", err)
	}
	var chunks []Chunk
	if err := json.Unmarshal(raw, &chunks); err != nil {
		return nil, fmt.Errorf("parsing chunk corpus %s: %w", chunksPath, err)
	}
	for _, c := range chunks {
		s.chunks[c.ChunkID] = c
	}

	f, err := os.Open(embeddedPath)
	if err != nil {
		return nil, fmt.Errorf("opening embedded chunks: %w", err)
	}
	defer f.Close()

	// Later records win: a re-crawl appends fresh embeddings for the
	// same chunk ids and the stale ones are dropped here.
	seen := make(map[string]int)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Bytes()
		if len(text) == 0 {
			continue
		}
		var rec EmbeddedChunk
		if err := json.Unmarshal(text, &rec); err != nil {
			return nil, fmt.Errorf("parsing embedded chunk at line %d: %w", line, err)
		}
		if idx, dup := seen[rec.ChunkID]; dup {
			s.byPerson[rec.PersonName][idx] = rec
			continue
		}
		s.byPerson[rec.PersonName] = append(s.byPerson[rec.PersonName], rec)
		seen[rec.ChunkID] = len(s.byPerson[rec.PersonName]) - 1
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading embedded chunks: %w", err)
	}

	return s, nil
}

// Chunk looks up a stored chunk by id
func (s *Store) Chunk(id string) (Chunk, bool) {
	c, ok := s.chunks[id]
	return c, ok
}

// EmbeddedFor returns the embedded records for one person, in file order
func (s *Store) EmbeddedFor(personName string) []EmbeddedChunk {
	return s.byPerson[personName]
}

// Persons lists every person with at least one embedded chunk, sorted
func (s *Store) Persons() []string {
	names := make([]string, 0, len(s.byPerson))
	for name := range s.byPerson {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports the number of stored chunks
func (s *Store) Len() int { return len(s.chunks) }

// candidateFromChunk builds an unranked candidate for a stored chunk.
// Missing chunks yield a candidate with empty text.
func (s *Store) candidateFromChunk(rec EmbeddedChunk, domain string, sim float64) model.EvidenceCandidate {
	cand := model.EvidenceCandidate{
		ChunkID:    rec.ChunkID,
		PersonName: rec.PersonName,
		Domain:     domain,
		URL:        rec.SourceURL,
		Similarity: sim,
	}
	if c, ok := s.chunks[rec.ChunkID]; ok {
		cand.ChunkIndex = c.ChunkIndex
		cand.Text = c.Text
	}
	return cand
}
