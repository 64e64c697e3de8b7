package retrieve

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// MergeChunks folds new chunks into the corpus file, replacing existing
// entries with the same chunk id. The file is created when absent.
func MergeChunks(chunksPath string, chunks []Chunk) error {
	existing := make([]Chunk, 0)
	if raw, err := os.ReadFile(chunksPath); err == nil {
		if err := json.Unmarshal(raw, &existing); err != nil {
			return fmt.Errorf("parsing existing corpus %s: %w", chunksPath, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("reading corpus: %w", err)
	}

	incoming := make(map[string]bool, len(chunks))
	for _, c := range chunks {
		incoming[c.ChunkID] = true
	}
	merged := make([]Chunk, 0, len(existing)+len(chunks))
	for _, c := range existing {
		if !incoming[c.ChunkID] {
			merged = append(merged, c)
		}
	}
	merged = append(merged, chunks...)

	if err := os.MkdirAll(filepath.Dir(chunksPath), 0755); err != nil {
		return fmt.Errorf("create corpus dir: %w", err)
	}
	raw, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal corpus: %w", err)
	}

	// Write through a temp file so a crash cannot truncate the corpus
	tmp := chunksPath + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return fmt.Errorf("write corpus: %w", err)
	}
	return os.Rename(tmp, chunksPath)
}

// AppendEmbedded appends embedded records to the JSONL file
func AppendEmbedded(embeddedPath string, records []EmbeddedChunk) error {
	if len(records) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(embeddedPath), 0755); err != nil {
		return fmt.Errorf("create embedded dir: %w", err)
	}
	f, err := os.OpenFile(embeddedPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open embedded file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("append embedded record %s: %w", rec.ChunkID, err)
		}
	}
	return nil
}
