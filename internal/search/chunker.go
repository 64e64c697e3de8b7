package search

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"triangulate/internal/retrieve"
)

// Chunker splits page text into overlapping word-window chunks
type Chunker struct {
	chunkWords   int
	overlapWords int
}

// NewChunker creates a chunker. Overlap must be smaller than the window.
func NewChunker(chunkWords, overlapWords int) *Chunker {
	if chunkWords <= 0 {
		chunkWords = 300
	}
	if overlapWords < 0 || overlapWords >= chunkWords {
		overlapWords = chunkWords / 8
	}
	return &Chunker{chunkWords: chunkWords, overlapWords: overlapWords}
}

// Chunk splits text into chunks for one person and source URL. Chunk ids
// are stable for a given URL so re-crawls overwrite rather than duplicate.
func (c *Chunker) Chunk(personName, sourceURL, text string) []retrieve.Chunk {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	srcID := sourceID(sourceURL)
	step := c.chunkWords - c.overlapWords

	var chunks []retrieve.Chunk
	for start, idx := 0, 0; start < len(words); start, idx = start+step, idx+1 {
		end := start + c.chunkWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, retrieve.Chunk{
			ChunkID:    fmt.Sprintf("src%s_ch%d", srcID, idx),
			PersonName: personName,
			SourceURL:  sourceURL,
			ChunkIndex: idx,
			Text:       strings.Join(words[start:end], " "),
		})
		if end == len(words) {
			break
		}
	}
	return chunks
}

func sourceID(sourceURL string) string {
	sum := sha256.Sum256([]byte(sourceURL))
	return hex.EncodeToString(sum[:4])
}
