package search

import (
	"strings"
	"testing"
)

func TestChunkShortText(t *testing.T) {
	c := NewChunker(300, 40)
	chunks := c.Chunk("Ada Lovelace", "https://example.org/ada", "born in London in 1815")

	if len(chunks) != 1 {
		t.Fatalf("Expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "born in London in 1815" {
		t.Errorf("Unexpected text: %s", chunks[0].Text)
	}
	if chunks[0].PersonName != "Ada Lovelace" {
		t.Errorf("Unexpected person: %s", chunks[0].PersonName)
	}
	if chunks[0].ChunkIndex != 0 {
		t.Errorf("Unexpected index: %d", chunks[0].ChunkIndex)
	}
}

func TestChunkOverlap(t *testing.T) {
	words := make([]string, 25)
	for i := range words {
		words[i] = string(rune('a' + i%26))
	}
	text := strings.Join(words, " ")

	c := NewChunker(10, 2)
	chunks := c.Chunk("P", "https://example.org/p", text)

	// step = 8: windows [0,10) [8,18) [16,25)
	if len(chunks) != 3 {
		t.Fatalf("Expected 3 chunks, got %d", len(chunks))
	}
	first := strings.Fields(chunks[0].Text)
	second := strings.Fields(chunks[1].Text)
	if len(first) != 10 {
		t.Errorf("Expected 10 words in first chunk, got %d", len(first))
	}
	// Last two words of chunk 0 are the first two of chunk 1
	if first[8] != second[0] || first[9] != second[1] {
		t.Error("Chunks do not overlap as configured")
	}
	for i, ch := range chunks {
		if ch.ChunkIndex != i {
			t.Errorf("Chunk %d has index %d", i, ch.ChunkIndex)
		}
	}
}

func TestChunkIDsStablePerURL(t *testing.T) {
	c := NewChunker(300, 40)
	a := c.Chunk("P", "https://example.org/p", "some text here")
	b := c.Chunk("P", "https://example.org/p", "different text entirely")

	if a[0].ChunkID != b[0].ChunkID {
		t.Error("Chunk ids for the same URL and index must be stable across crawls")
	}

	other := c.Chunk("P", "https://example.org/q", "some text here")
	if a[0].ChunkID == other[0].ChunkID {
		t.Error("Different URLs must produce different chunk ids")
	}
}

func TestChunkEmptyText(t *testing.T) {
	c := NewChunker(300, 40)
	if chunks := c.Chunk("P", "https://example.org/p", "   \n  "); chunks != nil {
		t.Errorf("Expected nil for blank text, got %d chunks", len(chunks))
	}
}

func TestChunkerBadOverlapFallsBack(t *testing.T) {
	// Overlap >= window would loop forever; constructor must correct it
	c := NewChunker(10, 10)
	words := strings.Repeat("word ", 30)
	chunks := c.Chunk("P", "https://example.org/p", words)
	if len(chunks) == 0 {
		t.Fatal("Expected chunks despite bad overlap config")
	}
}
