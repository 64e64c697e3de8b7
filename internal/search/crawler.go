package search

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"triangulate/internal/cache"
	"triangulate/internal/retrieve"
)

// Crawler builds the evidence corpus for a person: web search, page
// fetching, chunking and embedding.
type Crawler struct {
	serper   *SerperClient
	fetcher  *Fetcher
	chunker  *Chunker
	embedder retrieve.Embedder
	pages    cache.Cache
	embedPar int
	log      *zap.Logger
}

// CrawlResult is the corpus gathered for one person
type CrawlResult struct {
	PersonName string
	Chunks     []retrieve.Chunk
	Embedded   []retrieve.EmbeddedChunk

	// PagesFetched counts successful fetches; PagesSkipped counts search
	// hits dropped by robots.txt, fetch errors or empty pages
	PagesFetched int
	PagesSkipped int
}

// NewCrawler assembles a crawler. The page cache may be nil.
func NewCrawler(serper *SerperClient, fetcher *Fetcher, chunker *Chunker, embedder retrieve.Embedder, pages cache.Cache, embedParallelism int, log *zap.Logger) *Crawler {
	if log == nil {
		log = zap.NewNop()
	}
	if embedParallelism <= 0 {
		embedParallelism = 4
	}
	return &Crawler{
		serper:   serper,
		fetcher:  fetcher,
		chunker:  chunker,
		embedder: embedder,
		pages:    pages,
		embedPar: embedParallelism,
		log:      log,
	}
}

// Crawl searches for a person, fetches the result pages and returns
// chunked, embedded text. Individual page failures are logged and
// skipped; the crawl fails only when search or embedding fails.
func (c *Crawler) Crawl(ctx context.Context, personName string) (*CrawlResult, error) {
	results, err := c.serper.Search(ctx, personName)
	if err != nil {
		return nil, fmt.Errorf("search for %s: %w", personName, err)
	}

	res := &CrawlResult{PersonName: personName}
	for _, hit := range results {
		text, err := c.pageText(ctx, hit.Link)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			c.log.Warn("skipping page",
				zap.String("url", hit.Link),
				zap.Error(err))
			res.PagesSkipped++
			continue
		}
		chunks := c.chunker.Chunk(personName, hit.Link, text)
		if len(chunks) == 0 {
			res.PagesSkipped++
			continue
		}
		res.PagesFetched++
		res.Chunks = append(res.Chunks, chunks...)
	}

	if len(res.Chunks) == 0 {
		c.log.Info("no usable pages", zap.String("person", personName))
		return res, nil
	}

	embedded, err := c.embedChunks(ctx, res.Chunks)
	if err != nil {
		return nil, err
	}
	res.Embedded = embedded

	c.log.Info("crawl complete",
		zap.String("person", personName),
		zap.Int("pages", res.PagesFetched),
		zap.Int("chunks", len(res.Chunks)))
	return res, nil
}

// pageText fetches a page, consulting the cache first, and extracts its
// visible text.
func (c *Crawler) pageText(ctx context.Context, rawURL string) (string, error) {
	key := cache.CacheKey(rawURL)
	if c.pages != nil {
		if cached, ok := c.pages.Get(key); ok {
			return string(cached), nil
		}
	}

	page, err := c.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return "", err
	}
	text, err := VisibleText(page.HTML)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	if text == "" {
		return "", fmt.Errorf("empty page")
	}

	if c.pages != nil {
		if err := c.pages.Set(key, []byte(text), 0); err != nil {
			c.log.Debug("cache write failed", zap.String("url", rawURL), zap.Error(err))
		}
	}
	return text, nil
}

// embedChunks embeds chunks concurrently, preserving chunk order
func (c *Crawler) embedChunks(ctx context.Context, chunks []retrieve.Chunk) ([]retrieve.EmbeddedChunk, error) {
	embedded := make([]retrieve.EmbeddedChunk, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.embedPar)
	for i, chunk := range chunks {
		g.Go(func() error {
			vec, err := c.embedder.Embed(gctx, chunk.Text)
			if err != nil {
				return fmt.Errorf("embedding chunk %s: %w", chunk.ChunkID, err)
			}
			embedded[i] = retrieve.EmbeddedChunk{
				ChunkID:    chunk.ChunkID,
				PersonName: chunk.PersonName,
				SourceURL:  chunk.SourceURL,
				Embedding:  vec,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return embedded, nil
}
