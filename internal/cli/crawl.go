package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"triangulate/internal/cache"
	"triangulate/internal/logging"
	"triangulate/internal/model"
	"triangulate/internal/retrieve"
	"triangulate/internal/search"
	"triangulate/internal/worker"
)

var (
	crawlNamesFile    string
	crawlNumResults   int
	crawlChunkWords   int
	crawlOverlapWords int
	crawlRate         float64
	crawlBurst        int
	crawlUserAgent    string
	crawlTimeout      time.Duration
	crawlMaxBytes     int64
	crawlInsecure     bool
	crawlNoCache      bool
	crawlChunksPath   string
	crawlEmbeddedPath string
)

// crawlCmd represents the crawl command
var crawlCmd = &cobra.Command{
	Use:   "crawl [person name]",
	Short: "Build the evidence corpus for a person via web search",
	Long: `Crawl searches the web for pages about a person, fetches the
results respecting robots.txt and a crawl rate limit, splits the
visible text into overlapping word-window chunks, embeds each chunk,
and merges everything into the chunk corpus.

Re-crawling a person replaces that person's stale chunks: chunk IDs
are derived from the source URL, so fresher page content wins.

Example:
  triangulate crawl "Anand Panyarachun"
  triangulate crawl --file people.txt --num-results 10
  triangulate crawl "Ada Lovelace" --embed-provider gemini`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCrawl,
}

func init() {
	rootCmd.AddCommand(crawlCmd)

	crawlCmd.Flags().StringVar(&crawlNamesFile, "file", "", "crawl every person named in this file instead of a single argument")
	crawlCmd.Flags().IntVar(&crawlNumResults, "num-results", 8, "search results fetched per person")
	crawlCmd.Flags().IntVar(&crawlChunkWords, "chunk-words", 300, "words per chunk")
	crawlCmd.Flags().IntVar(&crawlOverlapWords, "overlap-words", 40, "words of overlap between consecutive chunks")
	crawlCmd.Flags().Float64Var(&crawlRate, "rate", 1, "crawl requests per second")
	crawlCmd.Flags().IntVar(&crawlBurst, "burst", 3, "crawl rate-limiter burst size")
	crawlCmd.Flags().StringVar(&crawlUserAgent, "ua", "", "User-Agent header (default from config)")
	crawlCmd.Flags().DurationVar(&crawlTimeout, "timeout", 30*time.Second, "per-page fetch timeout")
	crawlCmd.Flags().Int64Var(&crawlMaxBytes, "max-bytes", 2_000_000, "maximum bytes read per page")
	crawlCmd.Flags().BoolVar(&crawlInsecure, "insecure", false, "skip TLS certificate verification")
	crawlCmd.Flags().BoolVar(&crawlNoCache, "no-cache", false, "disable the page/embedding cache")
	crawlCmd.Flags().StringVar(&crawlChunksPath, "chunks", "data/chunks.json", "chunk corpus path (JSON array)")
	crawlCmd.Flags().StringVar(&crawlEmbeddedPath, "embedded", "data/chunks_embedded.jsonl", "embedded chunks path (JSONL)")

	crawlCmd.Flags().StringVar(&embedProvider, "embed-provider", "openai", "embedding provider (openai, gemini)")
	crawlCmd.Flags().StringVar(&embedModel, "embed-model", "", "embedding model (provider default when empty)")
}

// buildCrawlConfig assembles the crawl config from defaults and flags
func buildCrawlConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	cfg.Search.NumResults = crawlNumResults
	cfg.Search.ChunkWords = crawlChunkWords
	cfg.Search.OverlapWords = crawlOverlapWords
	cfg.Search.RatePerSec = crawlRate
	cfg.Search.Burst = crawlBurst
	cfg.HTTP.Timeout = crawlTimeout
	cfg.HTTP.MaxBodyBytes = crawlMaxBytes
	cfg.HTTP.InsecureTLS = crawlInsecure
	if crawlUserAgent != "" {
		cfg.HTTP.UserAgent = crawlUserAgent
	}
	if crawlNoCache {
		cfg.Cache.Enabled = false
	}
	cfg.Embedding.Provider = embedProvider
	cfg.Embedding.Model = embedModel

	switch cfg.Embedding.Provider {
	case "openai":
		cfg.Embedding.APIKey = os.Getenv("OPENAI_API_KEY")
	case "gemini", "google":
		cfg.Embedding.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.Embedding.APIKey == "" {
		return nil, fmt.Errorf("no API key in environment for embedding provider %q", cfg.Embedding.Provider)
	}

	return cfg, nil
}

func runCrawl(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && crawlNamesFile == "" {
		return fmt.Errorf("provide a person name or --file")
	}

	serperKey := os.Getenv("SERPER_API_KEY")
	if serperKey == "" {
		return fmt.Errorf("SERPER_API_KEY environment variable not set")
	}

	cfg, err := buildCrawlConfig()
	if err != nil {
		return err
	}

	log, err := logging.New(verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	names := args
	if crawlNamesFile != "" {
		names, err = worker.ReadNamesFromFile(crawlNamesFile)
		if err != nil {
			return err
		}
	}

	embedder, err := retrieve.NewEmbedder(cfg.Embedding)
	if err != nil {
		return err
	}
	if cfg.Cache.Enabled {
		embedder = retrieve.NewCachedEmbedder(embedder, cfg.Cache.MemoryTTL)
	}

	serper := search.NewSerperClient(serperKey, cfg.Search.Endpoint, cfg.Search.NumResults)
	limiter := worker.NewLimiter(cfg.Search.RatePerSec, cfg.Search.Burst)
	fetcher := search.NewFetcher(cfg.HTTP, limiter)
	chunker := search.NewChunker(cfg.Search.ChunkWords, cfg.Search.OverlapWords)
	pages := cache.FromConfig(cfg.Cache)
	crawler := search.NewCrawler(serper, fetcher, chunker, embedder, pages, cfg.Concurrency.Workers, log)

	ctx := context.Background()
	var totalChunks int
	for _, name := range names {
		result, err := crawler.Crawl(ctx, name)
		if err != nil {
			return fmt.Errorf("crawl %s: %w", name, err)
		}
		if err := retrieve.MergeChunks(crawlChunksPath, result.Chunks); err != nil {
			return fmt.Errorf("merge chunks: %w", err)
		}
		if err := retrieve.AppendEmbedded(crawlEmbeddedPath, result.Embedded); err != nil {
			return fmt.Errorf("append embedded chunks: %w", err)
		}
		totalChunks += len(result.Chunks)
		fmt.Printf("%s: %d pages fetched, %d skipped, %d chunks\n",
			name, result.PagesFetched, result.PagesSkipped, len(result.Chunks))
		log.Info("crawl complete",
			zap.String("person", name),
			zap.Int("pages_fetched", result.PagesFetched),
			zap.Int("pages_skipped", result.PagesSkipped),
			zap.Int("chunks", len(result.Chunks)))
	}

	fmt.Printf("corpus updated: %d chunks in %s\n", totalChunks, crawlChunksPath)
	return nil
}
