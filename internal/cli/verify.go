package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"triangulate/internal/logging"
	"triangulate/internal/model"
	"triangulate/internal/pipeline"
	"triangulate/internal/retrieve"
)

var (
	chunksPath    string
	embeddedPath  string
	outputDir     string
	topN          int
	minSimilarity float64
	maxScans      int
	quorum        int
	exhaustBudget bool
	llmProvider   string
	llmModel      string
	llmTimeout    int
	embedProvider string
	embedModel    string
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <person name>",
	Short: "Verify one person's biographical facts against the chunk corpus",
	Long: `Verify retrieves the most relevant evidence chunks for a person,
extracts claims from each chunk, and corroborates the claims across
independent source domains.

Birth year, death year / living status, and nationalities are verified
in one run, and education mentions are collected and structured into
events. Each attribute record is appended to its JSONL output file with
full provenance.

Example:
  triangulate verify "Anand Panyarachun"
  triangulate verify "Ada Lovelace" --provider anthropic --max-scans 15
  triangulate verify "Ada Lovelace" --exhaust-budget`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	registerVerifyFlags(verifyCmd)
}

// registerVerifyFlags adds the flags shared by verify and batch
func registerVerifyFlags(cmd *cobra.Command) {
	// Corpus flags
	cmd.Flags().StringVar(&chunksPath, "chunks", "data/chunks.json", "chunk corpus path (JSON array)")
	cmd.Flags().StringVar(&embeddedPath, "embedded", "data/chunks_embedded.jsonl", "embedded chunks path (JSONL)")
	cmd.Flags().StringVar(&outputDir, "out", "outputs", "output directory for verification records")

	// Retrieval flags
	cmd.Flags().IntVar(&topN, "topn", 10, "candidates retrieved per attribute")
	cmd.Flags().Float64Var(&minSimilarity, "min-similarity", 0.2, "similarity floor for retrieved chunks")

	// Corroboration flags
	cmd.Flags().IntVar(&maxScans, "max-scans", 10, "scan budget per attribute")
	cmd.Flags().IntVar(&quorum, "quorum", 2, "independent domains required to verify a value")
	cmd.Flags().BoolVar(&exhaustBudget, "exhaust-budget", false, "disable early stopping and always scan the full budget")

	// LLM flags
	cmd.Flags().StringVar(&llmProvider, "provider", "openai", "claim extraction provider (openai, anthropic, ollama, gemini)")
	cmd.Flags().StringVar(&llmModel, "model", "", "claim extraction model (provider default when empty)")
	cmd.Flags().IntVar(&llmTimeout, "llm-timeout", 30, "per-extraction timeout in seconds")

	// Embedding flags
	cmd.Flags().StringVar(&embedProvider, "embed-provider", "openai", "embedding provider (openai, gemini)")
	cmd.Flags().StringVar(&embedModel, "embed-model", "", "embedding model (provider default when empty)")
}

// buildVerifyConfig assembles the runtime config from defaults and flags
func buildVerifyConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	cfg.Verify.MaxScans = maxScans
	cfg.Verify.Quorum = quorum
	cfg.Verify.ExhaustBudget = exhaustBudget
	cfg.Retrieval.TopN = topN
	cfg.Retrieval.MinSimilarity = minSimilarity
	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel
	cfg.LLM.Timeout = llmTimeout
	cfg.Embedding.Provider = embedProvider
	cfg.Embedding.Model = embedModel
	cfg.Output.Dir = outputDir
	cfg.Output.Verbose = verbose

	// API keys come from the environment
	switch cfg.LLM.Provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "gemini", "google":
		cfg.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

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

func runVerify(cmd *cobra.Command, args []string) error {
	personName := args[0]

	cfg, err := buildVerifyConfig()
	if err != nil {
		return err
	}

	log, err := logging.New(verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	store, err := retrieve.LoadStore(chunksPath, embeddedPath)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}

	runner, err := pipeline.NewRunner(cfg, store, log)
	if err != nil {
		return err
	}
	writer, err := pipeline.NewWriter(cfg.Output.Dir)
	if err != nil {
		return err
	}

	report, err := runner.VerifyPerson(context.Background(), personName)
	if err != nil {
		return fmt.Errorf("verify %s: %w", personName, err)
	}
	if err := writer.Write(report); err != nil {
		return fmt.Errorf("write records: %w", err)
	}

	printPersonSummary(report)
	log.Info("verification written",
		zap.String("person", personName),
		zap.String("dir", cfg.Output.Dir))
	return nil
}

// printPersonSummary prints a one-person console summary
func printPersonSummary(report *model.PersonReport) {
	fmt.Printf("%s\n", report.PersonName)

	if b := report.Birth; b != nil {
		if b.BirthYear != nil {
			fmt.Printf("  birth year:  %d (%s, level %d, scanned %d)\n", *b.BirthYear, b.Outcome, b.Verified, b.Scanned)
		} else {
			fmt.Printf("  birth year:  unknown (%s, scanned %d)\n", b.Outcome, b.Scanned)
		}
	}
	if d := report.Death; d != nil {
		switch {
		case d.DeathYear != nil:
			fmt.Printf("  death year:  %d (%s, level %d, scanned %d)\n", *d.DeathYear, d.Outcome, d.Verified, d.Scanned)
		case d.Status == model.StatusAlive:
			fmt.Printf("  status:      alive (%s, level %d, scanned %d)\n", d.Outcome, d.Verified, d.Scanned)
		default:
			fmt.Printf("  status:      unknown (%s, scanned %d)\n", d.Outcome, d.Scanned)
		}
	}
	if n := report.Nationality; n != nil {
		fmt.Printf("  nationality: %v (%s, unverified %v, scanned %d)\n", n.Nationalities, n.Outcome, n.Unverified, n.Scanned)
	}
	if e := report.Education; e != nil {
		fmt.Printf("  education:   %d event(s) from %d mention(s), scanned %d\n", len(e.Events), len(e.RawMentions), e.Scanned)
	}
}
