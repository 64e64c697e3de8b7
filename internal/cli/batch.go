package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"triangulate/internal/logging"
	"triangulate/internal/pipeline"
	"triangulate/internal/retrieve"
	"triangulate/internal/worker"
)

var batchWorkers int

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <names file>",
	Short: "Verify many people from a names file in parallel",
	Long: `Batch reads person names from a file (one per line, # comments
and blank lines skipped), verifies each person concurrently, and
appends the attribute records to the JSONL output files.

Example:
  triangulate batch people.txt
  triangulate batch people.txt --workers 8 --provider anthropic`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	registerVerifyFlags(batchCmd)
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 4, "number of concurrent verification workers")
}

func runBatch(cmd *cobra.Command, args []string) error {
	namesFile := args[0]

	cfg, err := buildVerifyConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = batchWorkers

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

	processor := worker.NewBatchProcessor(runner, cfg.Concurrency.Workers)
	results, err := processor.ProcessFile(context.Background(), namesFile)
	if err != nil {
		return err
	}

	var verified, failed int
	for _, res := range results {
		if res.Error != nil {
			failed++
			log.Warn("verification failed",
				zap.String("person", res.PersonName),
				zap.Error(res.Error))
			continue
		}
		if err := writer.Write(res.Report); err != nil {
			return fmt.Errorf("write records for %s: %w", res.PersonName, err)
		}
		verified++
		if verbose {
			printPersonSummary(res.Report)
		}
	}

	fmt.Printf("verified %d of %d people (%d failed), records in %s\n",
		verified, len(results), failed, cfg.Output.Dir)
	log.Info("batch complete",
		zap.String("run_id", runner.RunID()),
		zap.Int("verified", verified),
		zap.Int("failed", failed))
	return nil
}
