package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"triangulate/internal/aggregate"
)

var (
	aggregateDir  string
	aggregateData string
	aggregateSrcs string
)

// aggregateCmd represents the aggregate command
var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Join per-attribute verification records into one dataset",
	Long: `Aggregate joins the birth, death, nationality, and education
JSONL records produced by verify and batch into a single record per
person, plus a parallel provenance file keyed the same way.

When an attribute was verified more than once the most recent record
wins.

Example:
  triangulate aggregate
  triangulate aggregate --dir outputs --data-out joined.jsonl`,
	Args: cobra.NoArgs,
	RunE: runAggregate,
}

func init() {
	rootCmd.AddCommand(aggregateCmd)

	aggregateCmd.Flags().StringVar(&aggregateDir, "dir", "outputs", "directory holding the verification record files")
	aggregateCmd.Flags().StringVar(&aggregateData, "data-out", "", "joined data output path (default outputs/joined_data_<timestamp>.jsonl)")
	aggregateCmd.Flags().StringVar(&aggregateSrcs, "sources-out", "", "joined sources output path (default outputs/joined_sources_<timestamp>.jsonl)")
}

func runAggregate(cmd *cobra.Command, args []string) error {
	dataOut := aggregateData
	sourcesOut := aggregateSrcs
	if dataOut == "" || sourcesOut == "" {
		ts := time.Now().Format("20060102_150405")
		if dataOut == "" {
			dataOut = fmt.Sprintf("%s/joined_data_%s.jsonl", aggregateDir, ts)
		}
		if sourcesOut == "" {
			sourcesOut = fmt.Sprintf("%s/joined_sources_%s.jsonl", aggregateDir, ts)
		}
	}

	count, err := aggregate.New(aggregateDir).Run(dataOut, sourcesOut)
	if err != nil {
		return err
	}

	fmt.Printf("joined %d people\n", count)
	fmt.Printf("  data:    %s\n", dataOut)
	fmt.Printf("  sources: %s\n", sourcesOut)
	return nil
}
