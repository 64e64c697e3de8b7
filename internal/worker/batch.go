package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"triangulate/internal/model"
)

// Verifier runs the full verification pipeline for one person
type Verifier interface {
	VerifyPerson(ctx context.Context, personName string) (*model.PersonReport, error)
}

// VerifyJob verifies one person
type VerifyJob struct {
	PersonName string
	Verifier   Verifier
}

// Execute runs the verification job
func (j *VerifyJob) Execute(ctx context.Context) Result {
	report, err := j.Verifier.VerifyPerson(ctx, j.PersonName)
	return &VerifyResult{
		PersonName: j.PersonName,
		Report:     report,
		Error:      err,
	}
}

// VerifyResult is the result of one person verification job
type VerifyResult struct {
	PersonName string
	Report     *model.PersonReport
	Error      error
}

// GetError returns the error from the verification result
func (r *VerifyResult) GetError() error {
	return r.Error
}

// BatchProcessor verifies multiple persons concurrently
type BatchProcessor struct {
	verifier    Verifier
	concurrency int
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(verifier Verifier, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		verifier:    verifier,
		concurrency: concurrency,
	}
}

// ProcessPersons verifies the given persons concurrently. Results come
// back in completion order, one per input name.
func (b *BatchProcessor) ProcessPersons(ctx context.Context, names []string) []*VerifyResult {
	if len(names) == 0 {
		return []*VerifyResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, name := range names {
		pool.Submit(&VerifyJob{
			PersonName: name,
			Verifier:   b.verifier,
		})
	}

	results := pool.Wait()

	verifyResults := make([]*VerifyResult, len(results))
	for i, result := range results {
		verifyResults[i] = result.(*VerifyResult)
	}
	return verifyResults
}

// ProcessFile reads person names from a file and verifies them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*VerifyResult, error) {
	names, err := ReadNamesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read names: %w", err)
	}
	return b.ProcessPersons(ctx, names), nil
}

// ReadNamesFromFile reads person names from a file, one per line.
// Blank lines and #-comments are skipped; duplicates are dropped.
func ReadNamesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var names []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			names = append(names, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return names, nil
}
