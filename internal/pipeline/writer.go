package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"triangulate/internal/model"
)

// Attribute output files, one JSONL record per person per run
const (
	BirthOutputFile       = "birthfinder_verified.jsonl"
	DeathOutputFile       = "deathfinder_verified.jsonl"
	NationalityOutputFile = "nationalityfinder_verified.jsonl"
	EducationOutputFile   = "educationfinder_results.jsonl"
)

// Writer appends verification records to the per-attribute JSONL files.
// Records are written whole lines under a lock, so concurrent workers
// never interleave partial records.
type Writer struct {
	dir string
	mu  sync.Mutex
}

// NewWriter creates a writer rooted at the output directory
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Writer{dir: dir}, nil
}

// Write appends one person's records to the attribute files
func (w *Writer) Write(report *model.PersonReport) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if report.Birth != nil {
		if err := w.appendLine(BirthOutputFile, report.Birth); err != nil {
			return err
		}
	}
	if report.Death != nil {
		if err := w.appendLine(DeathOutputFile, report.Death); err != nil {
			return err
		}
	}
	if report.Nationality != nil {
		if err := w.appendLine(NationalityOutputFile, report.Nationality); err != nil {
			return err
		}
	}
	if report.Education != nil {
		if err := w.appendLine(EducationOutputFile, report.Education); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) appendLine(file string, record any) error {
	path := filepath.Join(w.dir, file)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open %s: %w", file, err)
	}
	defer f.Close()

	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	line = append(line, '\n')
	if _, err := f.Write(line); err != nil {
		return fmt.Errorf("append to %s: %w", file, err)
	}
	return nil
}
