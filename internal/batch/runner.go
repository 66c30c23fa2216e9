// Package batch runs the ingestion pipeline over a whole directory of
// receipts and sorts every file into one of four outcome buckets.
package batch

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"hsaledger/internal/extraction"
	"hsaledger/internal/fileutils"
	"hsaledger/internal/ingest"
	"hsaledger/internal/ingesterror"
	"hsaledger/internal/logging"
)

// Options controls what happens to originals after a receipt is
// recorded. ProcessedDir wins over DeleteAfter; with neither set the
// originals stay where they are.
type Options struct {
	ProcessedDir string
	DeleteAfter  bool
	DryRun       bool
}

// FileError pairs a receipt file with the error that stopped it.
type FileError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// Summary reports one batch run. The buckets classify every examined
// file: recorded receipts (or, on a dry run, receipts that would be)
// land in Processed with their full outcome, duplicates and incomplete
// extractions are listed by path, and failures carry their error. A
// failed move or delete of an already-recorded original is appended to
// Errors without removing the receipt from Processed.
type Summary struct {
	RunID       string            `json:"run_id"`
	Directory   string            `json:"directory"`
	DryRun      bool              `json:"dry_run,omitempty"`
	Processed   []*ingest.Outcome `json:"processed"`
	Duplicates  []string          `json:"duplicates"`
	Skipped     []string          `json:"skipped"`
	Errors      []FileError       `json:"errors"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
}

// TotalFiles returns how many receipt files the run examined.
func (s *Summary) TotalFiles() int {
	return len(s.Processed) + len(s.Duplicates) + len(s.Skipped) + len(s.Errors)
}

// HasErrors reports whether any receipt failed, the condition batch
// exit codes communicate.
func (s *Summary) HasErrors() bool {
	return len(s.Errors) > 0
}

// Runner applies the ingestion pipeline to directories of receipts.
type Runner struct {
	orchestrator *ingest.Orchestrator
	logger       logging.Logger
}

// NewRunner creates a batch Runner.
func NewRunner(orchestrator *ingest.Orchestrator, logger logging.Logger) *Runner {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Runner{
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// Run ingests every supported receipt file directly inside incomingDir,
// in lexicographic filename order, and returns the summary. One
// receipt's failure never stops the run; only a missing or unreadable
// directory is an error.
func (r *Runner) Run(ctx context.Context, incomingDir string, opts Options) (*Summary, error) {
	files, err := fileutils.ListFilesWithExtensions(incomingDir, extraction.SupportedExtensions())
	if err != nil {
		return nil, &ingesterror.InputError{Path: incomingDir, Reason: err.Error()}
	}

	summary := &Summary{
		RunID:       uuid.New().String(),
		Directory:   incomingDir,
		DryRun:      opts.DryRun,
		Processed:   []*ingest.Outcome{},
		Duplicates:  []string{},
		Skipped:     []string{},
		Errors:      []FileError{},
		TotalAmount: decimal.Zero,
	}

	r.logger.WithFields(
		logging.Field{Key: logging.FieldRunID, Value: summary.RunID},
		logging.Field{Key: logging.FieldDirectory, Value: incomingDir},
		logging.Field{Key: logging.FieldCount, Value: len(files)},
		logging.Field{Key: logging.FieldDryRun, Value: opts.DryRun},
	).Info("Starting batch run")

	if opts.ProcessedDir != "" && !opts.DryRun {
		if err := fileutils.EnsureDirectoryExists(opts.ProcessedDir); err != nil {
			return nil, &ingesterror.PersistenceError{Op: "create processed directory", Path: opts.ProcessedDir, Err: err}
		}
	}

	for _, file := range files {
		outcome, err := r.orchestrator.Process(ctx, file, opts.DryRun)
		if err != nil {
			summary.Errors = append(summary.Errors, FileError{File: file, Error: err.Error()})
			r.logger.WithError(err).WithField(logging.FieldFile, file).Error("Receipt failed")
			continue
		}

		switch outcome.Status {
		case ingest.StatusDuplicate:
			summary.Duplicates = append(summary.Duplicates, file)
		case ingest.StatusIncomplete:
			summary.Skipped = append(summary.Skipped, file)
		default:
			summary.Processed = append(summary.Processed, outcome)
			if outcome.Record != nil {
				if amount, err := outcome.Record.AmountValue(); err == nil {
					summary.TotalAmount = summary.TotalAmount.Add(amount)
				}
			}
			if !opts.DryRun {
				if err := r.finishOriginal(file, opts); err != nil {
					summary.Errors = append(summary.Errors, FileError{File: file, Error: err.Error()})
					r.logger.WithError(err).WithField(logging.FieldFile, file).Warn("Recorded receipt but could not relocate the original")
				}
			}
		}
	}

	r.logger.WithFields(
		logging.Field{Key: logging.FieldRunID, Value: summary.RunID},
		logging.Field{Key: "processed", Value: len(summary.Processed)},
		logging.Field{Key: "duplicates", Value: len(summary.Duplicates)},
		logging.Field{Key: "skipped", Value: len(summary.Skipped)},
		logging.Field{Key: "errors", Value: len(summary.Errors)},
	).Info("Batch run complete")

	return summary, nil
}

// finishOriginal moves or deletes a recorded receipt's original
// according to the options.
func (r *Runner) finishOriginal(file string, opts Options) error {
	switch {
	case opts.ProcessedDir != "":
		dest := filepath.Join(opts.ProcessedDir, filepath.Base(file))
		if err := os.Rename(file, dest); err != nil {
			return &ingesterror.PersistenceError{Op: "move original", Path: file, Err: err}
		}
		r.logger.WithFields(
			logging.Field{Key: logging.FieldFile, Value: file},
			logging.Field{Key: logging.FieldDirectory, Value: opts.ProcessedDir},
		).Debug("Moved original to processed directory")
	case opts.DeleteAfter:
		if err := os.Remove(file); err != nil {
			return &ingesterror.PersistenceError{Op: "delete original", Path: file, Err: err}
		}
		r.logger.WithField(logging.FieldFile, file).Debug("Deleted original")
	}
	return nil
}
