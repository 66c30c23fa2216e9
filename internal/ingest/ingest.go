// Package ingest runs a single receipt through the full pipeline:
// extract its fields, screen for duplicates, archive the source file
// and append a row to the ledger.
//
// A receipt moves through the statuses in order and every run ends in a
// terminal one. DUPLICATE and INCOMPLETE are ordinary outcomes with a
// nil error; only broken inputs and failing infrastructure produce
// FAILED plus a typed error from the ingesterror package. Nothing is
// written before the READY stage, so every earlier stop leaves the
// ledger and archive untouched.
package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"hsaledger/internal/archive"
	"hsaledger/internal/categorizer"
	"hsaledger/internal/currencyutils"
	"hsaledger/internal/dateutils"
	"hsaledger/internal/extraction"
	"hsaledger/internal/fileutils"
	"hsaledger/internal/ingesterror"
	"hsaledger/internal/ledger"
	"hsaledger/internal/logging"
	"hsaledger/internal/models"
	"hsaledger/internal/rasterize"
	"hsaledger/internal/receiptid"
)

// Orchestrator wires the pipeline stages together.
type Orchestrator struct {
	extractor extraction.Extractor
	renderer  rasterize.Renderer
	ledger    *ledger.Store
	archive   *archive.Store
	detector  *ledger.Detector
	keyword   *categorizer.Categorizer
	logger    logging.Logger
}

// NewOrchestrator creates an Orchestrator. The keyword categorizer may
// be nil, in which case unrecognized categories fall back to Other
// without a keyword pass.
func NewOrchestrator(
	extractor extraction.Extractor,
	renderer rasterize.Renderer,
	ledgerStore *ledger.Store,
	archiveStore *archive.Store,
	detector *ledger.Detector,
	keyword *categorizer.Categorizer,
	logger logging.Logger,
) *Orchestrator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Orchestrator{
		extractor: extractor,
		renderer:  renderer,
		ledger:    ledgerStore,
		archive:   archiveStore,
		detector:  detector,
		keyword:   keyword,
		logger:    logger,
	}
}

// Process ingests one receipt file and reports where it ended up.
//
// With dryRun set the pipeline stops at READY: the outcome carries the
// archive path the receipt would get, but no file is copied and no row
// is appended.
func (o *Orchestrator) Process(ctx context.Context, sourcePath string, dryRun bool) (*Outcome, error) {
	outcome := &Outcome{
		Status:     StatusReceived,
		SourcePath: sourcePath,
		DryRun:     dryRun,
	}

	o.logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: sourcePath},
		logging.Field{Key: logging.FieldDryRun, Value: dryRun},
	).Debug("Processing receipt")

	if !fileutils.FileExists(sourcePath) {
		outcome.Status = StatusFailed
		return outcome, &ingesterror.InputError{Path: sourcePath, Reason: "file not found"}
	}

	mediaType, ok := extraction.MediaType(sourcePath)
	if !ok {
		outcome.Status = StatusFailed
		return outcome, &ingesterror.InputError{
			Path:   sourcePath,
			Reason: fmt.Sprintf("unsupported file type %q", filepath.Ext(sourcePath)),
		}
	}

	// PDFs are archived as-is but extracted from a raster of their
	// first page.
	imagePath := sourcePath
	imageMediaType := mediaType
	if mediaType == "application/pdf" {
		pngPath, cleanup, err := o.renderer.RenderFirstPage(sourcePath)
		if err != nil {
			outcome.Status = StatusFailed
			return outcome, &ingesterror.ConversionError{Path: sourcePath, Err: err}
		}
		defer cleanup()
		imagePath = pngPath
		imageMediaType = "image/png"
	}

	outcome.Status = StatusExtracting
	image, err := fileutils.ReadFile(imagePath)
	if err != nil {
		outcome.Status = StatusFailed
		if imagePath != sourcePath {
			return outcome, &ingesterror.ConversionError{Path: sourcePath, Err: err}
		}
		return outcome, &ingesterror.InputError{Path: sourcePath, Reason: err.Error()}
	}

	result, err := o.extractor.Extract(ctx, image, imageMediaType)
	if err != nil {
		outcome.Status = StatusFailed
		return outcome, &ingesterror.ExtractionError{Path: sourcePath, Err: err}
	}
	outcome.Status = StatusExtracted
	outcome.Record = partialRecord(result)

	missing := missingFields(result)
	if len(missing) > 0 {
		outcome.Status = StatusIncomplete
		outcome.Missing = missing
		o.logger.WithFields(
			logging.Field{Key: logging.FieldFile, Value: sourcePath},
			logging.Field{Key: logging.FieldReason, Value: strings.Join(missing, ", ")},
		).Warn("Extraction incomplete, receipt needs manual entry")
		return outcome, nil
	}

	date := strings.TrimSpace(*result.Date)
	provider := outcome.Record.Provider
	amount := decimal.NewFromFloat(*result.Amount)

	id := receiptid.Generate(date, provider, amount)
	outcome.Record.ReceiptID = id

	match, err := o.detector.FindDuplicate(date, provider, amount)
	if err != nil {
		outcome.Status = StatusFailed
		return outcome, err
	}
	if match != nil {
		outcome.Status = StatusDuplicate
		outcome.DuplicateOf = match.ReceiptID
		o.logger.WithFields(
			logging.Field{Key: logging.FieldFile, Value: sourcePath},
			logging.Field{Key: logging.FieldReceiptID, Value: match.ReceiptID},
		).Info("Receipt matches an existing ledger row")
		return outcome, nil
	}

	category := o.resolveCategory(result, provider, outcome.Record.Notes)
	outcome.Record.Category = string(category)
	outcome.Status = StatusReady

	if dryRun {
		_, rel := o.archive.Plan(sourcePath, date, provider, amount)
		outcome.ReceiptURL = rel
		outcome.Record.ReceiptURL = rel
		o.logger.WithFields(
			logging.Field{Key: logging.FieldFile, Value: sourcePath},
			logging.Field{Key: logging.FieldStatus, Value: rel},
		).Info("Dry run, receipt not archived")
		return outcome, nil
	}

	rel, err := o.archive.Archive(sourcePath, date, provider, amount)
	if err != nil {
		outcome.Status = StatusFailed
		return outcome, err
	}
	outcome.Status = StatusArchived
	outcome.ReceiptURL = rel

	record, err := models.NewExpenseBuilder().
		WithDate(date).
		WithProvider(provider).
		WithAmount(amount).
		WithCategory(category).
		WithReceiptID(id).
		WithReceiptURL(rel).
		WithNotes(outcome.Record.Notes).
		WithSource(models.SourceScan).
		Build()
	if err != nil {
		outcome.Status = StatusFailed
		return outcome, err
	}

	if err := o.ledger.Append(record); err != nil {
		outcome.Status = StatusFailed
		return outcome, err
	}
	outcome.Record = &record
	outcome.Status = StatusRecorded

	o.logger.WithFields(
		logging.Field{Key: logging.FieldReceiptID, Value: record.ReceiptID},
		logging.Field{Key: logging.FieldAmount, Value: record.Amount},
		logging.Field{Key: logging.FieldCategory, Value: record.Category},
	).Info("Recorded expense")
	return outcome, nil
}

// partialRecord maps whatever extraction produced onto a ledger row
// shape so incomplete and duplicate outcomes can still show what was
// read off the receipt.
func partialRecord(result *extraction.Result) *models.ExpenseRecord {
	rec := &models.ExpenseRecord{Source: string(models.SourceScan)}
	if result.Date != nil {
		rec.Date = strings.TrimSpace(*result.Date)
	}
	if result.Provider != nil {
		rec.Provider = strings.TrimSpace(*result.Provider)
	}
	if result.Amount != nil {
		rec.Amount = currencyutils.FormatAmount(decimal.NewFromFloat(*result.Amount))
	}
	if result.Category != nil {
		rec.Category = strings.TrimSpace(*result.Category)
	}
	if result.Notes != nil {
		rec.Notes = strings.TrimSpace(*result.Notes)
	}
	return rec
}

// missingFields lists the required fields extraction failed to produce
// in usable form. Date must be a real ISO date, amount must be present
// and non-negative.
func missingFields(result *extraction.Result) []string {
	var missing []string
	if result.Date == nil || !dateutils.IsISODate(strings.TrimSpace(*result.Date)) {
		missing = append(missing, "date")
	}
	if result.Amount == nil || *result.Amount < 0 {
		missing = append(missing, "amount")
	}
	return missing
}

// resolveCategory picks the row's category: the extracted one when it
// is a member of the fixed set, else the first keyword rule matching
// the provider or notes, else Other.
func (o *Orchestrator) resolveCategory(result *extraction.Result, provider, notes string) models.Category {
	if result.Category != nil {
		if c := models.Category(strings.TrimSpace(*result.Category)); c.IsValid() {
			return c
		}
	}
	if o.keyword != nil {
		if c, ok := o.keyword.Categorize(provider, notes); ok {
			return c
		}
	}
	return models.CategoryOther
}
