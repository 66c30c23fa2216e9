// Package validation reconciles the ledger partitions against their
// own schema and against the receipt archive.
//
// The validator is the independent half of the pipeline's two-step
// persistence: ingestion guarantees archive-before-ledger ordering at
// write time, and validation detects the drift that ordering cannot
// prevent, such as rows whose archived receipt has since gone missing.
// It never repairs anything and never stops at a bad row; every finding
// is accumulated so one run describes the whole tree.
//
// Findings come in two severities. An issue means the partition cannot
// be trusted as-is: a broken header, an unparseable date or amount, a
// Receipt_URL pointing at nothing. A warning means the data is
// structurally sound but a human should look, which today means two
// rows sharing a date and amount. A partition is valid iff it has zero
// issues; warnings never affect validity.
package validation

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"hsaledger/internal/archive"
	"hsaledger/internal/common"
	"hsaledger/internal/fileutils"
	"hsaledger/internal/ingesterror"
	"hsaledger/internal/ledger"
	"hsaledger/internal/logging"
	"hsaledger/internal/models"
)

// Finding is one validation result, anchored to a partition row.
// Row counts from 1 and row 1 is the header; header findings carry
// row 1.
type Finding struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// PartitionReport collects every finding for one ledger partition.
type PartitionReport struct {
	Year     string          `json:"year"`
	Path     string          `json:"path"`
	Rows     int             `json:"rows"`
	Total    decimal.Decimal `json:"total"`
	Issues   []Finding       `json:"issues"`
	Warnings []Finding       `json:"warnings"`
}

// Valid reports whether the partition can be trusted. Warnings do not
// count against validity.
func (r *PartitionReport) Valid() bool {
	return len(r.Issues) == 0
}

// TreeReport aggregates the reports of every partition in the ledger.
type TreeReport struct {
	Partitions []*PartitionReport `json:"partitions"`
	Rows       int                `json:"rows"`
	Total      decimal.Decimal    `json:"total"`
	Issues     int                `json:"issues"`
	Warnings   int                `json:"warnings"`
}

// Valid reports whether every partition validated clean.
func (r *TreeReport) Valid() bool {
	return r.Issues == 0
}

// Validator walks ledger partitions and reports issues and warnings.
type Validator struct {
	ledger  *ledger.Store
	archive *archive.Store
	logger  logging.Logger
}

// NewValidator creates a Validator over a ledger store and the archive
// its Receipt_URL values resolve against.
func NewValidator(ledgerStore *ledger.Store, archiveStore *archive.Store, logger logging.Logger) *Validator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Validator{
		ledger:  ledgerStore,
		archive: archiveStore,
		logger:  logger,
	}
}

// ValidatePartition checks one year's partition. A missing partition is
// an input error; an existing but empty or malformed one is a report
// full of issues.
func (v *Validator) ValidatePartition(year string) (*PartitionReport, error) {
	path := v.ledger.PartitionPath(year)
	if !fileutils.FileExists(path) {
		return nil, &ingesterror.InputError{Path: path, Reason: "partition not found"}
	}

	report := &PartitionReport{
		Year:     year,
		Path:     path,
		Total:    decimal.Zero,
		Issues:   []Finding{},
		Warnings: []Finding{},
	}

	rows, err := common.ReadCSVRows(path)
	if err != nil {
		return nil, &ingesterror.ValidationError{Partition: path, Reason: "unreadable partition", Err: err}
	}
	if len(rows) == 0 {
		report.Issues = append(report.Issues, Finding{Row: 1, Message: "empty partition, header row missing"})
		return report, nil
	}

	columns := v.checkHeader(report, rows[0])

	// Key is date plus the amount rounded to two decimals, the same
	// identity the duplicate detector screens new receipts with.
	// Values are the row number of the first occurrence.
	seen := make(map[string]int)

	for i, row := range rows[1:] {
		rowNum := i + 2
		report.Rows++
		v.checkRow(report, columns, row, rowNum, seen)
	}

	v.logger.WithFields(
		logging.Field{Key: logging.FieldPartition, Value: path},
		logging.Field{Key: logging.FieldRow, Value: report.Rows},
		logging.Field{Key: "issues", Value: len(report.Issues)},
		logging.Field{Key: "warnings", Value: len(report.Warnings)},
	).Debug("Validated partition")
	return report, nil
}

// ValidateTree checks every partition on disk, in year order, and
// aggregates the results. A ledger with no partitions at all validates
// clean.
func (v *Validator) ValidateTree() (*TreeReport, error) {
	years, err := v.ledger.Years()
	if err != nil {
		return nil, err
	}
	sort.Strings(years)

	tree := &TreeReport{
		Partitions: []*PartitionReport{},
		Total:      decimal.Zero,
	}
	for _, year := range years {
		report, err := v.ValidatePartition(year)
		if err != nil {
			return nil, err
		}
		tree.Partitions = append(tree.Partitions, report)
		tree.Rows += report.Rows
		tree.Total = tree.Total.Add(report.Total)
		tree.Issues += len(report.Issues)
		tree.Warnings += len(report.Warnings)
	}

	v.logger.WithFields(
		logging.Field{Key: logging.FieldCount, Value: len(tree.Partitions)},
		logging.Field{Key: logging.FieldRow, Value: tree.Rows},
		logging.Field{Key: "issues", Value: tree.Issues},
		logging.Field{Key: "warnings", Value: tree.Warnings},
	).Info("Validated ledger tree")
	return tree, nil
}

// checkHeader verifies the required columns are present and returns the
// column index of every header name for row-level lookups.
func (v *Validator) checkHeader(report *PartitionReport, header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}
	for _, required := range models.RequiredColumns {
		if _, ok := columns[required]; !ok {
			report.Issues = append(report.Issues, Finding{
				Row:     1,
				Message: fmt.Sprintf("missing column %s", required),
			})
		}
	}
	return columns
}

func (v *Validator) checkRow(report *PartitionReport, columns map[string]int, row []string, rowNum int, seen map[string]int) {
	field := func(name string) (string, bool) {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return "", false
		}
		return row[i], true
	}

	date, hasDate := field(models.HeaderDate)
	amountStr, hasAmount := field(models.HeaderAmount)

	if len(row) < len(columns) {
		report.Issues = append(report.Issues, Finding{
			Row:     rowNum,
			Message: fmt.Sprintf("malformed row: %d fields, expected %d", len(row), len(columns)),
		})
	}

	rec := models.ExpenseRecord{Date: date, Amount: amountStr}

	dateOK := false
	if hasDate {
		if _, err := rec.DateValue(); err != nil {
			report.Issues = append(report.Issues, Finding{
				Row:     rowNum,
				Message: fmt.Sprintf("invalid date %q", date),
			})
		} else {
			dateOK = true
		}
	}

	var amount decimal.Decimal
	amountOK := false
	if hasAmount {
		parsed, err := rec.AmountValue()
		switch {
		case err != nil:
			report.Issues = append(report.Issues, Finding{
				Row:     rowNum,
				Message: fmt.Sprintf("invalid amount %q", amountStr),
			})
		case parsed.IsNegative():
			report.Issues = append(report.Issues, Finding{
				Row:     rowNum,
				Message: fmt.Sprintf("negative amount %q", amountStr),
			})
		default:
			amount = parsed
			amountOK = true
			report.Total = report.Total.Add(amount)
		}
	}

	if dateOK && amountOK {
		key := date + ":" + amount.StringFixed(2)
		if first, dup := seen[key]; dup {
			report.Warnings = append(report.Warnings, Finding{
				Row:     rowNum,
				Message: fmt.Sprintf("possible duplicate of row %d (%s, %s)", first, date, amount.StringFixed(2)),
			})
		} else {
			seen[key] = rowNum
		}
	}

	if receiptURL, ok := field(models.HeaderReceiptURL); ok && receiptURL != "" {
		if !fileutils.FileExists(v.archive.Resolve(receiptURL)) {
			report.Issues = append(report.Issues, Finding{
				Row:     rowNum,
				Message: fmt.Sprintf("receipt file not found: %s", receiptURL),
			})
		}
	}
}
