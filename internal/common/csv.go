// Package common provides the shared CSV plumbing used by the ledger,
// validator and report layers.
package common

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"hsaledger/internal/fileutils"
	"hsaledger/internal/logging"
	"hsaledger/internal/models"

	"github.com/gocarina/gocsv"
)

var log = logging.GetLogger()

// SetLogger allows setting a configured logger
func SetLogger(logger logging.Logger) {
	if logger == nil {
		return // Don't change the logger if nil is passed
	}
	log = logger
}

// ReadCSVFile reads CSV data into a slice of structs using gocsv.
// TCSVRow is the struct type that maps to the CSV columns. Columns the
// struct does not name are ignored and struct fields without a matching
// column stay zero, so partitions written by older tooling still load.
func ReadCSVFile[TCSVRow any](filePath string) ([]TCSVRow, error) {
	log.WithField(logging.FieldFile, filePath).Debug("Reading CSV file")

	file, err := os.Open(filePath) // #nosec G304 - partition paths come from the configured ledger root
	if err != nil {
		log.WithError(err).Error("Failed to open CSV file")
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	var rows []TCSVRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		log.WithError(err).Error("Failed to parse CSV file")
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	log.WithField(logging.FieldCount, len(rows)).Debug("Successfully read CSV data")
	return rows, nil
}

// ReadCSVHeader returns the header row of a CSV file. An empty file has
// no header and returns an empty slice, not an error; the caller decides
// what a headerless file means.
func ReadCSVHeader(filePath string) ([]string, error) {
	file, err := os.Open(filePath) // #nosec G304 - partition paths come from the configured ledger root
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	header, err := csv.NewReader(file).Read()
	if errors.Is(err, io.EOF) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}
	return header, nil
}

// ReadCSVRows returns every row of a CSV file as raw string slices,
// header included, without enforcing a uniform field count. The
// validator uses this to examine partitions too malformed for the
// struct-mapped reader.
func ReadCSVRows(filePath string) ([][]string, error) {
	file, err := os.Open(filePath) // #nosec G304 - partition paths come from the configured ledger root
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV rows: %w", err)
	}
	return rows, nil
}

// WriteExpensesToCSV writes expenses to a CSV file, creating the file
// and any parent directories. An existing file is replaced. An empty,
// non-nil slice produces a file holding just the header row.
func WriteExpensesToCSV(expenses []models.ExpenseRecord, csvFile string) error {
	if expenses == nil {
		return fmt.Errorf("cannot write nil expenses to CSV")
	}

	log.WithFields(
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(expenses)},
	).Debug("Writing expenses to CSV file")

	if err := fileutils.EnsureDirectoryExists(filepath.Dir(csvFile)); err != nil {
		log.WithError(err).Error("Failed to create directory")
		return err
	}

	file, err := os.OpenFile(csvFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fileutils.FilePerm) // #nosec G304 - partition paths come from the configured ledger root
	if err != nil {
		log.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	csvWriter := csv.NewWriter(file)
	if err := gocsv.MarshalCSV(expenses, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		log.WithError(err).Error("Failed to marshal expenses to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	return nil
}

// AppendExpensesToCSV appends expenses to an existing CSV file without
// repeating the header. The file must already exist; creating a fresh
// partition goes through WriteExpensesToCSV so the header is written
// exactly once.
func AppendExpensesToCSV(expenses []models.ExpenseRecord, csvFile string) error {
	if len(expenses) == 0 {
		return nil
	}

	log.WithFields(
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(expenses)},
	).Debug("Appending expenses to CSV file")

	file, err := os.OpenFile(csvFile, os.O_WRONLY|os.O_APPEND, fileutils.FilePerm) // #nosec G304 - partition paths come from the configured ledger root
	if err != nil {
		log.WithError(err).Error("Failed to open CSV file for append")
		return fmt.Errorf("error opening CSV file for append: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	csvWriter := csv.NewWriter(file)
	if err := gocsv.MarshalCSVWithoutHeaders(expenses, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		log.WithError(err).Error("Failed to append expenses to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	return nil
}
