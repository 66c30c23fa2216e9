// Package ledger maintains the year-partitioned expense CSV files.
//
// Each calendar year lives in its own partition named
// hsa_expenses_<year>.csv under the data directory. Partitions are
// append-only: new rows go on the end, the header is written once when
// the partition is created, and existing rows are never rewritten
// except by the explicit recategorization flow.
package ledger

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"hsaledger/internal/common"
	"hsaledger/internal/dateutils"
	"hsaledger/internal/fileutils"
	"hsaledger/internal/ingesterror"
	"hsaledger/internal/logging"
	"hsaledger/internal/models"
)

const (
	partitionPrefix = "hsa_expenses_"
	partitionExt    = ".csv"
)

// Store reads and appends ledger partitions under a data directory.
type Store struct {
	dataDir string
	logger  logging.Logger
}

// NewStore creates a Store rooted at dataDir. The directory does not
// need to exist yet; it is created on first write.
func NewStore(dataDir string, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Store{
		dataDir: dataDir,
		logger:  logger,
	}
}

// DataDir returns the directory holding the partitions.
func (s *Store) DataDir() string {
	return s.dataDir
}

// PartitionPath returns the path of the partition for a year.
func (s *Store) PartitionPath(year string) string {
	return filepath.Join(s.dataDir, partitionPrefix+year+partitionExt)
}

// PartitionFor returns the path of the partition an ISO date belongs
// to. The year is the first four characters of the date.
func (s *Store) PartitionFor(date string) string {
	return s.PartitionPath(dateutils.YearOf(date))
}

// Years lists the years that have a partition on disk, sorted ascending.
func (s *Store) Years() ([]string, error) {
	pattern := filepath.Join(s.dataDir, partitionPrefix+"*"+partitionExt)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("error listing partitions: %w", err)
	}

	var years []string
	for _, match := range matches {
		base := filepath.Base(match)
		year := strings.TrimSuffix(strings.TrimPrefix(base, partitionPrefix), partitionExt)
		if year != "" {
			years = append(years, year)
		}
	}
	sort.Strings(years)
	return years, nil
}

// Load reads every row of a year's partition. A year with no partition
// yet is an empty ledger, not an error.
func (s *Store) Load(year string) ([]models.ExpenseRecord, error) {
	path := s.PartitionPath(year)
	if !fileutils.FileExists(path) {
		return []models.ExpenseRecord{}, nil
	}

	records, err := common.ReadCSVFile[models.ExpenseRecord](path)
	if err != nil {
		return nil, &ingesterror.PersistenceError{Op: "ledger read", Path: path, Err: err}
	}
	return records, nil
}

// LoadAll reads every partition in year order and returns the rows
// keyed by year.
func (s *Store) LoadAll() (map[string][]models.ExpenseRecord, error) {
	years, err := s.Years()
	if err != nil {
		return nil, err
	}

	all := make(map[string][]models.ExpenseRecord, len(years))
	for _, year := range years {
		records, err := s.Load(year)
		if err != nil {
			return nil, err
		}
		all[year] = records
	}
	return all, nil
}

// Append adds one row to the partition its date selects, creating the
// partition with a header row if this is the year's first expense.
func (s *Store) Append(rec models.ExpenseRecord) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("invalid record: %w", err)
	}

	path := s.PartitionFor(rec.Date)
	s.logger.WithFields(
		logging.Field{Key: logging.FieldPartition, Value: path},
		logging.Field{Key: logging.FieldReceiptID, Value: rec.ReceiptID},
	).Debug("Appending expense to ledger")

	if !fileutils.FileExists(path) {
		if err := common.WriteExpensesToCSV([]models.ExpenseRecord{rec}, path); err != nil {
			return &ingesterror.PersistenceError{Op: "ledger append", Path: path, Err: err}
		}
		return nil
	}

	if err := common.AppendExpensesToCSV([]models.ExpenseRecord{rec}, path); err != nil {
		return &ingesterror.PersistenceError{Op: "ledger append", Path: path, Err: err}
	}
	return nil
}

// Rewrite replaces a year's partition wholesale. Only the
// recategorization flow uses this; everything else appends.
func (s *Store) Rewrite(year string, records []models.ExpenseRecord) error {
	path := s.PartitionPath(year)
	if records == nil {
		records = []models.ExpenseRecord{}
	}
	if err := common.WriteExpensesToCSV(records, path); err != nil {
		return &ingesterror.PersistenceError{Op: "ledger rewrite", Path: path, Err: err}
	}
	s.logger.WithFields(
		logging.Field{Key: logging.FieldPartition, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(records)},
	).Info("Rewrote ledger partition")
	return nil
}
