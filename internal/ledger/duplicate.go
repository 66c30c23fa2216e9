package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"hsaledger/internal/dateutils"
	"hsaledger/internal/logging"
	"hsaledger/internal/models"
)

// DefaultTolerance is the widest amount difference still counted as
// the same expense. The comparison is strict: a difference of exactly
// one cent is two different expenses.
var DefaultTolerance = decimal.New(1, -2)

// Detector finds already-recorded expenses matching a candidate.
//
// Two expenses match when they share a date and their amounts differ
// by less than the tolerance. Provider names come from scans and vary
// too much between receipts from the same office to be part of the
// default match; matchProvider adds them back in for ledgers where
// same-day same-amount visits to different providers are common.
type Detector struct {
	store         *Store
	tolerance     decimal.Decimal
	matchProvider bool
	logger        logging.Logger
}

// NewDetector creates a Detector over a ledger store. A zero or
// negative tolerance falls back to DefaultTolerance.
func NewDetector(store *Store, tolerance decimal.Decimal, matchProvider bool, logger logging.Logger) *Detector {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if !tolerance.IsPositive() {
		tolerance = DefaultTolerance
	}
	return &Detector{
		store:         store,
		tolerance:     tolerance,
		matchProvider: matchProvider,
		logger:        logger,
	}
}

// FindDuplicate scans the candidate date's partition for a matching
// row and returns it, or nil when the expense is new. Rows whose
// amount does not parse cannot match anything and are skipped.
func (d *Detector) FindDuplicate(date, provider string, amount decimal.Decimal) (*models.ExpenseRecord, error) {
	records, err := d.store.Load(dateutils.YearOf(date))
	if err != nil {
		return nil, err
	}

	for i := range records {
		if records[i].Date != date {
			continue
		}
		existing, err := records[i].AmountValue()
		if err != nil {
			continue
		}
		if existing.Sub(amount).Abs().GreaterThanOrEqual(d.tolerance) {
			continue
		}
		if d.matchProvider && !sameProvider(records[i].Provider, provider) {
			continue
		}

		d.logger.WithFields(
			logging.Field{Key: logging.FieldReceiptID, Value: records[i].ReceiptID},
			logging.Field{Key: logging.FieldAmount, Value: records[i].Amount},
		).Debug("Matched existing ledger row")
		return &records[i], nil
	}
	return nil, nil
}

// IsDuplicate reports whether a matching row already exists.
func (d *Detector) IsDuplicate(date, provider string, amount decimal.Decimal) (bool, error) {
	match, err := d.FindDuplicate(date, provider, amount)
	if err != nil {
		return false, err
	}
	return match != nil, nil
}

func sameProvider(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
