// Package models provides the data structures used throughout the application.
package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"hsaledger/internal/currencyutils"
	"hsaledger/internal/dateutils"
)

// Ledger column headers, in the exact order every partition stores them.
const (
	HeaderDate       = "Date"
	HeaderProvider   = "Provider"
	HeaderAmount     = "Amount"
	HeaderCategory   = "Category"
	HeaderReceiptID  = "Receipt_ID"
	HeaderReceiptURL = "Receipt_URL"
	HeaderNotes      = "Notes"
	HeaderSource     = "Source"
)

// LedgerColumns lists every ledger column in storage order.
var LedgerColumns = []string{
	HeaderDate,
	HeaderProvider,
	HeaderAmount,
	HeaderCategory,
	HeaderReceiptID,
	HeaderReceiptURL,
	HeaderNotes,
	HeaderSource,
}

// RequiredColumns lists the columns a partition must carry to validate.
// Notes and Source are informational and may be absent from partitions
// written by older tooling.
var RequiredColumns = LedgerColumns[:6]

// ExpenseRecord represents one row of the expense ledger.
//
// All fields are stored as strings so that partitions with malformed
// rows can still be loaded and reported on row by row; use the typed
// accessors for arithmetic and comparisons.
type ExpenseRecord struct {
	Date       string `csv:"Date"`        // ISO date (YYYY-MM-DD)
	Provider   string `csv:"Provider"`    // Free-text provider name, may be empty
	Amount     string `csv:"Amount"`      // Decimal amount with two places, e.g. "42.50"
	Category   string `csv:"Category"`    // One of the fixed expense categories
	ReceiptID  string `csv:"Receipt_ID"`  // Stable identifier derived from date, provider and amount
	ReceiptURL string `csv:"Receipt_URL"` // Archive path relative to the ledger root, may be empty
	Notes      string `csv:"Notes"`       // Free-text notes
	Source     string `csv:"Source"`      // How the row was produced: "manual" or "scan"
}

// DateValue parses the Date field as an ISO date.
func (e *ExpenseRecord) DateValue() (time.Time, error) {
	return dateutils.ParseISODate(e.Date)
}

// AmountValue parses the Amount field into a decimal value.
func (e *ExpenseRecord) AmountValue() (decimal.Decimal, error) {
	return currencyutils.ParseAmount(e.Amount)
}

// Year returns the year component of the Date field, which names the
// partition the record belongs to.
func (e *ExpenseRecord) Year() string {
	return dateutils.YearOf(e.Date)
}

// Month returns the YYYY-MM prefix of the Date field.
func (e *ExpenseRecord) Month() string {
	return dateutils.MonthKey(e.Date)
}

// Validate checks the invariants every stored row must hold: a real
// ISO date and a parseable, non-negative amount. Provider and the
// remaining fields may be empty.
func (e *ExpenseRecord) Validate() error {
	if !dateutils.IsISODate(e.Date) {
		return fmt.Errorf("invalid date: %s", e.Date)
	}

	amount, err := currencyutils.ParseAmount(e.Amount)
	if err != nil {
		return fmt.Errorf("invalid amount: %s", e.Amount)
	}
	if currencyutils.IsNegative(amount) {
		return fmt.Errorf("negative amount: %s", e.Amount)
	}

	return nil
}
