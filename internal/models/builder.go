package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"hsaledger/internal/currencyutils"
	"hsaledger/internal/dateutils"
)

// ExpenseBuilder provides a fluent API for constructing ledger rows.
// Errors accumulate across calls; Build reports the first one.
type ExpenseBuilder struct {
	rec ExpenseRecord
	err error
}

// NewExpenseBuilder creates a new ExpenseBuilder with default values.
func NewExpenseBuilder() *ExpenseBuilder {
	return &ExpenseBuilder{
		rec: ExpenseRecord{
			Category: string(CategoryOther),
			Source:   string(SourceManual),
		},
	}
}

// WithDate sets the expense date from an ISO date string.
func (b *ExpenseBuilder) WithDate(dateStr string) *ExpenseBuilder {
	if b.err != nil {
		return b
	}
	dateStr = strings.TrimSpace(dateStr)
	if !dateutils.IsISODate(dateStr) {
		b.err = fmt.Errorf("invalid date: %s", dateStr)
		return b
	}
	b.rec.Date = dateStr
	return b
}

// WithDateFromTime sets the expense date from a time.Time.
func (b *ExpenseBuilder) WithDateFromTime(date time.Time) *ExpenseBuilder {
	if b.err != nil {
		return b
	}
	if date.IsZero() {
		b.err = errors.New("date cannot be zero")
		return b
	}
	b.rec.Date = dateutils.ToISODate(date)
	return b
}

// WithProvider sets the provider name. Empty is allowed; receipts do
// not always name one.
func (b *ExpenseBuilder) WithProvider(provider string) *ExpenseBuilder {
	if b.err != nil {
		return b
	}
	b.rec.Provider = strings.TrimSpace(provider)
	return b
}

// WithAmount sets the expense amount. Stored with exactly two decimal
// places, the form ledger rows carry.
func (b *ExpenseBuilder) WithAmount(amount decimal.Decimal) *ExpenseBuilder {
	if b.err != nil {
		return b
	}
	if currencyutils.IsNegative(amount) {
		b.err = fmt.Errorf("negative amount: %s", amount.String())
		return b
	}
	b.rec.Amount = currencyutils.FormatAmount(amount)
	return b
}

// WithAmountFromString sets the expense amount from a string, accepting
// the display forms receipts carry ("$123.45", "1,234.56").
func (b *ExpenseBuilder) WithAmountFromString(amountStr string) *ExpenseBuilder {
	if b.err != nil {
		return b
	}
	amount, err := currencyutils.ParseAmount(amountStr)
	if err != nil {
		b.err = err
		return b
	}
	return b.WithAmount(amount)
}

// WithCategory sets the expense category. The category must be one of
// the fixed set.
func (b *ExpenseBuilder) WithCategory(category Category) *ExpenseBuilder {
	if b.err != nil {
		return b
	}
	if !category.IsValid() {
		b.err = fmt.Errorf("unknown category: %s", category)
		return b
	}
	b.rec.Category = string(category)
	return b
}

// WithRawCategory sets the expense category from an untrusted string,
// mapping anything outside the fixed set onto CategoryOther.
func (b *ExpenseBuilder) WithRawCategory(raw string) *ExpenseBuilder {
	if b.err != nil {
		return b
	}
	b.rec.Category = string(NormalizeCategory(raw))
	return b
}

// WithReceiptID sets the receipt identifier.
func (b *ExpenseBuilder) WithReceiptID(id string) *ExpenseBuilder {
	if b.err != nil {
		return b
	}
	b.rec.ReceiptID = id
	return b
}

// WithReceiptURL sets the archive path of the source receipt.
func (b *ExpenseBuilder) WithReceiptURL(url string) *ExpenseBuilder {
	if b.err != nil {
		return b
	}
	b.rec.ReceiptURL = url
	return b
}

// WithNotes sets the free-text notes.
func (b *ExpenseBuilder) WithNotes(notes string) *ExpenseBuilder {
	if b.err != nil {
		return b
	}
	b.rec.Notes = strings.TrimSpace(notes)
	return b
}

// WithSource sets how the row was produced.
func (b *ExpenseBuilder) WithSource(source Source) *ExpenseBuilder {
	if b.err != nil {
		return b
	}
	if !source.IsValid() {
		b.err = fmt.Errorf("unknown source: %s", source)
		return b
	}
	b.rec.Source = string(source)
	return b
}

// Build validates the record and returns it.
func (b *ExpenseBuilder) Build() (ExpenseRecord, error) {
	if b.err != nil {
		return ExpenseRecord{}, fmt.Errorf("builder error: %w", b.err)
	}

	if b.rec.Date == "" {
		return ExpenseRecord{}, errors.New("date is required")
	}
	if b.rec.Amount == "" {
		return ExpenseRecord{}, errors.New("amount is required")
	}

	if err := b.rec.Validate(); err != nil {
		return ExpenseRecord{}, err
	}

	return b.rec, nil
}
