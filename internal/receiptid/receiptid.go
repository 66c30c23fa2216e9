// Package receiptid derives the stable identifier carried on every
// ledger row.
//
// The identifier is a function of the expense itself (date, provider,
// amount), not of the scan that produced it. Re-scanning the same
// receipt, or re-running the pipeline over an archived copy, yields the
// same identifier, which is what lets re-ingestion be detected instead
// of silently duplicating rows.
package receiptid

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// Prefix marks every identifier as a medical expense.
	Prefix = "MED"

	// DefaultProvider seeds the hash when a receipt names no provider.
	// Rows store the provider as-is (possibly empty); only the hash
	// input is defaulted, so two provider-less receipts with the same
	// date and amount still collide on purpose.
	DefaultProvider = "Unknown"

	hashLength = 10
)

// Generate returns the identifier for an expense: the Prefix followed
// by the first 10 hex characters, uppercased, of the SHA-256 digest of
// "date:provider:amount". The amount contributes its canonical decimal
// form ("42.5", "75"), independent of how the row formats it.
func Generate(date, provider string, amount decimal.Decimal) string {
	if provider == "" {
		provider = DefaultProvider
	}
	seed := fmt.Sprintf("%s:%s:%s", date, provider, amount.String())
	sum := sha256.Sum256([]byte(seed))
	return Prefix + strings.ToUpper(hex.EncodeToString(sum[:])[:hashLength])
}
