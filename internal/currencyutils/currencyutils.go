// Package currencyutils provides parsing and formatting for the decimal
// dollar amounts stored on ledger rows.
package currencyutils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a string representation of a dollar amount into a
// decimal value. It accepts raw decimals as well as display forms like
// "$1,234.56". Empty input is an error; a missing amount is never a
// valid expense.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}

	return amount, nil
}

// StandardizeAmount strips the decorations found on amounts coming from
// receipts ("$1,234.56", " 42.50 ") down to a plain decimal string that
// decimal.NewFromString can parse.
func StandardizeAmount(amountStr string) string {
	amountStr = strings.TrimSpace(amountStr)
	amountStr = strings.ReplaceAll(amountStr, "$", "")
	amountStr = strings.ReplaceAll(amountStr, ",", "")
	amountStr = strings.ReplaceAll(amountStr, " ", "")
	return amountStr
}

// FormatAmount formats a decimal amount with exactly two decimal places,
// the form every ledger row stores.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatUSD formats an amount for display with a dollar sign and
// thousands separators, e.g. "$1,234.56".
func FormatUSD(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)

	parts := strings.SplitN(fixed, ".", 2)
	intPart := parts[0]

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}

	sign := ""
	if IsNegative(amount) {
		sign = "-"
	}
	return sign + "$" + grouped.String() + "." + parts[1]
}

// IsNegative checks if an amount is negative
func IsNegative(amount decimal.Decimal) bool {
	return amount.LessThan(decimal.Zero)
}

// IsZero checks if an amount is zero
func IsZero(amount decimal.Decimal) bool {
	return amount.Equal(decimal.Zero)
}
