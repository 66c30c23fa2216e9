// Package dateutils provides helpers for the ISO calendar dates used
// throughout the ledger and archive.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// DateLayoutISO is the only date layout accepted on ledger rows.
const DateLayoutISO = "2006-01-02"

// ParseISODate parses a date string in YYYY-MM-DD form.
// Any other layout is an error; callers that need lenient parsing
// must normalize before storing.
func ParseISODate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	t, err := time.Parse(DateLayoutISO, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
	}
	return t, nil
}

// IsISODate reports whether the string is a valid YYYY-MM-DD date.
func IsISODate(dateStr string) bool {
	_, err := ParseISODate(dateStr)
	return err == nil
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD).
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// YearOf returns the year component of an ISO date string.
// Returns the empty string when the input is too short to carry one.
func YearOf(dateStr string) string {
	if len(dateStr) < 4 {
		return ""
	}
	return dateStr[:4]
}

// MonthKey returns the YYYY-MM prefix of an ISO date string, used to
// group expenses by month. Returns the empty string when the input is
// too short to carry one.
func MonthKey(dateStr string) string {
	if len(dateStr) < 7 {
		return ""
	}
	return dateStr[:7]
}
