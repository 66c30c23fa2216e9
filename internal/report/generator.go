// Package report renders read-only spending summaries over one year's
// ledger partition. Rows the validator would flag are skipped here;
// reporting never fails on bad data.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"hsaledger/internal/currencyutils"
	"hsaledger/internal/ledger"
	"hsaledger/internal/logging"
	"hsaledger/internal/models"
)

// recentCount is how many transactions the report tail shows.
const recentCount = 10

// CategorySummary totals one category's spending for the year.
type CategorySummary struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
	Percent  float64         `json:"percent"`
}

// MonthSummary totals one month's spending.
type MonthSummary struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// Report is one year's spending summary.
type Report struct {
	Year       string                 `json:"year"`
	Total      decimal.Decimal        `json:"total"`
	Count      int                    `json:"count"`
	ByCategory []CategorySummary      `json:"by_category"`
	ByMonth    []MonthSummary         `json:"by_month"`
	Expenses   []models.ExpenseRecord `json:"expenses"`
}

// Generator builds reports from the ledger.
type Generator struct {
	ledger *ledger.Store
	logger logging.Logger
}

// NewGenerator creates a Generator over a ledger store.
func NewGenerator(ledgerStore *ledger.Store, logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Generator{
		ledger: ledgerStore,
		logger: logger,
	}
}

// Generate summarizes one year. A year with no partition produces an
// empty report, not an error. Categories are sorted by descending
// total, months ascending, and the Expenses tail holds the ten most
// recent transactions, newest first.
func (g *Generator) Generate(year string) (*Report, error) {
	records, err := g.ledger.Load(year)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Year:       year,
		Total:      decimal.Zero,
		ByCategory: []CategorySummary{},
		ByMonth:    []MonthSummary{},
		Expenses:   []models.ExpenseRecord{},
	}

	byCategory := make(map[string]*CategorySummary)
	byMonth := make(map[string]*MonthSummary)
	var usable []models.ExpenseRecord

	for _, rec := range records {
		amount, err := rec.AmountValue()
		if err != nil {
			g.logger.WithFields(
				logging.Field{Key: logging.FieldYear, Value: year},
				logging.Field{Key: logging.FieldAmount, Value: rec.Amount},
			).Warn("Skipping row with unparseable amount")
			continue
		}

		report.Count++
		report.Total = report.Total.Add(amount)
		usable = append(usable, rec)

		category := rec.Category
		if category == "" {
			category = string(models.CategoryOther)
		}
		cs, ok := byCategory[category]
		if !ok {
			cs = &CategorySummary{Category: category, Total: decimal.Zero}
			byCategory[category] = cs
		}
		cs.Total = cs.Total.Add(amount)
		cs.Count++

		month := rec.Month()
		ms, ok := byMonth[month]
		if !ok {
			ms = &MonthSummary{Month: month, Total: decimal.Zero}
			byMonth[month] = ms
		}
		ms.Total = ms.Total.Add(amount)
		ms.Count++
	}

	for _, cs := range byCategory {
		if report.Total.IsPositive() {
			cs.Percent, _ = cs.Total.Div(report.Total).Mul(decimal.NewFromInt(100)).Round(1).Float64()
		}
		report.ByCategory = append(report.ByCategory, *cs)
	}
	sort.Slice(report.ByCategory, func(i, j int) bool {
		a, b := report.ByCategory[i], report.ByCategory[j]
		if !a.Total.Equal(b.Total) {
			return a.Total.GreaterThan(b.Total)
		}
		return a.Category < b.Category
	})

	for _, ms := range byMonth {
		report.ByMonth = append(report.ByMonth, *ms)
	}
	sort.Slice(report.ByMonth, func(i, j int) bool {
		return report.ByMonth[i].Month < report.ByMonth[j].Month
	})

	// Newest first; equal dates keep partition order, so the later
	// append wins the tie the way the ledger recorded it.
	sort.SliceStable(usable, func(i, j int) bool {
		return usable[i].Date > usable[j].Date
	})
	if len(usable) > recentCount {
		usable = usable[:recentCount]
	}
	report.Expenses = append(report.Expenses, usable...)

	return report, nil
}

// RenderText lays the report out for a terminal.
func (g *Generator) RenderText(report *Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "HSA Expense Report %s\n", report.Year)
	fmt.Fprintf(&b, "%s\n\n", strings.Repeat("=", 22+len(report.Year)))

	if report.Count == 0 {
		b.WriteString("No expenses recorded.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Total: %s across %d expenses\n\n", currencyutils.FormatUSD(report.Total), report.Count)

	b.WriteString("By category:\n")
	for _, cs := range report.ByCategory {
		fmt.Fprintf(&b, "  %-15s %12s  (%.1f%%, %d expenses)\n",
			cs.Category, currencyutils.FormatUSD(cs.Total), cs.Percent, cs.Count)
	}

	b.WriteString("\nBy month:\n")
	for _, ms := range report.ByMonth {
		fmt.Fprintf(&b, "  %s %12s  (%d expenses)\n",
			ms.Month, currencyutils.FormatUSD(ms.Total), ms.Count)
	}

	b.WriteString("\nMost recent:\n")
	for _, rec := range report.Expenses {
		provider := rec.Provider
		if provider == "" {
			provider = "(unknown provider)"
		}
		fmt.Fprintf(&b, "  %s  %-30s %10s  %s\n",
			rec.Date, provider, rec.Amount, rec.Category)
	}

	return b.String()
}
