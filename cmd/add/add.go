// Package add handles manual expense entry
package add

import (
	"fmt"

	"github.com/spf13/cobra"

	"hsaledger/cmd/root"
	"hsaledger/internal/currencyutils"
	"hsaledger/internal/dateutils"
	"hsaledger/internal/fileutils"
	"hsaledger/internal/models"
	"hsaledger/internal/receiptid"
)

var (
	date     string
	provider string
	amount   string
	category string
	notes    string
	receipt  string
)

// Cmd represents the add command
var Cmd = &cobra.Command{
	Use:   "add",
	Short: "Record an expense by hand",
	Long: `Record an expense without a scanned receipt, for paper statements or
receipts the extraction could not read. The row is appended directly;
no duplicate check is performed for manual entries.

Example:
  hsaledger add -d 2024-06-01 -p "Acme Clinic" -a 75.00 -c Medical`,
	Run: addFunc,
}

func init() {
	Cmd.Flags().StringVarP(&date, "date", "d", "", "Service date, YYYY-MM-DD (required)")
	Cmd.Flags().StringVarP(&provider, "provider", "p", "", "Provider name (required)")
	Cmd.Flags().StringVarP(&amount, "amount", "a", "", "Out-of-pocket amount (required)")
	Cmd.Flags().StringVarP(&category, "category", "c", string(models.CategoryMedical), "Expense category")
	Cmd.Flags().StringVar(&notes, "notes", "", "Free-text notes")
	Cmd.Flags().StringVarP(&receipt, "receipt", "r", "", "Existing receipt file to reference (not copied)")
	_ = Cmd.MarkFlagRequired("date")
	_ = Cmd.MarkFlagRequired("provider")
	_ = Cmd.MarkFlagRequired("amount")
}

func addFunc(cmd *cobra.Command, args []string) {
	if !dateutils.IsISODate(date) {
		root.Log.Fatalf("Invalid date %q: expected YYYY-MM-DD", date)
	}

	value, err := currencyutils.ParseAmount(amount)
	if err != nil {
		root.Log.Fatalf("Invalid amount %q: %v", amount, err)
	}
	if currencyutils.IsNegative(value) {
		root.Log.Fatalf("Invalid amount %q: must not be negative", amount)
	}

	cat := models.Category(category)
	if !cat.IsValid() {
		root.Log.Fatalf("Invalid category %q: must be one of %v", category, models.CategoryNames())
	}

	if receipt != "" && !fileutils.FileExists(receipt) {
		root.Log.Fatalf("Receipt file not found: %s", receipt)
	}

	record, err := models.NewExpenseBuilder().
		WithDate(date).
		WithProvider(provider).
		WithAmount(value).
		WithCategory(cat).
		WithReceiptID(receiptid.Generate(date, provider, value)).
		WithReceiptURL(receipt).
		WithNotes(notes).
		WithSource(models.SourceManual).
		Build()
	if err != nil {
		root.Log.Fatalf("Invalid expense: %v", err)
	}

	if err := root.GetContainer().GetLedger().Append(record); err != nil {
		root.Log.Fatalf("Failed to record expense: %v", err)
	}

	fmt.Printf("Recorded %s: %s %s $%s (%s)\n",
		record.ReceiptID, record.Date, record.Provider, record.Amount, record.Category)
}
