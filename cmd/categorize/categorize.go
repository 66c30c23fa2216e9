// Package categorize handles expense categorization commands
package categorize

import (
	"fmt"

	"github.com/spf13/cobra"

	"hsaledger/cmd/root"
	"hsaledger/internal/models"
)

var (
	provider string
	notes    string
	year     string
	apply    bool
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Suggest a category from the keyword rules",
	Long: `Suggest an expense category by matching the keyword rules against a
provider name and notes. With --year and --apply, re-run the rules over
that partition's rows still categorized as Other and rewrite the ones
that now match.

Examples:
  hsaledger categorize -p "CVS Pharmacy #1402"
  hsaledger categorize --year 2024 --apply`,
	Run: categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&provider, "provider", "p", "", "Provider name to categorize")
	Cmd.Flags().StringVar(&notes, "notes", "", "Notes text to match against")
	Cmd.Flags().StringVarP(&year, "year", "y", "", "Recategorize one year's partition")
	Cmd.Flags().BoolVar(&apply, "apply", false, "Write recategorized rows back (requires --year)")
}

func categorizeFunc(cmd *cobra.Command, args []string) {
	if year != "" {
		recategorizeYear()
		return
	}

	if provider == "" && notes == "" {
		root.Log.Fatalf("Provide --provider or --notes to categorize, or --year to recategorize a partition")
	}

	cat, ok := root.GetContainer().GetCategorizer().Categorize(provider, notes)
	if !ok {
		cat = models.CategoryOther
	}
	fmt.Println(cat)
}

// recategorizeYear re-runs the keyword rules over one partition's rows
// still filed under Other. Without --apply it only reports what would
// change; this is the one flow that rewrites a partition in place.
func recategorizeYear() {
	c := root.GetContainer()
	records, err := c.GetLedger().Load(year)
	if err != nil {
		root.Log.Fatalf("Failed to load partition: %v", err)
	}
	if len(records) == 0 {
		fmt.Printf("No expenses recorded for %s.\n", year)
		return
	}

	changed := 0
	for i := range records {
		rec := &records[i]
		if rec.Category != "" && rec.Category != string(models.CategoryOther) {
			continue
		}
		cat, ok := c.GetCategorizer().Categorize(rec.Provider, rec.Notes)
		if !ok || string(cat) == rec.Category {
			continue
		}
		fmt.Printf("%s  %s: %s -> %s\n", rec.Date, rec.Provider, orOther(rec.Category), cat)
		rec.Category = string(cat)
		changed++
	}

	if changed == 0 {
		fmt.Println("Nothing to recategorize.")
		return
	}
	if !apply {
		fmt.Printf("%d rows would change; re-run with --apply to write them.\n", changed)
		return
	}

	if err := c.GetLedger().Rewrite(year, records); err != nil {
		root.Log.Fatalf("Failed to rewrite partition: %v", err)
	}
	fmt.Printf("Rewrote %d rows.\n", changed)
}

func orOther(category string) string {
	if category == "" {
		return string(models.CategoryOther)
	}
	return category
}
