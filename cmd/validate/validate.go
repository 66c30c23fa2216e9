// Package validate handles ledger and archive reconciliation
package validate

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"hsaledger/cmd/common"
	"hsaledger/cmd/root"
	"hsaledger/internal/validation"
)

var (
	year   string
	asJSON bool
)

// Cmd represents the validate command
var Cmd = &cobra.Command{
	Use:   "validate",
	Short: "Check ledger integrity against the receipt archive",
	Long: `Walk every ledger partition and report issues (broken schema, malformed
dates or amounts, Receipt_URLs pointing at missing files) and warnings
(rows that look like duplicates of earlier rows).

The exit status reflects issues only; warnings ask for human judgment
but do not fail the run.

Example:
  hsaledger validate --year 2024`,
	Run: validateFunc,
}

func init() {
	Cmd.Flags().StringVarP(&year, "year", "y", "", "Validate a single year's partition")
	Cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "Print the report as JSON")
}

func validateFunc(cmd *cobra.Command, args []string) {
	validator := root.GetContainer().GetValidator()

	var tree *validation.TreeReport
	if year != "" {
		report, err := validator.ValidatePartition(year)
		if err != nil {
			root.Log.Fatalf("Validation failed: %v", err)
		}
		tree = &validation.TreeReport{
			Partitions: []*validation.PartitionReport{report},
			Rows:       report.Rows,
			Total:      report.Total,
			Issues:     len(report.Issues),
			Warnings:   len(report.Warnings),
		}
	} else {
		var err error
		tree, err = validator.ValidateTree()
		if err != nil {
			root.Log.Fatalf("Validation failed: %v", err)
		}
	}

	if asJSON {
		if err := common.WriteJSON(os.Stdout, tree); err != nil {
			root.Log.Fatalf("%v", err)
		}
	} else {
		fmt.Print(formatTree(tree))
	}

	if !tree.Valid() {
		os.Exit(1)
	}
}

// formatTree renders the validation report for a terminal, partitions
// in year order, findings in row order.
func formatTree(tree *validation.TreeReport) string {
	var b strings.Builder

	for _, p := range tree.Partitions {
		fmt.Fprintf(&b, "%s: %d rows, total %s\n", p.Path, p.Rows, p.Total.StringFixed(2))
		for _, issue := range p.Issues {
			fmt.Fprintf(&b, "  issue (row %d): %s\n", issue.Row, issue.Message)
		}
		for _, warning := range p.Warnings {
			fmt.Fprintf(&b, "  warning (row %d): %s\n", warning.Row, warning.Message)
		}
	}

	if len(tree.Partitions) == 0 {
		b.WriteString("No ledger partitions found.\n")
	}

	fmt.Fprintf(&b, "%d partitions, %d rows, %d issues, %d warnings\n",
		len(tree.Partitions), tree.Rows, tree.Issues, tree.Warnings)
	if tree.Valid() {
		b.WriteString("Ledger is valid.\n")
	} else {
		b.WriteString("Ledger has issues.\n")
	}
	return b.String()
}
